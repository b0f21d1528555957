package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// WorkflowMetrics records outcomes of the storefront write workflows
// (checkout, subscription enrollment). A nil receiver is a no-op.
type WorkflowMetrics struct {
	duration *prometheus.HistogramVec
	outcomes *prometheus.CounterVec
}

// NewWorkflowMetrics registers the workflow metrics on the provided registerer.
func NewWorkflowMetrics(reg prometheus.Registerer) *WorkflowMetrics {
	if reg == nil {
		return &WorkflowMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "manto",
		Name:      "workflow_duration_seconds",
		Help:      "Duration of storefront write workflows in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"workflow"})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "manto",
		Name:      "workflow_total",
		Help:      "Storefront write workflow executions by outcome and failing step.",
	}, []string{"workflow", "outcome", "step"})
	reg.MustRegister(duration, outcomes)
	return &WorkflowMetrics{duration: duration, outcomes: outcomes}
}

// Observe records one workflow execution. step names the failing step and is
// ignored on success.
func (m *WorkflowMetrics) Observe(workflow string, started time.Time, err error, step string) {
	if m == nil || m.duration == nil {
		return
	}
	workflow = normalizeLabel(workflow)
	m.duration.WithLabelValues(workflow).Observe(time.Since(started).Seconds())
	if err == nil {
		m.outcomes.WithLabelValues(workflow, OutcomeSuccess, "").Inc()
		return
	}
	m.outcomes.WithLabelValues(workflow, OutcomeFailure, normalizeLabel(step)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
