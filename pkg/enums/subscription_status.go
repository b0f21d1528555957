package enums

import "fmt"

// SubscriptionStatus mirrors the seeded rows of estado_suscripcion.
type SubscriptionStatus int

const (
	SubscriptionStatusActive   SubscriptionStatus = 1
	SubscriptionStatusPaused   SubscriptionStatus = 2
	SubscriptionStatusCanceled SubscriptionStatus = 3
)

var validSubscriptionStatuses = []SubscriptionStatus{
	SubscriptionStatusActive,
	SubscriptionStatusPaused,
	SubscriptionStatusCanceled,
}

// ID returns the lookup table key.
func (s SubscriptionStatus) ID() int {
	return int(s)
}

// IsValid reports whether the value is known.
func (s SubscriptionStatus) IsValid() bool {
	for _, candidate := range validSubscriptionStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSubscriptionStatus converts a raw lookup id into a SubscriptionStatus.
func ParseSubscriptionStatus(value int) (SubscriptionStatus, error) {
	status := SubscriptionStatus(value)
	if !status.IsValid() {
		return 0, fmt.Errorf("invalid subscription status %d", value)
	}
	return status, nil
}
