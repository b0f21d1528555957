package orders

import (
	"testing"
	"time"

	"github.com/mantomate/storefront-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDetailFallbacks(t *testing.T) {
	dispatched := time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC)
	detail := detailFromModel(models.Order{
		ID:           7,
		Total:        decimal.RequireFromString("1234.5"),
		OrderedAt:    time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		DispatchedAt: &dispatched,
		Items: []models.OrderItem{
			{Quantity: 2, UnitPrice: decimal.NewFromInt(100)},
		},
	})

	assert.Equal(t, "#MN-007", detail.DisplayID)
	assert.Equal(t, "Desconocido", detail.EstadoPedido)
	assert.Equal(t, "Retiro en tienda", detail.DireccionEnvio)
	assert.Equal(t, "03/02/2026", detail.FechaDespacho)
	assert.Equal(t, "$ 1.234,50", detail.TotalFormateado)
	assert.Equal(t, "Producto eliminado", detail.Items[0].NombreItem)
	assert.Equal(t, "$ 200", detail.Items[0].Subtotal)
	assert.Nil(t, detail.Items[0].ImagenURL)
}

func TestSummaryFallbacks(t *testing.T) {
	subID := int64(3)
	summary := summaryFromModel(models.Order{
		ID:             12,
		SubscriptionID: &subID,
		OrderedAt:      time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC),
		Items: []models.OrderItem{
			{Quantity: 1},
			{Quantity: 4, Product: &models.Product{Name: "Mate"}},
		},
	})

	assert.Equal(t, "#MN-012", summary.DisplayID)
	assert.Equal(t, "Desconocido", summary.EstadoPedido)
	assert.Equal(t, "-", summary.FechaEntrega)
	assert.True(t, summary.EsSuscripcion)
	assert.Equal(t, "1x Producto...", summary.Descripcion)

	empty := summaryFromModel(models.Order{ID: 1})
	assert.Equal(t, "Sin items", empty.Descripcion)
}
