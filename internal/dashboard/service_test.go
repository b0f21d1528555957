package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mantomate/storefront-backend/pkg/auth"
	"github.com/mantomate/storefront-backend/pkg/db/models"
	pkgerrors "github.com/mantomate/storefront-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubCustomers struct {
	customer   *models.Customer
	err        error
	address    *models.CustomerAddress
	addressErr error
}

func (s stubCustomers) Resolve(context.Context, auth.Principal) (*models.Customer, error) {
	return s.customer, s.err
}

func (s stubCustomers) PrimaryAddress(context.Context, int64) (*models.CustomerAddress, error) {
	return s.address, s.addressErr
}

type stubSubscriptions struct {
	sub *models.Subscription
	err error
}

func (s stubSubscriptions) FindActiveByCustomer(context.Context, int64) (*models.Subscription, error) {
	return s.sub, s.err
}

type stubOrders struct {
	rows  []models.Order
	err   error
	limit *int
}

func (s stubOrders) ListByCustomer(_ context.Context, _ int64, limit int) ([]models.Order, error) {
	if s.limit != nil {
		*s.limit = limit
	}
	return s.rows, s.err
}

func strPtr(s string) *string { return &s }

func TestGetAggregatesSections(t *testing.T) {
	var limit int
	nextCharge := time.Date(2026, 11, 18, 12, 0, 0, 0, time.UTC)
	svc, err := NewService(
		stubCustomers{
			customer: &models.Customer{ID: 3, Email: "ana@example.com", Points: 120},
			address:  &models.CustomerAddress{Street: "Calle", Number: "1", City: "CABA"},
		},
		stubSubscriptions{sub: &models.Subscription{
			NextChargeAt:    nextCharge,
			ShippingAddress: strPtr("Calle 1, CABA"),
			Status:          &models.SubscriptionStatus{Name: "Activa"},
		}},
		stubOrders{limit: &limit, rows: []models.Order{{
			ID:        7,
			Total:     decimal.NewFromInt(2500),
			OrderedAt: time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC),
			Items: []models.OrderItem{
				{Quantity: 2, Product: &models.Product{Name: "Yerba"}},
				{Quantity: 1, Product: &models.Product{Name: "Mate"}},
			},
		}}},
		nil,
	)
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), auth.Principal{Subject: "u"})
	require.NoError(t, err)

	assert.Equal(t, RecentOrdersLimit, limit)
	assert.Equal(t, Profile{ID: 3, Nombre: "Usuario", Email: "ana@example.com", Nivel: "Matero Iniciado", Puntos: 120}, got.Usuario)
	require.NotNil(t, got.DireccionPrincipal)
	assert.Equal(t, "Calle 1, CABA", got.DireccionPrincipal.Line())
	require.NotNil(t, got.Suscripcion)
	assert.Equal(t, SubscriptionSummary{Estado: "Activa", ProximoCobro: "18 de noviembre", Direccion: "Calle 1, CABA"}, *got.Suscripcion)
	require.Len(t, got.Pedidos, 1)
	assert.Equal(t, RecentOrder{
		ID:          "#MN-007",
		Fecha:       "2 sept 2026",
		Estado:      "Pendiente",
		Total:       "$ 2.500",
		Descripcion: "2x Yerba...",
	}, got.Pedidos[0])
}

func TestGetDegradesFailingSections(t *testing.T) {
	svc, err := NewService(
		stubCustomers{
			customer:   &models.Customer{ID: 3, Name: strPtr("Ana"), Label: strPtr("Cebador Experto")},
			addressErr: errors.New("boom"),
		},
		stubSubscriptions{err: gorm.ErrRecordNotFound},
		stubOrders{err: errors.New("boom")},
		nil,
	)
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), auth.Principal{Subject: "u"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Usuario.Nombre)
	assert.Equal(t, "Cebador Experto", got.Usuario.Nivel)
	assert.Nil(t, got.DireccionPrincipal)
	assert.Nil(t, got.Suscripcion)
	assert.NotNil(t, got.Pedidos)
	assert.Empty(t, got.Pedidos)
}

func TestGetPropagatesResolutionErrors(t *testing.T) {
	svc, err := NewService(
		stubCustomers{err: pkgerrors.New(pkgerrors.CodeNotFound, "Cliente no encontrado")},
		stubSubscriptions{},
		stubOrders{},
		nil,
	)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), auth.Principal{Subject: "u"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestRecentOrderUnknownDate(t *testing.T) {
	got := recentOrderFromModel(models.Order{ID: 1234, Status: &models.OrderStatus{Name: "Entregado"}})
	assert.Equal(t, "#MN-1234", got.ID)
	assert.Equal(t, "Fecha desconocida", got.Fecha)
	assert.Equal(t, "Entregado", got.Estado)
	assert.Equal(t, "Sin items", got.Descripcion)
}

type orderedReads struct {
	calls []string
}

func (o *orderedReads) Resolve(context.Context, auth.Principal) (*models.Customer, error) {
	o.calls = append(o.calls, "customer")
	return &models.Customer{ID: 3}, nil
}

func (o *orderedReads) PrimaryAddress(context.Context, int64) (*models.CustomerAddress, error) {
	o.calls = append(o.calls, "address")
	return nil, errors.New("address table unavailable")
}

func (o *orderedReads) FindActiveByCustomer(context.Context, int64) (*models.Subscription, error) {
	o.calls = append(o.calls, "subscription")
	return nil, gorm.ErrRecordNotFound
}

func (o *orderedReads) ListByCustomer(context.Context, int64, int) ([]models.Order, error) {
	o.calls = append(o.calls, "orders")
	return nil, nil
}

func TestGetReadsSectionsInOrder(t *testing.T) {
	reads := &orderedReads{}
	svc, err := NewService(reads, reads, reads, nil)
	require.NoError(t, err)

	out, err := svc.Get(context.Background(), auth.Principal{Subject: "user-ana"})
	require.NoError(t, err)
	assert.Equal(t, []string{"customer", "address", "subscription", "orders"}, reads.calls)
	assert.Nil(t, out.DireccionPrincipal)
	assert.Nil(t, out.Suscripcion)
	assert.NotNil(t, out.Pedidos)
	assert.Empty(t, out.Pedidos)
}
