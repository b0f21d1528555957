package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/mantomate/storefront-backend/internal/address"
	"github.com/mantomate/storefront-backend/internal/cart"
	"github.com/mantomate/storefront-backend/internal/customers"
	"github.com/mantomate/storefront-backend/internal/orders"
	"github.com/mantomate/storefront-backend/internal/paymentmethods"
	"github.com/mantomate/storefront-backend/pkg/auth"
	"github.com/mantomate/storefront-backend/pkg/db"
	"github.com/mantomate/storefront-backend/pkg/db/dbtest"
	"github.com/mantomate/storefront-backend/pkg/db/models"
	pkgerrors "github.com/mantomate/storefront-backend/pkg/errors"
	"github.com/mantomate/storefront-backend/pkg/types"
	"github.com/mantomate/storefront-backend/pkg/viewcache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubViews struct {
	principal string
	views     []viewcache.View
}

func (s *stubViews) Invalidate(_ context.Context, principal string, views ...viewcache.View) error {
	s.principal = principal
	s.views = append(s.views, views...)
	return nil
}

type stubCart struct{ cleared int }

func (s *stubCart) Clear(context.Context, auth.Principal) (*cart.View, error) {
	s.cleared++
	return &cart.View{}, nil
}

type fixture struct {
	conn      *gorm.DB
	svc       Service
	views     *stubViews
	cart      *stubCart
	principal auth.Principal
	customer  *models.Customer
	productA  int64
	productB  int64
}

var fixedNow = time.Date(2026, 10, 18, 13, 30, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn := dbtest.Open(t)
	subject := "user-ana"
	customer := &models.Customer{Email: "ana@example.com", AuthUserID: &subject}
	require.NoError(t, conn.Create(customer).Error)
	a := &models.Product{Name: "Yerba Suave", Price: decimal.NewFromInt(1500)}
	b := &models.Product{Name: "Bombilla", Price: decimal.RequireFromString("899.50")}
	require.NoError(t, conn.Create(a).Error)
	require.NoError(t, conn.Create(b).Error)

	addresses := address.NewRepository(conn)
	customerSvc, err := customers.NewService(customers.NewRepository(conn), addresses, nil)
	require.NoError(t, err)

	views := &stubViews{}
	cartStub := &stubCart{}
	svc, err := NewService(ServiceParams{
		TxRunner:       db.FromGorm(conn),
		Customers:      customerSvc,
		Addresses:      addresses,
		Orders:         orders.NewRepository(conn),
		PaymentMethods: paymentmethods.NewRepository(conn),
		Views:          views,
		Cart:           cartStub,
		Now:            func() time.Time { return fixedNow },
	})
	require.NoError(t, err)

	return &fixture{
		conn:      conn,
		svc:       svc,
		views:     views,
		cart:      cartStub,
		principal: auth.Principal{Subject: subject, Email: "ana@example.com"},
		customer:  customer,
		productA:  a.ID,
		productB:  b.ID,
	}
}

func (f *fixture) input() Input {
	floor := "2B"
	return Input{
		Items: []LineInput{
			{ProductID: f.productA, Quantity: 2, Price: decimal.NewFromInt(1500)},
			{ProductID: f.productB, Quantity: 1, Price: decimal.RequireFromString("899.50")},
		},
		Total: decimal.RequireFromString("3899.50"),
		Address: types.ShippingAddress{
			Street: " Av. Corrientes ", Number: "1234", Floor: &floor,
			PostalCode: "C1043", City: "CABA", Province: "Buenos Aires",
		},
	}
}

func (f *fixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.conn.Model(model).Count(&n).Error)
	return n
}

func TestExecuteCreatesOrderWithItems(t *testing.T) {
	f := newFixture(t)
	input := f.input()
	input.SaveAddress = true

	result, err := f.svc.Execute(context.Background(), f.principal, input)
	require.NoError(t, err)
	require.True(t, result.Success)

	var order models.Order
	require.NoError(t, f.conn.Preload("Items").First(&order, result.OrderID).Error)
	assert.Equal(t, f.customer.ID, order.CustomerID)
	assert.Equal(t, 1, order.StatusID)
	assert.True(t, decimal.RequireFromString("3899.50").Equal(order.Total))
	assert.Equal(t, "Av. Corrientes", order.ShipStreet)
	require.NotNil(t, order.ShippingAddress)
	assert.Equal(t, "Av. Corrientes 1234, CABA", *order.ShippingAddress)
	assert.True(t, fixedNow.Equal(order.OrderedAt))
	require.Len(t, order.Items, 2)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.True(t, decimal.NewFromInt(1500).Equal(order.Items[0].UnitPrice))

	var primary models.CustomerAddress
	require.NoError(t, f.conn.Where("cliente_id = ? AND es_principal = ?", f.customer.ID, true).First(&primary).Error)
	assert.Equal(t, "Casa", primary.Alias)
	assert.Equal(t, "C1043", primary.PostalCode)

	assert.Equal(t, "user-ana", f.views.principal)
	assert.ElementsMatch(t, []viewcache.View{viewcache.ViewDashboard, viewcache.ViewOrders}, f.views.views)
	assert.Equal(t, 1, f.cart.cleared)
}

func TestExecuteWithoutSaveAddressKeepsAddresses(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Execute(context.Background(), f.principal, f.input())
	require.NoError(t, err)
	assert.Zero(t, f.count(t, &models.CustomerAddress{}))
	assert.Equal(t, int64(1), f.count(t, &models.Order{}))
}

func TestExecuteRejectsInvalidInput(t *testing.T) {
	cases := map[string]func(in *Input){
		"empty cart":      func(in *Input) { in.Items = nil; in.Total = decimal.Zero },
		"zero quantity":   func(in *Input) { in.Items[0].Quantity = 0 },
		"negative price":  func(in *Input) { in.Items[1].Price = decimal.NewFromInt(-1) },
		"total mismatch":  func(in *Input) { in.Total = decimal.NewFromInt(1) },
		"missing address": func(in *Input) { in.Address.City = "  " },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			input := f.input()
			mutate(&input)

			_, err := f.svc.Execute(context.Background(), f.principal, input)
			require.Error(t, err)
			assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "got %v", err)
			assert.Zero(t, f.count(t, &models.Order{}))
			assert.Empty(t, f.views.views)
		})
	}
}

func TestExecuteRequiresCustomer(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Execute(context.Background(), auth.Principal{}, f.input())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))

	_, err = f.svc.Execute(context.Background(), auth.Principal{Subject: "ghost", Email: "ghost@example.com"}, f.input())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestExecuteRejectsForeignPaymentMethod(t *testing.T) {
	f := newFixture(t)
	other := &models.Customer{Email: "bob@example.com"}
	require.NoError(t, f.conn.Create(other).Error)
	method := paymentmethods.BuildCard(other.ID, paymentmethods.CardInput{Token: "t", Brand: "visa", Last4: "4242"})
	require.NoError(t, f.conn.Create(method).Error)

	input := f.input()
	input.PaymentMethodID = &method.ID
	_, err := f.svc.Execute(context.Background(), f.principal, input)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	own := paymentmethods.BuildCard(f.customer.ID, paymentmethods.CardInput{Token: "u", Brand: "visa", Last4: "1111"})
	require.NoError(t, f.conn.Create(own).Error)
	input.PaymentMethodID = &own.ID
	result, err := f.svc.Execute(context.Background(), f.principal, input)
	require.NoError(t, err)

	var order models.Order
	require.NoError(t, f.conn.First(&order, result.OrderID).Error)
	require.NotNil(t, order.PaymentMethodID)
	assert.Equal(t, own.ID, *order.PaymentMethodID)
}

func TestExecuteRollsBackWhenItemsFail(t *testing.T) {
	f := newFixture(t)
	input := f.input()
	input.SaveAddress = true
	input.Items[1].ProductID = 9999

	_, err := f.svc.Execute(context.Background(), f.principal, input)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())
	assert.Equal(t, MsgItemsFailed, typed.Message())
	assert.Equal(t, map[string]any{"step": StepOrderItems}, typed.Details())

	assert.Zero(t, f.count(t, &models.Order{}))
	assert.Zero(t, f.count(t, &models.OrderItem{}))
	assert.Zero(t, f.count(t, &models.CustomerAddress{}))
	assert.Empty(t, f.views.views)
	assert.Zero(t, f.cart.cleared)
}

func TestExecuteKeepsCheckoutPriceAfterCatalogChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.svc.Execute(ctx, f.principal, f.input())
	require.NoError(t, err)

	require.NoError(t, f.conn.Model(&models.Product{}).
		Where("id = ?", f.productA).
		Update("precio", decimal.NewFromInt(2100)).Error)

	var line models.OrderItem
	require.NoError(t, f.conn.Where("pedido_id = ? AND item_id = ?", result.OrderID, f.productA).First(&line).Error)
	assert.True(t, decimal.NewFromInt(1500).Equal(line.UnitPrice), "got %s", line.UnitPrice)

	reader, err := orders.NewService(orders.NewRepository(f.conn), nil)
	require.NoError(t, err)
	detail := reader.GetOrderDetail(ctx, result.OrderID)
	require.NotNil(t, detail)

	var found bool
	for _, item := range detail.Items {
		if item.NombreItem != "Yerba Suave" {
			continue
		}
		found = true
		assert.Equal(t, "$ 1.500", item.PrecioUnitario)
		assert.Equal(t, "$ 3.000", item.Subtotal)
	}
	assert.True(t, found)
	assert.Equal(t, "$ 3.899,50", detail.TotalFormateado)
}

func TestExecuteSaveAddressReplacesExistingPrimary(t *testing.T) {
	f := newFixture(t)
	previous := &models.CustomerAddress{
		CustomerID: f.customer.ID, Alias: "Casa", Street: "Belgrano", Number: "20",
		PostalCode: "5500", City: "Mendoza", Province: "Mendoza", IsPrimary: true,
	}
	require.NoError(t, f.conn.Create(previous).Error)

	input := f.input()
	input.SaveAddress = true
	_, err := f.svc.Execute(context.Background(), f.principal, input)
	require.NoError(t, err)

	var primaries []models.CustomerAddress
	require.NoError(t, f.conn.Where("cliente_id = ? AND es_principal = ?", f.customer.ID, true).Find(&primaries).Error)
	require.Len(t, primaries, 1)
	assert.NotEqual(t, previous.ID, primaries[0].ID)
	assert.Equal(t, "Av. Corrientes", primaries[0].Street)

	var old models.CustomerAddress
	require.NoError(t, f.conn.First(&old, previous.ID).Error)
	assert.False(t, old.IsPrimary)
	assert.Equal(t, int64(2), f.count(t, &models.CustomerAddress{}))
}
