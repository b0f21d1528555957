package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mantomate/storefront-backend/internal/address"
	"github.com/mantomate/storefront-backend/internal/cart"
	"github.com/mantomate/storefront-backend/internal/orders"
	"github.com/mantomate/storefront-backend/pkg/auth"
	"github.com/mantomate/storefront-backend/pkg/db/models"
	"github.com/mantomate/storefront-backend/pkg/enums"
	pkgerrors "github.com/mantomate/storefront-backend/pkg/errors"
	"github.com/mantomate/storefront-backend/pkg/logger"
	"github.com/mantomate/storefront-backend/pkg/metrics"
	"github.com/mantomate/storefront-backend/pkg/viewcache"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const workflowName = "checkout"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type customerResolver interface {
	Resolve(ctx context.Context, principal auth.Principal) (*models.Customer, error)
}

type paymentMethodFinder interface {
	FindForCustomer(ctx context.Context, customerID, id int64) (*models.PaymentMethod, error)
}

type cartClearer interface {
	Clear(ctx context.Context, principal auth.Principal) (*cart.View, error)
}

// Service places storefront orders.
type Service interface {
	Execute(ctx context.Context, principal auth.Principal, input Input) (*Result, error)
}

// ServiceParams groups dependencies for the checkout service.
type ServiceParams struct {
	TxRunner       txRunner
	Customers      customerResolver
	Addresses      *address.Repository
	Orders         orders.Repository
	PaymentMethods paymentMethodFinder
	Views          viewcache.Invalidator
	Cart           cartClearer
	Metrics        *metrics.WorkflowMetrics
	Logger         *logger.Logger
	Now            func() time.Time
}

type service struct {
	tx        txRunner
	customers customerResolver
	addresses *address.Repository
	orders    orders.Repository
	payments  paymentMethodFinder
	views     viewcache.Invalidator
	cart      cartClearer
	metrics   *metrics.WorkflowMetrics
	logg      *logger.Logger
	now       func() time.Time
}

// NewService builds the checkout service.
func NewService(params ServiceParams) (Service, error) {
	if params.TxRunner == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if params.Customers == nil {
		return nil, fmt.Errorf("customer resolver required")
	}
	if params.Addresses == nil {
		return nil, fmt.Errorf("address repository required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.PaymentMethods == nil {
		return nil, fmt.Errorf("payment method repository required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		tx:        params.TxRunner,
		customers: params.Customers,
		addresses: params.Addresses,
		orders:    params.Orders,
		payments:  params.PaymentMethods,
		views:     params.Views,
		cart:      params.Cart,
		metrics:   params.Metrics,
		logg:      logg,
		now:       now,
	}, nil
}

// Execute resolves the customer, validates the cart and writes the optional
// primary address, the order and its lines in one transaction.
func (s *service) Execute(ctx context.Context, principal auth.Principal, input Input) (result *Result, err error) {
	started := time.Now()
	step := StepCustomer
	defer func() {
		s.metrics.Observe(workflowName, started, err, step)
	}()

	customer, err := s.customers.Resolve(ctx, principal)
	if err != nil {
		return nil, err
	}
	ctx = s.logg.WithCustomerID(ctx, customer.ID)

	step = StepValidate
	input.Address = input.Address.Normalize()
	total, err := validate(input)
	if err != nil {
		return nil, err
	}
	if input.PaymentMethodID != nil {
		if err := s.ensurePaymentMethod(ctx, customer.ID, *input.PaymentMethodID); err != nil {
			return nil, err
		}
	}

	var order *models.Order
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if input.SaveAddress {
			step = StepAddress
			if _, err := s.addresses.WithTx(tx).ReplacePrimary(ctx, customer.ID, input.Address, address.DefaultAlias); err != nil {
				return stepError(err, StepAddress, MsgAddressFailed)
			}
		}

		step = StepOrder
		order = buildOrder(customer.ID, input, total, s.now())
		ordersRepo := s.orders.WithTx(tx)
		if err := ordersRepo.CreateOrder(ctx, order); err != nil {
			return stepError(err, StepOrder, MsgOrderFailed)
		}

		step = StepOrderItems
		if err := ordersRepo.CreateItems(ctx, buildItems(order.ID, input.Items)); err != nil {
			return stepError(err, StepOrderItems, MsgItemsFailed)
		}
		return nil
	})
	if err != nil {
		s.logg.Error(s.logg.WithField(ctx, "step", step), "checkout.failed", err)
		return nil, err
	}

	s.afterCommit(ctx, principal)
	s.logg.Info(s.logg.WithField(ctx, "order_id", order.ID), "checkout.order_created")
	return &Result{Success: true, OrderID: order.ID}, nil
}

func (s *service) ensurePaymentMethod(ctx context.Context, customerID, paymentMethodID int64) error {
	_, err := s.payments.FindForCustomer(ctx, customerID, paymentMethodID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment method not found").
			WithDetails(map[string]any{"field": "paymentMethodId"})
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment method")
	}
	return nil
}

// afterCommit drops cached views and the server cart. Failures are logged;
// the order already exists.
func (s *service) afterCommit(ctx context.Context, principal auth.Principal) {
	if s.views != nil {
		if err := s.views.Invalidate(ctx, principal.Subject, viewcache.ViewDashboard, viewcache.ViewOrders); err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "checkout.view_invalidation_failed")
		}
	}
	if s.cart != nil {
		if _, err := s.cart.Clear(ctx, principal); err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "checkout.cart_clear_failed")
		}
	}
}

// validate checks the lines and the address and returns the server-side
// total, which must match the submitted one.
func validate(input Input) (decimal.Decimal, error) {
	if len(input.Items) == 0 {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "el carrito está vacío").
			WithDetails(map[string]any{"field": "items"})
	}

	total := decimal.Zero
	for i, line := range input.Items {
		if line.ProductID <= 0 {
			return decimal.Zero, lineError(i, "id", "product id is required")
		}
		if line.Quantity < 1 {
			return decimal.Zero, lineError(i, "quantity", "quantity must be at least 1")
		}
		if line.Price.IsNegative() {
			return decimal.Zero, lineError(i, "price", "price must not be negative")
		}
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	if missing := input.Address.Missing(); len(missing) > 0 {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "address is incomplete").
			WithDetails(map[string]any{"field": "address", "missing": missing})
	}

	if !total.Equal(input.Total) {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "total mismatch").
			WithDetails(map[string]any{
				"field":    "total",
				"expected": total.StringFixed(2),
				"received": input.Total.StringFixed(2),
			})
	}
	return total, nil
}

func lineError(index int, field, message string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, message).
		WithDetails(map[string]any{"field": fmt.Sprintf("items[%d].%s", index, field)})
}

func stepError(err error, step, message string) error {
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message).
		WithDetails(map[string]any{"step": step})
}

func buildOrder(customerID int64, input Input, total decimal.Decimal, now time.Time) *models.Order {
	addr := input.Address
	line := addr.Line()
	return &models.Order{
		CustomerID:      customerID,
		PaymentMethodID: input.PaymentMethodID,
		Total:           total,
		OrderedAt:       now.UTC(),
		StatusID:        enums.OrderStatusPending.ID(),
		ShipStreet:      addr.Street,
		ShipNumber:      addr.Number,
		ShipFloor:       addr.Floor,
		ShipPostalCode:  addr.PostalCode,
		ShipCity:        addr.City,
		ShipProvince:    addr.Province,
		ShippingAddress: &line,
	}
}

func buildItems(orderID int64, lines []LineInput) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderItem{
			OrderID:   orderID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.Price,
		})
	}
	return items
}
