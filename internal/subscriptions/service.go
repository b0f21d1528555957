package subscriptions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mantomate/storefront-backend/internal/address"
	"github.com/mantomate/storefront-backend/internal/orders"
	"github.com/mantomate/storefront-backend/internal/paymentmethods"
	"github.com/mantomate/storefront-backend/pkg/auth"
	"github.com/mantomate/storefront-backend/pkg/db/models"
	"github.com/mantomate/storefront-backend/pkg/enums"
	pkgerrors "github.com/mantomate/storefront-backend/pkg/errors"
	"github.com/mantomate/storefront-backend/pkg/logger"
	"github.com/mantomate/storefront-backend/pkg/metrics"
	"github.com/mantomate/storefront-backend/pkg/types"
	"github.com/mantomate/storefront-backend/pkg/viewcache"
	"gorm.io/gorm"
)

const workflowName = "subscription"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type customerResolver interface {
	Resolve(ctx context.Context, principal auth.Principal) (*models.Customer, error)
	ResolveByEmail(ctx context.Context, email string) (*models.Customer, error)
}

// Service enrolls members in the club and reads their subscription.
type Service interface {
	Create(ctx context.Context, principal auth.Principal, input CreateInput) (*CreateResult, error)
	GetByEmail(ctx context.Context, email string) *SubscriptionView
	GetByCustomer(ctx context.Context, customerID int64) *SubscriptionView
	ListPlans(ctx context.Context) ([]PlanView, error)
}

// ServiceParams groups dependencies for the subscription service.
type ServiceParams struct {
	TxRunner       txRunner
	Repo           *Repository
	Customers      customerResolver
	Addresses      *address.Repository
	PaymentMethods *paymentmethods.Repository
	Orders         orders.Repository
	Views          viewcache.Invalidator
	Metrics        *metrics.WorkflowMetrics
	Logger         *logger.Logger
	Now            func() time.Time
}

type service struct {
	tx        txRunner
	repo      *Repository
	customers customerResolver
	addresses *address.Repository
	payments  *paymentmethods.Repository
	orders    orders.Repository
	views     viewcache.Invalidator
	metrics   *metrics.WorkflowMetrics
	logg      *logger.Logger
	now       func() time.Time
}

// NewService builds the subscription service.
func NewService(params ServiceParams) (Service, error) {
	if params.TxRunner == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("subscriptions repository required")
	}
	if params.Customers == nil {
		return nil, fmt.Errorf("customer resolver required")
	}
	if params.Addresses == nil {
		return nil, fmt.Errorf("address repository required")
	}
	if params.PaymentMethods == nil {
		return nil, fmt.Errorf("payment method repository required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("orders repository required")
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
		repo:      params.Repo,
		customers: params.Customers,
		addresses: params.Addresses,
		payments:  params.PaymentMethods,
		orders:    params.Orders,
		views:     params.Views,
		metrics:   params.Metrics,
		logg:      logg,
		now:       now,
	}, nil
}

// Create stores the card as the default payment method, opens an active
// subscription charged one month from now and writes its first order from
// the plan recipe, all in one transaction.
//
// Recipe lines carry the product's current catalog price while the order
// total is the plan's recurring price.
func (s *service) Create(ctx context.Context, principal auth.Principal, input CreateInput) (result *CreateResult, err error) {
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
	card := input.card()
	if err := card.Validate(); err != nil {
		return nil, err
	}
	plan, err := s.loadPlan(ctx, input.PlanID)
	if err != nil {
		return nil, err
	}
	shipping, err := s.shippingAddress(ctx, customer.ID, input.Address)
	if err != nil {
		return nil, err
	}

	startedAt := s.now().UTC()
	var sub *models.Subscription
	var order *models.Order
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		subsRepo := s.repo.WithTx(tx)
		active, err := subsRepo.HasActive(ctx, customer.ID)
		if err != nil {
			return stepError(err, StepValidate, MsgSubscriptionFailed)
		}
		if active {
			return pkgerrors.New(pkgerrors.CodeConflict, MsgAlreadySubscribed)
		}

		step = StepPaymentMethod
		method := paymentmethods.BuildCard(customer.ID, card)
		if err := s.payments.WithTx(tx).StoreDefault(ctx, method); err != nil {
			return stepError(err, StepPaymentMethod, MsgPaymentMethodFailed)
		}

		step = StepSubscription
		sub = &models.Subscription{
			CustomerID:      customer.ID,
			PlanID:          plan.ID,
			PaymentMethodID: &method.ID,
			StatusID:        enums.SubscriptionStatusActive.ID(),
			StartedAt:       startedAt,
			NextChargeAt:    AddMonth(startedAt).UTC(),
			ShippingAddress: shipping.line(),
		}
		if err := subsRepo.Create(ctx, sub); err != nil {
			return stepError(err, StepSubscription, MsgSubscriptionFailed)
		}

		step = StepSubscriptionOrder
		order = buildFirstOrder(customer.ID, sub, plan, shipping, startedAt)
		ordersRepo := s.orders.WithTx(tx)
		if err := ordersRepo.CreateOrder(ctx, order); err != nil {
			return stepError(err, StepSubscriptionOrder, MsgOrderFailed)
		}

		step = StepOrderItems
		if err := ordersRepo.CreateItems(ctx, recipeItems(order.ID, plan)); err != nil {
			return stepError(err, StepOrderItems, MsgItemsFailed)
		}
		return nil
	})
	if err != nil {
		if !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
			s.logg.Error(s.logg.WithField(ctx, "step", step), "subscription.failed", err)
		}
		return nil, err
	}

	if s.views != nil {
		if err := s.views.Invalidate(ctx, principal.Subject, viewcache.ViewDashboard, viewcache.ViewSubscription, viewcache.ViewOrders); err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "subscription.view_invalidation_failed")
		}
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"subscription_id": sub.ID,
		"order_id":        order.ID,
		"plan_id":         plan.ID,
	}), "subscription.created")
	return &CreateResult{SubscriptionID: sub.ID, OrderID: order.ID}, nil
}

func (s *service) loadPlan(ctx context.Context, planID int64) (*models.Plan, error) {
	if planID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "planId is required")
	}
	plan, err := s.repo.FindPlan(ctx, planID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, MsgPlanNotFound)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load plan")
	}
	return plan, nil
}

// shipping is the address the subscription ships to; zero when the member
// has none.
type shipping struct {
	addr  types.ShippingAddress
	known bool
}

func (s shipping) line() *string {
	if !s.known {
		return nil
	}
	line := s.addr.Line()
	return &line
}

// shippingAddress prefers the submitted address, then the primary one.
func (s *service) shippingAddress(ctx context.Context, customerID int64, input *types.ShippingAddress) (shipping, error) {
	if input != nil {
		addr := input.Normalize()
		if missing := addr.Missing(); len(missing) > 0 {
			return shipping{}, pkgerrors.New(pkgerrors.CodeValidation, "address is incomplete").
				WithDetails(map[string]any{"field": "address", "missing": missing})
		}
		return shipping{addr: addr, known: true}, nil
	}
	primary, err := s.addresses.FindPrimary(ctx, customerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shipping{}, nil
	}
	if err != nil {
		return shipping{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load primary address")
	}
	return shipping{addr: address.ToShipping(primary), known: true}, nil
}

func buildFirstOrder(customerID int64, sub *models.Subscription, plan *models.Plan, ship shipping, now time.Time) *models.Order {
	subID := sub.ID
	return &models.Order{
		CustomerID:      customerID,
		SubscriptionID:  &subID,
		PaymentMethodID: sub.PaymentMethodID,
		Total:           plan.RecurringPrice,
		OrderedAt:       now,
		StatusID:        enums.OrderStatusPending.ID(),
		ShipStreet:      ship.addr.Street,
		ShipNumber:      ship.addr.Number,
		ShipFloor:       ship.addr.Floor,
		ShipPostalCode:  ship.addr.PostalCode,
		ShipCity:        ship.addr.City,
		ShipProvince:    ship.addr.Province,
		ShippingAddress: ship.line(),
	}
}

// recipeItems turns the whole recipe into order lines; the first order also
// ships the primer_mes entries.
func recipeItems(orderID int64, plan *models.Plan) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(plan.Items))
	for _, entry := range plan.Items {
		item := models.OrderItem{
			OrderID:   orderID,
			ProductID: entry.ProductID,
			Quantity:  entry.Quantity,
		}
		if entry.Product != nil {
			item.UnitPrice = entry.Product.Price
		}
		items = append(items, item)
	}
	return items
}

func stepError(err error, step, message string) error {
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message).
		WithDetails(map[string]any{"step": step})
}

// GetByEmail returns nil when the customer or an active subscription is
// missing, or when the lookup fails.
func (s *service) GetByEmail(ctx context.Context, email string) *SubscriptionView {
	customer, err := s.customers.ResolveByEmail(ctx, email)
	if err != nil {
		if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) && !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
			s.logg.Error(ctx, "subscription.lookup_failed", err)
		}
		return nil
	}
	return s.GetByCustomer(ctx, customer.ID)
}

func (s *service) GetByCustomer(ctx context.Context, customerID int64) *SubscriptionView {
	sub, err := s.repo.FindActiveByCustomer(ctx, customerID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logg.Error(s.logg.WithCustomerID(ctx, customerID), "subscription.lookup_failed", err)
		}
		return nil
	}
	return viewFromModel(*sub)
}

func (s *service) ListPlans(ctx context.Context) ([]PlanView, error) {
	plans, err := s.repo.ListPlans(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list plans")
	}
	out := make([]PlanView, 0, len(plans))
	for _, plan := range plans {
		out = append(out, planFromModel(plan))
	}
	return out, nil
}
