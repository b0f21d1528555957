package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/mantomate/storefront-backend/internal/address"
	"github.com/mantomate/storefront-backend/pkg/auth"
	"github.com/mantomate/storefront-backend/pkg/db/models"
	"github.com/mantomate/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

// RecentOrdersLimit is how many orders the dashboard lists.
const RecentOrdersLimit = 5

type customerResolver interface {
	Resolve(ctx context.Context, principal auth.Principal) (*models.Customer, error)
	PrimaryAddress(ctx context.Context, customerID int64) (*models.CustomerAddress, error)
}

type subscriptionFinder interface {
	FindActiveByCustomer(ctx context.Context, customerID int64) (*models.Subscription, error)
}

type orderLister interface {
	ListByCustomer(ctx context.Context, customerID int64, limit int) ([]models.Order, error)
}

// Service aggregates the account dashboard.
type Service interface {
	Get(ctx context.Context, principal auth.Principal) (*Dashboard, error)
}

type service struct {
	customers     customerResolver
	subscriptions subscriptionFinder
	orders        orderLister
	logg          *logger.Logger
}

// NewService constructs the dashboard aggregator.
func NewService(customers customerResolver, subscriptions subscriptionFinder, orders orderLister, logg *logger.Logger) (Service, error) {
	if customers == nil {
		return nil, fmt.Errorf("customer resolver required")
	}
	if subscriptions == nil {
		return nil, fmt.Errorf("subscription finder required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order lister required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{customers: customers, subscriptions: subscriptions, orders: orders, logg: logg}, nil
}

// Get resolves the customer and reads the address, subscription and recent
// orders one after another. A failing section is logged and rendered empty.
func (s *service) Get(ctx context.Context, principal auth.Principal) (*Dashboard, error) {
	customer, err := s.customers.Resolve(ctx, principal)
	if err != nil {
		return nil, err
	}
	ctx = s.logg.WithCustomerID(ctx, customer.ID)

	out := &Dashboard{
		Usuario: profileFromModel(customer),
		Pedidos: []RecentOrder{},
	}

	addr, err := s.customers.PrimaryAddress(ctx, customer.ID)
	switch {
	case err != nil:
		s.logg.Error(ctx, "dashboard.address_failed", err)
	case addr != nil:
		shipping := address.ToShipping(addr)
		out.DireccionPrincipal = &shipping
	}

	sub, err := s.subscriptions.FindActiveByCustomer(ctx, customer.ID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
	case err != nil:
		s.logg.Error(ctx, "dashboard.subscription_failed", err)
	default:
		out.Suscripcion = subscriptionFromModel(sub)
	}

	rows, err := s.orders.ListByCustomer(ctx, customer.ID, RecentOrdersLimit)
	if err != nil {
		s.logg.Error(ctx, "dashboard.orders_failed", err)
		return out, nil
	}
	for _, row := range rows {
		out.Pedidos = append(out.Pedidos, recentOrderFromModel(row))
	}
	return out, nil
}
