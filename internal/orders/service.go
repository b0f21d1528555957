package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/mantomate/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

// Service exposes the customer-facing order history reads. Query failures are
// logged and surface as empty results.
type Service interface {
	GetOrderDetail(ctx context.Context, orderID int64) *OrderDetail
	ListByCustomer(ctx context.Context, customerID int64) []OrderSummary
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService constructs an order reader.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{repo: repo, logg: logg}, nil
}

// GetOrderDetail returns nil when the order does not exist or cannot be read.
func (s *service) GetOrderDetail(ctx context.Context, orderID int64) *OrderDetail {
	if orderID <= 0 {
		return nil
	}
	order, err := s.repo.FindDetail(ctx, orderID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logg.Error(s.logg.WithField(ctx, "order_id", orderID), "orders.detail_failed", err)
		}
		return nil
	}
	return detailFromModel(*order)
}

// ListByCustomer returns every order of the customer, newest first.
func (s *service) ListByCustomer(ctx context.Context, customerID int64) []OrderSummary {
	rows, err := s.repo.ListByCustomer(ctx, customerID, 0)
	if err != nil {
		s.logg.Error(s.logg.WithCustomerID(ctx, customerID), "orders.list_failed", err)
		return []OrderSummary{}
	}
	out := make([]OrderSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, summaryFromModel(row))
	}
	return out
}
