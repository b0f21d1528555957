package orders

import (
	"context"

	"github.com/mantomate/storefront-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for pedido and pedido_item.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) error
	CreateItems(ctx context.Context, items []models.OrderItem) error
	FindDetail(ctx context.Context, orderID int64) (*models.Order, error)
	ListByCustomer(ctx context.Context, customerID int64, limit int) ([]models.Order, error)
}
