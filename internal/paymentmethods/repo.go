package paymentmethods

import (
	"context"

	"github.com/mantomate/storefront-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists metodo_pago rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a payment method repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindForCustomer loads a payment method only when it belongs to customerID.
func (r *Repository) FindForCustomer(ctx context.Context, customerID, id int64) (*models.PaymentMethod, error) {
	var method models.PaymentMethod
	err := r.db.WithContext(ctx).
		Where("id = ? AND cliente_id = ?", id, customerID).
		First(&method).Error
	if err != nil {
		return nil, err
	}
	return &method, nil
}

// ListByCustomer returns the customer's cards, default first.
func (r *Repository) ListByCustomer(ctx context.Context, customerID int64) ([]models.PaymentMethod, error) {
	var rows []models.PaymentMethod
	err := r.db.WithContext(ctx).
		Where("cliente_id = ?", customerID).
		Order("es_default DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ClearDefault unsets es_default on every card of the customer.
func (r *Repository) ClearDefault(ctx context.Context, customerID int64) error {
	return r.db.WithContext(ctx).
		Model(&models.PaymentMethod{}).
		Where("cliente_id = ? AND es_default = ?", customerID, true).
		UpdateColumn("es_default", false).Error
}

// Create inserts method.
func (r *Repository) Create(ctx context.Context, method *models.PaymentMethod) error {
	return r.db.WithContext(ctx).Create(method).Error
}

// StoreDefault demotes existing cards and stores method as the default one.
// Callers run it inside a transaction.
func (r *Repository) StoreDefault(ctx context.Context, method *models.PaymentMethod) error {
	if err := r.ClearDefault(ctx, method.CustomerID); err != nil {
		return err
	}
	method.IsDefault = true
	return r.Create(ctx, method)
}
