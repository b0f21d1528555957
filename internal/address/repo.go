package address

import (
	"context"

	"github.com/mantomate/storefront-backend/pkg/db/models"
	"github.com/mantomate/storefront-backend/pkg/types"
	"gorm.io/gorm"
)

// DefaultAlias labels addresses saved from checkout.
const DefaultAlias = "Casa"

// Repository persists direccion_cliente rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an address repo bound to the provided GORM DB.
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

// FindPrimary returns the customer's primary address or gorm.ErrRecordNotFound.
func (r *Repository) FindPrimary(ctx context.Context, customerID int64) (*models.CustomerAddress, error) {
	var addr models.CustomerAddress
	err := r.db.WithContext(ctx).
		Where("cliente_id = ? AND es_principal = ?", customerID, true).
		First(&addr).Error
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

// ListByCustomer returns every saved address, primary first.
func (r *Repository) ListByCustomer(ctx context.Context, customerID int64) ([]models.CustomerAddress, error) {
	var rows []models.CustomerAddress
	err := r.db.WithContext(ctx).
		Where("cliente_id = ?", customerID).
		Order("es_principal DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ClearPrimary unsets es_principal on every address of the customer.
func (r *Repository) ClearPrimary(ctx context.Context, customerID int64) error {
	return r.db.WithContext(ctx).
		Model(&models.CustomerAddress{}).
		Where("cliente_id = ? AND es_principal = ?", customerID, true).
		UpdateColumn("es_principal", false).Error
}

// Create inserts addr.
func (r *Repository) Create(ctx context.Context, addr *models.CustomerAddress) error {
	return r.db.WithContext(ctx).Create(addr).Error
}

// ReplacePrimary demotes the current primary address and stores addr as the
// new one. Callers run it inside a transaction; the partial unique index on
// (cliente_id) WHERE es_principal rejects a concurrent second primary.
func (r *Repository) ReplacePrimary(ctx context.Context, customerID int64, addr types.ShippingAddress, alias string) (*models.CustomerAddress, error) {
	if err := r.ClearPrimary(ctx, customerID); err != nil {
		return nil, err
	}
	if alias == "" {
		alias = DefaultAlias
	}
	row := &models.CustomerAddress{
		CustomerID: customerID,
		Alias:      alias,
		Street:     addr.Street,
		Number:     addr.Number,
		Floor:      addr.Floor,
		PostalCode: addr.PostalCode,
		City:       addr.City,
		Province:   addr.Province,
		IsPrimary:  true,
	}
	if err := r.Create(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// ToShipping converts a saved address into the checkout shape.
func ToShipping(addr *models.CustomerAddress) types.ShippingAddress {
	if addr == nil {
		return types.ShippingAddress{}
	}
	return types.ShippingAddress{
		Street:     addr.Street,
		Number:     addr.Number,
		Floor:      addr.Floor,
		PostalCode: addr.PostalCode,
		City:       addr.City,
		Province:   addr.Province,
	}
}
