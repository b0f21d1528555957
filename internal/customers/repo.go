package customers

import (
	"context"
	"strings"

	"github.com/mantomate/storefront-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes cliente persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a customers repo bound to the provided GORM DB.
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

// FindByID loads a customer by primary key.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindByAuthUserID loads the customer bound to the identity provider's user id.
func (r *Repository) FindByAuthUserID(ctx context.Context, authUserID string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).Where("auth_user_id = ?", authUserID).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindByEmail returns the oldest customer with the given email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		Order("id ASC").
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindUnboundByEmail returns the oldest customer with the given email that has
// not been bound to an identity yet.
func (r *Repository) FindUnboundByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ? AND auth_user_id IS NULL", strings.ToLower(email)).
		Order("id ASC").
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// BindAuthUserID stores authUserID on the customer when it is still unbound.
// It reports whether a row was updated.
func (r *Repository) BindAuthUserID(ctx context.Context, customerID int64, authUserID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ? AND auth_user_id IS NULL", customerID).
		UpdateColumn("auth_user_id", authUserID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// UpdateProfile overwrites the editable profile columns.
func (r *Repository) UpdateProfile(ctx context.Context, customerID int64, name, address *string) error {
	return r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", customerID).
		UpdateColumns(map[string]any{
			"nombre":    name,
			"direccion": address,
		}).Error
}
