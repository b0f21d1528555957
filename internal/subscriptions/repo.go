package subscriptions

import (
	"context"

	"github.com/mantomate/storefront-backend/pkg/db/models"
	"github.com/mantomate/storefront-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository persists suscripcion rows and reads plans.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a subscriptions repo bound to the provided GORM DB.
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

func preloadRecipe(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(q *gorm.DB) *gorm.DB { return q.Order("id ASC") }).
		Preload("Items.Product")
}

// FindPlan loads a plan with its recipe and the recipe products.
func (r *Repository) FindPlan(ctx context.Context, planID int64) (*models.Plan, error) {
	var plan models.Plan
	err := r.db.WithContext(ctx).
		Scopes(preloadRecipe).
		Where("id = ?", planID).
		First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// ListPlans returns every plan with its recipe, cheapest first.
func (r *Repository) ListPlans(ctx context.Context) ([]models.Plan, error) {
	var plans []models.Plan
	err := r.db.WithContext(ctx).
		Scopes(preloadRecipe).
		Order("precio_recurrente ASC").
		Order("id ASC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

// FindActiveByCustomer returns the most recent active subscription with its
// plan, payment method and status.
func (r *Repository) FindActiveByCustomer(ctx context.Context, customerID int64) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.WithContext(ctx).
		Preload("Plan").
		Preload("PaymentMethod").
		Preload("Status").
		Where("cliente_id = ? AND estado_suscripcion_id = ?", customerID, enums.SubscriptionStatusActive.ID()).
		Order("fecha_inicio DESC").
		Order("id DESC").
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// HasActive reports whether the customer already has an active subscription.
func (r *Repository) HasActive(ctx context.Context, customerID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("cliente_id = ? AND estado_suscripcion_id = ?", customerID, enums.SubscriptionStatusActive.ID()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts sub.
func (r *Repository) Create(ctx context.Context, sub *models.Subscription) error {
	return r.db.WithContext(ctx).Omit("Plan", "PaymentMethod", "Status").Create(sub).Error
}
