package catalog

import (
	"context"

	"github.com/mantomate/storefront-backend/pkg/db/models"
	"github.com/mantomate/storefront-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository reads the item and tipo_item tables.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListProducts returns one page of products ordered by id together with the
// total row count matching the category filter. categoryID 0 matches all.
func (r *Repository) ListProducts(ctx context.Context, params pagination.Params, categoryID int64) ([]models.Product, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		if categoryID != 0 {
			return db.Where("tipo_item_id = ?", categoryID)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Product
	err := r.db.WithContext(ctx).
		Scopes(filter).
		Order("id ASC").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// FindProduct loads one product or gorm.ErrRecordNotFound.
func (r *Repository) FindProduct(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindProducts loads the products with the given ids, keyed by id.
func (r *Repository) FindProducts(ctx context.Context, ids []int64) (map[int64]models.Product, error) {
	out := make(map[int64]models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row
	}
	return out, nil
}

// ListCategories returns every tipo_item row ordered by name.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	if err := r.db.WithContext(ctx).Order("nombre ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
