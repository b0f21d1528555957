package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/mantomate/storefront-backend/pkg/config"
	pkgerrors "github.com/mantomate/storefront-backend/pkg/errors"
	"github.com/mantomate/storefront-backend/pkg/logger"
	"github.com/mantomate/storefront-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Service exposes read-only catalog browsing.
type Service interface {
	List(ctx context.Context, page int, categoryID int64, pageSize int) (*ProductPage, error)
	Get(ctx context.Context, id int64) (*Product, error)
	Categories(ctx context.Context) ([]Category, error)
}

type service struct {
	repo *Repository
	cfg  config.CatalogConfig
	logg *logger.Logger
}

// NewService constructs a catalog service.
func NewService(repo *Repository, cfg config.CatalogConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{repo: repo, cfg: cfg, logg: logg}, nil
}

// List never fails on query errors: they are logged and an empty page is
// returned so the storefront still renders.
func (s *service) List(ctx context.Context, page int, categoryID int64, pageSize int) (*ProductPage, error) {
	params := pagination.Normalize(pagination.Params{Page: page, PageSize: pageSize}, s.cfg.PageSize, s.cfg.MaxPageSize)
	result := &ProductPage{
		Products: []Product{},
		Page:     params.Page,
		PageSize: params.PageSize,
	}

	rows, total, err := s.repo.ListProducts(ctx, params, categoryID)
	if err != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{"page": params.Page, "category_id": categoryID})
		s.logg.Error(ctx, "catalog.list_failed", err)
		return result, nil
	}

	for _, row := range rows {
		result.Products = append(result.Products, productFromModel(row))
	}
	result.TotalCount = total
	return result, nil
}

// Get returns nil without error when the product does not exist.
func (s *service) Get(ctx context.Context, id int64) (*Product, error) {
	if id <= 0 {
		return nil, nil
	}
	row, err := s.repo.FindProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	dto := productFromModel(*row)
	return &dto, nil
}

func (s *service) Categories(ctx context.Context) ([]Category, error) {
	rows, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	out := make([]Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, Category{ID: row.ID, Nombre: row.Name})
	}
	return out, nil
}
