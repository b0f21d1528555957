package catalog

import (
	"context"
	"testing"

	"github.com/mantomate/storefront-backend/pkg/config"
	"github.com/mantomate/storefront-backend/pkg/db/dbtest"
	"github.com/mantomate/storefront-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCatalog(t *testing.T, conn *gorm.DB) (mates, yerbas int64) {
	t.Helper()
	yerba := models.Category{Name: "Yerbas"}
	mate := models.Category{Name: "Mates"}
	require.NoError(t, conn.Create(&yerba).Error)
	require.NoError(t, conn.Create(&mate).Error)
	for i := 0; i < 15; i++ {
		category := yerba.ID
		if i%3 == 0 {
			category = mate.ID
		}
		require.NoError(t, conn.Create(&models.Product{
			Name:       "Producto",
			Price:      decimal.NewFromInt(int64(1000 + i)),
			CategoryID: &category,
		}).Error)
	}
	return mate.ID, yerba.ID
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(conn), config.CatalogConfig{PageSize: 12, MaxPageSize: 100}, nil)
	require.NoError(t, err)
	return svc
}

func TestListPaginatesById(t *testing.T) {
	conn := dbtest.Open(t)
	seedCatalog(t, conn)
	svc := newTestService(t, conn)

	first, err := svc.List(context.Background(), 1, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(15), first.TotalCount)
	assert.Equal(t, 12, first.PageSize)
	require.Len(t, first.Products, 12)
	assert.Less(t, first.Products[0].ID, first.Products[1].ID)
	assert.Equal(t, "$ 1.000", first.Products[0].PrecioFormateado)

	second, err := svc.List(context.Background(), 2, 0, 12)
	require.NoError(t, err)
	assert.Len(t, second.Products, 3)
	assert.Equal(t, int64(15), second.TotalCount)
}

func TestListFiltersByCategoryAndCapsPageSize(t *testing.T) {
	conn := dbtest.Open(t)
	mates, _ := seedCatalog(t, conn)
	svc := newTestService(t, conn)

	page, err := svc.List(context.Background(), 1, mates, 500)
	require.NoError(t, err)
	assert.Equal(t, 100, page.PageSize)
	assert.Equal(t, int64(5), page.TotalCount)
	for _, p := range page.Products {
		require.NotNil(t, p.CategoriaID)
		assert.Equal(t, mates, *p.CategoriaID)
	}
}

func TestListSwallowsQueryErrors(t *testing.T) {
	conn := dbtest.Open(t)
	svc := newTestService(t, conn)
	require.NoError(t, conn.Exec("DROP TABLE item").Error)

	page, err := svc.List(context.Background(), 1, 0, 12)
	require.NoError(t, err)
	assert.Empty(t, page.Products)
	assert.Equal(t, int64(0), page.TotalCount)
}

func TestGetAndCategories(t *testing.T) {
	conn := dbtest.Open(t)
	seedCatalog(t, conn)
	svc := newTestService(t, conn)

	product, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, int64(1), product.ID)

	missing, err := svc.Get(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Mates", categories[0].Nombre)
}
