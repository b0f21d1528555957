package catalog

import (
	"github.com/mantomate/storefront-backend/pkg/db/models"
	"github.com/mantomate/storefront-backend/pkg/format"
	"github.com/shopspring/decimal"
)

// Product is the catalog card shown to shoppers.
type Product struct {
	ID               int64           `json:"id"`
	Nombre           string          `json:"nombre"`
	Descripcion      *string         `json:"descripcion,omitempty"`
	Precio           decimal.Decimal `json:"precio"`
	PrecioFormateado string          `json:"precioFormateado"`
	PrecioPuntos     *int            `json:"precioPuntos,omitempty"`
	CategoriaID      *int64          `json:"categoriaId,omitempty"`
	ImagenURL        *string         `json:"imagenUrl,omitempty"`
}

// ProductPage is one page of the catalog.
type ProductPage struct {
	Products   []Product `json:"products"`
	TotalCount int64     `json:"totalCount"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
}

// Category is a catalog filter entry.
type Category struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

func productFromModel(m models.Product) Product {
	return Product{
		ID:               m.ID,
		Nombre:           m.Name,
		Descripcion:      m.Description,
		Precio:           m.Price,
		PrecioFormateado: format.Currency(m.Price),
		PrecioPuntos:     m.PointsPrice,
		CategoriaID:      m.CategoryID,
		ImagenURL:        m.ImageURL,
	}
}
