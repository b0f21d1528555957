package models

import "github.com/shopspring/decimal"

// Product is a catalog entry (item).
type Product struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string          `gorm:"column:nombre;not null"`
	Description *string         `gorm:"column:descripcion"`
	Price       decimal.Decimal `gorm:"column:precio;type:numeric(12,2);not null"`
	PointsPrice *int            `gorm:"column:precio_puntos"`
	CategoryID  *int64          `gorm:"column:tipo_item_id;index"`
	ImageURL    *string         `gorm:"column:imagen_url"`
}

func (Product) TableName() string { return "item" }

// Category groups products for catalog filtering (tipo_item).
type Category struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:nombre;not null"`
}

func (Category) TableName() string { return "tipo_item" }
