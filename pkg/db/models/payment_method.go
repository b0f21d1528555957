package models

import "time"

// PaymentMethod stores a processor card token, never raw card data.
type PaymentMethod struct {
	ID              int64     `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID      int64     `gorm:"column:cliente_id;not null;index"`
	Provider        string    `gorm:"column:proveedor;not null"`
	ProcessorCardID string    `gorm:"column:procesador_card_id;not null"`
	Brand           string    `gorm:"column:marca;not null"`
	Type            string    `gorm:"column:tipo;not null"`
	Last4           string    `gorm:"column:ultimos_4;not null"`
	ExpMonth        int       `gorm:"column:exp_mes;not null"`
	ExpYear         int       `gorm:"column:exp_anio;not null"`
	IsDefault       bool      `gorm:"column:es_default;not null;default:false"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (PaymentMethod) TableName() string { return "metodo_pago" }
