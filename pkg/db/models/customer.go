package models

import "time"

// Customer is a storefront shopper (cliente).
type Customer struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	AuthUserID *string   `gorm:"column:auth_user_id;uniqueIndex"`
	Email      string    `gorm:"column:email;not null"`
	Name       *string   `gorm:"column:nombre"`
	Label      *string   `gorm:"column:etiqueta"`
	Points     int       `gorm:"column:puntos_acumulados;not null;default:0"`
	Address    *string   `gorm:"column:direccion"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Customer) TableName() string { return "cliente" }

// CustomerAddress is a saved shipping address (direccion_cliente).
type CustomerAddress struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID int64     `gorm:"column:cliente_id;not null;index"`
	Alias      string    `gorm:"column:alias;not null"`
	Street     string    `gorm:"column:calle;not null"`
	Number     string    `gorm:"column:altura;not null"`
	Floor      *string   `gorm:"column:piso"`
	PostalCode string    `gorm:"column:codigo_postal;not null"`
	City       string    `gorm:"column:ciudad;not null"`
	Province   string    `gorm:"column:provincia;not null"`
	IsPrimary  bool      `gorm:"column:es_principal;not null;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (CustomerAddress) TableName() string { return "direccion_cliente" }
