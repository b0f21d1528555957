package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Subscription enrolls a customer in a recurring plan (suscripcion).
type Subscription struct {
	ID              int64     `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID      int64     `gorm:"column:cliente_id;not null;index"`
	PlanID          int64     `gorm:"column:tipo_suscripcion_id;not null"`
	PaymentMethodID *int64    `gorm:"column:metodo_pago_id"`
	StatusID        int       `gorm:"column:estado_suscripcion_id;not null"`
	StartedAt       time.Time `gorm:"column:fecha_inicio;not null"`
	NextChargeAt    time.Time `gorm:"column:fecha_cobro;not null"`
	ShippingAddress *string   `gorm:"column:direccion_envio"`

	Plan          *Plan               `gorm:"foreignKey:PlanID"`
	PaymentMethod *PaymentMethod      `gorm:"foreignKey:PaymentMethodID"`
	Status        *SubscriptionStatus `gorm:"foreignKey:StatusID"`
}

func (Subscription) TableName() string { return "suscripcion" }

// Plan is a subscription plan (tipo_suscripcion).
type Plan struct {
	ID             int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name           string          `gorm:"column:nombre;not null"`
	Description    *string         `gorm:"column:descripcion"`
	RecurringPrice decimal.Decimal `gorm:"column:precio_recurrente;type:numeric(12,2);not null"`

	Items []PlanItem `gorm:"foreignKey:PlanID"`
}

func (Plan) TableName() string { return "tipo_suscripcion" }

// PlanItem is one recipe entry of a plan (tipo_suscripcion_item).
type PlanItem struct {
	ID         int64 `gorm:"column:id;primaryKey;autoIncrement"`
	PlanID     int64 `gorm:"column:tipo_suscripcion_id;not null;index"`
	ProductID  int64 `gorm:"column:item_id;not null"`
	Quantity   int   `gorm:"column:cantidad;not null"`
	FirstMonth bool  `gorm:"column:primer_mes;not null;default:false"`

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (PlanItem) TableName() string { return "tipo_suscripcion_item" }

// SubscriptionStatus is the estado_suscripcion lookup row.
type SubscriptionStatus struct {
	ID   int    `gorm:"column:id;primaryKey"`
	Name string `gorm:"column:nombre;not null"`
}

func (SubscriptionStatus) TableName() string { return "estado_suscripcion" }
