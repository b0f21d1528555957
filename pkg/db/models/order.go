package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is an immutable purchase record (pedido). The envio_* columns
// snapshot the address used at order time.
type Order struct {
	ID              int64           `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID      int64           `gorm:"column:cliente_id;not null;index"`
	SubscriptionID  *int64          `gorm:"column:suscripcion_id;index"`
	PaymentMethodID *int64          `gorm:"column:metodo_pago_id"`
	Total           decimal.Decimal `gorm:"column:total;type:numeric(12,2);not null"`
	OrderedAt       time.Time       `gorm:"column:fecha_pedido;not null"`
	DispatchedAt    *time.Time      `gorm:"column:fecha_despacho"`
	DeliveredAt     *time.Time      `gorm:"column:fecha_entrega"`
	StatusID        int             `gorm:"column:estado_pedido_id;not null"`
	ShipStreet      string          `gorm:"column:envio_calle"`
	ShipNumber      string          `gorm:"column:envio_altura"`
	ShipFloor       *string         `gorm:"column:envio_piso"`
	ShipPostalCode  string          `gorm:"column:envio_cp"`
	ShipCity        string          `gorm:"column:envio_ciudad"`
	ShipProvince    string          `gorm:"column:envio_provincia"`
	ShippingAddress *string         `gorm:"column:direccion_envio"`

	Status *OrderStatus `gorm:"foreignKey:StatusID"`
	Items  []OrderItem  `gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string { return "pedido" }

// OrderItem is one line of an order (pedido_item).
type OrderItem struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID   int64           `gorm:"column:pedido_id;not null;index"`
	ProductID int64           `gorm:"column:item_id;not null"`
	Quantity  int             `gorm:"column:cantidad;not null"`
	UnitPrice decimal.Decimal `gorm:"column:precio_unitario;type:numeric(12,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (OrderItem) TableName() string { return "pedido_item" }

// OrderStatus is the estado_pedido lookup row.
type OrderStatus struct {
	ID   int    `gorm:"column:id;primaryKey"`
	Name string `gorm:"column:nombre;not null"`
}

func (OrderStatus) TableName() string { return "estado_pedido" }
