package checkout

import (
	"github.com/mantomate/storefront-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// Steps of the checkout workflow, reported in error details and metrics.
const (
	StepCustomer   = "customer"
	StepValidate   = "validate"
	StepAddress    = "address"
	StepOrder      = "order"
	StepOrderItems = "order_items"
)

const (
	MsgOrderFailed   = "Error al crear el pedido"
	MsgItemsFailed   = "Error al guardar items"
	MsgAddressFailed = "Error al guardar la dirección"
)

// LineInput is one cart line submitted at checkout. Price is the unit price
// the shopper saw and becomes the line's precio_unitario.
type LineInput struct {
	ProductID int64           `json:"id" validate:"required,gt=0"`
	Quantity  int             `json:"quantity" validate:"required,gte=1"`
	Price     decimal.Decimal `json:"price"`
}

// Input is the checkout request.
type Input struct {
	Items           []LineInput           `json:"items" validate:"required,min=1,dive"`
	Total           decimal.Decimal       `json:"total"`
	Address         types.ShippingAddress `json:"address" validate:"required"`
	SaveAddress     bool                  `json:"saveAddress"`
	PaymentMethodID *int64                `json:"paymentMethodId,omitempty" validate:"omitempty,gt=0"`
}

// Result reports the created order.
type Result struct {
	Success bool  `json:"success"`
	OrderID int64 `json:"orderId"`
}
