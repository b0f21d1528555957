package enums

import "fmt"

// OrderStatus mirrors the seeded rows of estado_pedido.
type OrderStatus int

const (
	OrderStatusPending    OrderStatus = 1
	OrderStatusDispatched OrderStatus = 2
	OrderStatusDelivered  OrderStatus = 3
	OrderStatusCanceled   OrderStatus = 4
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusDispatched,
	OrderStatusDelivered,
	OrderStatusCanceled,
}

// ID returns the lookup table key.
func (s OrderStatus) ID() int {
	return int(s)
}

// IsValid reports whether the value is known.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts a raw lookup id into an OrderStatus.
func ParseOrderStatus(value int) (OrderStatus, error) {
	status := OrderStatus(value)
	if !status.IsValid() {
		return 0, fmt.Errorf("invalid order status %d", value)
	}
	return status, nil
}
