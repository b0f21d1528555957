package orders

import (
	"github.com/mantomate/storefront-backend/pkg/db/models"
	"github.com/mantomate/storefront-backend/pkg/format"
	"github.com/shopspring/decimal"
)

const (
	fallbackStatus      = "Desconocido"
	fallbackAddress     = "Retiro en tienda"
	fallbackDeletedItem = "Producto eliminado"
	fallbackItemName    = "Producto"
)

// OrderSummary is one row of the customer's order history.
type OrderSummary struct {
	ID            int64           `json:"id"`
	DisplayID     string          `json:"displayId"`
	FechaPedido   string          `json:"fecha_pedido"`
	FechaDespacho string          `json:"fecha_despacho"`
	FechaEntrega  string          `json:"fecha_entrega"`
	EstadoPedido  string          `json:"estado_pedido"`
	Total         string          `json:"total"`
	TotalNumber   decimal.Decimal `json:"totalNumber"`
	EsSuscripcion bool            `json:"es_suscripcion"`
	Descripcion   string          `json:"descripcion"`
}

// OrderDetail is the full view of one order.
type OrderDetail struct {
	ID              int64             `json:"id"`
	DisplayID       string            `json:"displayId"`
	CustomerID      int64             `json:"-"`
	FechaPedido     string            `json:"fecha_pedido"`
	FechaDespacho   string            `json:"fecha_despacho"`
	FechaEntrega    string            `json:"fecha_entrega"`
	Total           decimal.Decimal   `json:"total"`
	TotalFormateado string            `json:"total_formateado"`
	EstadoPedido    string            `json:"estado_pedido"`
	DireccionEnvio  string            `json:"direccion_envio"`
	Items           []OrderDetailItem `json:"items"`
}

// OrderDetailItem is one line of an order detail.
type OrderDetailItem struct {
	NombreItem     string  `json:"nombre_item"`
	Cantidad       int     `json:"cantidad"`
	PrecioUnitario string  `json:"precio_unitario"`
	Subtotal       string  `json:"subtotal"`
	ImagenURL      *string `json:"imagen_url"`
}

// StatusName returns the order's status name or fallback.
func StatusName(order models.Order, fallback string) string {
	if order.Status == nil || order.Status.Name == "" {
		return fallback
	}
	return order.Status.Name
}

// SummaryLines reduces order lines to what format.ItemSummary needs.
func SummaryLines(items []models.OrderItem) []format.SummaryLine {
	lines := make([]format.SummaryLine, 0, len(items))
	for _, item := range items {
		line := format.SummaryLine{Quantity: item.Quantity}
		if item.Product != nil {
			line.Name = item.Product.Name
		}
		lines = append(lines, line)
	}
	return lines
}

func summaryFromModel(order models.Order) OrderSummary {
	return OrderSummary{
		ID:            order.ID,
		DisplayID:     format.OrderDisplayID(order.ID),
		FechaPedido:   format.DateLong(order.OrderedAt),
		FechaDespacho: format.OptionalDate(order.DispatchedAt, format.DateDayMonth),
		FechaEntrega:  format.OptionalDate(order.DeliveredAt, format.DateDayMonth),
		EstadoPedido:  StatusName(order, fallbackStatus),
		Total:         format.Currency(order.Total),
		TotalNumber:   order.Total,
		EsSuscripcion: order.SubscriptionID != nil,
		Descripcion:   format.ItemSummary(SummaryLines(order.Items), fallbackItemName),
	}
}

func detailFromModel(order models.Order) *OrderDetail {
	detail := &OrderDetail{
		ID:              order.ID,
		DisplayID:       format.OrderDisplayID(order.ID),
		CustomerID:      order.CustomerID,
		FechaPedido:     format.DateNumeric(order.OrderedAt),
		FechaDespacho:   format.OptionalDate(order.DispatchedAt, format.DateNumeric),
		FechaEntrega:    format.OptionalDate(order.DeliveredAt, format.DateNumeric),
		Total:           order.Total,
		TotalFormateado: format.Currency(order.Total),
		EstadoPedido:    StatusName(order, fallbackStatus),
		DireccionEnvio:  format.Fallback(order.ShippingAddress, fallbackAddress),
		Items:           make([]OrderDetailItem, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		line := OrderDetailItem{
			NombreItem:     fallbackDeletedItem,
			Cantidad:       item.Quantity,
			PrecioUnitario: format.Currency(item.UnitPrice),
			Subtotal:       format.Currency(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))),
		}
		if item.Product != nil {
			if item.Product.Name != "" {
				line.NombreItem = item.Product.Name
			}
			line.ImagenURL = item.Product.ImageURL
		}
		detail.Items = append(detail.Items, line)
	}
	return detail
}
