package dashboard

import (
	"github.com/mantomate/storefront-backend/internal/orders"
	"github.com/mantomate/storefront-backend/pkg/db/models"
	"github.com/mantomate/storefront-backend/pkg/format"
	"github.com/mantomate/storefront-backend/pkg/types"
)

const (
	fallbackName        = "Usuario"
	fallbackLevel       = "Matero Iniciado"
	fallbackOrderStatus = "Pendiente"
	fallbackSubStatus   = "Desconocido"
	fallbackItemName    = "Producto"
	unknownDate         = "Fecha desconocida"
)

// Dashboard is the account home of a customer.
type Dashboard struct {
	Usuario            Profile                `json:"usuario"`
	DireccionPrincipal *types.ShippingAddress `json:"direccionPrincipal"`
	Suscripcion        *SubscriptionSummary   `json:"suscripcion"`
	Pedidos            []RecentOrder          `json:"pedidos"`
}

// Profile is the customer card.
type Profile struct {
	ID        int64  `json:"id"`
	Nombre    string `json:"nombre"`
	Email     string `json:"email"`
	Direccion string `json:"direccion"`
	Nivel     string `json:"nivel"`
	Puntos    int    `json:"puntos"`
}

// SubscriptionSummary is the club card.
type SubscriptionSummary struct {
	Estado       string `json:"estado"`
	ProximoCobro string `json:"proximoCobro"`
	Direccion    string `json:"direccion"`
}

// RecentOrder is one of the last orders.
type RecentOrder struct {
	ID          string `json:"id"`
	Fecha       string `json:"fecha"`
	Estado      string `json:"estado"`
	Total       string `json:"total"`
	Descripcion string `json:"descripcion"`
}

func profileFromModel(c *models.Customer) Profile {
	return Profile{
		ID:        c.ID,
		Nombre:    format.Fallback(c.Name, fallbackName),
		Email:     c.Email,
		Direccion: format.Fallback(c.Address, ""),
		Nivel:     format.Fallback(c.Label, fallbackLevel),
		Puntos:    c.Points,
	}
}

func subscriptionFromModel(sub *models.Subscription) *SubscriptionSummary {
	if sub == nil {
		return nil
	}
	estado := fallbackSubStatus
	if sub.Status != nil && sub.Status.Name != "" {
		estado = sub.Status.Name
	}
	return &SubscriptionSummary{
		Estado:       estado,
		ProximoCobro: format.DateDayMonth(sub.NextChargeAt),
		Direccion:    format.Fallback(sub.ShippingAddress, ""),
	}
}

func recentOrderFromModel(order models.Order) RecentOrder {
	fecha := unknownDate
	if !order.OrderedAt.IsZero() {
		fecha = format.DateShort(order.OrderedAt)
	}
	return RecentOrder{
		ID:          format.OrderDisplayID(order.ID),
		Fecha:       fecha,
		Estado:      orders.StatusName(order, fallbackOrderStatus),
		Total:       format.Currency(order.Total),
		Descripcion: format.ItemSummary(orders.SummaryLines(order.Items), fallbackItemName),
	}
}
