package cart

import (
	"github.com/mantomate/storefront-backend/pkg/format"
	"github.com/shopspring/decimal"
)

// LineView is a cart line as rendered by the API.
type LineView struct {
	ID                 int64           `json:"id"`
	Nombre             string          `json:"nombre"`
	ImagenURL          *string         `json:"imagenUrl,omitempty"`
	Precio             decimal.Decimal `json:"precio"`
	PrecioFormateado   string          `json:"precioFormateado"`
	Quantity           int             `json:"quantity"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	SubtotalFormateado string          `json:"subtotalFormateado"`
}

// View is the cart with its derived totals.
type View struct {
	Items           []LineView      `json:"items"`
	TotalItems      int             `json:"totalItems"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	TotalFormateado string          `json:"totalFormateado"`
}

// NewView renders the current state of store.
func NewView(store *Store) *View {
	lines := store.Lines()
	view := &View{Items: make([]LineView, 0, len(lines))}
	for _, line := range lines {
		subtotal := line.Subtotal()
		view.Items = append(view.Items, LineView{
			ID:                 line.ID,
			Nombre:             line.Nombre,
			ImagenURL:          line.ImagenURL,
			Precio:             line.Precio,
			PrecioFormateado:   format.Currency(line.Precio),
			Quantity:           line.Quantity,
			Subtotal:           subtotal,
			SubtotalFormateado: format.Currency(subtotal),
		})
	}
	view.TotalItems = totalItems(lines)
	view.TotalPrice = totalPrice(lines)
	view.TotalFormateado = format.Currency(view.TotalPrice)
	return view
}
