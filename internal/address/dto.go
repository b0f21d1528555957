package address

import "github.com/mantomate/storefront-backend/pkg/types"

// View is a saved address. Address uses the same keys checkout accepts, so a
// client can send it back unchanged.
type View struct {
	ID          int64                 `json:"id"`
	Alias       string                `json:"alias"`
	Address     types.ShippingAddress `json:"address"`
	Resumen     string                `json:"resumen"`
	EsPrincipal bool                  `json:"esPrincipal"`
}
