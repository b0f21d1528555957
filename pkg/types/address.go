package types

import (
	"fmt"
	"strings"
)

// ShippingAddress is the address a shopper types at checkout.
type ShippingAddress struct {
	Street     string  `json:"street" validate:"required,max=120"`
	Number     string  `json:"number" validate:"required,max=20"`
	Floor      *string `json:"floor,omitempty" validate:"omitempty,max=20"`
	PostalCode string  `json:"postalCode" validate:"required,max=12"`
	City       string  `json:"city" validate:"required,max=80"`
	Province   string  `json:"province" validate:"required,max=80"`
}

// Normalize trims every field and drops an empty floor.
func (a ShippingAddress) Normalize() ShippingAddress {
	a.Street = strings.TrimSpace(a.Street)
	a.Number = strings.TrimSpace(a.Number)
	a.PostalCode = strings.TrimSpace(a.PostalCode)
	a.City = strings.TrimSpace(a.City)
	a.Province = strings.TrimSpace(a.Province)
	if a.Floor != nil {
		floor := strings.TrimSpace(*a.Floor)
		if floor == "" {
			a.Floor = nil
		} else {
			a.Floor = &floor
		}
	}
	return a
}

// Missing lists the required fields that are blank.
func (a ShippingAddress) Missing() []string {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"street", a.Street},
		{"number", a.Number},
		{"postalCode", a.PostalCode},
		{"city", a.City},
		{"province", a.Province},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// Line renders the single-line form stored in direccion_envio,
// "<street> <number>, <city>".
func (a ShippingAddress) Line() string {
	return fmt.Sprintf("%s %s, %s", a.Street, a.Number, a.City)
}
