package format

import "fmt"

// OrderDisplayID renders the customer-facing order number, e.g. "#MN-007".
func OrderDisplayID(id int64) string {
	return fmt.Sprintf("#MN-%03d", id)
}

// CardExpiry renders a card expiry as MM/YY.
func CardExpiry(month, year int) string {
	return fmt.Sprintf("%02d/%02d", month, year%100)
}

// SummaryLine is the minimal view of an order line needed for ItemSummary.
type SummaryLine struct {
	Name     string
	Quantity int
}

// NoItems describes an order without lines.
const NoItems = "Sin items"

// ItemSummary describes an order by its first line, "2x Yerba Suave", adding
// "..." when more lines follow. fallback names lines whose product is gone.
func ItemSummary(lines []SummaryLine, fallback string) string {
	if len(lines) == 0 {
		return NoItems
	}
	name := lines[0].Name
	if name == "" {
		name = fallback
	}
	out := fmt.Sprintf("%dx %s", lines[0].Quantity, name)
	if len(lines) > 1 {
		out += "..."
	}
	return out
}

// Fallback returns value unless it is nil or empty.
func Fallback(value *string, fallback string) string {
	if value == nil || *value == "" {
		return fallback
	}
	return *value
}
