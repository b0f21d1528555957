package cart

import "github.com/shopspring/decimal"

// Item is the product data a cart line carries.
type Item struct {
	ID        int64           `json:"id"`
	Nombre    string          `json:"nombre"`
	Precio    decimal.Decimal `json:"precio"`
	ImagenURL *string         `json:"imagen_url,omitempty"`
}

// Line is one product in the cart. Quantity is always >= 1.
type Line struct {
	Item
	Quantity int `json:"quantity"`
}

// Subtotal is price times quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Precio.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func addLine(lines []Line, item Item) []Line {
	out := cloneLines(lines)
	for i := range out {
		if out[i].ID == item.ID {
			out[i].Quantity++
			return out
		}
	}
	return append(out, Line{Item: item, Quantity: 1})
}

func removeLine(lines []Line, productID int64) []Line {
	out := make([]Line, 0, len(lines))
	for _, line := range lines {
		if line.ID != productID {
			out = append(out, line)
		}
	}
	return out
}

func setQuantity(lines []Line, productID int64, quantity int) []Line {
	out := cloneLines(lines)
	for i := range out {
		if out[i].ID == productID {
			out[i].Quantity = quantity
		}
	}
	return out
}

func totalItems(lines []Line) int {
	total := 0
	for _, line := range lines {
		total += line.Quantity
	}
	return total
}

func totalPrice(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// sanitize drops lines that cannot come from the cart operations.
func sanitize(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, line := range lines {
		if line.ID <= 0 || line.Quantity < 1 || line.Precio.IsNegative() {
			continue
		}
		out = append(out, line)
	}
	return out
}

func cloneLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}
