package format

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency renders an ARS amount the way the storefront shows prices:
// "$ 1.000" for whole pesos and "$ 1.234,50" when there are cents.
func Currency(amount decimal.Decimal) string {
	rounded := amount.Abs().Round(2)
	whole := rounded.Truncate(0)
	cents := rounded.Sub(whole).Shift(2).IntPart()

	out := "$ " + groupThousands(whole.String())
	if cents != 0 {
		out += fmt.Sprintf(",%02d", cents)
	}
	if amount.Round(2).IsNegative() {
		out = "-" + out
	}
	return out
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
