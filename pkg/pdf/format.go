package pdf

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders a monetary value in Brazilian notation: two decimal
// digits with a decimal comma and dots grouping the thousands,
// e.g. 1234567.8 -> "R$ 1.234.567,80".
func FormatBRL(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	if negative {
		amount = amount.Neg()
	}

	raw := amount.StringFixed(2)
	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	result := "R$ " + groupThousands(intPart) + "," + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// FormatQuantity drops the decimals of whole quantities and keeps two digits
// otherwise, using a decimal comma.
func FormatQuantity(qty decimal.Decimal) string {
	if qty.IsInteger() {
		return qty.StringFixed(0)
	}
	return strings.Replace(qty.StringFixed(2), ".", ",", 1)
}

// groupThousands inserts a dot before every group of three digits counted
// from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var b strings.Builder
	first := n % 3
	if first > 0 {
		b.WriteString(s[:first])
	}
	for i := first; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
