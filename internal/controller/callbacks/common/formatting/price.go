package formatting

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatPrice форматирует цену в донгах: 300000 -> "300.000 ₫"
func FormatPrice(price decimal.Decimal) string {
	if price.IsZero() {
		return "Miễn phí"
	}

	digits := price.Round(0).Abs().StringFixed(0)

	var b strings.Builder
	if price.IsNegative() {
		b.WriteByte('-')
	}
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteString(" ₫")
	return b.String()
}
