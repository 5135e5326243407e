package statement

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount reads a comma-decimal amount as printed by European and
// West African banks: "1.234,56", "-588,74", "1 250 000", "15 000 FCFA".
func parseAmount(s string) (decimal.Decimal, error) {
	var b strings.Builder

	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '-', r == '+':
			b.WriteRune(r)
		case r == ',':
			b.WriteRune('.')
		}
	}

	return decimal.NewFromString(b.String())
}
