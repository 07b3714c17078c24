package util

import (
	"fmt"
	"strings"
)

var currencySymbols = map[string]string{"USD": "$"}

// PercentOfCents applies a basis-point percentage to a cent amount with
// half-up rounding, matching how checkout totals were historically computed.
func PercentOfCents(amountCents int64, basisPoints int) int64 {
	if amountCents <= 0 || basisPoints <= 0 {
		return 0
	}
	return (amountCents*int64(basisPoints) + 5000) / 10000
}

// FormatCents renders a cent amount for display, e.g. "$1,250.00".
func FormatCents(amountCents int64, currency string) string {
	negative := amountCents < 0
	if negative {
		amountCents = -amountCents
	}
	whole := amountCents / 100
	frac := amountCents % 100

	grouped := groupThousands(whole)
	amount := fmt.Sprintf("%s.%02d", grouped, frac)

	upper := strings.ToUpper(currency)
	formatted := amount + " " + upper
	if symbol, ok := currencySymbols[upper]; ok {
		formatted = symbol + amount
	}
	if negative {
		formatted = "-" + formatted
	}
	return formatted
}

func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
