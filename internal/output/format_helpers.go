package output

import (
	"strconv"
	"strings"
	"time"

	money "github.com/rpgo/goalsim/pkg/decimal"
	"github.com/shopspring/decimal"
)

var decimalHundred = decimal.NewFromInt(100)

// formatAmount renders an amount in cents with no grouping, for machine
// readable output.
func formatAmount(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).String()
}

// FormatCurrency formats an amount with 2 decimals and thousands separators.
// An empty or USD currency renders with a dollar sign.
func FormatCurrency(amount decimal.Decimal, currency string) string {
	s := formatAmount(amount)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	body := b.String() + "." + frac

	switch strings.ToUpper(currency) {
	case "", "USD":
		return sign + "$" + body
	default:
		return sign + strings.ToUpper(currency) + " " + body
	}
}

// FormatPercentage formats a fraction (0.1234) as a percentage with 2 decimals.
func FormatPercentage(fraction decimal.Decimal) string {
	return fraction.Mul(decimalHundred).StringFixed(2) + "%"
}

// FormatDate renders an optional date, or "not reached" when nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return "not reached"
	}
	return t.Format("2006-01-02")
}

func intToString(v int) string { return strconv.Itoa(v) }

func boolToString(v bool) string { return strconv.FormatBool(v) }
