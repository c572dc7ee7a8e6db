package cli

import (
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

var (
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(math.MinInt64)
)

// formatAmount renders a decimal amount with the currency symbol and two
// decimal places, e.g. $1,234.50. Amounts whose cent value does not fit in an
// int64 bypass go-money rather than overflow.
func formatAmount(d decimal.Decimal) string {
	cents := d.Shift(2).Round(0)
	if cents.GreaterThan(maxCents) || cents.LessThan(minCents) {
		return "$" + d.StringFixed(2)
	}
	return money.New(cents.IntPart(), money.USD).Display()
}

const timestampLayout = "2006-01-02 15:04:05"
