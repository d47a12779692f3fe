// Package renderer turns calculation results, snapshots and trends into
// markdown reports.
package renderer

import (
	"fmt"

	money "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// change formats a value change with its percentage, e.g. "+$100.00 (+10.00%)".
func change(v float64, pct string) string {
	return fmt.Sprintf("%s (%s)", signedUSD(v), pct)
}

// usd formats an amount in US dollars with thousands separators.
func usd(v float64) string {
	return money.NewFromFloat(v, money.USD).Display()
}

func usdDec(d decimal.Decimal) string { return usd(d.InexactFloat64()) }

// signedUSD formats an amount with an explicit sign, for change columns.
func signedUSD(v float64) string {
	if v >= 0 {
		return "+" + usd(v)
	}
	return usd(v)
}
