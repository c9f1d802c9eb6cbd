package output

import (
	"github.com/shopspring/decimal"

	pkgdecimal "github.com/rpgo/fers-projector/pkg/decimal"
)

var hundred = decimal.NewFromInt(100)

// FormatCurrency formats a decimal as USD with thousands separators and 2 decimals.
func FormatCurrency(amount decimal.Decimal) string {
	return pkgdecimal.NewMoneyFromDecimal(amount).Format()
}

// FormatPercentage formats a fraction (0.0307) as a percentage with 2 decimals ("3.07%").
func FormatPercentage(fraction decimal.Decimal) string {
	return fraction.Mul(hundred).StringFixed(2) + "%"
}

// cents renders an amount with exactly two decimals and no currency symbol, for machine-readable output
func cents(amount decimal.Decimal) string {
	return pkgdecimal.NewMoneyFromDecimal(amount).String()
}

// monthly formats an annual amount as its monthly equivalent in USD
func monthly(annual decimal.Decimal) string {
	return pkgdecimal.NewMoneyFromDecimal(annual).Monthly().Format()
}
