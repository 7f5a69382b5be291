// Package format renders decimal amounts for people: currency labels,
// thousands separators and fixed two-place precision.
package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const places = 2

// Amount formats d with two decimals and thousands separators, e.g. "1,234.50".
func Amount(d decimal.Decimal) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%.2f", d.Round(places).InexactFloat64())
}

// Currency prefixes Amount with the currency label, e.g. "AED 1,234.50".
// Negative values keep the sign after the label: "AED -5.00".
func Currency(d decimal.Decimal, currency string) string {
	if currency == "" {
		return Amount(d)
	}
	return currency + " " + Amount(d)
}

// Percent formats d as a percentage with two decimals, e.g. "10.00%".
func Percent(d decimal.Decimal) string {
	return Amount(d) + "%"
}

// Float converts d to a float64 rounded to two places, for chart data.
func Float(d decimal.Decimal) float64 {
	return d.Round(places).InexactFloat64()
}
