package currency

import (
	"github.com/shopspring/decimal"
)

// DisplayDecimals is the number of decimal places a converted amount is shown with.
const DisplayDecimals = 2

// exactExponent is below the smallest float64 exponent, so the decimal holds
// the exact binary value instead of its shortest decimal form.
const exactExponent = -1100

// FormatAmount renders value prefixed with the currency symbol and rounded
// half away from zero to two decimal places, e.g. 123.456 USD -> "$123.46".
// Rounding applies to the exact binary value: 1.005 is stored just below
// 1.005 and renders as "1.00".
func FormatAmount(value float64, code string) string {
	exact := decimal.NewFromFloatWithExponent(value, exactExponent)
	return Symbol(code) + exact.StringFixed(DisplayDecimals)
}

// FormatText renders raw user-entered amount text prefixed with the currency
// symbol, without reinterpreting it: "100" USD -> "$100".
func FormatText(text, code string) string {
	return Symbol(code) + text
}
