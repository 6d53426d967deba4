// Package currency holds the static currency reference table used by the
// converter: code, display name and symbol for every selectable currency.
package currency

import (
	"errors"
	"strings"
)

const (
	// DefaultSource is the currency selected as "from" when a view is created.
	DefaultSource = "USD"
	// DefaultTarget is the currency selected as "to" when a view is created.
	DefaultTarget = "EUR"
)

// ErrUnsupportedCurrency is returned when a code is not in the reference table.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// Info describes a selectable currency.
type Info struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// table is declared in display order.
var table = []Info{
	{Code: "USD", Name: "US Dollar", Symbol: "$"},
	{Code: "PHP", Name: "Philippine Peso", Symbol: "₱"},
	{Code: "EUR", Name: "Euro", Symbol: "€"},
	{Code: "GBP", Name: "British Pound", Symbol: "£"},
	{Code: "JPY", Name: "Japanese Yen", Symbol: "¥"},
	{Code: "AUD", Name: "Australian Dollar", Symbol: "A$"},
	{Code: "CAD", Name: "Canadian Dollar", Symbol: "C$"},
	{Code: "CHF", Name: "Swiss Franc", Symbol: "Fr"},
	{Code: "CNY", Name: "Chinese Yuan", Symbol: "¥"},
	{Code: "THB", Name: "Thai Baht", Symbol: "฿"},
	{Code: "INR", Name: "Indian Rupee", Symbol: "₹"},
	{Code: "NZD", Name: "New Zealand Dollar", Symbol: "NZ$"},
	{Code: "SGD", Name: "Singapore Dollar", Symbol: "S$"},
	{Code: "HKD", Name: "Hong Kong Dollar", Symbol: "HK$"},
	{Code: "KRW", Name: "South Korean Won", Symbol: "₩"},
	{Code: "BRL", Name: "Brazilian Real", Symbol: "R$"},
	{Code: "MXN", Name: "Mexican Peso", Symbol: "Mex$"},
}

var byCode = func() map[string]Info {
	m := make(map[string]Info, len(table))
	for _, info := range table {
		m[info.Code] = info
	}
	return m
}()

// Lookup returns the reference entry for code. Codes are case-sensitive
// upper-case ISO 4217 identifiers.
func Lookup(code string) (Info, bool) {
	info, ok := byCode[code]
	return info, ok
}

// IsSupported reports whether code is in the reference table.
func IsSupported(code string) bool {
	_, ok := byCode[code]
	return ok
}

// List returns a copy of the reference table in display order.
func List() []Info {
	out := make([]Info, len(table))
	copy(out, table)
	return out
}

// Codes returns the supported codes in display order.
func Codes() []string {
	out := make([]string, 0, len(table))
	for _, info := range table {
		out = append(out, info.Code)
	}
	return out
}

// Count returns the number of supported currencies.
func Count() int {
	return len(table)
}

// Symbol returns the display symbol for code, or the code itself when the
// currency is unknown.
func Symbol(code string) string {
	if info, ok := byCode[code]; ok {
		return info.Symbol
	}
	return code
}

// Normalize upper-cases and trims user input so "usd " selects USD.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
