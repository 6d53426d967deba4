// Package converter implements the currency converter view: the conversion
// state a user edits, the debounced remote lookup it triggers and the
// presentation derived from it.
package converter

import (
	"github.com/Coconhat/Currency-converter/pkg/currency"
)

// State is the user-editable conversion state.
//
// Source and Target are always codes from the currency table.
// ConvertedAmount is meaningful only while AmountText is non-empty and
// IsLoading is false; it may be stale when the last lookup failed.
type State struct {
	AmountText      string  `json:"amount"`
	Source          string  `json:"from"`
	Target          string  `json:"to"`
	ConvertedAmount float64 `json:"converted_amount"`
	IsLoading       bool    `json:"is_loading"`
	// Version increases with every state transition.
	Version uint64 `json:"version"`
}

// DefaultState is the state of a freshly created view: no amount, USD to EUR.
func DefaultState() State {
	return State{
		Source: currency.DefaultSource,
		Target: currency.DefaultTarget,
	}
}

// lookupInput returns the fields that drive a lookup.
func (s State) lookupInput() [3]string {
	return [3]string{s.AmountText, s.Source, s.Target}
}
