package converter

import (
	"strings"

	"github.com/Coconhat/Currency-converter/pkg/currency"
)

const (
	LoadingText = "Converting..."
	PromptText  = "Enter an amount to convert"
)

// DisplayKind says which of the three presentations applies.
type DisplayKind string

const (
	DisplayPrompt  DisplayKind = "prompt"
	DisplayLoading DisplayKind = "loading"
	DisplayResult  DisplayKind = "result"
)

// Display is what the user sees for a state.
type Display struct {
	Kind    DisplayKind `json:"kind"`
	Message string      `json:"message,omitempty"`
	// Source and Target are set for DisplayResult only.
	Source string `json:"source,omitempty"`
	Target string `json:"target,omitempty"`
}

// Render derives the presentation. Loading takes precedence over the prompt.
func Render(s State) Display {
	switch {
	case s.IsLoading:
		return Display{Kind: DisplayLoading, Message: LoadingText}
	case s.AmountText == "":
		return Display{Kind: DisplayPrompt, Message: PromptText}
	}
	return Display{
		Kind:   DisplayResult,
		Source: currency.FormatText(s.AmountText, s.Source) + " " + s.Source,
		Target: currency.FormatAmount(s.ConvertedAmount, s.Target) + " " + s.Target,
	}
}

// Lines returns the display as printable lines.
func (d Display) Lines() []string {
	if d.Kind == DisplayResult {
		return []string{d.Source, d.Target}
	}
	return []string{d.Message}
}

func (d Display) String() string {
	return strings.Join(d.Lines(), "\n")
}
