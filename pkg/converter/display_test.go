package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  Display
	}{
		{
			name:  "prompt when amount empty",
			state: State{Source: "USD", Target: "EUR", ConvertedAmount: 92.35},
			want:  Display{Kind: DisplayPrompt, Message: PromptText},
		},
		{
			name:  "loading wins over prompt",
			state: State{Source: "USD", Target: "EUR", IsLoading: true},
			want:  Display{Kind: DisplayLoading, Message: LoadingText},
		},
		{
			name:  "loading hides previous value",
			state: State{AmountText: "100", Source: "USD", Target: "EUR", ConvertedAmount: 92.35, IsLoading: true},
			want:  Display{Kind: DisplayLoading, Message: LoadingText},
		},
		{
			name:  "result",
			state: State{AmountText: "100", Source: "USD", Target: "EUR", ConvertedAmount: 92.35},
			want:  Display{Kind: DisplayResult, Source: "$100 USD", Target: "€92.35 EUR"},
		},
		{
			name:  "raw amount text kept",
			state: State{AmountText: "1e3", Source: "GBP", Target: "JPY", ConvertedAmount: 189234.5},
			want:  Display{Kind: DisplayResult, Source: "£1e3 GBP", Target: "¥189234.50 JPY"},
		},
		{
			name:  "rounds to two decimals",
			state: State{AmountText: "1", Source: "EUR", Target: "USD", ConvertedAmount: 123.456},
			want:  Display{Kind: DisplayResult, Source: "€1 EUR", Target: "$123.46 USD"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.state))
		})
	}
}

func TestDisplay_String(t *testing.T) {
	assert.Equal(t, "Converting...", Display{Kind: DisplayLoading, Message: LoadingText}.String())
	assert.Equal(t, "$100 USD\n€92.35 EUR", Display{Kind: DisplayResult, Source: "$100 USD", Target: "€92.35 EUR"}.String())
}
