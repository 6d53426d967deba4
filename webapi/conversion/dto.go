package conversion

import (
	"time"

	"github.com/Coconhat/Currency-converter/pkg/currency"
	"github.com/Coconhat/Currency-converter/pkg/provider"
)

// ConvertQuery represents the query string of a one-shot conversion.
type ConvertQuery struct {
	Amount string `query:"amount" validate:"required,numeric"`
	From   string `query:"from" validate:"required,len=3,uppercase"`
	To     string `query:"to" validate:"required,len=3,uppercase"`
}

// ConversionResponse represents the response structure for a conversion
type ConversionResponse struct {
	Amount    string    `json:"amount"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Value     float64   `json:"value"`
	Source    string    `json:"source"`
	Target    string    `json:"target"`
	Date      string    `json:"date,omitempty"`
	Provider  string    `json:"provider,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func ToResponse(conv *provider.Conversion) ConversionResponse {
	return ConversionResponse{
		Amount:    conv.Amount,
		From:      conv.From,
		To:        conv.To,
		Value:     conv.Value,
		Source:    currency.FormatText(conv.Amount, conv.From) + " " + conv.From,
		Target:    currency.FormatAmount(conv.Value, conv.To) + " " + conv.To,
		Date:      conv.Date,
		Provider:  conv.Provider,
		Timestamp: conv.Timestamp,
	}
}
