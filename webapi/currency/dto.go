package currency

import (
	"github.com/Coconhat/Currency-converter/pkg/currency"
)

// CurrencyResponse represents the response structure for currency data
type CurrencyResponse struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

func ToResponse(info currency.Info) CurrencyResponse {
	return CurrencyResponse{
		Code:   info.Code,
		Name:   info.Name,
		Symbol: info.Symbol,
	}
}

func ToResponses(infos []currency.Info) []CurrencyResponse {
	out := make([]CurrencyResponse, 0, len(infos))
	for _, info := range infos {
		out = append(out, ToResponse(info))
	}
	return out
}
