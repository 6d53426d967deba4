package currency

import (
	"fmt"

	"github.com/Coconhat/Currency-converter/pkg/currency"
	"github.com/Coconhat/Currency-converter/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers HTTP routes for the static currency table.
func Routes(app *fiber.App) {
	currencyGroup := app.Group("/api/currencies")

	currencyGroup.Get("/", ListCurrencies())
	currencyGroup.Get("/:code", GetCurrency())
}

// ListCurrencies returns a Fiber handler for listing all supported currencies
// in display order.
// @Summary List supported currencies
// @Description Get the static currency table in display order
// @Tags currencies
// @Produce json
// @Success 200 {object} common.Response{data=[]currency.CurrencyResponse}
// @Router /api/currencies [get]
func ListCurrencies() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Currencies fetched successfully", ToResponses(currency.List()))
	}
}

// GetCurrency returns currency information by code. Lower-case codes are
// accepted.
// @Summary Get currency by code
// @Description Get name and symbol of one supported currency
// @Tags currencies
// @Produce json
// @Param code path string true "Currency code (ISO 4217)"
// @Success 200 {object} common.Response{data=currency.CurrencyResponse}
// @Failure 404 {object} common.ProblemDetails
// @Router /api/currencies/{code} [get]
func GetCurrency() fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := currency.Normalize(c.Params("code"))
		info, ok := currency.Lookup(code)
		if !ok {
			return common.ProblemDetailsJSON(
				c,
				"Currency not found",
				fmt.Errorf("%w: %q", currency.ErrUnsupportedCurrency, code),
				fiber.StatusNotFound,
			)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Currency fetched successfully", ToResponse(info))
	}
}
