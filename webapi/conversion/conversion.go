package conversion

import (
	"fmt"

	"github.com/Coconhat/Currency-converter/pkg/currency"
	"github.com/Coconhat/Currency-converter/pkg/provider"
	"github.com/Coconhat/Currency-converter/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the one-shot conversion endpoint. It goes straight to the
// provider, without a view or debounce.
func Routes(app *fiber.App, converter provider.RateConverter) {
	app.Get("/api/convert", Convert(converter))
}

// Convert returns a Fiber handler converting ?amount=&from=&to=.
// @Summary Convert an amount
// @Description Convert an amount once, without debounce, through the cached rate provider
// @Tags conversion
// @Produce json
// @Param amount query string true "Amount to convert"
// @Param from query string true "Source currency code"
// @Param to query string true "Target currency code"
// @Success 200 {object} common.Response{data=conversion.ConversionResponse}
// @Failure 400 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Failure 502 {object} common.ProblemDetails
// @Router /api/convert [get]
func Convert(converter provider.RateConverter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindQuery[ConvertQuery](c)
		if err != nil {
			return nil // problem already written
		}
		for _, code := range []string{input.From, input.To} {
			if !currency.IsSupported(code) {
				return common.ProblemDetailsJSON(c, "Unsupported currency",
					fmt.Errorf("%w: %q", currency.ErrUnsupportedCurrency, code))
			}
		}

		conv, err := converter.Convert(c.Context(), input.Amount, input.From, input.To)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Conversion failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Conversion completed", ToResponse(conv))
	}
}
