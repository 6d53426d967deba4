// Package webapi provides the HTTP API of the currency converter.
// It is organized into sub-packages for the different route groups:
// - currency: the static currency table
// - conversion: one-shot conversions
// - session: server-held converter views
package webapi

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Coconhat/Currency-converter/pkg/app"
	"github.com/Coconhat/Currency-converter/pkg/converter"
	"github.com/Coconhat/Currency-converter/pkg/currency"
	"github.com/Coconhat/Currency-converter/pkg/provider"
	"github.com/Coconhat/Currency-converter/webapi/common"
	conversionweb "github.com/Coconhat/Currency-converter/webapi/conversion"
	currencyweb "github.com/Coconhat/Currency-converter/webapi/currency"
	sessionweb "github.com/Coconhat/Currency-converter/webapi/session"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"

	_ "github.com/Coconhat/Currency-converter/docs"
)

const healthTimeout = 5 * time.Second

// StatsResponse is returned by GET /api/stats.
type StatsResponse struct {
	Conversions converter.StatsSnapshot `json:"conversions"`
	Sessions    int                     `json:"sessions"`
	Currencies  int                     `json:"currencies"`
	Provider    string                  `json:"provider"`
}

// SetupApp Initialize Fiber with custom configuration
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		AppName:      "currency-converter",
		ErrorHandler: common.ErrorHandler,
	})
	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled: true,
		DeepLinking:     true,
	}))

	if rl := a.Config.RateLimit; rl != nil && rl.MaxRequests > 0 {
		// Uses X-Forwarded-For header when behind a proxy
		fiberApp.Use(limiter.New(limiter.Config{
			Max:        rl.MaxRequests,
			Expiration: rl.Window,
			KeyGenerator: func(c *fiber.Ctx) string {
				if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
					first, _, _ := strings.Cut(forwardedFor, ",")
					return strings.TrimSpace(first)
				}
				if realIP := c.Get("X-Real-IP"); realIP != "" {
					return realIP
				}
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return common.ProblemDetailsJSON(
					c,
					"Too Many Requests",
					errors.New("rate limit exceeded"),
					fiber.StatusTooManyRequests,
				)
			},
		}))
	}
	fiberApp.Use(recover.New())
	if a.Config.Env != "test" {
		fiberApp.Use(logger.New())
	}

	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Currency converter is running! 💱")
	})
	fiberApp.Get("/health", Health(a.Deps.Converter))
	fiberApp.Get("/api/stats", Stats(a))

	currencyweb.Routes(fiberApp)
	conversionweb.Routes(fiberApp, a.Deps.Converter)
	sessionweb.Routes(fiberApp, a.SessionService)
	return fiberApp
}

// Health reports whether the rate provider answers.
// @Summary Provider health
// @Tags health
// @Produce json
// @Success 200 {object} common.Response
// @Failure 503 {object} common.ProblemDetails
// @Router /health [get]
func Health(conv provider.RateConverter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), healthTimeout)
		defer cancel()
		if err := provider.CheckHealth(ctx, conv); err != nil {
			return common.ProblemDetailsJSON(c, "Provider unavailable", err, fiber.StatusServiceUnavailable)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "ok", fiber.Map{"provider": conv.Name()})
	}
}

// Stats reports conversion counters and live sessions.
// @Summary Service statistics
// @Tags health
// @Produce json
// @Success 200 {object} common.Response{data=webapi.StatsResponse}
// @Router /api/stats [get]
func Stats(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Stats fetched successfully", StatsResponse{
			Conversions: a.Stats.Snapshot(),
			Sessions:    a.SessionService.Count(),
			Currencies:  currency.Count(),
			Provider:    a.Deps.Converter.Name(),
		})
	}
}
