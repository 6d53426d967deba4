// Package testutils provides helpers for exercising the HTTP routes in tests.
package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Coconhat/Currency-converter/pkg/app"
	"github.com/Coconhat/Currency-converter/pkg/config"
	"github.com/Coconhat/Currency-converter/pkg/provider"
	"github.com/Coconhat/Currency-converter/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// StubConverter multiplies the amount by Rate. Err, when set, fails every
// conversion; HealthErr fails the health check.
type StubConverter struct {
	Rate      float64
	Err       error
	HealthErr error
	calls     atomic.Int64
}

func (s *StubConverter) Convert(_ context.Context, amount, from, to string) (*provider.Conversion, error) {
	s.calls.Add(1)
	if s.Err != nil {
		return nil, s.Err
	}
	v, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: amount %q", provider.ErrInvalidRequest, amount)
	}
	return &provider.Conversion{
		Amount:    amount,
		From:      from,
		To:        to,
		Value:     v * s.Rate,
		Date:      "2026-10-16",
		Provider:  s.Name(),
		Timestamp: time.Now(),
	}, nil
}

func (s *StubConverter) CheckHealth(context.Context) error { return s.HealthErr }

func (s *StubConverter) Name() string { return "stub" }

func (s *StubConverter) Calls() int64 { return s.calls.Load() }

// TestConfig returns a configuration with a short debounce and a rate limit
// tests will not hit.
func TestConfig() *config.App {
	return &config.App{
		Env:       "test",
		Converter: &config.Converter{Debounce: 5 * time.Millisecond},
		RateLimit: &config.RateLimit{MaxRequests: 10_000, Window: time.Minute},
		Session:   &config.Session{IdleTimeout: time.Hour, SweepInterval: time.Minute},
	}
}

// NewTestApp builds an application around conv. It is closed with the test.
func NewTestApp(t testing.TB, conv provider.RateConverter, cfg *config.App) *app.App {
	t.Helper()
	if cfg == nil {
		cfg = TestConfig()
	}
	a := app.New(&app.Deps{
		Converter: conv,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, cfg)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

// MakeRequest is a helper for making HTTP requests in tests
func MakeRequest(t testing.TB, fiberApp *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	resp, err := fiberApp.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// Envelope is the success response with typed data.
type Envelope[T any] struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// DecodeResponse decodes a success envelope.
func DecodeResponse[T any](t testing.TB, resp *http.Response) Envelope[T] {
	t.Helper()
	var env Envelope[T]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

// DecodeProblem decodes an RFC 9457 problem response.
func DecodeProblem(t testing.TB, resp *http.Response) common.ProblemDetails {
	t.Helper()
	require.Equal(t, common.ProblemContentType, resp.Header.Get(fiber.HeaderContentType))
	var pd common.ProblemDetails
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
	return pd
}
