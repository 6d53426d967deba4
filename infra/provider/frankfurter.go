package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Coconhat/Currency-converter/pkg/config"
	"github.com/Coconhat/Currency-converter/pkg/provider"
)

// FrankfurterName identifies the Frankfurter provider in logs and results.
const FrankfurterName = "frankfurter"

// maxErrorBody bounds how much of an error response is copied into the error.
const maxErrorBody = 512

// FrankfurterProvider converts amounts with the public Frankfurter API.
// See: https://www.frankfurter.app/docs/
type FrankfurterProvider struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// FrankfurterResponse is the body of GET /latest.
// Example: {"amount":100.0,"base":"USD","date":"2026-10-16","rates":{"EUR":92.35}}
type FrankfurterResponse struct {
	Amount float64            `json:"amount"`
	Base   string             `json:"base"`
	Date   string             `json:"date"`
	Rates  map[string]float64 `json:"rates"`
}

// NewFrankfurterProvider creates a Frankfurter provider from config.
func NewFrankfurterProvider(cfg *config.Frankfurter, logger *slog.Logger) *FrankfurterProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &FrankfurterProvider{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		logger: logger.With("provider", FrankfurterName),
	}
}

// Convert issues GET /latest?amount=&from=&to= and returns rates[to].
// The amount is forwarded as entered.
func (p *FrankfurterProvider) Convert(
	ctx context.Context,
	amount, from, to string,
) (*provider.Conversion, error) {
	if err := provider.ValidateRequest(amount, from, to); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("amount", amount)
	query.Set("from", from)
	query.Set("to", to)

	var body FrankfurterResponse
	if err := p.getJSON(ctx, "/latest", query, &body); err != nil {
		return nil, err
	}

	value, ok := body.Rates[to]
	if !ok {
		return nil, fmt.Errorf("%w: currency %s not found in response", provider.ErrParseFailure, to)
	}

	p.logger.Debug("Conversion fetched", "amount", amount, "from", from, "to", to, "value", value)
	return &provider.Conversion{
		Amount:    amount,
		From:      from,
		To:        to,
		Value:     value,
		Date:      body.Date,
		Provider:  FrankfurterName,
		Timestamp: time.Now().UTC(),
	}, nil
}

// CheckHealth performs a minimal USD->EUR lookup.
func (p *FrankfurterProvider) CheckHealth(ctx context.Context) error {
	query := url.Values{}
	query.Set("from", "USD")
	query.Set("to", "EUR")
	var body FrankfurterResponse
	return p.getJSON(ctx, "/latest", query, &body)
}

// Name returns the provider's name
func (p *FrankfurterProvider) Name() string {
	return FrankfurterName
}

func (p *FrankfurterProvider) getJSON(
	ctx context.Context,
	path string,
	query url.Values,
	out any,
) error {
	u := p.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: creating request: %w", provider.ErrNetworkFailure, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", provider.ErrNetworkFailure, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: status %d: %s",
			provider.ErrNetworkFailure, resp.StatusCode, strings.TrimSpace(string(excerpt)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", provider.ErrParseFailure, err)
	}
	return nil
}

var (
	_ provider.RateConverter = (*FrankfurterProvider)(nil)
	_ provider.HealthChecker = (*FrankfurterProvider)(nil)
)
