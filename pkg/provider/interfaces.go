package provider

import (
	"context"
	"errors"
	"time"
)

// Common errors for provider operations
var (
	// ErrNetworkFailure covers requests that could not be completed and
	// responses with a non-success status.
	ErrNetworkFailure = errors.New("rate service request failed")
	// ErrParseFailure covers response bodies that do not have the expected shape.
	ErrParseFailure = errors.New("rate service response could not be parsed")
	// ErrInvalidRequest is returned before any request is issued when the
	// amount or a currency is missing.
	ErrInvalidRequest = errors.New("invalid conversion request")
)

// Conversion is the result of converting an amount between two currencies.
type Conversion struct {
	Amount    string    `json:"amount"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Value     float64   `json:"value"`
	Date      string    `json:"date,omitempty"`
	Provider  string    `json:"provider"`
	Timestamp time.Time `json:"timestamp"`
}

// RateConverter converts an amount using a remote rate service.
type RateConverter interface {
	// Convert converts amount (raw user text) from one currency to another.
	Convert(ctx context.Context, amount, from, to string) (*Conversion, error)

	// Name returns the provider's name for logging and identification.
	Name() string
}

// HealthChecker defines the interface for checking provider health
type HealthChecker interface {
	// CheckHealth checks if the provider is healthy
	CheckHealth(ctx context.Context) error
}

// ValidateRequest rejects requests that must never reach the remote service.
func ValidateRequest(amount, from, to string) error {
	if amount == "" || from == "" || to == "" {
		return ErrInvalidRequest
	}
	return nil
}
