package fxprovider

import (
	"context"
	"fmt"

	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/domain"
)

// RateProvider is the contract every external FX rate source implements.
// Implementations normalize their wire format into domain.RateSnapshot before
// returning; callers never see provider-specific field names.
type RateProvider interface {
	// Name identifies the provider in snapshots and logs.
	Name() string
	// GetLatest returns a same-day (or most recent published) snapshot for
	// the given base currency.
	GetLatest(ctx context.Context, base string) (*domain.RateSnapshot, error)
	// GetHistory returns up to days most recent observations for one pair.
	// Days without a published quote are skipped, never synthesized.
	GetHistory(ctx context.Context, base, symbol string, days int) (*domain.RateHistorySeries, error)
}

// ProviderError is the uniform error surfaced by every provider adapter.
// Transport, payload, and upstream failures all collapse into this type so
// the orchestrator can treat providers interchangeably.
type ProviderError struct {
	Code    string // machine-readable category, e.g. "http_error", "bad_payload"
	Status  int    // HTTP status when known, 0 otherwise
	Message string
}

func (e *ProviderError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("provider error [%s, status %d]: %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("provider error [%s]: %s", e.Code, e.Message)
}

// Error categories used across adapters.
const (
	ErrCodeHTTP        = "http_error"
	ErrCodeBadPayload  = "bad_payload"
	ErrCodeUnavailable = "unavailable"
	ErrCodeRebase      = "rebase_failed"
)
