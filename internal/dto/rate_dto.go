package dto

import (
	"time"

	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/domain"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/utils/fxmath"
)

// SnapshotResponse is a rate snapshot serialized for the API. Rates are
// display-quantized here; internal values keep full precision.
type SnapshotResponse struct {
	Source string            `json:"source"`
	Base   string            `json:"base"`
	AsOf   time.Time         `json:"asOf"`
	Rates  map[string]string `json:"rates"`
}

// ToSnapshotResponse converts a domain.RateSnapshot to its API shape.
func ToSnapshotResponse(snapshot *domain.RateSnapshot) SnapshotResponse {
	rates := make(map[string]string, len(snapshot.Rates))
	for code, rate := range snapshot.Rates {
		rates[code] = fxmath.FormatRate(rate)
	}
	return SnapshotResponse{
		Source: snapshot.Source,
		Base:   snapshot.Base,
		AsOf:   snapshot.AsOf,
		Rates:  rates,
	}
}

// RefreshResponse reports the outcome of a refresh call.
type RefreshResponse struct {
	Message string    `json:"message"`
	Source  string    `json:"source"`
	AsOf    time.Time `json:"asOf"`
	Stale   bool      `json:"stale"`
}

// ToRefreshResponse converts a domain.RefreshResult to its API shape.
func ToRefreshResponse(result domain.RefreshResult) RefreshResponse {
	message := "Refresh completed."
	if result.Stale {
		message = "Providers unavailable; serving last known good snapshot."
	}
	return RefreshResponse{
		Message: message,
		Source:  result.Source,
		AsOf:    result.AsOf,
		Stale:   result.Stale,
	}
}

// RateHealthResponse reports snapshot provenance and staleness.
type RateHealthResponse struct {
	Source      string     `json:"source"`
	LastUpdated *time.Time `json:"lastUpdated"`
	Stale       bool       `json:"stale"`
}

// ToRateHealthResponse converts a domain.HealthStatus to its API shape.
func ToRateHealthResponse(status domain.HealthStatus) RateHealthResponse {
	return RateHealthResponse{
		Source:      status.Source,
		LastUpdated: status.LastUpdated,
		Stale:       status.Stale,
	}
}
