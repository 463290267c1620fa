package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RateSnapshot is a complete set of exchange rates for one base currency as of
// one point in time. Rates map a target currency code to the amount of that
// currency bought by one unit of Base, including the reflexive Base entry of 1.
// Snapshots are treated as immutable once constructed; rebasing produces a new
// snapshot rather than mutating in place.
type RateSnapshot struct {
	Source string                     `json:"source"`
	Base   string                     `json:"base"`
	AsOf   time.Time                  `json:"asOf"`
	Rates  map[string]decimal.Decimal `json:"rates"`
}

// NewRateSnapshot builds a snapshot with normalized uppercase codes and the
// reflexive base rate set to exactly 1.
func NewRateSnapshot(source, base string, asOf time.Time, rates map[string]decimal.Decimal) *RateSnapshot {
	normalized := make(map[string]decimal.Decimal, len(rates)+1)
	for code, rate := range rates {
		normalized[strings.ToUpper(strings.TrimSpace(code))] = rate
	}
	baseCode := strings.ToUpper(strings.TrimSpace(base))
	normalized[baseCode] = decimal.NewFromInt(1)
	return &RateSnapshot{
		Source: source,
		Base:   baseCode,
		AsOf:   asOf.UTC(),
		Rates:  normalized,
	}
}

// Rate returns the quote for the given currency code, if present.
func (s *RateSnapshot) Rate(code string) (decimal.Decimal, bool) {
	rate, ok := s.Rates[strings.ToUpper(strings.TrimSpace(code))]
	return rate, ok
}

// Currencies returns the set of currency codes priced by this snapshot.
func (s *RateSnapshot) Currencies() []string {
	codes := make([]string, 0, len(s.Rates))
	for code := range s.Rates {
		codes = append(codes, code)
	}
	return codes
}

// FxRate is one persisted (base, target, timestamp, source, rate) tuple.
// Rows are unique on that 4-tuple and only ever written for the canonical base.
type FxRate struct {
	BaseCurrencyCode   string          `json:"baseCurrencyCode"`
	TargetCurrencyCode string          `json:"targetCurrencyCode"`
	Timestamp          time.Time       `json:"timestamp"`
	Rate               decimal.Decimal `json:"rate"`
	Source             string          `json:"source"`
}

// RatePoint is a single historical rate observation.
type RatePoint struct {
	Timestamp time.Time       `json:"timestamp"`
	Rate      decimal.Decimal `json:"rate"`
}

// RateHistorySeries is a normalized timeseries for one currency pair.
type RateHistorySeries struct {
	Base   string      `json:"base"`
	Symbol string      `json:"symbol"`
	Source string      `json:"source"`
	Points []RatePoint `json:"points"`
}

// RefreshResult describes the outcome of one orchestrated refresh.
type RefreshResult struct {
	Source string    `json:"source"`
	AsOf   time.Time `json:"asOf"`
	Stale  bool      `json:"stale"`
}

// HealthStatus reports the provenance of the currently cached snapshot
// without triggering a fetch.
type HealthStatus struct {
	Source      string     `json:"source"`
	LastUpdated *time.Time `json:"lastUpdated"`
	Stale       bool       `json:"stale"`
}
