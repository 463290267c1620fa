package fxprovider

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/domain"
)

// MockName identifies the in-process test/development provider.
const MockName = "mock"

// MockProvider serves deterministic canned rates without any network access.
// It is selectable through configuration for local development and demos, and
// its Err/HistoryErr fields let tests script provider failures.
type MockProvider struct {
	Snapshot   *domain.RateSnapshot
	Err        error
	History    *domain.RateHistorySeries
	HistoryErr error
}

// NewMockProvider returns a provider with a small fixed rate table.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Name() string {
	return MockName
}

// GetLatest returns the configured snapshot, or a canned table rebased to
// nothing (the table is quoted directly in the requested base).
func (p *MockProvider) GetLatest(ctx context.Context, base string) (*domain.RateSnapshot, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	if p.Snapshot != nil {
		return p.Snapshot, nil
	}
	return domain.NewRateSnapshot(MockName, normalizeCode(base), time.Now().UTC().Truncate(24*time.Hour), cannedRates()), nil
}

// GetHistory returns the configured series, or a short flat series built
// from the canned table.
func (p *MockProvider) GetHistory(ctx context.Context, base, symbol string, days int) (*domain.RateHistorySeries, error) {
	if p.HistoryErr != nil {
		return nil, p.HistoryErr
	}
	if p.History != nil {
		return p.History, nil
	}
	if days <= 0 {
		return nil, &ProviderError{Code: ErrCodeBadPayload, Message: "days must be a positive integer"}
	}

	baseCode := normalizeCode(base)
	symbolCode := normalizeCode(symbol)
	rate, ok := cannedRates()[symbolCode]
	if !ok {
		rate = decimal.NewFromInt(1)
	}

	end := time.Now().UTC().Truncate(24 * time.Hour)
	points := make([]domain.RatePoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		points = append(points, domain.RatePoint{Timestamp: end.AddDate(0, 0, -i), Rate: rate})
	}
	return &domain.RateHistorySeries{Base: baseCode, Symbol: symbolCode, Source: MockName, Points: points}, nil
}

func cannedRates() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"EUR": decimal.RequireFromString("0.92"),
		"GBP": decimal.RequireFromString("0.79"),
		"JPY": decimal.RequireFromString("147.30"),
		"CHF": decimal.RequireFromString("0.88"),
		"TRY": decimal.RequireFromString("41.05"),
	}
}
