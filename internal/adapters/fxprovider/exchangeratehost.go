package fxprovider

import (
	"context"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/domain"
)

// ExchangeRateHostName identifies the keyless primary provider.
const ExchangeRateHostName = "exchange"

// ExchangeRateHostProvider fetches rates from the keyless ExchangeRate.host
// API. The upstream quotes directly in any requested base, so no internal
// rebasing is needed.
type ExchangeRateHostProvider struct {
	client *HTTPClient
}

// NewExchangeRateHostProvider wires the provider to a shared HTTP client.
func NewExchangeRateHostProvider(client *HTTPClient) *ExchangeRateHostProvider {
	return &ExchangeRateHostProvider{client: client}
}

func (p *ExchangeRateHostProvider) Name() string {
	return ExchangeRateHostName
}

type exchangeRateHostLatestPayload struct {
	Date  string                     `json:"date"`
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

type exchangeRateHostTimeseriesPayload struct {
	Rates map[string]map[string]decimal.Decimal `json:"rates"`
}

// GetLatest returns the most recent published snapshot for the base currency.
func (p *ExchangeRateHostProvider) GetLatest(ctx context.Context, base string) (*domain.RateSnapshot, error) {
	baseCode := normalizeCode(base)

	query := url.Values{}
	query.Set("base", baseCode)

	var payload exchangeRateHostLatestPayload
	if err := p.client.GetJSON(ctx, "/latest", query, &payload); err != nil {
		return nil, err
	}
	if payload.Date == "" || len(payload.Rates) == 0 {
		return nil, &ProviderError{Code: ErrCodeBadPayload, Message: "latest payload missing date or rates"}
	}

	asOf, err := parseQuoteDate(payload.Date)
	if err != nil {
		return nil, &ProviderError{Code: ErrCodeBadPayload, Message: "unparseable quote date: " + payload.Date}
	}

	return domain.NewRateSnapshot(ExchangeRateHostName, baseCode, asOf, payload.Rates), nil
}

// GetHistory returns up to days most recent observations for base/symbol.
// Weekend and holiday gaps come back from the upstream as absent dates and
// are reported as missing, not filled in.
func (p *ExchangeRateHostProvider) GetHistory(ctx context.Context, base, symbol string, days int) (*domain.RateHistorySeries, error) {
	if days <= 0 {
		return nil, &ProviderError{Code: ErrCodeBadPayload, Message: "days must be a positive integer"}
	}
	baseCode := normalizeCode(base)
	symbolCode := normalizeCode(symbol)

	endDate := time.Now().UTC().Truncate(24 * time.Hour)
	startDate := endDate.AddDate(0, 0, -(days - 1))

	query := url.Values{}
	query.Set("base", baseCode)
	query.Set("symbols", symbolCode)
	query.Set("start_date", startDate.Format(time.DateOnly))
	query.Set("end_date", endDate.Format(time.DateOnly))

	var payload exchangeRateHostTimeseriesPayload
	if err := p.client.GetJSON(ctx, "/timeseries", query, &payload); err != nil {
		return nil, err
	}

	points := make([]domain.RatePoint, 0, len(payload.Rates))
	for dateStr, rateMap := range payload.Rates {
		rate, ok := rateMap[symbolCode]
		if !ok {
			continue
		}
		timestamp, err := parseQuoteDate(dateStr)
		if err != nil {
			continue
		}
		points = append(points, domain.RatePoint{Timestamp: timestamp, Rate: rate})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Timestamp.Before(points[j].Timestamp) })

	return &domain.RateHistorySeries{
		Base:   baseCode,
		Symbol: symbolCode,
		Source: ExchangeRateHostName,
		Points: points,
	}, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func parseQuoteDate(value string) (time.Time, error) {
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, err
	}
	return parsed.UTC(), nil
}
