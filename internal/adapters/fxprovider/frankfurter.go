package fxprovider

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/domain"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/utils/fxmath"
)

// FrankfurterName identifies the ECB-derived fallback provider.
const FrankfurterName = "ecb"

const ecbQuoteBase = "EUR"

// FrankfurterProvider fetches ECB reference rates via the Frankfurter API.
// The upstream always quotes against EUR, so when the requested base differs
// the adapter performs the cross-rate derivation itself before returning.
// The orchestrator never has to special-case this source.
type FrankfurterProvider struct {
	client *HTTPClient
}

// NewFrankfurterProvider wires the provider to a shared HTTP client.
func NewFrankfurterProvider(client *HTTPClient) *FrankfurterProvider {
	return &FrankfurterProvider{client: client}
}

func (p *FrankfurterProvider) Name() string {
	return FrankfurterName
}

type frankfurterLatestPayload struct {
	Date  string                     `json:"date"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

type frankfurterRangePayload struct {
	Rates map[string]map[string]decimal.Decimal `json:"rates"`
}

// GetLatest returns the latest published ECB snapshot rebased to the
// requested base. On weekends and holidays the upstream serves the most
// recent business day, which is reflected in the snapshot's AsOf.
func (p *FrankfurterProvider) GetLatest(ctx context.Context, base string) (*domain.RateSnapshot, error) {
	baseCode := normalizeCode(base)

	query := url.Values{}
	query.Set("from", ecbQuoteBase)

	var payload frankfurterLatestPayload
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

	return p.rebaseToTarget(payload.Rates, baseCode, asOf)
}

// GetHistory returns up to days observations for base/symbol, each derived
// from the day's EUR-quoted rates. Days the ECB did not publish are skipped.
func (p *FrankfurterProvider) GetHistory(ctx context.Context, base, symbol string, days int) (*domain.RateHistorySeries, error) {
	if days <= 0 {
		return nil, &ProviderError{Code: ErrCodeBadPayload, Message: "days must be a positive integer"}
	}
	baseCode := normalizeCode(base)
	symbolCode := normalizeCode(symbol)

	endDate := time.Now().UTC().Truncate(24 * time.Hour)
	startDate := endDate.AddDate(0, 0, -(days - 1))

	query := url.Values{}
	query.Set("from", ecbQuoteBase)

	path := fmt.Sprintf("/%s..%s", startDate.Format(time.DateOnly), endDate.Format(time.DateOnly))
	var payload frankfurterRangePayload
	if err := p.client.GetJSON(ctx, path, query, &payload); err != nil {
		return nil, err
	}

	points := make([]domain.RatePoint, 0, len(payload.Rates))
	for dateStr, rateMap := range payload.Rates {
		timestamp, err := parseQuoteDate(dateStr)
		if err != nil {
			continue
		}
		snapshot, err := p.rebaseToTarget(rateMap, baseCode, timestamp)
		if err != nil {
			continue
		}
		rate, ok := snapshot.Rate(symbolCode)
		if !ok {
			continue
		}
		points = append(points, domain.RatePoint{Timestamp: timestamp, Rate: rate})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Timestamp.Before(points[j].Timestamp) })

	return &domain.RateHistorySeries{
		Base:   baseCode,
		Symbol: symbolCode,
		Source: FrankfurterName,
		Points: points,
	}, nil
}

// rebaseToTarget normalizes a EUR-quoted rate map into a snapshot expressed
// against target, using the same cross-rate algorithm the orchestrator uses
// for view-base queries.
func (p *FrankfurterProvider) rebaseToTarget(rates map[string]decimal.Decimal, target string, asOf time.Time) (*domain.RateSnapshot, error) {
	eurSnapshot := domain.NewRateSnapshot(FrankfurterName, ecbQuoteBase, asOf, rates)
	if target == ecbQuoteBase {
		return eurSnapshot, nil
	}
	rebased, err := fxmath.RebaseSnapshot(eurSnapshot, target)
	if err != nil {
		return nil, &ProviderError{
			Code:    ErrCodeRebase,
			Message: fmt.Sprintf("cannot derive %s-based snapshot from ECB quotes: %v", target, err),
		}
	}
	return rebased, nil
}
