package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/domain"
	portsrepo "github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/ports/repositories"
	portssvc "github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/ports/services"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/utils/fxmath"
)

// ValuationService computes portfolio values and exposures in a view base
// currency. Positions that cannot be priced are counted and reported, never
// silently dropped, so a partial snapshot still yields an honest total.
type ValuationService struct {
	BaseService
	portfolioRepo portsrepo.PortfolioRepositoryFacade
	rateSvc       portssvc.RateSnapshotReaderSvc
	currencySvc   portssvc.CurrencyReaderSvc
}

// NewValuationService creates a new ValuationService.
func NewValuationService(portfolioRepo portsrepo.PortfolioRepositoryFacade, rateSvc portssvc.RateSnapshotReaderSvc, currencySvc portssvc.CurrencyReaderSvc) *ValuationService {
	return &ValuationService{
		portfolioRepo: portfolioRepo,
		rateSvc:       rateSvc,
		currencySvc:   currencySvc,
	}
}

// PortfolioValue computes the aggregate signed value of a portfolio in
// viewBase. An empty viewBase defaults to the portfolio's own base.
func (s *ValuationService) PortfolioValue(ctx context.Context, portfolioID, viewBase string) (*domain.PortfolioValuation, error) {
	portfolio, err := s.portfolioRepo.FindPortfolioByID(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to find portfolio for valuation: %w", err)
	}

	viewBase = strings.ToUpper(strings.TrimSpace(viewBase))
	if viewBase == "" {
		viewBase = portfolio.BaseCurrencyCode
	}

	snapshot, err := s.rateSvc.GetSnapshot(ctx, viewBase)
	if err != nil {
		return nil, err
	}

	positions, err := s.portfolioRepo.ListPositions(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions for valuation: %w", err)
	}

	valuation := &domain.PortfolioValuation{
		PortfolioID:     portfolioID,
		PortfolioBase:   portfolio.BaseCurrencyCode,
		ViewBase:        viewBase,
		Value:           decimal.Zero,
		UnpricedReasons: map[string][]string{},
		AsOf:            &snapshot.AsOf,
		Source:          snapshot.Source,
	}

	for _, position := range positions {
		if !s.currencySvc.IsAllowed(ctx, position.CurrencyCode) {
			valuation.Unpriced++
			valuation.UnpricedReasons[domain.UnpricedReasonUnknownCurrency] = append(
				valuation.UnpricedReasons[domain.UnpricedReasonUnknownCurrency], position.PositionID)
			continue
		}

		value, ok := fxmath.NativeToBase(position.Amount, position.CurrencyCode, position.Side, snapshot, viewBase)
		if !ok {
			valuation.Unpriced++
			valuation.UnpricedReasons[domain.UnpricedReasonMissingRate] = append(
				valuation.UnpricedReasons[domain.UnpricedReasonMissingRate], position.PositionID)
			continue
		}

		valuation.Priced++
		valuation.Value = valuation.Value.Add(value)
	}

	return valuation, nil
}

// PortfolioExposure breaks a portfolio down by currency: the signed native
// amount per currency and its value in viewBase. Unpriced positions are
// excluded from the entries and surfaced through the Unpriced count.
func (s *ValuationService) PortfolioExposure(ctx context.Context, portfolioID, viewBase string) (*domain.PortfolioExposure, error) {
	portfolio, err := s.portfolioRepo.FindPortfolioByID(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to find portfolio for exposure: %w", err)
	}

	viewBase = strings.ToUpper(strings.TrimSpace(viewBase))
	if viewBase == "" {
		viewBase = portfolio.BaseCurrencyCode
	}

	snapshot, err := s.rateSvc.GetSnapshot(ctx, viewBase)
	if err != nil {
		return nil, err
	}

	positions, err := s.portfolioRepo.ListPositions(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions for exposure: %w", err)
	}

	type bucket struct {
		native decimal.Decimal
		value  decimal.Decimal
	}
	buckets := map[string]bucket{}
	unpriced := 0

	for _, position := range positions {
		if !s.currencySvc.IsAllowed(ctx, position.CurrencyCode) {
			unpriced++
			continue
		}

		value, ok := fxmath.NativeToBase(position.Amount, position.CurrencyCode, position.Side, snapshot, viewBase)
		if !ok {
			unpriced++
			continue
		}

		native := position.Amount
		if position.Side == domain.Short {
			native = native.Neg()
		}

		code := strings.ToUpper(position.CurrencyCode)
		b := buckets[code]
		b.native = b.native.Add(native)
		b.value = b.value.Add(value)
		buckets[code] = b
	}

	exposures := make([]domain.ExposureEntry, 0, len(buckets))
	for code, b := range buckets {
		exposures = append(exposures, domain.ExposureEntry{
			CurrencyCode: code,
			NativeAmount: b.native,
			BaseValue:    b.value,
		})
	}
	sort.Slice(exposures, func(i, j int) bool {
		return exposures[i].CurrencyCode < exposures[j].CurrencyCode
	})

	return &domain.PortfolioExposure{
		PortfolioID: portfolioID,
		ViewBase:    viewBase,
		AsOf:        &snapshot.AsOf,
		Exposures:   exposures,
		Unpriced:    unpriced,
	}, nil
}
