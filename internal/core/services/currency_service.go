package services

import (
	"context"
	"fmt"
	"time"

	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/domain"
	portsrepo "github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/ports/repositories"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/dto"
)

// CurrencyService manages the currency allowlist.
type CurrencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) *CurrencyService {
	return &CurrencyService{currencyRepo: currencyRepo}
}

// CreateCurrency adds a currency to the allowlist.
func (s *CurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest) (*domain.Currency, error) {
	// Basic validation already handled by DTO binding (required, len=3, uppercase)
	now := time.Now()

	currency := domain.Currency{
		CurrencyCode: req.CurrencyCode,
		Name:         req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		s.LogError(ctx, err, "failed to create currency")
		return nil, fmt.Errorf("failed to create currency in service: %w", err)
	}

	return &currency, nil
}

// GetCurrencyByCode retrieves a specific currency by code.
func (s *CurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get currency by code in service: %w", err)
	}
	return currency, nil
}

// ListCurrencies retrieves all allowed currencies.
func (s *CurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		s.LogError(ctx, err, "failed to list currencies")
		return nil, fmt.Errorf("failed to list currencies in service: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

// IsAllowed reports whether a currency code is in the allowlist. Lookup
// errors are treated as not allowed rather than propagated, since callers use
// this as a yes/no gate.
func (s *CurrencyService) IsAllowed(ctx context.Context, currencyCode string) bool {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
	return err == nil && currency != nil
}
