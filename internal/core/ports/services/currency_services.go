package services

import (
	"context"

	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/domain"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/dto"
)

// CurrencyReaderSvc defines read operations for the currency allowlist.
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all allowed currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)

	// IsAllowed reports whether a code is in the allowlist.
	IsAllowed(ctx context.Context, currencyCode string) bool
}

// CurrencyWriterSvc defines write operations for the currency allowlist.
type CurrencyWriterSvc interface {
	// CreateCurrency persists a new currency.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest) (*domain.Currency, error)
}

// CurrencySvcFacade combines all currency-related service interfaces.
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}
