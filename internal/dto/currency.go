package dto

import (
	"time"

	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/domain"
)

// CreateCurrencyRequest defines the data needed to add a currency to the allowlist.
type CreateCurrencyRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,uppercase,len=3"`
	Name         string `json:"name" binding:"required"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyCode string    `json:"currencyCode"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToCurrencyResponse converts a domain.Currency to a CurrencyResponse DTO.
func ToCurrencyResponse(curr *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode: curr.CurrencyCode,
		Name:         curr.Name,
		CreatedAt:    curr.CreatedAt,
	}
}

// ToListCurrencyResponse converts a slice of domain.Currency to DTOs.
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i, curr := range currencies {
		res[i] = ToCurrencyResponse(&curr)
	}
	return res
}
