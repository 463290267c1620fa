package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/domain"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/utils/fxmath"
)

// CreatePortfolioRequest defines the data needed to create a portfolio.
type CreatePortfolioRequest struct {
	Name             string `json:"name" binding:"required,min=1,max=100"`
	BaseCurrencyCode string `json:"baseCurrencyCode" binding:"required,uppercase,len=3"`
}

// CreatePositionRequest defines the data needed to add a position.
type CreatePositionRequest struct {
	CurrencyCode string          `json:"currencyCode" binding:"required,uppercase,len=3"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Side         string          `json:"side" binding:"required,oneof=LONG SHORT"`
}

// PortfolioResponse defines the data returned for a portfolio.
type PortfolioResponse struct {
	PortfolioID      string    `json:"portfolioID"`
	Name             string    `json:"name"`
	BaseCurrencyCode string    `json:"baseCurrencyCode"`
	CreatedAt        time.Time `json:"createdAt"`
}

// PositionResponse defines the data returned for a position.
type PositionResponse struct {
	PositionID   string    `json:"positionID"`
	PortfolioID  string    `json:"portfolioID"`
	CurrencyCode string    `json:"currencyCode"`
	Amount       string    `json:"amount"`
	Side         string    `json:"side"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToPortfolioResponse converts a domain.Portfolio to its API shape.
func ToPortfolioResponse(p *domain.Portfolio) PortfolioResponse {
	return PortfolioResponse{
		PortfolioID:      p.PortfolioID,
		Name:             p.Name,
		BaseCurrencyCode: p.BaseCurrencyCode,
		CreatedAt:        p.CreatedAt,
	}
}

// ToListPortfolioResponse converts a slice of domain.Portfolio to DTOs.
func ToListPortfolioResponse(portfolios []domain.Portfolio) []PortfolioResponse {
	res := make([]PortfolioResponse, len(portfolios))
	for i, p := range portfolios {
		res[i] = ToPortfolioResponse(&p)
	}
	return res
}

// ToPositionResponse converts a domain.Position to its API shape.
func ToPositionResponse(p *domain.Position) PositionResponse {
	return PositionResponse{
		PositionID:   p.PositionID,
		PortfolioID:  p.PortfolioID,
		CurrencyCode: p.CurrencyCode,
		Amount:       fxmath.FormatAmount(p.Amount),
		Side:         string(p.Side),
		CreatedAt:    p.CreatedAt,
	}
}

// ToListPositionResponse converts a slice of domain.Position to DTOs.
func ToListPositionResponse(positions []domain.Position) []PositionResponse {
	res := make([]PositionResponse, len(positions))
	for i, p := range positions {
		res[i] = ToPositionResponse(&p)
	}
	return res
}
