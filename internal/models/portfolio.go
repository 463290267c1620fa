package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Portfolio is the database row shape for a portfolio.
type Portfolio struct {
	PortfolioID      string    `json:"portfolioID"`
	Name             string    `json:"name"`
	BaseCurrencyCode string    `json:"baseCurrencyCode"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Position is the database row shape for a currency position.
type Position struct {
	PositionID   string          `json:"positionID"`
	PortfolioID  string          `json:"portfolioID"`
	CurrencyCode string          `json:"currencyCode"`
	Amount       decimal.Decimal `json:"amount"`
	Side         string          `json:"side"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}
