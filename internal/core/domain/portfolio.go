package domain

import "github.com/shopspring/decimal"

// PositionSide indicates whether a position is held long or short.
type PositionSide string

const (
	Long  PositionSide = "LONG"
	Short PositionSide = "SHORT"
)

// IsValid reports whether the side is one of the two known values.
func (s PositionSide) IsValid() bool {
	return s == Long || s == Short
}

// Portfolio is a named collection of currency positions valued against a
// base currency.
type Portfolio struct {
	PortfolioID      string `json:"portfolioID"`
	Name             string `json:"name"`
	BaseCurrencyCode string `json:"baseCurrencyCode"`
	AuditFields
}

// Position is a holding of a single currency inside a portfolio. Amount is
// always positive; the side carries the sign.
type Position struct {
	PositionID   string          `json:"positionID"`
	PortfolioID  string          `json:"portfolioID"`
	CurrencyCode string          `json:"currencyCode"`
	Amount       decimal.Decimal `json:"amount"`
	Side         PositionSide    `json:"side"`
	AuditFields
}
