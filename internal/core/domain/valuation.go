package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reasons a position can be excluded from valuation totals.
const (
	UnpricedReasonMissingRate     = "missing_rate"
	UnpricedReasonUnknownCurrency = "unknown_currency"
)

// PortfolioValuation is the aggregate value of a portfolio expressed in a
// view base currency. Unpriced positions are counted and reported by reason,
// never silently dropped.
type PortfolioValuation struct {
	PortfolioID     string              `json:"portfolioID"`
	PortfolioBase   string              `json:"portfolioBase"`
	ViewBase        string              `json:"viewBase"`
	Value           decimal.Decimal     `json:"value"`
	Priced          int                 `json:"priced"`
	Unpriced        int                 `json:"unpriced"`
	UnpricedReasons map[string][]string `json:"unpricedReasons"`
	AsOf            *time.Time          `json:"asOf"`
	Source          string              `json:"source"`
}

// ExposureEntry is the signed contribution of one currency to a portfolio,
// in both native units and view-base value.
type ExposureEntry struct {
	CurrencyCode string          `json:"currencyCode"`
	NativeAmount decimal.Decimal `json:"nativeAmount"`
	BaseValue    decimal.Decimal `json:"baseValue"`
}

// PortfolioExposure breaks a portfolio down by currency in a view base.
type PortfolioExposure struct {
	PortfolioID string          `json:"portfolioID"`
	ViewBase    string          `json:"viewBase"`
	AsOf        *time.Time      `json:"asOf"`
	Exposures   []ExposureEntry `json:"exposures"`
	Unpriced    int             `json:"unpriced"`
}
