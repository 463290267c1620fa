package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FxRate is the database row shape for one persisted rate observation.
// Rows are unique on (base, target, timestamp, source) and are only ever
// written for the canonical base currency.
type FxRate struct {
	BaseCurrencyCode   string          `json:"baseCurrencyCode"`
	TargetCurrencyCode string          `json:"targetCurrencyCode"`
	Timestamp          time.Time       `json:"timestamp"`
	Rate               decimal.Decimal `json:"rate"`
	Source             string          `json:"source"`
}
