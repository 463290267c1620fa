package models

import "time"

// Currency is the database row shape for the currency allowlist.
type Currency struct {
	CurrencyCode string    `json:"currencyCode"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
