package domain

// Currency is one entry of the seeded ISO-4217 allowlist. Reference data:
// written once at setup, read-only afterwards.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary key, e.g. "USD"
	Name         string `json:"name"`         // e.g. "US Dollar"
	AuditFields
}
