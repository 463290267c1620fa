package fxmath

import "github.com/shopspring/decimal"

// DivisionPrecision is the number of significant digits carried by every
// division in rate and money math. All call sites share this single policy.
const DivisionPrecision = 28

// Display scales applied only at serialization boundaries. Internal values
// keep full precision.
const (
	RateDisplayScale   = 8
	AmountDisplayScale = 2
)

func init() {
	decimal.DivisionPrecision = DivisionPrecision
}

// QuantizeRate rounds a rate for display using banker's rounding.
func QuantizeRate(rate decimal.Decimal) decimal.Decimal {
	return rate.RoundBank(RateDisplayScale)
}

// QuantizeAmount rounds a monetary amount for display using banker's rounding.
func QuantizeAmount(amount decimal.Decimal) decimal.Decimal {
	return amount.RoundBank(AmountDisplayScale)
}

// FormatRate serializes a rate at fixed 8-decimal scale. Rounding happens in
// QuantizeRate; StringFixed then only pads, never re-rounds.
func FormatRate(rate decimal.Decimal) string {
	return QuantizeRate(rate).StringFixed(RateDisplayScale)
}

// FormatAmount serializes a monetary amount at fixed 2-decimal scale.
func FormatAmount(amount decimal.Decimal) string {
	return QuantizeAmount(amount).StringFixed(AmountDisplayScale)
}
