package fxmath

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/apperrors"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/domain"
)

// NativeToBase converts a position's native amount into the snapshot's base
// currency and applies the position sign: LONG contributes positive value,
// SHORT negative.
//
// A rate of R for currency C means one base unit buys R units of C, so the
// base equivalent of an amount in C is amount / R. When the position currency
// equals the target base the amount passes through untouched, with no lookup.
//
// The second return value reports whether the position could be priced. An
// absent or zero quote yields (0, false) rather than an error; callers
// aggregate unpriced counts.
func NativeToBase(amount decimal.Decimal, positionCurrency string, side domain.PositionSide, snapshot *domain.RateSnapshot, targetBase string) (decimal.Decimal, bool) {
	currency := strings.ToUpper(strings.TrimSpace(positionCurrency))
	base := strings.ToUpper(strings.TrimSpace(targetBase))

	var value decimal.Decimal
	if currency == base {
		value = amount
	} else {
		rate, ok := snapshot.Rate(currency)
		if !ok || !rate.IsPositive() {
			return decimal.Zero, false
		}
		value = amount.Div(rate)
	}

	if side == domain.Short {
		value = value.Neg()
	}
	return value, true
}

// RebaseSnapshot derives a snapshot expressed against newBase from a
// canonical-base snapshot, using only the rates already present: for every
// currency C, newRates[C] = rates[C] / rates[newBase]. No provider round-trip
// is involved. The reflexive newBase rate is set to exactly 1, never left as
// a division artifact, and Source/AsOf carry over unchanged.
//
// The input snapshot is never mutated. Rebasing to the snapshot's own base
// returns an equivalent copy.
func RebaseSnapshot(snapshot *domain.RateSnapshot, newBase string) (*domain.RateSnapshot, error) {
	target := strings.ToUpper(strings.TrimSpace(newBase))

	if target == snapshot.Base {
		return domain.NewRateSnapshot(snapshot.Source, snapshot.Base, snapshot.AsOf, snapshot.Rates), nil
	}

	quote, ok := snapshot.Rate(target)
	if !ok || !quote.IsPositive() {
		return nil, &apperrors.MissingQuoteError{Base: target, AsOf: snapshot.AsOf}
	}

	rebased := make(map[string]decimal.Decimal, len(snapshot.Rates))
	for code, rate := range snapshot.Rates {
		rebased[code] = rate.Div(quote)
	}

	return domain.NewRateSnapshot(snapshot.Source, target, snapshot.AsOf, rebased), nil
}
