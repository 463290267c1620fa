package repositories

import (
	"context"

	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/domain"
)

// FxRateReader defines read operations for persisted FX rates.
type FxRateReader interface {
	// LatestSnapshot reconstructs a RateSnapshot from the most recent set of
	// persisted rows for the given base. Returns apperrors.ErrNotFound when
	// no rows exist yet.
	LatestSnapshot(ctx context.Context, base string) (*domain.RateSnapshot, error)

	// History returns persisted observations for one pair, most recent last,
	// capped at limit points.
	History(ctx context.Context, base, symbol string, limit int) ([]domain.RatePoint, error)
}

// FxRateWriter defines write operations for persisted FX rates.
type FxRateWriter interface {
	// UpsertRates persists rate rows idempotently: re-running the same
	// day's refresh must not create duplicate rows or error.
	UpsertRates(ctx context.Context, rates []domain.FxRate) error
}

// FxRateRepositoryFacade combines all FX rate repository interfaces.
type FxRateRepositoryFacade interface {
	FxRateReader
	FxRateWriter
}
