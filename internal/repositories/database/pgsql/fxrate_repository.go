package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/apperrors"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/domain"
	portsrepo "github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/ports/repositories"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/models"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/utils/mapping"
)

// PgxFxRateRepository implements the ports FxRateRepositoryFacade using pgxpool.
type PgxFxRateRepository struct {
	BaseRepository
}

// newPgxFxRateRepository creates a new repository for persisted FX rates.
func newPgxFxRateRepository(pool *pgxpool.Pool) *PgxFxRateRepository {
	return &PgxFxRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.FxRateRepositoryFacade = (*PgxFxRateRepository)(nil)

// UpsertRates persists rate rows inside one transaction. The unique
// constraint on (base, target, timestamp, source) makes re-running a day's
// refresh update the same rows in place instead of erroring or duplicating.
func (r *PgxFxRateRepository) UpsertRates(ctx context.Context, rates []domain.FxRate) error {
	if len(rates) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO fx_rates (base_currency_code, target_currency_code, rate_timestamp, rate, source)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (base_currency_code, target_currency_code, rate_timestamp, source)
		DO UPDATE SET rate = EXCLUDED.rate;
	`

	batch := &pgx.Batch{}
	for _, rate := range rates {
		modelRate := mapping.ToModelFxRate(rate)
		batch.Queue(query,
			strings.ToUpper(modelRate.BaseCurrencyCode),
			strings.ToUpper(modelRate.TargetCurrencyCode),
			modelRate.Timestamp,
			modelRate.Rate,
			modelRate.Source,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range rates {
		if _, execErr := results.Exec(); execErr != nil {
			_ = results.Close()
			_ = r.Rollback(ctx, tx)
			return apperrors.NewAppError(500, "failed to upsert fx rates", execErr)
		}
	}
	if closeErr := results.Close(); closeErr != nil {
		_ = r.Rollback(ctx, tx)
		return apperrors.NewAppError(500, "failed to close fx rate batch", closeErr)
	}

	return r.Commit(ctx, tx)
}

// LatestSnapshot reconstructs a RateSnapshot from the newest persisted row
// set for the given base. The (timestamp, source) pair of the newest row
// selects the set, so rows from an older source never mix in.
func (r *PgxFxRateRepository) LatestSnapshot(ctx context.Context, base string) (*domain.RateSnapshot, error) {
	baseCode := strings.ToUpper(base)

	var timestamp time.Time
	var source string
	err := r.Pool.QueryRow(ctx, `
		SELECT rate_timestamp, source
		FROM fx_rates
		WHERE base_currency_code = $1
		ORDER BY rate_timestamp DESC
		LIMIT 1;
	`, baseCode).Scan(&timestamp, &source)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find latest fx rate timestamp", err)
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT base_currency_code, target_currency_code, rate_timestamp, rate, source
		FROM fx_rates
		WHERE base_currency_code = $1 AND rate_timestamp = $2 AND source = $3;
	`, baseCode, timestamp, source)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query latest fx rates", err)
	}
	defer rows.Close()

	rates := make(map[string]decimal.Decimal)
	for rows.Next() {
		var modelRate models.FxRate
		if scanErr := rows.Scan(
			&modelRate.BaseCurrencyCode,
			&modelRate.TargetCurrencyCode,
			&modelRate.Timestamp,
			&modelRate.Rate,
			&modelRate.Source,
		); scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan fx rate", scanErr)
		}
		rates[modelRate.TargetCurrencyCode] = modelRate.Rate
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating fx rates", err)
	}
	if len(rates) == 0 {
		return nil, apperrors.ErrNotFound
	}

	return domain.NewRateSnapshot(source, baseCode, timestamp, rates), nil
}

// History returns up to limit persisted observations for one pair, oldest
// first.
func (r *PgxFxRateRepository) History(ctx context.Context, base, symbol string, limit int) ([]domain.RatePoint, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: history limit must be positive", apperrors.ErrValidation)
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT rate_timestamp, rate
		FROM fx_rates
		WHERE base_currency_code = $1 AND target_currency_code = $2
		ORDER BY rate_timestamp DESC
		LIMIT $3;
	`, strings.ToUpper(base), strings.ToUpper(symbol), limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query fx rate history", err)
	}
	defer rows.Close()

	var points []domain.RatePoint
	for rows.Next() {
		var point domain.RatePoint
		if scanErr := rows.Scan(&point.Timestamp, &point.Rate); scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan fx rate history point", scanErr)
		}
		points = append(points, point)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating fx rate history", err)
	}

	// Reverse into chronological order.
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return points, nil
}
