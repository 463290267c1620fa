package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/apperrors"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/domain"
	portsrepo "github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/ports/repositories"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/models"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/utils/mapping"
)

// PgxPortfolioRepository implements the ports PortfolioRepositoryFacade using pgxpool.
type PgxPortfolioRepository struct {
	BaseRepository
}

// newPgxPortfolioRepository creates a new repository for portfolios and positions.
func newPgxPortfolioRepository(pool *pgxpool.Pool) *PgxPortfolioRepository {
	return &PgxPortfolioRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PortfolioRepositoryFacade = (*PgxPortfolioRepository)(nil)

// SavePortfolio inserts a new portfolio.
func (r *PgxPortfolioRepository) SavePortfolio(ctx context.Context, portfolio domain.Portfolio) error {
	modelPortfolio := mapping.ToModelPortfolio(portfolio)

	query := `
		INSERT INTO portfolios (portfolio_id, name, base_currency_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelPortfolio.PortfolioID,
		modelPortfolio.Name,
		modelPortfolio.BaseCurrencyCode,
		modelPortfolio.CreatedAt,
		modelPortfolio.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: portfolio name %q", apperrors.ErrDuplicate, modelPortfolio.Name)
		}
		return apperrors.NewAppError(500, "failed to save portfolio", err)
	}
	return nil
}

// FindPortfolioByID retrieves a portfolio by its ID.
func (r *PgxPortfolioRepository) FindPortfolioByID(ctx context.Context, portfolioID string) (*domain.Portfolio, error) {
	query := `
		SELECT portfolio_id, name, base_currency_code, created_at, updated_at
		FROM portfolios
		WHERE portfolio_id = $1;
	`
	var modelPortfolio models.Portfolio
	err := r.Pool.QueryRow(ctx, query, portfolioID).Scan(
		&modelPortfolio.PortfolioID,
		&modelPortfolio.Name,
		&modelPortfolio.BaseCurrencyCode,
		&modelPortfolio.CreatedAt,
		&modelPortfolio.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find portfolio "+portfolioID, err)
	}

	domainPortfolio := mapping.ToDomainPortfolio(modelPortfolio)
	return &domainPortfolio, nil
}

// ListPortfolios retrieves all portfolios ordered by name.
func (r *PgxPortfolioRepository) ListPortfolios(ctx context.Context) ([]domain.Portfolio, error) {
	query := `
		SELECT portfolio_id, name, base_currency_code, created_at, updated_at
		FROM portfolios
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query portfolios", err)
	}
	defer rows.Close()

	portfolios := []domain.Portfolio{}
	for rows.Next() {
		var modelPortfolio models.Portfolio
		if scanErr := rows.Scan(
			&modelPortfolio.PortfolioID,
			&modelPortfolio.Name,
			&modelPortfolio.BaseCurrencyCode,
			&modelPortfolio.CreatedAt,
			&modelPortfolio.UpdatedAt,
		); scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan portfolio", scanErr)
		}
		portfolios = append(portfolios, mapping.ToDomainPortfolio(modelPortfolio))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating portfolios", err)
	}

	return portfolios, nil
}

// DeletePortfolio removes a portfolio; positions cascade at the schema level.
func (r *PgxPortfolioRepository) DeletePortfolio(ctx context.Context, portfolioID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM portfolios WHERE portfolio_id = $1;`, portfolioID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete portfolio "+portfolioID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SavePosition inserts a new position.
func (r *PgxPortfolioRepository) SavePosition(ctx context.Context, position domain.Position) error {
	modelPosition := mapping.ToModelPosition(position)

	query := `
		INSERT INTO positions (position_id, portfolio_id, currency_code, amount, side, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelPosition.PositionID,
		modelPosition.PortfolioID,
		modelPosition.CurrencyCode,
		modelPosition.Amount,
		modelPosition.Side,
		modelPosition.CreatedAt,
		modelPosition.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save position", err)
	}
	return nil
}

// FindPositionByID retrieves a position by its ID.
func (r *PgxPortfolioRepository) FindPositionByID(ctx context.Context, positionID string) (*domain.Position, error) {
	query := `
		SELECT position_id, portfolio_id, currency_code, amount, side, created_at, updated_at
		FROM positions
		WHERE position_id = $1;
	`
	var modelPosition models.Position
	err := r.Pool.QueryRow(ctx, query, positionID).Scan(
		&modelPosition.PositionID,
		&modelPosition.PortfolioID,
		&modelPosition.CurrencyCode,
		&modelPosition.Amount,
		&modelPosition.Side,
		&modelPosition.CreatedAt,
		&modelPosition.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find position "+positionID, err)
	}

	domainPosition := mapping.ToDomainPosition(modelPosition)
	return &domainPosition, nil
}

// ListPositions retrieves all positions for a portfolio.
func (r *PgxPortfolioRepository) ListPositions(ctx context.Context, portfolioID string) ([]domain.Position, error) {
	query := `
		SELECT position_id, portfolio_id, currency_code, amount, side, created_at, updated_at
		FROM positions
		WHERE portfolio_id = $1
		ORDER BY currency_code;
	`
	rows, err := r.Pool.Query(ctx, query, portfolioID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query positions", err)
	}
	defer rows.Close()

	positions := []domain.Position{}
	for rows.Next() {
		var modelPosition models.Position
		if scanErr := rows.Scan(
			&modelPosition.PositionID,
			&modelPosition.PortfolioID,
			&modelPosition.CurrencyCode,
			&modelPosition.Amount,
			&modelPosition.Side,
			&modelPosition.CreatedAt,
			&modelPosition.UpdatedAt,
		); scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan position", scanErr)
		}
		positions = append(positions, mapping.ToDomainPosition(modelPosition))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating positions", err)
	}

	return positions, nil
}

// DeletePosition removes a position.
func (r *PgxPortfolioRepository) DeletePosition(ctx context.Context, positionID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM positions WHERE position_id = $1;`, positionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete position "+positionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
