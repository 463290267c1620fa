package repositories

import (
	"context"

	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/domain"
)

// PortfolioReader defines read operations for portfolios and their positions.
type PortfolioReader interface {
	// FindPortfolioByID retrieves a portfolio by its ID.
	FindPortfolioByID(ctx context.Context, portfolioID string) (*domain.Portfolio, error)

	// ListPortfolios retrieves all portfolios.
	ListPortfolios(ctx context.Context) ([]domain.Portfolio, error)

	// ListPositions retrieves all positions belonging to a portfolio.
	ListPositions(ctx context.Context, portfolioID string) ([]domain.Position, error)

	// FindPositionByID retrieves a single position by its ID.
	FindPositionByID(ctx context.Context, positionID string) (*domain.Position, error)
}

// PortfolioWriter defines write operations for portfolios and positions.
type PortfolioWriter interface {
	// SavePortfolio persists a new portfolio.
	SavePortfolio(ctx context.Context, portfolio domain.Portfolio) error

	// DeletePortfolio removes a portfolio and its positions.
	DeletePortfolio(ctx context.Context, portfolioID string) error

	// SavePosition persists a new position.
	SavePosition(ctx context.Context, position domain.Position) error

	// DeletePosition removes a position.
	DeletePosition(ctx context.Context, positionID string) error
}

// PortfolioRepositoryFacade combines all portfolio repository interfaces.
type PortfolioRepositoryFacade interface {
	PortfolioReader
	PortfolioWriter
}
