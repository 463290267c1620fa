package services

import (
	"context"

	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/domain"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/dto"
)

// PortfolioReaderSvc defines read operations for portfolios and positions.
type PortfolioReaderSvc interface {
	// GetPortfolio retrieves a portfolio by ID.
	GetPortfolio(ctx context.Context, portfolioID string) (*domain.Portfolio, error)

	// ListPortfolios retrieves all portfolios.
	ListPortfolios(ctx context.Context) ([]domain.Portfolio, error)

	// ListPositions retrieves a portfolio's positions.
	ListPositions(ctx context.Context, portfolioID string) ([]domain.Position, error)
}

// PortfolioWriterSvc defines write operations for portfolios and positions.
type PortfolioWriterSvc interface {
	// CreatePortfolio persists a new portfolio.
	CreatePortfolio(ctx context.Context, req dto.CreatePortfolioRequest) (*domain.Portfolio, error)

	// DeletePortfolio removes a portfolio and its positions.
	DeletePortfolio(ctx context.Context, portfolioID string) error

	// AddPosition persists a new position inside a portfolio.
	AddPosition(ctx context.Context, portfolioID string, req dto.CreatePositionRequest) (*domain.Position, error)

	// RemovePosition removes a position from a portfolio.
	RemovePosition(ctx context.Context, portfolioID, positionID string) error
}

// PortfolioSvcFacade combines all portfolio-related service interfaces.
type PortfolioSvcFacade interface {
	PortfolioReaderSvc
	PortfolioWriterSvc
}

// ValuationSvcFacade computes portfolio metrics in a view base currency.
type ValuationSvcFacade interface {
	// PortfolioValue computes the aggregate signed value of a portfolio.
	PortfolioValue(ctx context.Context, portfolioID, viewBase string) (*domain.PortfolioValuation, error)

	// PortfolioExposure breaks the portfolio down by currency.
	PortfolioExposure(ctx context.Context, portfolioID, viewBase string) (*domain.PortfolioExposure, error)
}
