package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/apperrors"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/domain"
	portsrepo "github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/ports/repositories"
	portssvc "github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/ports/services"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/dto"
)

// PortfolioService manages portfolios and their positions.
type PortfolioService struct {
	BaseService
	portfolioRepo portsrepo.PortfolioRepositoryFacade
	currencySvc   portssvc.CurrencyReaderSvc
}

// NewPortfolioService creates a new PortfolioService.
func NewPortfolioService(portfolioRepo portsrepo.PortfolioRepositoryFacade, currencySvc portssvc.CurrencyReaderSvc) *PortfolioService {
	return &PortfolioService{
		portfolioRepo: portfolioRepo,
		currencySvc:   currencySvc,
	}
}

// CreatePortfolio persists a new portfolio after checking that its base
// currency is allowed.
func (s *PortfolioService) CreatePortfolio(ctx context.Context, req dto.CreatePortfolioRequest) (*domain.Portfolio, error) {
	baseCode := strings.ToUpper(req.BaseCurrencyCode)
	if !s.currencySvc.IsAllowed(ctx, baseCode) {
		return nil, fmt.Errorf("%w: base currency '%s' is not in the allowlist", apperrors.ErrValidation, baseCode)
	}

	now := time.Now()
	portfolio := domain.Portfolio{
		PortfolioID:      uuid.NewString(),
		Name:             req.Name,
		BaseCurrencyCode: baseCode,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.portfolioRepo.SavePortfolio(ctx, portfolio); err != nil {
		s.LogError(ctx, err, "failed to create portfolio")
		return nil, fmt.Errorf("failed to create portfolio in service: %w", err)
	}

	return &portfolio, nil
}

// GetPortfolio retrieves a portfolio by ID.
func (s *PortfolioService) GetPortfolio(ctx context.Context, portfolioID string) (*domain.Portfolio, error) {
	portfolio, err := s.portfolioRepo.FindPortfolioByID(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio in service: %w", err)
	}
	return portfolio, nil
}

// ListPortfolios retrieves all portfolios.
func (s *PortfolioService) ListPortfolios(ctx context.Context) ([]domain.Portfolio, error) {
	portfolios, err := s.portfolioRepo.ListPortfolios(ctx)
	if err != nil {
		s.LogError(ctx, err, "failed to list portfolios")
		return nil, fmt.Errorf("failed to list portfolios in service: %w", err)
	}
	if portfolios == nil {
		return []domain.Portfolio{}, nil
	}
	return portfolios, nil
}

// DeletePortfolio removes a portfolio and, via schema cascade, its positions.
func (s *PortfolioService) DeletePortfolio(ctx context.Context, portfolioID string) error {
	if err := s.portfolioRepo.DeletePortfolio(ctx, portfolioID); err != nil {
		return fmt.Errorf("failed to delete portfolio in service: %w", err)
	}
	return nil
}

// AddPosition persists a new position inside a portfolio. The portfolio must
// exist, the currency must be allowed, and the amount must be positive; the
// sign of a position comes from its side, never from the amount.
func (s *PortfolioService) AddPosition(ctx context.Context, portfolioID string, req dto.CreatePositionRequest) (*domain.Position, error) {
	if _, err := s.portfolioRepo.FindPortfolioByID(ctx, portfolioID); err != nil {
		return nil, fmt.Errorf("failed to find portfolio for position: %w", err)
	}

	currencyCode := strings.ToUpper(req.CurrencyCode)
	if !s.currencySvc.IsAllowed(ctx, currencyCode) {
		return nil, fmt.Errorf("%w: currency '%s' is not in the allowlist", apperrors.ErrValidation, currencyCode)
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: position amount must be positive", apperrors.ErrValidation)
	}

	side := domain.PositionSide(strings.ToUpper(req.Side))
	if !side.IsValid() {
		return nil, fmt.Errorf("%w: side must be LONG or SHORT", apperrors.ErrValidation)
	}

	now := time.Now()
	position := domain.Position{
		PositionID:   uuid.NewString(),
		PortfolioID:  portfolioID,
		CurrencyCode: currencyCode,
		Amount:       req.Amount,
		Side:         side,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.portfolioRepo.SavePosition(ctx, position); err != nil {
		s.LogError(ctx, err, "failed to add position")
		return nil, fmt.Errorf("failed to add position in service: %w", err)
	}

	return &position, nil
}

// RemovePosition removes a position, verifying it belongs to the given
// portfolio first so a valid position ID cannot be deleted through the wrong
// portfolio's URL.
func (s *PortfolioService) RemovePosition(ctx context.Context, portfolioID, positionID string) error {
	position, err := s.portfolioRepo.FindPositionByID(ctx, positionID)
	if err != nil {
		return fmt.Errorf("failed to find position for removal: %w", err)
	}
	if position.PortfolioID != portfolioID {
		return apperrors.ErrNotFound
	}

	if err := s.portfolioRepo.DeletePosition(ctx, positionID); err != nil {
		return fmt.Errorf("failed to remove position in service: %w", err)
	}
	return nil
}
