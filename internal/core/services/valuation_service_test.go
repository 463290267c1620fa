package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/apperrors"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/domain"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/services"
)

// --- Mock RateSnapshotReaderSvc ---
type MockRateSnapshotReader struct {
	mock.Mock
}

func (m *MockRateSnapshotReader) GetSnapshot(ctx context.Context, viewBase string) (*domain.RateSnapshot, error) {
	args := m.Called(ctx, viewBase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateSnapshot), args.Error(1)
}

func (m *MockRateSnapshotReader) Health(ctx context.Context) domain.HealthStatus {
	args := m.Called(ctx)
	return args.Get(0).(domain.HealthStatus)
}

func (m *MockRateSnapshotReader) CanonicalBase() string {
	args := m.Called()
	return args.String(0)
}

// --- Test Suite ---
type ValuationServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockPortfolioRepository
	mockRates    *MockRateSnapshotReader
	mockCurrency *MockCurrencyReader
	service      *services.ValuationService

	portfolioID string
	portfolio   *domain.Portfolio
	snapshot    *domain.RateSnapshot
}

func (suite *ValuationServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPortfolioRepository)
	suite.mockRates = new(MockRateSnapshotReader)
	suite.mockCurrency = new(MockCurrencyReader)
	suite.service = services.NewValuationService(suite.mockRepo, suite.mockRates, suite.mockCurrency)

	suite.portfolioID = uuid.NewString()
	suite.portfolio = &domain.Portfolio{
		PortfolioID:      suite.portfolioID,
		Name:             "Treasury",
		BaseCurrencyCode: "USD",
	}
	suite.snapshot = domain.NewRateSnapshot("exchange", "USD", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), map[string]decimal.Decimal{
		"EUR": decimal.RequireFromString("0.5"),
		"JPY": decimal.RequireFromString("100"),
	})
}

func position(portfolioID, code, amount string, side domain.PositionSide) domain.Position {
	return domain.Position{
		PositionID:   uuid.NewString(),
		PortfolioID:  portfolioID,
		CurrencyCode: code,
		Amount:       decimal.RequireFromString(amount),
		Side:         side,
	}
}

// --- Test Cases ---

func (suite *ValuationServiceTestSuite) TestPortfolioValue_SignedAggregation() {
	ctx := context.Background()
	positions := []domain.Position{
		position(suite.portfolioID, "EUR", "100", domain.Long),  // +200 USD
		position(suite.portfolioID, "JPY", "5000", domain.Short), // -50 USD
	}

	suite.mockRepo.On("FindPortfolioByID", ctx, suite.portfolioID).Return(suite.portfolio, nil).Once()
	suite.mockRates.On("GetSnapshot", ctx, "USD").Return(suite.snapshot, nil).Once()
	suite.mockRepo.On("ListPositions", ctx, suite.portfolioID).Return(positions, nil).Once()
	suite.mockCurrency.On("IsAllowed", ctx, mock.Anything).Return(true)

	valuation, err := suite.service.PortfolioValue(ctx, suite.portfolioID, "")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "USD", valuation.ViewBase)
	assert.True(suite.T(), valuation.Value.Equal(decimal.NewFromInt(150)), "got %s", valuation.Value)
	assert.Equal(suite.T(), 2, valuation.Priced)
	assert.Equal(suite.T(), 0, valuation.Unpriced)
	assert.Equal(suite.T(), "exchange", valuation.Source)
	assert.NotNil(suite.T(), valuation.AsOf)
}

func (suite *ValuationServiceTestSuite) TestPortfolioValue_UnpricedPositionsReported() {
	ctx := context.Background()
	missingRate := position(suite.portfolioID, "ZZZ", "10", domain.Long)
	unknown := position(suite.portfolioID, "XXX", "10", domain.Long)
	priced := position(suite.portfolioID, "EUR", "100", domain.Long)
	positions := []domain.Position{priced, missingRate, unknown}

	suite.mockRepo.On("FindPortfolioByID", ctx, suite.portfolioID).Return(suite.portfolio, nil).Once()
	suite.mockRates.On("GetSnapshot", ctx, "USD").Return(suite.snapshot, nil).Once()
	suite.mockRepo.On("ListPositions", ctx, suite.portfolioID).Return(positions, nil).Once()
	suite.mockCurrency.On("IsAllowed", ctx, "EUR").Return(true).Once()
	suite.mockCurrency.On("IsAllowed", ctx, "ZZZ").Return(true).Once()
	suite.mockCurrency.On("IsAllowed", ctx, "XXX").Return(false).Once()

	valuation, err := suite.service.PortfolioValue(ctx, suite.portfolioID, "USD")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, valuation.Priced)
	assert.Equal(suite.T(), 2, valuation.Unpriced)
	assert.True(suite.T(), valuation.Value.Equal(decimal.NewFromInt(200)))
	assert.Contains(suite.T(), valuation.UnpricedReasons[domain.UnpricedReasonMissingRate], missingRate.PositionID)
	assert.Contains(suite.T(), valuation.UnpricedReasons[domain.UnpricedReasonUnknownCurrency], unknown.PositionID)
}

func (suite *ValuationServiceTestSuite) TestPortfolioValue_RatesUnavailable() {
	ctx := context.Background()

	suite.mockRepo.On("FindPortfolioByID", ctx, suite.portfolioID).Return(suite.portfolio, nil).Once()
	suite.mockRates.On("GetSnapshot", ctx, "USD").Return(nil, apperrors.ErrRatesUnavailable).Once()

	_, err := suite.service.PortfolioValue(ctx, suite.portfolioID, "")

	assert.ErrorIs(suite.T(), err, apperrors.ErrRatesUnavailable)
}

func (suite *ValuationServiceTestSuite) TestPortfolioValue_PortfolioNotFound() {
	ctx := context.Background()
	unknownID := uuid.NewString()

	suite.mockRepo.On("FindPortfolioByID", ctx, unknownID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.PortfolioValue(ctx, unknownID, "")

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func (suite *ValuationServiceTestSuite) TestPortfolioExposure_GroupedByCurrency() {
	ctx := context.Background()
	positions := []domain.Position{
		position(suite.portfolioID, "EUR", "100", domain.Long),
		position(suite.portfolioID, "EUR", "40", domain.Short),
		position(suite.portfolioID, "JPY", "5000", domain.Short),
	}

	suite.mockRepo.On("FindPortfolioByID", ctx, suite.portfolioID).Return(suite.portfolio, nil).Once()
	suite.mockRates.On("GetSnapshot", ctx, "USD").Return(suite.snapshot, nil).Once()
	suite.mockRepo.On("ListPositions", ctx, suite.portfolioID).Return(positions, nil).Once()
	suite.mockCurrency.On("IsAllowed", ctx, mock.Anything).Return(true)

	exposure, err := suite.service.PortfolioExposure(ctx, suite.portfolioID, "USD")

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), exposure.Exposures, 2)
	assert.Equal(suite.T(), 0, exposure.Unpriced)

	eur := exposure.Exposures[0]
	assert.Equal(suite.T(), "EUR", eur.CurrencyCode)
	assert.True(suite.T(), eur.NativeAmount.Equal(decimal.NewFromInt(60)), "got %s", eur.NativeAmount)
	assert.True(suite.T(), eur.BaseValue.Equal(decimal.NewFromInt(120)), "got %s", eur.BaseValue)

	jpy := exposure.Exposures[1]
	assert.Equal(suite.T(), "JPY", jpy.CurrencyCode)
	assert.True(suite.T(), jpy.NativeAmount.Equal(decimal.NewFromInt(-5000)))
	assert.True(suite.T(), jpy.BaseValue.Equal(decimal.NewFromInt(-50)))
}

func (suite *ValuationServiceTestSuite) TestPortfolioExposure_UnpricedCounted() {
	ctx := context.Background()
	positions := []domain.Position{
		position(suite.portfolioID, "EUR", "100", domain.Long),
		position(suite.portfolioID, "ZZZ", "10", domain.Long),
	}

	suite.mockRepo.On("FindPortfolioByID", ctx, suite.portfolioID).Return(suite.portfolio, nil).Once()
	suite.mockRates.On("GetSnapshot", ctx, "USD").Return(suite.snapshot, nil).Once()
	suite.mockRepo.On("ListPositions", ctx, suite.portfolioID).Return(positions, nil).Once()
	suite.mockCurrency.On("IsAllowed", ctx, mock.Anything).Return(true)

	exposure, err := suite.service.PortfolioExposure(ctx, suite.portfolioID, "USD")

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), exposure.Exposures, 1)
	assert.Equal(suite.T(), 1, exposure.Unpriced)
}

func TestValuationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ValuationServiceTestSuite))
}
