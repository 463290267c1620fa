package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/apperrors"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/domain"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/services"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/dto"
)

// --- Mock PortfolioRepository ---
type MockPortfolioRepository struct {
	mock.Mock
}

func (m *MockPortfolioRepository) SavePortfolio(ctx context.Context, portfolio domain.Portfolio) error {
	args := m.Called(ctx, portfolio)
	return args.Error(0)
}

func (m *MockPortfolioRepository) FindPortfolioByID(ctx context.Context, portfolioID string) (*domain.Portfolio, error) {
	args := m.Called(ctx, portfolioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Portfolio), args.Error(1)
}

func (m *MockPortfolioRepository) ListPortfolios(ctx context.Context) ([]domain.Portfolio, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Portfolio), args.Error(1)
}

func (m *MockPortfolioRepository) DeletePortfolio(ctx context.Context, portfolioID string) error {
	args := m.Called(ctx, portfolioID)
	return args.Error(0)
}

func (m *MockPortfolioRepository) SavePosition(ctx context.Context, position domain.Position) error {
	args := m.Called(ctx, position)
	return args.Error(0)
}

func (m *MockPortfolioRepository) FindPositionByID(ctx context.Context, positionID string) (*domain.Position, error) {
	args := m.Called(ctx, positionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Position), args.Error(1)
}

func (m *MockPortfolioRepository) ListPositions(ctx context.Context, portfolioID string) ([]domain.Position, error) {
	args := m.Called(ctx, portfolioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Position), args.Error(1)
}

func (m *MockPortfolioRepository) DeletePosition(ctx context.Context, positionID string) error {
	args := m.Called(ctx, positionID)
	return args.Error(0)
}

// --- Mock CurrencyReaderSvc ---
type MockCurrencyReader struct {
	mock.Mock
}

func (m *MockCurrencyReader) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyReader) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyReader) IsAllowed(ctx context.Context, code string) bool {
	args := m.Called(ctx, code)
	return args.Bool(0)
}

// --- Test Suite ---
type PortfolioServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockPortfolioRepository
	mockCurrency *MockCurrencyReader
	service      *services.PortfolioService
}

func (suite *PortfolioServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPortfolioRepository)
	suite.mockCurrency = new(MockCurrencyReader)
	suite.service = services.NewPortfolioService(suite.mockRepo, suite.mockCurrency)
}

// --- Test Cases ---

func (suite *PortfolioServiceTestSuite) TestCreatePortfolio_Success() {
	ctx := context.Background()
	req := dto.CreatePortfolioRequest{Name: "Treasury", BaseCurrencyCode: "USD"}

	suite.mockCurrency.On("IsAllowed", ctx, "USD").Return(true).Once()
	suite.mockRepo.On("SavePortfolio", ctx, mock.MatchedBy(func(p domain.Portfolio) bool {
		return p.Name == "Treasury" && p.BaseCurrencyCode == "USD" && p.PortfolioID != ""
	})).Return(nil).Once()

	portfolio, err := suite.service.CreatePortfolio(ctx, req)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Treasury", portfolio.Name)
	assert.Equal(suite.T(), "USD", portfolio.BaseCurrencyCode)
	assert.NotEmpty(suite.T(), portfolio.PortfolioID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PortfolioServiceTestSuite) TestCreatePortfolio_DisallowedBaseCurrency() {
	ctx := context.Background()
	req := dto.CreatePortfolioRequest{Name: "Treasury", BaseCurrencyCode: "XXX"}

	suite.mockCurrency.On("IsAllowed", ctx, "XXX").Return(false).Once()

	_, err := suite.service.CreatePortfolio(ctx, req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePortfolio", mock.Anything, mock.Anything)
}

func (suite *PortfolioServiceTestSuite) TestAddPosition_Success() {
	ctx := context.Background()
	portfolioID := uuid.NewString()
	req := dto.CreatePositionRequest{CurrencyCode: "EUR", Amount: decimal.RequireFromString("1000"), Side: "SHORT"}

	suite.mockRepo.On("FindPortfolioByID", ctx, portfolioID).Return(&domain.Portfolio{PortfolioID: portfolioID}, nil).Once()
	suite.mockCurrency.On("IsAllowed", ctx, "EUR").Return(true).Once()
	suite.mockRepo.On("SavePosition", ctx, mock.MatchedBy(func(p domain.Position) bool {
		return p.PortfolioID == portfolioID && p.CurrencyCode == "EUR" && p.Side == domain.Short
	})).Return(nil).Once()

	position, err := suite.service.AddPosition(ctx, portfolioID, req)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.Short, position.Side)
	assert.True(suite.T(), position.Amount.Equal(decimal.RequireFromString("1000")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PortfolioServiceTestSuite) TestAddPosition_NonPositiveAmount() {
	ctx := context.Background()
	portfolioID := uuid.NewString()
	req := dto.CreatePositionRequest{CurrencyCode: "EUR", Amount: decimal.Zero, Side: "LONG"}

	suite.mockRepo.On("FindPortfolioByID", ctx, portfolioID).Return(&domain.Portfolio{PortfolioID: portfolioID}, nil).Once()
	suite.mockCurrency.On("IsAllowed", ctx, "EUR").Return(true).Once()

	_, err := suite.service.AddPosition(ctx, portfolioID, req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePosition", mock.Anything, mock.Anything)
}

func (suite *PortfolioServiceTestSuite) TestAddPosition_PortfolioNotFound() {
	ctx := context.Background()
	portfolioID := uuid.NewString()
	req := dto.CreatePositionRequest{CurrencyCode: "EUR", Amount: decimal.NewFromInt(10), Side: "LONG"}

	suite.mockRepo.On("FindPortfolioByID", ctx, portfolioID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AddPosition(ctx, portfolioID, req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func (suite *PortfolioServiceTestSuite) TestRemovePosition_WrongPortfolio() {
	ctx := context.Background()
	positionID := uuid.NewString()
	position := &domain.Position{PositionID: positionID, PortfolioID: uuid.NewString()}

	suite.mockRepo.On("FindPositionByID", ctx, positionID).Return(position, nil).Once()

	err := suite.service.RemovePosition(ctx, uuid.NewString(), positionID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeletePosition", mock.Anything, mock.Anything)
}

func (suite *PortfolioServiceTestSuite) TestRemovePosition_Success() {
	ctx := context.Background()
	portfolioID := uuid.NewString()
	positionID := uuid.NewString()
	position := &domain.Position{PositionID: positionID, PortfolioID: portfolioID}

	suite.mockRepo.On("FindPositionByID", ctx, positionID).Return(position, nil).Once()
	suite.mockRepo.On("DeletePosition", ctx, positionID).Return(nil).Once()

	err := suite.service.RemovePosition(ctx, portfolioID, positionID)

	assert.NoError(suite.T(), err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestPortfolioServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PortfolioServiceTestSuite))
}
