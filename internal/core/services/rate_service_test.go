package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/apperrors"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/domain"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/services"
)

// --- Mock RateProvider ---
type MockRateProvider struct {
	mock.Mock
	name string
}

func (m *MockRateProvider) Name() string {
	return m.name
}

func (m *MockRateProvider) GetLatest(ctx context.Context, base string) (*domain.RateSnapshot, error) {
	args := m.Called(ctx, base)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateSnapshot), args.Error(1)
}

func (m *MockRateProvider) GetHistory(ctx context.Context, base, symbol string, days int) (*domain.RateHistorySeries, error) {
	args := m.Called(ctx, base, symbol, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateHistorySeries), args.Error(1)
}

// --- Mock FxRateRepository ---
type MockFxRateRepository struct {
	mock.Mock
}

func (m *MockFxRateRepository) UpsertRates(ctx context.Context, rates []domain.FxRate) error {
	args := m.Called(ctx, rates)
	return args.Error(0)
}

func (m *MockFxRateRepository) LatestSnapshot(ctx context.Context, base string) (*domain.RateSnapshot, error) {
	args := m.Called(ctx, base)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateSnapshot), args.Error(1)
}

func (m *MockFxRateRepository) History(ctx context.Context, base, symbol string, limit int) ([]domain.RatePoint, error) {
	args := m.Called(ctx, base, symbol, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RatePoint), args.Error(1)
}

// --- Test Suite ---
type RateOrchestratorTestSuite struct {
	suite.Suite
	primary  *MockRateProvider
	fallback *MockRateProvider
	rateRepo *MockFxRateRepository
	service  *services.RateOrchestratorService
}

func (suite *RateOrchestratorTestSuite) SetupTest() {
	suite.primary = &MockRateProvider{name: "exchange"}
	suite.fallback = &MockRateProvider{name: "ecb"}
	suite.rateRepo = new(MockFxRateRepository)
	suite.service = services.NewRateOrchestratorService(suite.primary, suite.fallback, suite.rateRepo, "usd", time.Minute)
}

func usdSnapshot(source string) *domain.RateSnapshot {
	return domain.NewRateSnapshot(source, "USD", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), map[string]decimal.Decimal{
		"EUR": decimal.RequireFromString("0.5"),
		"GBP": decimal.RequireFromString("0.8"),
	})
}

// --- Test Cases ---

func (suite *RateOrchestratorTestSuite) TestCanonicalBase_Normalized() {
	assert.Equal(suite.T(), "USD", suite.service.CanonicalBase())
}

func (suite *RateOrchestratorTestSuite) TestRefresh_PrimarySuccess() {
	ctx := context.Background()
	snapshot := usdSnapshot("exchange")

	suite.primary.On("GetLatest", ctx, "USD").Return(snapshot, nil).Once()
	suite.rateRepo.On("UpsertRates", ctx, mock.Anything).Return(nil).Once()

	result, err := suite.service.Refresh(ctx)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "exchange", result.Source)
	assert.False(suite.T(), result.Stale)
	assert.Equal(suite.T(), snapshot.AsOf, result.AsOf)
	suite.primary.AssertExpectations(suite.T())
	suite.rateRepo.AssertExpectations(suite.T())
	suite.fallback.AssertNotCalled(suite.T(), "GetLatest", mock.Anything, mock.Anything)
}

func (suite *RateOrchestratorTestSuite) TestRefresh_FallbackSuccess() {
	ctx := context.Background()
	snapshot := usdSnapshot("ecb")

	suite.primary.On("GetLatest", ctx, "USD").Return(nil, errors.New("boom")).Once()
	suite.fallback.On("GetLatest", ctx, "USD").Return(snapshot, nil).Once()
	suite.rateRepo.On("UpsertRates", ctx, mock.Anything).Return(nil).Once()

	result, err := suite.service.Refresh(ctx)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "ecb", result.Source)
	assert.False(suite.T(), result.Stale)
	suite.primary.AssertExpectations(suite.T())
	suite.fallback.AssertExpectations(suite.T())
}

func (suite *RateOrchestratorTestSuite) TestRefresh_StaleCacheWhenAllProvidersFail() {
	ctx := context.Background()
	snapshot := usdSnapshot("exchange")

	// First refresh populates the cache.
	suite.primary.On("GetLatest", ctx, "USD").Return(snapshot, nil).Once()
	suite.rateRepo.On("UpsertRates", ctx, mock.Anything).Return(nil).Once()
	_, err := suite.service.Refresh(ctx)
	assert.NoError(suite.T(), err)

	// Second refresh fails on both providers and serves the cache stale.
	suite.primary.On("GetLatest", ctx, "USD").Return(nil, errors.New("primary down")).Once()
	suite.fallback.On("GetLatest", ctx, "USD").Return(nil, errors.New("fallback down")).Once()

	result, err := suite.service.Refresh(ctx)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), result.Stale)
	assert.Equal(suite.T(), "exchange", result.Source)
	assert.Equal(suite.T(), snapshot.AsOf, result.AsOf)
	// Stale servings are never re-persisted.
	suite.rateRepo.AssertNumberOfCalls(suite.T(), "UpsertRates", 1)

	health := suite.service.Health(ctx)
	assert.True(suite.T(), health.Stale)
	assert.Equal(suite.T(), "exchange", health.Source)
}

func (suite *RateOrchestratorTestSuite) TestRefresh_UnavailableWhenNoCacheExists() {
	ctx := context.Background()

	suite.primary.On("GetLatest", ctx, "USD").Return(nil, errors.New("primary down")).Once()
	suite.fallback.On("GetLatest", ctx, "USD").Return(nil, errors.New("fallback down")).Once()

	_, err := suite.service.Refresh(ctx)

	assert.ErrorIs(suite.T(), err, apperrors.ErrRatesUnavailable)
}

func (suite *RateOrchestratorTestSuite) TestRefresh_PersistFailureStillServes() {
	ctx := context.Background()
	snapshot := usdSnapshot("exchange")

	suite.primary.On("GetLatest", ctx, "USD").Return(snapshot, nil).Once()
	suite.rateRepo.On("UpsertRates", ctx, mock.Anything).Return(errors.New("db down")).Once()

	result, err := suite.service.Refresh(ctx)

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), result.Stale)

	// The in-memory snapshot serves reads despite the failed write.
	rebased, err := suite.service.GetSnapshot(ctx, "USD")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "USD", rebased.Base)
}

func (suite *RateOrchestratorTestSuite) TestRefreshManual_ThrottledInsideCooldown() {
	ctx := context.Background()
	snapshot := usdSnapshot("exchange")

	suite.primary.On("GetLatest", ctx, "USD").Return(snapshot, nil).Once()
	suite.rateRepo.On("UpsertRates", ctx, mock.Anything).Return(nil).Once()

	_, err := suite.service.RefreshManual(ctx)
	assert.NoError(suite.T(), err)

	_, err = suite.service.RefreshManual(ctx)

	var throttled *apperrors.ThrottledError
	assert.ErrorAs(suite.T(), err, &throttled)
	assert.Greater(suite.T(), throttled.RetryAfter, time.Duration(0))
	// The throttled call never reached a provider.
	suite.primary.AssertNumberOfCalls(suite.T(), "GetLatest", 1)
	suite.fallback.AssertNotCalled(suite.T(), "GetLatest", mock.Anything, mock.Anything)
}

func (suite *RateOrchestratorTestSuite) TestGetSnapshot_RebasesToViewBase() {
	ctx := context.Background()
	snapshot := usdSnapshot("exchange")

	suite.primary.On("GetLatest", ctx, "USD").Return(snapshot, nil).Once()
	suite.rateRepo.On("UpsertRates", ctx, mock.Anything).Return(nil).Once()
	_, err := suite.service.Refresh(ctx)
	assert.NoError(suite.T(), err)

	rebased, err := suite.service.GetSnapshot(ctx, "eur")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "EUR", rebased.Base)
	eur, _ := rebased.Rate("EUR")
	assert.True(suite.T(), eur.Equal(decimal.NewFromInt(1)))
	usd, _ := rebased.Rate("USD")
	assert.True(suite.T(), usd.Equal(decimal.NewFromInt(2)))
	gbp, _ := rebased.Rate("GBP")
	assert.True(suite.T(), gbp.Equal(decimal.RequireFromString("1.6")))
}

func (suite *RateOrchestratorTestSuite) TestGetSnapshot_LoadsPersistedSnapshotWhenCold() {
	ctx := context.Background()
	persisted := usdSnapshot("ecb")

	suite.rateRepo.On("LatestSnapshot", ctx, "USD").Return(persisted, nil).Once()

	snapshot, err := suite.service.GetSnapshot(ctx, "USD")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "ecb", snapshot.Source)

	// A restored snapshot is of unknown freshness, so health reports stale.
	health := suite.service.Health(ctx)
	assert.True(suite.T(), health.Stale)
	assert.NotNil(suite.T(), health.LastUpdated)
}

func (suite *RateOrchestratorTestSuite) TestGetSnapshot_UnavailableWhenNothingPersisted() {
	ctx := context.Background()

	suite.rateRepo.On("LatestSnapshot", ctx, "USD").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetSnapshot(ctx, "USD")

	assert.ErrorIs(suite.T(), err, apperrors.ErrRatesUnavailable)
}

func (suite *RateOrchestratorTestSuite) TestGetSnapshot_MissingViewBaseQuote() {
	ctx := context.Background()
	snapshot := usdSnapshot("exchange")

	suite.primary.On("GetLatest", ctx, "USD").Return(snapshot, nil).Once()
	suite.rateRepo.On("UpsertRates", ctx, mock.Anything).Return(nil).Once()
	_, err := suite.service.Refresh(ctx)
	assert.NoError(suite.T(), err)

	_, err = suite.service.GetSnapshot(ctx, "ZZZ")

	var missing *apperrors.MissingQuoteError
	assert.ErrorAs(suite.T(), err, &missing)
	assert.Equal(suite.T(), "ZZZ", missing.Base)
}

func (suite *RateOrchestratorTestSuite) TestHealth_EmptyBeforeFirstRefresh() {
	health := suite.service.Health(context.Background())

	assert.Empty(suite.T(), health.Source)
	assert.Nil(suite.T(), health.LastUpdated)
	assert.False(suite.T(), health.Stale)
}

func TestRateOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(RateOrchestratorTestSuite))
}
