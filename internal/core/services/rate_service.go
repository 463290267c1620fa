package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/adapters/fxprovider"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/apperrors"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/domain"
	portsrepo "github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/ports/repositories"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/platform/metrics"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/utils/fxmath"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/utils/mapping"
)

// RateOrchestratorService coordinates rate acquisition across a primary
// provider, an optional fallback provider, and a last-known-good cache.
// Every snapshot it caches or persists is expressed in the canonical base;
// other bases are derived on read via rebasing.
//
// The cache is per instance and guarded by a mutex. Concurrent refreshes may
// both hit providers, but the cache always holds one consistent snapshot.
type RateOrchestratorService struct {
	BaseService
	primary  fxprovider.RateProvider
	fallback fxprovider.RateProvider
	rateRepo portsrepo.FxRateRepositoryFacade

	canonicalBase string
	throttle      time.Duration

	mu            sync.Mutex
	lastKnownGood *domain.RateSnapshot
	stale         bool
	lastManual    time.Time
}

// NewRateOrchestratorService creates the orchestrator. fallback may be nil,
// in which case the chain goes straight from the primary to the cache.
func NewRateOrchestratorService(primary, fallback fxprovider.RateProvider, rateRepo portsrepo.FxRateRepositoryFacade, canonicalBase string, throttle time.Duration) *RateOrchestratorService {
	return &RateOrchestratorService{
		primary:       primary,
		fallback:      fallback,
		rateRepo:      rateRepo,
		canonicalBase: strings.ToUpper(canonicalBase),
		throttle:      throttle,
	}
}

// CanonicalBase returns the configured persistence base currency.
func (s *RateOrchestratorService) CanonicalBase() string {
	return s.canonicalBase
}

// Refresh walks the acquisition chain exactly once: primary provider, then
// fallback provider, then the cached last-known-good snapshot marked stale.
// A fresh snapshot replaces the cache and is persisted; a persistence failure
// is logged but does not fail the refresh, since the in-memory snapshot is
// already serving reads.
func (s *RateOrchestratorService) Refresh(ctx context.Context) (domain.RefreshResult, error) {
	start := time.Now()
	defer func() {
		metrics.RateRefreshDuration.Observe(time.Since(start).Seconds())
	}()

	snapshot, primaryErr := s.primary.GetLatest(ctx, s.canonicalBase)
	if primaryErr == nil {
		return s.acceptFresh(ctx, snapshot), nil
	}
	s.LogWarn(ctx, "primary rate provider failed",
		slog.String("provider", s.primary.Name()),
		slog.String("error", primaryErr.Error()))
	metrics.RateRefreshTotal.WithLabelValues(s.primary.Name(), metrics.OutcomeError).Inc()

	var fallbackErr error
	if s.fallback != nil {
		snapshot, fallbackErr = s.fallback.GetLatest(ctx, s.canonicalBase)
		if fallbackErr == nil {
			return s.acceptFresh(ctx, snapshot), nil
		}
		s.LogWarn(ctx, "fallback rate provider failed",
			slog.String("provider", s.fallback.Name()),
			slog.String("error", fallbackErr.Error()))
		metrics.RateRefreshTotal.WithLabelValues(s.fallback.Name(), metrics.OutcomeError).Inc()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastKnownGood != nil {
		s.stale = true
		metrics.RateRefreshTotal.WithLabelValues(s.lastKnownGood.Source, metrics.OutcomeStale).Inc()
		s.LogWarn(ctx, "all providers failed, serving stale snapshot",
			slog.String("source", s.lastKnownGood.Source),
			slog.Time("as_of", s.lastKnownGood.AsOf))
		return domain.RefreshResult{
			Source: s.lastKnownGood.Source,
			AsOf:   s.lastKnownGood.AsOf,
			Stale:  true,
		}, nil
	}

	if fallbackErr != nil {
		return domain.RefreshResult{}, fmt.Errorf("%w: primary: %v, fallback: %v", apperrors.ErrRatesUnavailable, primaryErr, fallbackErr)
	}
	return domain.RefreshResult{}, fmt.Errorf("%w: primary: %v", apperrors.ErrRatesUnavailable, primaryErr)
}

// RefreshManual is the throttle-gated variant used by the manual refresh
// endpoint. A call inside the cooldown window fails without touching any
// provider; a call that passes the gate consumes it regardless of outcome.
func (s *RateOrchestratorService) RefreshManual(ctx context.Context) (domain.RefreshResult, error) {
	s.mu.Lock()
	if !s.lastManual.IsZero() {
		elapsed := time.Since(s.lastManual)
		if elapsed < s.throttle {
			s.mu.Unlock()
			return domain.RefreshResult{}, &apperrors.ThrottledError{RetryAfter: s.throttle - elapsed}
		}
	}
	s.lastManual = time.Now()
	s.mu.Unlock()

	return s.Refresh(ctx)
}

// GetSnapshot returns the latest snapshot expressed in viewBase. If the
// in-memory cache is empty (fresh process), it falls back to the newest
// persisted canonical snapshot before giving up.
func (s *RateOrchestratorService) GetSnapshot(ctx context.Context, viewBase string) (*domain.RateSnapshot, error) {
	s.mu.Lock()
	snapshot := s.lastKnownGood
	s.mu.Unlock()

	if snapshot == nil {
		persisted, err := s.rateRepo.LatestSnapshot(ctx, s.canonicalBase)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.ErrRatesUnavailable
			}
			return nil, fmt.Errorf("failed to load persisted snapshot: %w", err)
		}

		s.mu.Lock()
		// Another goroutine may have refreshed meanwhile; keep the newer one.
		if s.lastKnownGood == nil {
			s.lastKnownGood = persisted
			s.stale = true
		}
		snapshot = s.lastKnownGood
		s.mu.Unlock()
	}

	viewBase = strings.ToUpper(strings.TrimSpace(viewBase))
	if viewBase == "" {
		viewBase = s.canonicalBase
	}

	rebased, err := fxmath.RebaseSnapshot(snapshot, viewBase)
	if err != nil {
		return nil, err
	}
	return rebased, nil
}

// Health reports the provenance of the current snapshot without triggering a
// fetch.
func (s *RateOrchestratorService) Health(ctx context.Context) domain.HealthStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastKnownGood == nil {
		return domain.HealthStatus{}
	}

	asOf := s.lastKnownGood.AsOf
	return domain.HealthStatus{
		Source:      s.lastKnownGood.Source,
		LastUpdated: &asOf,
		Stale:       s.stale,
	}
}

// acceptFresh installs a freshly fetched snapshot and persists it.
func (s *RateOrchestratorService) acceptFresh(ctx context.Context, snapshot *domain.RateSnapshot) domain.RefreshResult {
	s.mu.Lock()
	s.lastKnownGood = snapshot
	s.stale = false
	s.mu.Unlock()

	metrics.RateRefreshTotal.WithLabelValues(snapshot.Source, metrics.OutcomeSuccess).Inc()

	if err := s.rateRepo.UpsertRates(ctx, mapping.SnapshotToFxRates(snapshot)); err != nil {
		s.LogError(ctx, err, "failed to persist refreshed rates",
			slog.String("source", snapshot.Source),
			slog.Time("as_of", snapshot.AsOf))
	} else {
		s.LogInfo(ctx, "rates refreshed",
			slog.String("source", snapshot.Source),
			slog.Time("as_of", snapshot.AsOf),
			slog.Int("currencies", len(snapshot.Rates)))
	}

	return domain.RefreshResult{
		Source: snapshot.Source,
		AsOf:   snapshot.AsOf,
		Stale:  false,
	}
}
