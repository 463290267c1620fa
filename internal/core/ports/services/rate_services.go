package services

import (
	"context"

	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/domain"
)

// RateRefresherSvc defines the refresh operations on the rate orchestrator.
type RateRefresherSvc interface {
	// Refresh fetches the latest canonical-base snapshot via the
	// primary-fallback-cache chain and persists it on success.
	Refresh(ctx context.Context) (domain.RefreshResult, error)

	// RefreshManual is the throttle-gated variant used by the manual
	// refresh endpoint. Calls inside the cooldown window fail with
	// *apperrors.ThrottledError without touching any provider.
	RefreshManual(ctx context.Context) (domain.RefreshResult, error)
}

// RateSnapshotReaderSvc defines snapshot query operations.
type RateSnapshotReaderSvc interface {
	// GetSnapshot returns the latest snapshot expressed in viewBase,
	// rebasing from the canonical base on demand.
	GetSnapshot(ctx context.Context, viewBase string) (*domain.RateSnapshot, error)

	// Health reports the provenance of the current snapshot without
	// triggering a fetch.
	Health(ctx context.Context) domain.HealthStatus

	// CanonicalBase returns the configured persistence base currency.
	CanonicalBase() string
}

// RateOrchestratorSvcFacade combines refresh and query operations.
type RateOrchestratorSvcFacade interface {
	RateRefresherSvc
	RateSnapshotReaderSvc
}
