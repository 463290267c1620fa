package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	portssvc "github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/ports/services"
)

// refreshTimeout bounds a single scheduled refresh so a hung provider cannot
// pile up overlapping runs.
const refreshTimeout = 2 * time.Minute

// Scheduler runs periodic rate refreshes on a cron expression.
type Scheduler struct {
	cron    *cron.Cron
	rateSvc portssvc.RateRefresherSvc
	logger  *slog.Logger
}

// New creates a scheduler. Start must be called to begin running.
func New(rateSvc portssvc.RateRefresherSvc, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		rateSvc: rateSvc,
		logger:  logger,
	}
}

// Start registers the refresh job with the given cron expression and begins
// the schedule. The scheduled path bypasses the manual throttle gate.
func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, s.runRefresh)
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("Rate refresh scheduler started", slog.String("cron", spec))
	return nil
}

// Stop halts the schedule and waits for any in-flight run to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Rate refresh scheduler stopped")
}

func (s *Scheduler) runRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	result, err := s.rateSvc.Refresh(ctx)
	if err != nil {
		s.logger.Error("Scheduled rate refresh failed", slog.String("error", err.Error()))
		return
	}
	s.logger.Info("Scheduled rate refresh completed",
		slog.String("source", result.Source),
		slog.Bool("stale", result.Stale),
		slog.Time("as_of", result.AsOf))
}
