package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/wayfarerhq/wayfarer/internal/wayfarer/store"
)

// HousekeepingService periodically deletes invitations that expired long ago
// and were never redeemed, keeping the table from growing without bound.
// Retention is deliberately long so a recently expired code still reports
// "expired" rather than "not found" on validation.
type HousekeepingService struct {
	Store     store.Store
	Logger    *slog.Logger
	Interval  time.Duration
	Retention time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping worker. Interval defaults to
// 1 hour and retention to 30 days when unset.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval, retention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}

	return &HousekeepingService{
		Store:     st,
		Logger:    logger,
		Interval:  interval,
		Retention: retention,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop to shut down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started",
		"interval", s.Interval,
		"retention", s.Retention,
	)
}

// Stop shuts the worker down and blocks until any in-progress cleanup ends.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// cleanup deletes invitations whose expiry lies beyond the retention window.
// Redeemed invitations are kept as an audit trail of who granted what.
func (s *HousekeepingService) cleanup() {
	ctx := context.Background()
	cutoff := time.Now().UTC().Add(-s.Retention)

	if err := s.Store.Invitations().DeleteInvitationsExpiredBefore(ctx, cutoff); err != nil {
		s.Logger.Error("failed to delete stale invitations", "error", err)
		return
	}
	s.Logger.Debug("deleted stale invitations", "cutoff", cutoff)
}
