package scheduler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
)

// FavoritesSyncer is the part of the API client the syncer drives
type FavoritesSyncer interface {
	SyncFavorites(ctx context.Context) (*http.Response, error)
}

// Result describes one sync pass
type Result struct {
	StatusCode int
	Duration   time.Duration
}

// Syncer periodically asks the backend to sync favorites
type Syncer struct {
	client   FavoritesSyncer
	schedule string
	logger   *slog.Logger
}

// NewSyncer validates schedule (standard cron or @every/@daily descriptors)
func NewSyncer(client FavoritesSyncer, schedule string, logger *slog.Logger) (*Syncer, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid sync schedule %q: %w", schedule, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Syncer{
		client:   client,
		schedule: schedule,
		logger:   logger,
	}, nil
}

// RunOnce performs a single sync pass
func (s *Syncer) RunOnce(ctx context.Context) (Result, error) {
	start := time.Now()
	resp, err := s.client.SyncFavorites(ctx)
	if err != nil {
		return Result{Duration: time.Since(start)}, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return Result{StatusCode: resp.StatusCode, Duration: time.Since(start)}, nil
}

// Start runs sync passes on the schedule until ctx is done.
// A pass still running at shutdown is allowed to finish.
func (s *Syncer) Start(ctx context.Context) error {
	c := cron.New()
	_, err := c.AddFunc(s.schedule, func() {
		res, err := s.RunOnce(ctx)
		if err != nil {
			s.logger.Error("favorites sync failed", "error", err, "duration", res.Duration)
			return
		}
		if res.StatusCode >= http.StatusBadRequest {
			s.logger.Warn("favorites sync rejected by backend", "status", res.StatusCode, "duration", res.Duration)
			return
		}
		s.logger.Info("favorites sync completed", "status", res.StatusCode, "duration", res.Duration)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule favorites sync: %w", err)
	}

	s.logger.Info("favorites sync scheduler starting", "schedule", s.schedule)
	c.Start()

	<-ctx.Done()
	s.logger.Info("favorites sync scheduler shutting down")
	<-c.Stop().Done()
	return nil
}
