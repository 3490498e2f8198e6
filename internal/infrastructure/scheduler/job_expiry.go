// Package scheduler runs the periodic maintenance jobs of the portal.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/talentbridge/job-portal/internal/api/metrics"
)

// Deactivator closes postings whose application deadline has passed.
type Deactivator interface {
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

// JobExpiry wraps robfig/cron and runs the expiry sweep on a cron schedule.
type JobExpiry struct {
	cron     *cron.Cron
	jobs     Deactivator
	schedule string // e.g. "@every 1h"
	log      zerolog.Logger
	now      func() time.Time
}

// NewJobExpiry creates a sweep that runs on the given cron schedule.
func NewJobExpiry(jobs Deactivator, schedule string, log zerolog.Logger) *JobExpiry {
	return &JobExpiry{
		cron:     cron.New(),
		jobs:     jobs,
		schedule: schedule,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Start registers the sweep and starts the scheduler. One sweep also runs
// immediately so postings that expired while the service was down close
// without waiting for the first tick.
func (s *JobExpiry) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.schedule, func() { s.Sweep(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.cron.Start()
	s.log.Info().Str("schedule", s.schedule).Msg("job expiry scheduler started")

	go s.Sweep(ctx)
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *JobExpiry) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("job expiry scheduler stopped")
}

// Sweep deactivates expired postings once.
func (s *JobExpiry) Sweep(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	n, err := s.jobs.DeactivateExpired(ctx, s.now())
	if err != nil {
		s.log.Error().Err(err).Msg("job expiry sweep failed")
		return
	}
	if n > 0 {
		metrics.JobsExpiredTotal.Add(float64(n))
		s.log.Info().Int64("jobs", n).Msg("expired jobs deactivated")
	}
}
