// Package scheduler drives every upstream fetcher on a shared periodic
// tick, isolating one fetcher's failure from the rest (spec.md §4.G).
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron"

	"github.com/hamprop/backend/internal/fetch"
)

// Interval is the fixed cooperative tick every fetcher runs on.
const Interval = 10 * time.Minute

// Scheduler runs a fixed set of fetchers on a shared periodic tick,
// grounded on the teacher's `rtcmlogger` module, which already depends on
// github.com/robfig/cron for its own rotation schedule — this extends that
// same dependency to a new tick consumer rather than importing a second
// cron library.
type Scheduler struct {
	fetchers []fetch.Fetcher
	logger   *slog.Logger
	cron     *cron.Cron
	timeout  time.Duration
}

// New builds a Scheduler over fetchers, logging each Refresh outcome
// through logger.
func New(fetchers []fetch.Fetcher, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		fetchers: fetchers,
		logger:   logger,
		cron:     cron.New(),
		timeout:  Interval,
	}
}

// Run fires an immediate tick, then schedules one every Interval via
// cron's "@every" spec, blocking until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	s.tick(ctx)

	if err := s.cron.AddFunc("@every 10m", func() { s.tick(ctx) }); err != nil {
		return err
	}
	s.cron.Start()
	defer s.cron.Stop()

	<-ctx.Done()
	return ctx.Err()
}

// tick fans out every fetcher concurrently (spec.md §5 permits this); one
// fetcher's error is logged and never blocks or fails the others.
func (s *Scheduler) tick(ctx context.Context) {
	var wg sync.WaitGroup
	for _, f := range s.fetchers {
		wg.Add(1)
		go func(f fetch.Fetcher) {
			defer wg.Done()
			tickCtx, cancel := context.WithTimeout(ctx, s.timeout)
			err := f.Refresh(tickCtx)
			cancel()

			if err != nil {
				s.logger.Warn("fetch refresh failed", "feed", f.Name(), "error", err)
				return
			}
			s.logger.Debug("fetch refresh succeeded", "feed", f.Name())
		}(f)
	}
	wg.Wait()
}
