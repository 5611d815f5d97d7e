package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"TickerBoard/internal/model"
)

// Warmer loads a series so that the layers behind it keep a fresh copy.
type Warmer interface {
	GetRawSeries(ctx context.Context, ticker string, start time.Time) (model.Series, error)
}

// Purger drops expired cache entries.
type Purger interface {
	Purge() int
}

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron      *cron.Cron
	Warmer    Warmer
	Purger    Purger
	Watchlist []string
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, w Warmer, p Purger, watchlist []string) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Warmer:    w,
		Purger:    p,
		Watchlist: watchlist,
		Ctx:       ctx,
	}
}

// RegisterAll registers the warm and purge tasks.
func (s *Scheduler) RegisterAll(warmCron, purgeCron string) error {
	if _, err := s.Cron.AddFunc(warmCron, func() { s.warmTask() }); err != nil {
		return fmt.Errorf("register warm task: %w", err)
	}
	if _, err := s.Cron.AddFunc(purgeCron, func() { s.purgeTask() }); err != nil {
		return fmt.Errorf("register purge task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Int("jobs", len(s.Cron.Entries())).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunWarmNow executes the warm task immediately and reports how many
// watchlist symbols loaded and how many failed.
func (s *Scheduler) RunWarmNow() (loaded, failed int) {
	return s.warmTask()
}

// warmTask walks the watchlist one symbol at a time from the default start.
func (s *Scheduler) warmTask() (loaded, failed int) {
	log.Info().Int("tickers", len(s.Watchlist)).Msg("running warm task")
	start := time.Now()
	for _, t := range s.Watchlist {
		if s.Ctx.Err() != nil {
			log.Warn().Msg("warm task cancelled")
			break
		}
		series, err := s.Warmer.GetRawSeries(s.Ctx, t, time.Time{})
		if err != nil {
			failed++
			log.Warn().Err(err).Str("ticker", t).Str("kind", string(model.KindOf(err))).Msg("warm failed")
			continue
		}
		loaded++
		log.Debug().Str("ticker", t).Int("bars", len(series)).Msg("warmed")
	}
	log.Info().
		Int("loaded", loaded).
		Int("failed", failed).
		Dur("took", time.Since(start)).
		Msg("warm task done")
	return loaded, failed
}

func (s *Scheduler) purgeTask() int {
	n := s.Purger.Purge()
	log.Debug().Int("removed", n).Msg("cache purged")
	return n
}
