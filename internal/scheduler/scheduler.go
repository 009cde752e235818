package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"

	"github.com/i474232898/temperature-dashboard/internal/observability"
	"github.com/i474232898/temperature-dashboard/internal/temperature"
)

// Ticker is the operation driven on every interval.
type Ticker interface {
	Tick(ctx context.Context) temperature.Reading
}

// Scheduler periodically ticks the temperature feed.
type Scheduler struct {
	scheduler *gocron.Scheduler
	feed      Ticker
	interval  time.Duration
	timeout   time.Duration
	metrics   *observability.Metrics
	log       zerolog.Logger
}

// New creates a Scheduler. The interval must be positive.
func New(interval time.Duration, feed Ticker, metrics *observability.Metrics, log zerolog.Logger) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: update interval must be positive, got %s", temperature.ErrInvalidConfig, interval)
	}

	s := gocron.NewScheduler(time.UTC)
	// Ticks never overlap: the feed has exactly one writer at a time.
	s.SingletonModeAll()

	return &Scheduler{
		scheduler: s,
		feed:      feed,
		interval:  interval,
		timeout:   interval,
		metrics:   metrics,
		log:       log.With().Str("component", "scheduler").Logger(),
	}, nil
}

// Start schedules the tick job, runs it once immediately, and starts the
// underlying scheduler in the background.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).StartImmediately().Do(s.tick)
	if err != nil {
		return fmt.Errorf("schedule tick job: %w", err)
	}

	s.scheduler.StartAsync()
	s.metrics.SchedulerRunning.Set(1)
	s.log.Info().Dur("interval", s.interval).Msg("scheduler started")
	return nil
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	s.feed.Tick(ctx)
}

// Stop stops the scheduler; no further ticks run afterwards.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	s.metrics.SchedulerRunning.Set(0)
	s.log.Info().Msg("scheduler stopped")
}
