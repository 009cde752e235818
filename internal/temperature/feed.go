package temperature

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/i474232898/temperature-dashboard/internal/observability"
)

// Feed owns the reading history and appends one reading per tick.
// Tick is the only writer; Snapshot and Latest may be called from any goroutine.
type Feed struct {
	store    Store
	source   Source
	fallback Source
	clock    clockwork.Clock
	metrics  *observability.Metrics
	log      zerolog.Logger
}

// NewFeed creates a Feed. fallback is sampled whenever source fails, so it
// must be a source that cannot fail (the synthetic generator).
func NewFeed(store Store, source, fallback Source, clock clockwork.Clock, metrics *observability.Metrics, log zerolog.Logger) (*Feed, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store is required", ErrInvalidConfig)
	}
	if store.Capacity() <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, store.Capacity())
	}
	if source == nil {
		source = fallback
	}
	if fallback == nil {
		return nil, fmt.Errorf("%w: fallback source is required", ErrInvalidConfig)
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if metrics == nil {
		return nil, errors.New("metrics are required")
	}

	return &Feed{
		store:    store,
		source:   source,
		fallback: fallback,
		clock:    clock,
		metrics:  metrics,
		log:      log.With().Str("component", "feed").Logger(),
	}, nil
}

// Tick generates a reading, appends it to the history and returns it.
func (f *Feed) Tick(ctx context.Context) Reading {
	r := Reading{
		TemperatureCelsius: Round1(f.sample(ctx)),
		Timestamp:          f.clock.Now().Format(TimestampLayout),
	}

	f.store.Append(r)

	f.metrics.TicksTotal.Inc()
	f.metrics.LatestTemperature.Set(r.TemperatureCelsius)
	f.metrics.HistoryLength.Set(float64(f.store.Len()))

	f.log.Debug().
		Float64("temp_celsius", r.TemperatureCelsius).
		Str("timestamp", r.Timestamp).
		Str("classification", string(Classify(r))).
		Msg("tick")

	return r
}

func (f *Feed) sample(ctx context.Context) float64 {
	v, err := f.source.Sample(ctx)
	if err == nil || f.source == f.fallback {
		return v
	}

	f.metrics.SourceFallbacks.Inc()
	f.log.Warn().Err(err).
		Str("source", f.source.Name()).
		Str("fallback", f.fallback.Name()).
		Msg("source failed; using fallback for this tick")

	// The fallback contract is that it never errors.
	v, _ = f.fallback.Sample(ctx)
	return v
}

// Snapshot returns the history oldest first. The slice is a copy.
func (f *Feed) Snapshot() []Reading {
	f.metrics.SnapshotReads.Inc()
	return f.store.Snapshot()
}

// Latest returns the newest reading, or ErrNoData before the first tick.
func (f *Feed) Latest() (Reading, error) {
	return f.store.Latest()
}

// Capacity is the maximum number of readings kept.
func (f *Feed) Capacity() int {
	return f.store.Capacity()
}

// SourceName identifies the primary temperature source.
func (f *Feed) SourceName() string {
	return f.source.Name()
}
