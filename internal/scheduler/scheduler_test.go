package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/temperature-dashboard/internal/observability"
	"github.com/i474232898/temperature-dashboard/internal/temperature"
)

type countingTicker struct {
	ticks     atomic.Int32
	deadlines atomic.Int32
}

func (c *countingTicker) Tick(ctx context.Context) temperature.Reading {
	c.ticks.Add(1)
	if _, ok := ctx.Deadline(); ok {
		c.deadlines.Add(1)
	}
	return temperature.Reading{}
}

func TestNewRejectsNonPositiveInterval(t *testing.T) {
	for _, d := range []time.Duration{0, -time.Second} {
		_, err := New(d, &countingTicker{}, observability.NewMetricsForTesting(), zerolog.Nop())
		require.ErrorIs(t, err, temperature.ErrInvalidConfig)
	}
}

func TestSchedulerTicksUntilStopped(t *testing.T) {
	ticker := &countingTicker{}
	metrics := observability.NewMetricsForTesting()

	s, err := New(20*time.Millisecond, ticker, metrics, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Start())
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.SchedulerRunning), 0)

	require.Eventually(t, func() bool {
		return ticker.ticks.Load() >= 3
	}, 2*time.Second, 5*time.Millisecond)

	s.Stop()
	assert.Positive(t, ticker.deadlines.Load())
	assert.InDelta(t, 0, testutil.ToFloat64(metrics.SchedulerRunning), 0)

	stopped := ticker.ticks.Load()
	time.Sleep(100 * time.Millisecond)
	assert.LessOrEqual(t, ticker.ticks.Load(), stopped+1)
}
