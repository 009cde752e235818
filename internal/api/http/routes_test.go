package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/temperature-dashboard/internal/dashboard"
	"github.com/i474232898/temperature-dashboard/internal/observability"
	"github.com/i474232898/temperature-dashboard/internal/store"
	"github.com/i474232898/temperature-dashboard/internal/temperature"
)

type fixedSource struct {
	mu     sync.Mutex
	values []float64
}

func (s *fixedSource) Name() string { return "fixed" }

func (s *fixedSource) Sample(_ context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[0]
	if len(s.values) > 1 {
		s.values = s.values[1:]
	}
	return v, nil
}

type testEnv struct {
	app   *fiber.App
	feed  *temperature.Feed
	clock *clockwork.FakeClock
}

func newTestEnv(t *testing.T, values ...float64) *testEnv {
	t.Helper()

	hist, err := store.NewMemoryStore(5)
	require.NoError(t, err)

	src := &fixedSource{values: values}
	clock := clockwork.NewFakeClockAt(time.Date(2024, time.March, 1, 12, 0, 0, 0, time.Local))
	feed, err := temperature.NewFeed(hist, src, src, clock, observability.NewMetricsForTesting(), zerolog.Nop())
	require.NoError(t, err)

	app := fiber.New()
	RegisterRoutes(app, feed, Settings{DefaultUnit: temperature.Celsius, UpdateInterval: 3 * time.Second})
	return &testEnv{app: app, feed: feed, clock: clock}
}

func (e *testEnv) tick(n int) {
	for i := 0; i < n; i++ {
		e.feed.Tick(context.Background())
		e.clock.Advance(3 * time.Second)
	}
}

func (e *testEnv) get(t *testing.T, target string) (*http.Response, []byte) {
	t.Helper()
	resp, err := e.app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestLatestBeforeFirstTick(t *testing.T) {
	env := newTestEnv(t, -17.0)

	resp, _ := env.get(t, "/api/v1/readings/latest")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	env.tick(1)
	resp, body := env.get(t, "/api/v1/readings/latest")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var r temperature.Reading
	require.NoError(t, json.Unmarshal(body, &r))
	assert.Equal(t, -17.0, r.TemperatureCelsius)
	assert.Equal(t, "2024-03-01 12:00:00", r.Timestamp)
}

func TestReadingsSnapshot(t *testing.T) {
	env := newTestEnv(t, 1, 2, 3, 4, 5, 6, 7)
	env.tick(7)

	resp, body := env.get(t, "/api/v1/readings")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Capacity int                   `json:"capacity"`
		Readings []temperature.Reading `json:"readings"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, 5, payload.Capacity)
	require.Len(t, payload.Readings, 5)
	for i, want := range []float64{3, 4, 5, 6, 7} {
		assert.Equal(t, want, payload.Readings[i].TemperatureCelsius)
	}
}

func TestDashboardPlaceholderBeforeFirstTick(t *testing.T) {
	env := newTestEnv(t, -17.0)

	resp, body := env.get(t, "/api/v1/dashboard")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var f dashboard.Frame
	require.NoError(t, json.Unmarshal(body, &f))
	assert.False(t, f.Ready)
	assert.Equal(t, dashboard.Placeholder, f.Current)
	assert.Equal(t, dashboard.Placeholder, f.Timestamp)
	assert.Nil(t, f.Trend)
	assert.Equal(t, temperature.Celsius, f.Unit)
}

func TestDashboardUnitSelection(t *testing.T) {
	env := newTestEnv(t, -18.0, -17.5, -17.0)
	env.tick(3)

	resp, body := env.get(t, "/api/v1/dashboard?unit=Fahrenheit")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var f dashboard.Frame
	require.NoError(t, json.Unmarshal(body, &f))
	assert.True(t, f.Ready)
	assert.Equal(t, "1.4°F. It is colder than usual", f.Current)
	assert.Equal(t, "2024-03-01 12:00:06", f.Timestamp)
	assert.Len(t, f.Table, 3)
	require.NotNil(t, f.Trend)
	assert.InDelta(t, 0.5, f.Trend.Slope, 1e-9)
	assert.InDelta(t, -18.0, f.Trend.Intercept, 1e-9)
}

func TestDashboardRejectsUnknownUnit(t *testing.T) {
	env := newTestEnv(t, -17.0)

	for _, target := range []string{"/api/v1/dashboard?unit=Rankine", "/api/v1/dashboard?unit=celsius"} {
		resp, _ := env.get(t, target)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, target)
	}
}

func TestTrendNeedsTwoReadings(t *testing.T) {
	env := newTestEnv(t, -17.0, -16.0)

	env.tick(1)
	resp, _ := env.get(t, "/api/v1/trend")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	env.tick(1)
	resp, body := env.get(t, "/api/v1/trend")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var trend dashboard.Trend
	require.NoError(t, json.Unmarshal(body, &trend))
	assert.InDelta(t, 1.0, trend.Slope, 1e-9)
	assert.InDelta(t, -17.0, trend.Intercept, 1e-9)
	assert.Len(t, trend.Fitted, 2)
}

func TestTable(t *testing.T) {
	env := newTestEnv(t, -17.0, -18.0)
	env.tick(2)

	resp, body := env.get(t, "/api/v1/table")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Rows []dashboard.Row `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.Len(t, payload.Rows, 2)
	assert.Equal(t, 1.4, payload.Rows[0].TempFahrenheit)
	assert.Equal(t, -0.4, payload.Rows[1].TempFahrenheit)
}

func TestChart(t *testing.T) {
	env := newTestEnv(t, -17.3, -16.4, -17.9)

	env.tick(1)
	resp, _ := env.get(t, "/chart.png")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	env.tick(2)
	resp, body := env.get(t, "/chart.png")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get(fiber.HeaderContentType))
	assert.True(t, bytes.HasPrefix(body, []byte("\x89PNG")))
}

func TestSettingsAndIndex(t *testing.T) {
	env := newTestEnv(t, -17.0)

	resp, body := env.get(t, "/api/v1/settings")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var s struct {
		DefaultUnit     string   `json:"default_unit"`
		Units           []string `json:"units"`
		IntervalSeconds float64  `json:"interval_seconds"`
		Capacity        int      `json:"capacity"`
		Source          string   `json:"source"`
	}
	require.NoError(t, json.Unmarshal(body, &s))
	assert.Equal(t, "Celsius", s.DefaultUnit)
	assert.Equal(t, []string{"Celsius", "Fahrenheit", "Kelvin"}, s.Units)
	assert.InDelta(t, 3.0, s.IntervalSeconds, 1e-9)
	assert.Equal(t, 5, s.Capacity)
	assert.Equal(t, "fixed", s.Source)

	resp, body = env.get(t, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")
	assert.Contains(t, string(body), "Antarctic Explorer")
}

func TestReadsHaveNoSideEffects(t *testing.T) {
	env := newTestEnv(t, -17.0, -16.5)
	env.tick(2)

	for i := 0; i < 3; i++ {
		resp, _ := env.get(t, "/api/v1/dashboard")
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	assert.Len(t, env.feed.Snapshot(), 2)
	latest, err := env.feed.Latest()
	require.NoError(t, err)
	assert.Equal(t, -16.5, latest.TemperatureCelsius)
}
