package dashboard

import "github.com/i474232898/temperature-dashboard/internal/temperature"

// Trend is an ordinary-least-squares line of Celsius against position in
// the history window (0 for the oldest reading). Tick timing is ignored.
type Trend struct {
	Slope     float64   `json:"slope"`
	Intercept float64   `json:"intercept"`
	Fitted    []float64 `json:"fitted"`
}

// At returns the line's value at index i.
func (t Trend) At(i int) float64 {
	return t.Slope*float64(i) + t.Intercept
}

// FitTrend fits the history. It reports false when fewer than two readings
// are available, in which case no line exists.
func FitTrend(history []temperature.Reading) (Trend, bool) {
	n := len(history)
	if n < 2 {
		return Trend{}, false
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, r := range history {
		xs[i] = float64(i)
		ys[i] = r.TemperatureCelsius
	}

	slope, intercept, ok := LinearFit(xs, ys)
	if !ok {
		return Trend{}, false
	}

	t := Trend{Slope: slope, Intercept: intercept, Fitted: make([]float64, n)}
	for i := range t.Fitted {
		t.Fitted[i] = t.At(i)
	}
	return t, true
}

// LinearFit computes the closed-form OLS slope and intercept of ys on xs.
// ok is false for mismatched lengths, fewer than two points, or zero
// variance in xs.
func LinearFit(xs, ys []float64) (slope, intercept float64, ok bool) {
	n := len(xs)
	if n < 2 || n != len(ys) {
		return 0, 0, false
	}

	var meanX, meanY float64
	for i := range xs {
		meanX += xs[i]
		meanY += ys[i]
	}
	meanX /= float64(n)
	meanY /= float64(n)

	var sxy, sxx float64
	for i := range xs {
		dx := xs[i] - meanX
		sxy += dx * (ys[i] - meanY)
		sxx += dx * dx
	}
	if sxx == 0 {
		return 0, 0, false
	}

	slope = sxy / sxx
	intercept = meanY - slope*meanX
	return slope, intercept, true
}
