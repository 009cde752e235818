package dashboard

import (
	"errors"
	"fmt"
	"io"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/i474232898/temperature-dashboard/internal/temperature"
)

// ErrNotEnoughData is returned when the chart has no trend to draw.
var ErrNotEnoughData = errors.New("at least two readings are needed for a chart")

const chartTitle = "Temperature Readings with Regression Line"

// RenderChart writes a PNG scatter of the history with its trend line.
// Timestamps are interpreted in loc.
func RenderChart(w io.Writer, history []temperature.Reading, loc *time.Location) error {
	trend, ok := FitTrend(history)
	if !ok {
		return ErrNotEnoughData
	}
	if loc == nil {
		loc = time.Local
	}

	xs := make([]time.Time, len(history))
	ys := make([]float64, len(history))
	minY, maxY := history[0].TemperatureCelsius, history[0].TemperatureCelsius
	for i, r := range history {
		ts, err := time.ParseInLocation(temperature.TimestampLayout, r.Timestamp, loc)
		if err != nil {
			return fmt.Errorf("parse timestamp %q: %w", r.Timestamp, err)
		}
		xs[i] = ts
		ys[i] = r.TemperatureCelsius
		minY = min(minY, r.TemperatureCelsius, trend.Fitted[i])
		maxY = max(maxY, r.TemperatureCelsius, trend.Fitted[i])
	}

	first, last := xs[0], xs[len(xs)-1]
	if !last.After(first) {
		last = first.Add(time.Second)
	}

	graph := chart.Chart{
		Title:  chartTitle,
		Height: 500,
		Width:  900,
		XAxis: chart.XAxis{
			Name:           "Time",
			ValueFormatter: chart.TimeValueFormatterWithFormat("15:04:05"),
			Range: &chart.ContinuousRange{
				Min: chart.TimeToFloat64(first),
				Max: chart.TimeToFloat64(last),
			},
		},
		YAxis: chart.YAxis{
			Name: "Temperature (°C)",
			Range: &chart.ContinuousRange{
				Min: minY - 0.5,
				Max: maxY + 0.5,
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: "Readings",
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    4,
					DotColor:    drawing.ColorBlue,
				},
				XValues: xs,
				YValues: ys,
			},
			chart.TimeSeries{
				Name: "Regression Line",
				Style: chart.Style{
					StrokeWidth: 2,
					StrokeColor: drawing.ColorRed,
				},
				XValues: xs,
				YValues: trend.Fitted,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.PNG, w)
}
