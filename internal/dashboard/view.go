package dashboard

import (
	"fmt"
	"strconv"

	"github.com/i474232898/temperature-dashboard/internal/temperature"
)

// Placeholder is shown in place of any value until the first tick completes.
const Placeholder = "Waiting for first reading..."

// View turns history snapshots into display values for one unit.
type View struct {
	unit temperature.Unit
}

// NewView creates a View. Units outside the enumeration are rejected.
func NewView(unit temperature.Unit) (*View, error) {
	if !unit.Valid() {
		return nil, fmt.Errorf("%w: %q", temperature.ErrInvalidUnit, string(unit))
	}
	return &View{unit: unit}, nil
}

// Unit returns the display unit.
func (v *View) Unit() temperature.Unit {
	return v.unit
}

// CurrentTemperature formats the newest reading as "<value><symbol>. <message>".
// The message is always derived from the Celsius value.
func (v *View) CurrentTemperature(history []temperature.Reading) string {
	if len(history) == 0 {
		return Placeholder
	}
	latest := history[len(history)-1]
	value := v.unit.Convert(latest.TemperatureCelsius)
	return formatValue(value) + v.unit.Symbol() + ". " + temperature.Classify(latest).Message()
}

// Timestamp returns the newest reading's timestamp exactly as stored.
func (v *View) Timestamp(history []temperature.Reading) string {
	if len(history) == 0 {
		return Placeholder
	}
	return history[len(history)-1].Timestamp
}

// Row is one line of the readings table.
type Row struct {
	TempCelsius    float64 `json:"temp_celsius"`
	TempFahrenheit float64 `json:"temp_fahrenheit"`
	TempKelvin     float64 `json:"temp_kelvin"`
	Timestamp      string  `json:"timestamp"`
}

// Table projects the history into rows, oldest first, every column rounded
// to one decimal.
func Table(history []temperature.Reading) []Row {
	rows := make([]Row, 0, len(history))
	for _, r := range history {
		c := r.TemperatureCelsius
		rows = append(rows, Row{
			TempCelsius:    temperature.Round1(c),
			TempFahrenheit: temperature.Round1(temperature.ToFahrenheit(c)),
			TempKelvin:     temperature.Round1(temperature.ToKelvin(c)),
			Timestamp:      r.Timestamp,
		})
	}
	return rows
}

// Frame is everything the page needs for one refresh, derived from a single
// snapshot so the parts never disagree with each other.
type Frame struct {
	Ready          bool                       `json:"ready"`
	Unit           temperature.Unit           `json:"unit"`
	Current        string                     `json:"current"`
	Timestamp      string                     `json:"timestamp"`
	Classification temperature.Classification `json:"classification,omitempty"`
	Table          []Row                      `json:"table"`
	Trend          *Trend                     `json:"trend"`
}

// Frame builds a Frame from history.
func (v *View) Frame(history []temperature.Reading) Frame {
	f := Frame{
		Ready:     len(history) > 0,
		Unit:      v.unit,
		Current:   v.CurrentTemperature(history),
		Timestamp: v.Timestamp(history),
		Table:     Table(history),
	}
	if f.Ready {
		f.Classification = temperature.Classify(history[len(history)-1])
	}
	if t, ok := FitTrend(history); ok {
		f.Trend = &t
	}
	return f
}

func formatValue(v float64) string {
	v = temperature.Round1(v)
	if v == 0 {
		// Avoid printing "-0.0".
		v = 0
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}
