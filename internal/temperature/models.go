package temperature

import (
	"errors"
	"fmt"
	"strings"
)

// TimestampLayout is the second-precision layout used for Reading.Timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

var (
	// ErrNoData is returned when the history is still empty.
	ErrNoData = errors.New("no temperature readings yet")

	// ErrInvalidConfig is returned for an unusable capacity, interval or other setting.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidUnit is returned for a display unit outside Celsius, Fahrenheit and Kelvin.
	ErrInvalidUnit = errors.New("invalid temperature unit")
)

// Reading is one generated temperature sample. Celsius is the canonical unit.
type Reading struct {
	TemperatureCelsius float64 `json:"temp_celsius"`
	Timestamp          string  `json:"timestamp"`
}

// Unit is a display unit chosen by the user.
type Unit string

const (
	Celsius    Unit = "Celsius"
	Fahrenheit Unit = "Fahrenheit"
	Kelvin     Unit = "Kelvin"
)

// Units lists the accepted display units in UI order.
var Units = []Unit{Celsius, Fahrenheit, Kelvin}

// ParseUnit resolves a unit name, ignoring case.
func ParseUnit(s string) (Unit, error) {
	for _, u := range Units {
		if strings.EqualFold(s, string(u)) {
			return u, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidUnit, s)
}

// Valid reports whether u is one of the enumerated units.
func (u Unit) Valid() bool {
	switch u {
	case Celsius, Fahrenheit, Kelvin:
		return true
	}
	return false
}

// Symbol returns the suffix printed after a value in this unit.
func (u Unit) Symbol() string {
	switch u {
	case Fahrenheit:
		return "°F"
	case Kelvin:
		return "K"
	default:
		return "°C"
	}
}

// Convert expresses a Celsius value in u. The result is not rounded.
func (u Unit) Convert(celsius float64) float64 {
	switch u {
	case Fahrenheit:
		return ToFahrenheit(celsius)
	case Kelvin:
		return ToKelvin(celsius)
	default:
		return celsius
	}
}
