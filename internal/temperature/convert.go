package temperature

import "math"

// ToFahrenheit converts degrees Celsius to degrees Fahrenheit.
func ToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// FahrenheitToCelsius is the inverse of ToFahrenheit.
func FahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}

// ToKelvin converts degrees Celsius to kelvin.
func ToKelvin(c float64) float64 {
	return c + 273.15
}

// Round1 rounds half away from zero to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
