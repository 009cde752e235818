package temperature

// WarmThresholdCelsius separates "warmer" from "colder" readings.
// A reading exactly at the threshold is colder.
const WarmThresholdCelsius = -17.0

// Classification is the warmer/colder verdict for one reading.
type Classification string

const (
	Warmer Classification = "warmer"
	Colder Classification = "colder"
)

// Classify compares the Celsius value against WarmThresholdCelsius.
func Classify(r Reading) Classification {
	if r.TemperatureCelsius > WarmThresholdCelsius {
		return Warmer
	}
	return Colder
}

// Message is the sentence shown next to the current temperature.
func (c Classification) Message() string {
	if c == Warmer {
		return "It is warmer than usual"
	}
	return "It is colder than usual"
}
