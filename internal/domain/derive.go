package domain

import "strconv"

// Plausibility bounds applied by the transformer's range filter, inclusive.
// Readings outside this band are treated as sensor glitches and dropped.
const (
	MinValidCelsius = -10.0
	MaxValidCelsius = 50.0
)

// Temperature category labels. English labels are the reporting contract even
// though the measurement columns keep their Spanish spreadsheet names.
const (
	CategoryCold    = "cold"
	CategoryMild    = "mild"
	CategoryHot     = "hot"
	CategoryVeryHot = "very hot"
)

// CelsiusToFahrenheit converts exactly, F = C*9/5 + 32.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// HeatIndex computes the simplified operational heat index,
// celsius + humidity*0.1. Not the NWS regression.
func HeatIndex(celsius, humidity float64) float64 {
	return celsius + humidity*0.1
}

// CategorizeTemperature maps a Celsius reading to its category label.
// Thresholds are closed below and open above: 18.0 is "mild", not "cold",
// and 30.0 is "very hot", not "hot".
func CategorizeTemperature(celsius float64) string {
	switch {
	case celsius < 18:
		return CategoryCold
	case celsius < 25:
		return CategoryMild
	case celsius < 30:
		return CategoryHot
	default:
		return CategoryVeryHot
	}
}

// FormatDerived renders a derived numeric cell (fahrenheit, heat index) with
// the shortest decimal string that round-trips the exact float64, so tests
// and downstream parsers recover the value bit for bit.
func FormatDerived(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseFloat parses a cell as float64, reporting whether it was numeric.
// Lenient call sites (quality checks, aggregates) skip non-numeric cells;
// the transformer uses strict parsing instead and fails the run.
func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
