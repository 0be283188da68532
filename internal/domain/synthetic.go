package domain

import (
	"math"
	"math/rand"
	"time"
)

// syntheticCity pairs a fallback city with its typical temperature band in °C.
type syntheticCity struct {
	name     string
	minTempC float64
	maxTempC float64
}

// syntheticCities are the fixed cities emitted by the fallback generator.
// Keep the bands in sync with the package documentation; tests assert them.
var syntheticCities = []syntheticCity{
	{name: "Bogotá", minTempC: 15, maxTempC: 25},
	{name: "Medellín", minTempC: 20, maxTempC: 30},
	{name: "Cali", minTempC: 25, maxTempC: 35},
}

// windDirections are the eight compass points the generator draws from.
var windDirections = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

const (
	syntheticTicks       = 10
	syntheticTickSpacing = 5 * time.Minute
)

// GenerateSynthetic produces the fallback dataset: one reading per fallback
// city for each of 10 time ticks spaced 5 minutes apart going backward from
// the current clock time, 30 rows total. Temperature is drawn from the
// city's band; humidity is an integer percent in [60, 90]; pressure, wind,
// precipitation and visibility are uniform draws rounded to one decimal.
// The caller supplies the random source so tests can seed it.
func GenerateSynthetic(rng *rand.Rand) Table {
	baseTime := clock.Now()

	t := Table{Columns: RawColumns()}
	for tick := 0; tick < syntheticTicks; tick++ {
		ts := baseTime.Add(-time.Duration(tick) * syntheticTickSpacing)
		for _, city := range syntheticCities {
			o := Observation{
				Time:          ts,
				City:          city.name,
				TemperatureC:  round1(uniform(rng, city.minTempC, city.maxTempC)),
				Humidity:      60 + rng.Intn(31),
				Pressure:      round1(uniform(rng, 1010, 1020)),
				WindSpeed:     round1(uniform(rng, 2, 15)),
				WindDirection: windDirections[rng.Intn(len(windDirections))],
				Precipitation: round1(uniform(rng, 0, 5)),
				Visibility:    round1(uniform(rng, 8, 15)),
			}
			t.Rows = append(t.Rows, o.Row())
		}
	}
	return t
}

// uniform draws from [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// round1 rounds to one decimal place, half away from zero.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
