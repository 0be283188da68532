package domain

import (
	"math"
	"sort"
)

// CityStats summarizes the Celsius temperatures observed for one city.
type CityStats struct {
	City string  `json:"city"`
	Mean float64 `json:"mean"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// CityTemperatureStats aggregates mean, min and max Celsius temperature per
// city, rounded to two decimals and sorted by city name for stable logging.
// Rows whose temperature cell is not numeric are skipped; a nil result means
// the city or temperature column is absent.
func CityTemperatureStats(t Table) []CityStats {
	cityIdx := t.ColumnIndex(ColCity)
	tempIdx := t.ColumnIndex(ColTemperatureC)
	if cityIdx < 0 || tempIdx < 0 {
		return nil
	}

	type acc struct {
		sum      float64
		min, max float64
		count    int
	}
	byCity := make(map[string]*acc)

	for _, row := range t.Rows {
		v, ok := parseFloat(row[tempIdx])
		if !ok {
			continue
		}
		a, seen := byCity[row[cityIdx]]
		if !seen {
			byCity[row[cityIdx]] = &acc{sum: v, min: v, max: v, count: 1}
			continue
		}
		a.sum += v
		a.count++
		if v < a.min {
			a.min = v
		}
		if v > a.max {
			a.max = v
		}
	}

	stats := make([]CityStats, 0, len(byCity))
	for city, a := range byCity {
		stats = append(stats, CityStats{
			City: city,
			Mean: Round2(a.sum / float64(a.count)),
			Min:  Round2(a.min),
			Max:  Round2(a.max),
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].City < stats[j].City })

	return stats
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
