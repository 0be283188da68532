package domain

import (
	"math/rand"
	"strconv"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSynthetic(t *testing.T) {
	fixedTime := time.Date(2024, 1, 15, 14, 30, 25, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixedTime))
	defer SetClock(nil)

	tbl := GenerateSynthetic(rand.New(rand.NewSource(42)))

	t.Run("exactly 30 rows with the raw header", func(t *testing.T) {
		assert.Equal(t, RawColumns(), tbl.Columns)
		assert.Len(t, tbl.Rows, 30)
	})

	t.Run("city rotation per tick", func(t *testing.T) {
		assert.Equal(t, "Bogotá", tbl.Cell(0, ColCity))
		assert.Equal(t, "Medellín", tbl.Cell(1, ColCity))
		assert.Equal(t, "Cali", tbl.Cell(2, ColCity))
		assert.Equal(t, "Bogotá", tbl.Cell(3, ColCity))
	})

	t.Run("ticks step 5 minutes backward from now", func(t *testing.T) {
		first := fixedTime.Format(TimeLayout)
		last := fixedTime.Add(-45 * time.Minute).Format(TimeLayout)

		for i := 0; i < 3; i++ {
			assert.Equal(t, first, tbl.Cell(i, ColTimestamp))
		}
		for i := 27; i < 30; i++ {
			assert.Equal(t, last, tbl.Cell(i, ColTimestamp))
		}
	})

	t.Run("temperatures stay inside each city's band", func(t *testing.T) {
		bands := map[string][2]float64{
			"Bogotá":   {15, 25},
			"Medellín": {20, 30},
			"Cali":     {25, 35},
		}

		for i := range tbl.Rows {
			band, known := bands[tbl.Cell(i, ColCity)]
			require.True(t, known, "unexpected city %q", tbl.Cell(i, ColCity))

			temp, err := strconv.ParseFloat(tbl.Cell(i, ColTemperatureC), 64)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, temp, band[0])
			assert.LessOrEqual(t, temp, band[1])
		}
	})

	t.Run("gauge values inside their draw ranges", func(t *testing.T) {
		for i := range tbl.Rows {
			humidity, err := strconv.Atoi(tbl.Cell(i, ColHumidity))
			require.NoError(t, err)
			assert.GreaterOrEqual(t, humidity, 60)
			assert.LessOrEqual(t, humidity, 90)

			pressure, err := strconv.ParseFloat(tbl.Cell(i, ColPressure), 64)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, pressure, 1010.0)
			assert.LessOrEqual(t, pressure, 1020.0)

			wind, err := strconv.ParseFloat(tbl.Cell(i, ColWindSpeed), 64)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, wind, 2.0)
			assert.LessOrEqual(t, wind, 15.0)

			precip, err := strconv.ParseFloat(tbl.Cell(i, ColPrecipitation), 64)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, precip, 0.0)
			assert.LessOrEqual(t, precip, 5.0)

			visibility, err := strconv.ParseFloat(tbl.Cell(i, ColVisibility), 64)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, visibility, 8.0)
			assert.LessOrEqual(t, visibility, 15.0)

			assert.Contains(t, windDirections, tbl.Cell(i, ColWindDirection))
		}
	})

	t.Run("deterministic for a fixed seed and clock", func(t *testing.T) {
		again := GenerateSynthetic(rand.New(rand.NewSource(42)))
		assert.Equal(t, tbl, again)
	})

	t.Run("no empty cells", func(t *testing.T) {
		checks := AssessTable(tbl)
		assert.Zero(t, checks.NullValues)
	})
}

func TestObservationRow(t *testing.T) {
	o := Observation{
		Time:          time.Date(2024, 1, 15, 14, 30, 25, 0, time.UTC),
		City:          "Bogotá",
		TemperatureC:  18,
		Humidity:      75,
		Pressure:      1013.2,
		WindSpeed:     5.5,
		WindDirection: "NE",
		Precipitation: 0,
		Visibility:    12.3,
	}

	row := o.Row()

	require.Len(t, row, len(RawColumns()))
	assert.Equal(t, "2024-01-15 14:30:25", row[0])
	assert.Equal(t, "Bogotá", row[1])
	assert.Equal(t, "18.0", row[2]) // gauges always carry one decimal
	assert.Equal(t, "75", row[3])   // humidity stays an integer
	assert.Equal(t, "1013.2", row[4])
	assert.Equal(t, "5.5", row[5])
	assert.Equal(t, "NE", row[6])
	assert.Equal(t, "0.0", row[7])
	assert.Equal(t, "12.3", row[8])
}
