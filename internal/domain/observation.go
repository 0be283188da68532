package domain

import (
	"strconv"
	"time"
)

// TimeLayout is the timestamp format used in fecha and processed_at cells.
const TimeLayout = "2006-01-02 15:04:05"

// Column names carried by the artifacts. The Spanish names come from the
// upstream spreadsheet and are part of the file contract with downstream
// consumers, so they must not be translated or reordered.
const (
	ColTimestamp     = "fecha"
	ColCity          = "ciudad"
	ColTemperatureC  = "temperatura_celsius"
	ColHumidity      = "humedad"
	ColPressure      = "presion_atmosferica"
	ColWindSpeed     = "velocidad_viento"
	ColWindDirection = "direccion_viento"
	ColPrecipitation = "precipitacion"
	ColVisibility    = "visibilidad"

	// Appended by the transformer, in this order.
	ColTemperatureF = "temperatura_fahrenheit"
	ColProcessedAt  = "processed_at"
	ColHeatIndex    = "indice_calor"
	ColTempCategory = "categoria_temperatura"
)

// RawColumns returns the header of a raw artifact in canonical order.
func RawColumns() []string {
	return []string{
		ColTimestamp,
		ColCity,
		ColTemperatureC,
		ColHumidity,
		ColPressure,
		ColWindSpeed,
		ColWindDirection,
		ColPrecipitation,
		ColVisibility,
	}
}

// Observation is one synthetic weather reading before it is flattened into a
// raw artifact row. Real spreadsheet rows never pass through this type; they
// are carried as opaque cells so the source's own formatting survives.
type Observation struct {
	Time          time.Time
	City          string
	TemperatureC  float64
	Humidity      int
	Pressure      float64
	WindSpeed     float64
	WindDirection string
	Precipitation float64
	Visibility    float64
}

// Row flattens the observation into raw-artifact cells in RawColumns order.
// Gauge readings are written with one decimal, humidity as a bare integer,
// matching the precision the synthetic generator draws them at.
func (o Observation) Row() []string {
	return []string{
		o.Time.Format(TimeLayout),
		o.City,
		formatGauge(o.TemperatureC),
		strconv.Itoa(o.Humidity),
		formatGauge(o.Pressure),
		formatGauge(o.WindSpeed),
		o.WindDirection,
		formatGauge(o.Precipitation),
		formatGauge(o.Visibility),
	}
}

// formatGauge renders a one-decimal sensor value, e.g. 22.5 -> "22.5",
// 23 -> "23.0".
func formatGauge(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
