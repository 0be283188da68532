package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the ETL pipeline.
type Metrics struct {
	RunsTotal     *prometheus.CounterVec   // labels: result={success,failed}
	StageDuration *prometheus.HistogramVec // labels: stage={extract,transform,load,validate}
	StageFailures *prometheus.CounterVec   // labels: stage
	RunActive     prometheus.Gauge

	// Stage-specific metrics.
	RecordsExtracted *prometheus.CounterVec // labels: source={sheets,synthetic}
	ExtractFallbacks prometheus.Counter
	RowsDropped      *prometheus.CounterVec // labels: reason={missing_fields,temperature_range}
	RecordsProcessed prometheus.Gauge
	QualityScore     prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_etl",
			Name:      "runs_total",
			Help:      "Completed pipeline runs by result.",
		}, []string{"result"}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_etl",
			Name:      "stage_duration_seconds",
			Help:      "Wall-clock duration of each pipeline stage.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}, []string{"stage"}),
		StageFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_etl",
			Name:      "stage_failures_total",
			Help:      "Fatal stage failures by stage.",
		}, []string{"stage"}),
		RunActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_etl",
			Name:      "run_active",
			Help:      "1 while a pipeline run is in flight, 0 otherwise.",
		}),
		RecordsExtracted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_etl",
			Name:      "records_extracted_total",
			Help:      "Rows written to the raw artifact by source.",
		}, []string{"source"}),
		ExtractFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_etl",
			Name:      "extract_fallbacks_total",
			Help:      "Runs that substituted synthetic data for the remote sheet.",
		}),
		RowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_etl",
			Name:      "rows_dropped_total",
			Help:      "Rows removed during transformation by reason.",
		}, []string{"reason"}),
		RecordsProcessed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_etl",
			Name:      "records_processed",
			Help:      "Rows persisted by the most recent load.",
		}),
		QualityScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_etl",
			Name:      "quality_score",
			Help:      "Quality score of the most recent validation, 0-100.",
		}),
	}

	prometheus.MustRegister(
		m.RunsTotal,
		m.StageDuration,
		m.StageFailures,
		m.RunActive,
		m.RecordsExtracted,
		m.ExtractFallbacks,
		m.RowsDropped,
		m.RecordsProcessed,
		m.QualityScore,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RunsTotal:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_etl", Name: "runs_total"}, []string{"result"}),
		StageDuration:    prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "weather_etl", Name: "stage_duration_seconds"}, []string{"stage"}),
		StageFailures:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_etl", Name: "stage_failures_total"}, []string{"stage"}),
		RunActive:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "weather_etl", Name: "run_active"}),
		RecordsExtracted: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_etl", Name: "records_extracted_total"}, []string{"source"}),
		ExtractFallbacks: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_etl", Name: "extract_fallbacks_total"}),
		RowsDropped:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_etl", Name: "rows_dropped_total"}, []string{"reason"}),
		RecordsProcessed: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "weather_etl", Name: "records_processed"}),
		QualityScore:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "weather_etl", Name: "quality_score"}),
	}
}
