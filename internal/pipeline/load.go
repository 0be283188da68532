package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/chalonov-academic/airflow-etl-data-engineering/internal/domain"
	"github.com/chalonov-academic/airflow-etl-data-engineering/internal/observability"
)

// Loader publishes the transformed artifact to the processed directory.
type Loader struct {
	store   ArtifactStore
	paths   Paths
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewLoader creates a Loader.
func NewLoader(store ArtifactStore, paths Paths, logger *slog.Logger, metrics *observability.Metrics) *Loader {
	return &Loader{
		store:   store,
		paths:   paths,
		logger:  logger,
		metrics: metrics,
	}
}

// Load reads the transformed artifact and publishes it twice: a timestamped
// snapshot that later runs never overwrite, and the latest pointer, byte for
// byte identical to the snapshot. Both carry the same load timestamp that is
// reported as the processing time.
func (l *Loader) Load(ctx context.Context) (RunMetrics, error) {
	if err := ctx.Err(); err != nil {
		return RunMetrics{}, err
	}

	table, err := l.store.ReadTable(l.paths.Transformed())
	if err != nil {
		return RunMetrics{}, fmt.Errorf("read transformed artifact: %w", err)
	}

	now := domain.Now()
	snapshot := l.paths.Snapshot(now)
	latest := l.paths.Latest()
	size, err := l.store.WriteCopies(table, snapshot, latest)
	if err != nil {
		return RunMetrics{}, fmt.Errorf("publish processed data: %w", err)
	}

	metrics := RunMetrics{
		RecordsProcessed: len(table.Rows),
		CitiesCount:      distinctCount(table, domain.ColCity),
		AvgTemperature:   meanCelsius(table),
		ProcessingTime:   now.Format(time.RFC3339),
		FileSizeKB:       domain.Round2(float64(size) / 1024),
	}
	l.metrics.RecordsProcessed.Set(float64(metrics.RecordsProcessed))

	l.logger.Info("loaded processed data",
		"snapshot", snapshot,
		"latest", latest,
		"records", metrics.RecordsProcessed,
		"cities", metrics.CitiesCount,
		"avg_temperature", metrics.AvgTemperature,
		"file_size_kb", metrics.FileSizeKB)

	return metrics, nil
}

// distinctCount counts distinct non-empty values in a column, 0 when the
// column is absent.
func distinctCount(t domain.Table, column string) int {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return 0
	}

	seen := make(map[string]struct{})
	for _, row := range t.Rows {
		if row[idx] == "" {
			continue
		}
		seen[row[idx]] = struct{}{}
	}
	return len(seen)
}

// meanCelsius averages the numeric celsius cells, rounded to two decimals.
// Non-numeric cells are skipped; an absent column or a table without numeric
// readings averages to 0 rather than NaN so the result stays serializable.
func meanCelsius(t domain.Table) float64 {
	idx := t.ColumnIndex(domain.ColTemperatureC)
	if idx < 0 {
		return 0
	}

	var sum float64
	var count int
	for _, row := range t.Rows {
		v, err := strconv.ParseFloat(row[idx], 64)
		if err != nil {
			continue
		}
		sum += v
		count++
	}
	if count == 0 {
		return 0
	}
	return domain.Round2(sum / float64(count))
}
