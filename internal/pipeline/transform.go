package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/chalonov-academic/airflow-etl-data-engineering/internal/domain"
	"github.com/chalonov-academic/airflow-etl-data-engineering/internal/observability"
)

// Transformer cleans and enriches the raw artifact. Enrichment steps are
// conditional on their input columns, so partial tables pass through with
// whatever can be derived from them; cleaning always runs.
type Transformer struct {
	store   ArtifactStore
	paths   Paths
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewTransformer creates a Transformer.
func NewTransformer(store ArtifactStore, paths Paths, logger *slog.Logger, metrics *observability.Metrics) *Transformer {
	return &Transformer{
		store:   store,
		paths:   paths,
		logger:  logger,
		metrics: metrics,
	}
}

// Transform reads the raw artifact, applies the cleaning and enrichment
// steps in a fixed order, and writes the transformed artifact. The order
// matters: incomplete rows go first so derivations never see empty cells,
// and the batch timestamp is stamped before range filtering.
func (tr *Transformer) Transform(ctx context.Context) (TransformResult, error) {
	if err := ctx.Err(); err != nil {
		return TransformResult{}, err
	}

	table, err := tr.store.ReadTable(tr.paths.Raw())
	if err != nil {
		return TransformResult{}, fmt.Errorf("read raw artifact: %w", err)
	}
	recordsIn := len(table.Rows)

	table, droppedIncomplete := table.DropIncompleteRows()
	if droppedIncomplete > 0 {
		tr.metrics.RowsDropped.WithLabelValues("missing_fields").Add(float64(droppedIncomplete))
	}

	table, err = deriveFahrenheit(table)
	if err != nil {
		return TransformResult{}, fmt.Errorf("derive fahrenheit: %w", err)
	}

	table = stampProcessedAt(table)

	table, droppedOutOfRange, err := filterTemperatureRange(table)
	if err != nil {
		return TransformResult{}, fmt.Errorf("filter temperature range: %w", err)
	}
	if droppedOutOfRange > 0 {
		tr.metrics.RowsDropped.WithLabelValues("temperature_range").Add(float64(droppedOutOfRange))
	}

	table, err = deriveHeatIndex(table)
	if err != nil {
		return TransformResult{}, fmt.Errorf("derive heat index: %w", err)
	}

	table, err = deriveCategory(table)
	if err != nil {
		return TransformResult{}, fmt.Errorf("derive temperature category: %w", err)
	}

	stats := domain.CityTemperatureStats(table)
	for _, s := range stats {
		tr.logger.Info("city temperature summary",
			"city", s.City,
			"mean", s.Mean,
			"min", s.Min,
			"max", s.Max)
	}

	path := tr.paths.Transformed()
	if err := tr.store.WriteTable(path, table); err != nil {
		return TransformResult{}, fmt.Errorf("write transformed artifact: %w", err)
	}

	tr.logger.Info("transformed data",
		"records_in", recordsIn,
		"records_out", len(table.Rows),
		"dropped_incomplete", droppedIncomplete,
		"dropped_out_of_range", droppedOutOfRange,
		"path", path)

	return TransformResult{
		ArtifactPath:      path,
		RecordsIn:         recordsIn,
		RecordsOut:        len(table.Rows),
		DroppedIncomplete: droppedIncomplete,
		DroppedOutOfRange: droppedOutOfRange,
		CityStats:         stats,
	}, nil
}

// stampProcessedAt marks every row with a single batch timestamp.
func stampProcessedAt(t domain.Table) domain.Table {
	stamp := domain.Now().Format(domain.TimeLayout)
	values := make([]string, len(t.Rows))
	for i := range values {
		values[i] = stamp
	}
	return t.WithColumn(domain.ColProcessedAt, values)
}

// deriveFahrenheit appends the Fahrenheit column when celsius is present.
// Unlike validation, which merely counts bad cells, a non-numeric celsius
// value is fatal here.
func deriveFahrenheit(t domain.Table) (domain.Table, error) {
	idx := t.ColumnIndex(domain.ColTemperatureC)
	if idx < 0 {
		return t, nil
	}

	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		c, err := parseCell(domain.ColTemperatureC, i, row[idx])
		if err != nil {
			return domain.Table{}, err
		}
		values[i] = domain.FormatDerived(domain.CelsiusToFahrenheit(c))
	}
	return t.WithColumn(domain.ColTemperatureF, values), nil
}

// filterTemperatureRange drops rows whose celsius reading falls outside the
// plausible range. Tables without a celsius column pass through unchanged.
func filterTemperatureRange(t domain.Table) (domain.Table, int, error) {
	idx := t.ColumnIndex(domain.ColTemperatureC)
	if idx < 0 {
		return t, 0, nil
	}

	rows := make([][]string, 0, len(t.Rows))
	for i, row := range t.Rows {
		c, err := parseCell(domain.ColTemperatureC, i, row[idx])
		if err != nil {
			return domain.Table{}, 0, err
		}
		if c < domain.MinValidCelsius || c > domain.MaxValidCelsius {
			continue
		}
		rows = append(rows, row)
	}
	return domain.Table{Columns: t.Columns, Rows: rows}, len(t.Rows) - len(rows), nil
}

// deriveHeatIndex appends the heat index column when both of its inputs are
// present.
func deriveHeatIndex(t domain.Table) (domain.Table, error) {
	cIdx := t.ColumnIndex(domain.ColTemperatureC)
	hIdx := t.ColumnIndex(domain.ColHumidity)
	if cIdx < 0 || hIdx < 0 {
		return t, nil
	}

	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		c, err := parseCell(domain.ColTemperatureC, i, row[cIdx])
		if err != nil {
			return domain.Table{}, err
		}
		h, err := parseCell(domain.ColHumidity, i, row[hIdx])
		if err != nil {
			return domain.Table{}, err
		}
		values[i] = domain.FormatDerived(domain.HeatIndex(c, h))
	}
	return t.WithColumn(domain.ColHeatIndex, values), nil
}

// deriveCategory appends the temperature category column when celsius is
// present.
func deriveCategory(t domain.Table) (domain.Table, error) {
	idx := t.ColumnIndex(domain.ColTemperatureC)
	if idx < 0 {
		return t, nil
	}

	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		c, err := parseCell(domain.ColTemperatureC, i, row[idx])
		if err != nil {
			return domain.Table{}, err
		}
		values[i] = domain.CategorizeTemperature(c)
	}
	return t.WithColumn(domain.ColTempCategory, values), nil
}

func parseCell(column string, row int, cell string) (float64, error) {
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("row %d: parse %s %q: %w", row, column, cell, err)
	}
	return v, nil
}
