package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/chalonov-academic/airflow-etl-data-engineering/internal/domain"
	"github.com/chalonov-academic/airflow-etl-data-engineering/internal/observability"
)

// Validator assesses the quality of the latest published data.
type Validator struct {
	store   ArtifactStore
	paths   Paths
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewValidator creates a Validator.
func NewValidator(store ArtifactStore, paths Paths, logger *slog.Logger, metrics *observability.Metrics) *Validator {
	return &Validator{
		store:   store,
		paths:   paths,
		logger:  logger,
		metrics: metrics,
	}
}

// Validate reads the latest pointer and runs the quality checks against it.
// A missing file is a structured failure rather than an error, so running
// validation against an empty directory still yields a report.
func (v *Validator) Validate(ctx context.Context) (QualityReport, error) {
	if err := ctx.Err(); err != nil {
		return QualityReport{}, err
	}

	path := v.paths.Latest()
	table, err := v.store.ReadTable(path)
	if errors.Is(err, fs.ErrNotExist) {
		v.logger.Warn("no processed data to validate", "path", path)
		return QualityReport{Status: StatusFailed, Reason: ReasonFileNotFound}, nil
	}
	if err != nil {
		return QualityReport{}, fmt.Errorf("read latest data: %w", err)
	}

	checks := domain.AssessTable(table)
	score := checks.Score()
	v.metrics.QualityScore.Set(float64(score))

	v.logger.Info("validated processed data",
		"path", path,
		"records", checks.TotalRecords,
		"score", score,
		"assessment", domain.ClassifyScore(score))

	return QualityReport{
		TotalRecords:          checks.TotalRecords,
		NullValues:            checks.NullValues,
		DuplicateRows:         checks.DuplicateRows,
		TemperatureOutOfRange: checks.TemperatureOutOfRange,
		HumidityOutOfRange:    checks.HumidityOutOfRange,
		QualityScore:          score,
	}, nil
}
