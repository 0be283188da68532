package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/chalonov-academic/airflow-etl-data-engineering/internal/domain"
	"github.com/chalonov-academic/airflow-etl-data-engineering/internal/observability"
)

// Runner executes the four stages in order, stopping at the first one that
// fails. Each run gets its own ID so the log lines of concurrent or
// consecutive runs can be told apart.
type Runner struct {
	extractor   *Extractor
	transformer *Transformer
	loader      *Loader
	validator   *Validator
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
}

// RunResult aggregates the stage results of one pipeline run. FailedStage is
// set when the run stopped early; results of stages that never ran are zero.
type RunResult struct {
	RunID       string          `json:"run_id"`
	Extract     ExtractResult   `json:"extract"`
	Transform   TransformResult `json:"transform"`
	Load        RunMetrics      `json:"load"`
	Quality     QualityReport   `json:"quality"`
	FailedStage string          `json:"failed_stage,omitempty"`
}

// NewRunner creates a Runner from the four stage implementations.
func NewRunner(extractor *Extractor, transformer *Transformer, loader *Loader, validator *Validator, logger *slog.Logger, metrics *observability.Metrics) *Runner {
	return &Runner{
		extractor:   extractor,
		transformer: transformer,
		loader:      loader,
		validator:   validator,
		logger:      logger,
		metrics:     metrics,
	}
}

// CheckReadiness returns nil once at least one run has completed, or an
// error describing why the service is not yet ready.
func (r *Runner) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return fmt.Errorf("no pipeline run has completed yet")
	}
	return nil
}

// Run executes one full pipeline pass.
func (r *Runner) Run(ctx context.Context) (RunResult, error) {
	runID := uuid.NewString()
	logger := r.logger.With("run_id", runID)
	logger.Info("pipeline run starting")

	r.metrics.RunActive.Set(1)
	defer r.metrics.RunActive.Set(0)

	result := RunResult{RunID: runID}

	err := r.runStage(ctx, logger, StageExtract, func(ctx context.Context) error {
		var err error
		result.Extract, err = r.extractor.Extract(ctx)
		return err
	})
	if err != nil {
		return r.failed(result, StageExtract, err)
	}

	err = r.runStage(ctx, logger, StageTransform, func(ctx context.Context) error {
		var err error
		result.Transform, err = r.transformer.Transform(ctx)
		return err
	})
	if err != nil {
		return r.failed(result, StageTransform, err)
	}

	err = r.runStage(ctx, logger, StageLoad, func(ctx context.Context) error {
		var err error
		result.Load, err = r.loader.Load(ctx)
		return err
	})
	if err != nil {
		return r.failed(result, StageLoad, err)
	}

	err = r.runStage(ctx, logger, StageValidate, func(ctx context.Context) error {
		var err error
		result.Quality, err = r.validator.Validate(ctx)
		return err
	})
	if err != nil {
		return r.failed(result, StageValidate, err)
	}

	r.metrics.RunsTotal.WithLabelValues("success").Inc()
	r.ready.Store(true)
	logger.Info("pipeline run finished",
		"source", result.Extract.Source,
		"records", result.Load.RecordsProcessed,
		"quality_score", result.Quality.QualityScore)

	return result, nil
}

func (r *Runner) runStage(ctx context.Context, logger *slog.Logger, stage string, fn func(context.Context) error) error {
	start := domain.Now()
	err := fn(ctx)
	duration := domain.Now().Sub(start)
	r.metrics.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
	if err != nil {
		r.metrics.StageFailures.WithLabelValues(stage).Inc()
		logger.Error("stage failed", "stage", stage, "error", err)
		return err
	}

	logger.Info("stage completed", "stage", stage, "duration", duration)
	return nil
}

func (r *Runner) failed(result RunResult, stage string, err error) (RunResult, error) {
	result.FailedStage = stage
	r.metrics.RunsTotal.WithLabelValues("failed").Inc()
	return result, fmt.Errorf("%s stage: %w", stage, err)
}
