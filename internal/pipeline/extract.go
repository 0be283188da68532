package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/chalonov-academic/airflow-etl-data-engineering/internal/adapter/gsheets"
	"github.com/chalonov-academic/airflow-etl-data-engineering/internal/domain"
	"github.com/chalonov-academic/airflow-etl-data-engineering/internal/observability"
)

// Extractor produces the raw artifact, preferring the remote sheet and
// substituting synthetic observations when it cannot be used.
type Extractor struct {
	source  SheetSource
	store   ArtifactStore
	paths   Paths
	rng     *rand.Rand
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewExtractor creates an Extractor. A nil rng gets a time-seeded one, so
// synthetic batches vary between runs while tests can pin the sequence.
func NewExtractor(source SheetSource, store ArtifactStore, paths Paths, rng *rand.Rand, logger *slog.Logger, metrics *observability.Metrics) *Extractor {
	if rng == nil {
		rng = rand.New(rand.NewSource(domain.Now().UnixNano()))
	}

	return &Extractor{
		source:  source,
		store:   store,
		paths:   paths,
		rng:     rng,
		logger:  logger,
		metrics: metrics,
	}
}

// Extract fetches the sheet and writes the raw CSV artifact. A nil source
// behaves like an unconfigured one. Fetch failures switch to synthetic data
// instead of failing the run; cancellation of ctx and artifact write errors
// are the only ways Extract can fail.
func (e *Extractor) Extract(ctx context.Context) (ExtractResult, error) {
	var table domain.Table
	err := gsheets.ErrNotConfigured
	if e.source != nil {
		table, err = e.source.Fetch(ctx)
	}

	source := SourceSheets
	reason := ""
	if err != nil {
		if ctx.Err() != nil {
			return ExtractResult{}, fmt.Errorf("fetch sheet: %w", err)
		}
		reason = fallbackReason(err)
		e.logger.Warn("falling back to synthetic data", "reason", reason, "error", err)
		e.metrics.ExtractFallbacks.Inc()
		table = domain.GenerateSynthetic(e.rng)
		source = SourceSynthetic
	}

	path := e.paths.Raw()
	if err := e.store.WriteTable(path, table); err != nil {
		return ExtractResult{}, fmt.Errorf("write raw artifact: %w", err)
	}

	e.metrics.RecordsExtracted.WithLabelValues(source).Add(float64(len(table.Rows)))
	e.logger.Info("extracted raw data",
		"source", source,
		"records", len(table.Rows),
		"path", path)

	return ExtractResult{
		ArtifactPath:   path,
		Source:         source,
		Records:        len(table.Rows),
		FallbackReason: reason,
	}, nil
}

// fallbackReason classifies why the remote sheet could not be used.
func fallbackReason(err error) string {
	switch {
	case errors.Is(err, gsheets.ErrNotConfigured):
		return "not_configured"
	case errors.Is(err, gsheets.ErrNoCredentials):
		return "missing_credentials"
	default:
		return "remote_error"
	}
}
