package pipeline_test

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chalonov-academic/airflow-etl-data-engineering/internal/adapter/gsheets"
	"github.com/chalonov-academic/airflow-etl-data-engineering/internal/pipeline"
)

func newTestRunner(t *testing.T, source pipeline.SheetSource, store pipeline.ArtifactStore, paths pipeline.Paths) *pipeline.Runner {
	t.Helper()
	logger := slog.Default()
	metrics := newTestMetrics()
	return pipeline.NewRunner(
		pipeline.NewExtractor(source, store, paths, rand.New(rand.NewSource(1)), logger, metrics),
		pipeline.NewTransformer(store, paths, logger, metrics),
		pipeline.NewLoader(store, paths, logger, metrics),
		pipeline.NewValidator(store, paths, logger, metrics),
		logger, metrics)
}

func TestRunner_Run_EndToEnd(t *testing.T) {
	freezeClock(t)
	store := newStore()
	paths := testPaths(t)
	source := &stubSource{table: rawTable(
		obsRow("Bogotá", "18.0", "70"),
		obsRow("Medellín", "30.0", "60"),
		obsRow("Cali", "55.0", "50"),
		obsRow("Cali", "28.0", "65"),
	)}
	r := newTestRunner(t, source, store, paths)

	require.Error(t, r.CheckReadiness(context.Background()))

	result, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Empty(t, result.FailedStage)
	assert.Equal(t, pipeline.SourceSheets, result.Extract.Source)
	assert.Equal(t, 4, result.Transform.RecordsIn)
	assert.Equal(t, 3, result.Transform.RecordsOut)
	assert.Equal(t, 1, result.Transform.DroppedOutOfRange)
	assert.Equal(t, 3, result.Load.RecordsProcessed)
	assert.Equal(t, 3, result.Load.CitiesCount)
	assert.Equal(t, 3, result.Quality.TotalRecords)
	assert.Equal(t, 100, result.Quality.QualityScore)

	require.NoError(t, r.CheckReadiness(context.Background()))

	snapBytes, err := os.ReadFile(filepath.Join(paths.ProcessedDir, "weather_data_20240115_143025.csv"))
	require.NoError(t, err)
	latestBytes, err := os.ReadFile(paths.Latest())
	require.NoError(t, err)
	assert.Equal(t, snapBytes, latestBytes)
}

func TestRunner_Run_SyntheticFallback(t *testing.T) {
	freezeClock(t)
	store := newStore()
	paths := testPaths(t)
	r := newTestRunner(t, &stubSource{err: gsheets.ErrNotConfigured}, store, paths)

	result, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, pipeline.SourceSynthetic, result.Extract.Source)
	assert.Equal(t, "not_configured", result.Extract.FallbackReason)
	assert.Equal(t, 30, result.Extract.Records)
	assert.Equal(t, 30, result.Load.RecordsProcessed)
	assert.Equal(t, 3, result.Load.CitiesCount)
	assert.Equal(t, 100, result.Quality.QualityScore)
}

func TestRunner_Run_StopsAtFailedStage(t *testing.T) {
	paths := testPaths(t)
	store := &failingStore{ArtifactStore: newStore(), writeErr: errors.New("disk full")}
	r := newTestRunner(t, &stubSource{table: rawTable(obsRow("Bogotá", "18.0", "70"))}, store, paths)

	result, err := r.Run(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "extract stage")
	assert.Equal(t, pipeline.StageExtract, result.FailedStage)
	assert.Error(t, r.CheckReadiness(context.Background()))
	assert.NoFileExists(t, paths.Raw())
}

func TestRunner_Run_TransformFailureReportsEarlierStages(t *testing.T) {
	store := newStore()
	paths := testPaths(t)
	r := newTestRunner(t, &stubSource{table: rawTable(obsRow("Bogotá", "bogus", "70"))}, store, paths)

	result, err := r.Run(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "transform stage")
	assert.Equal(t, pipeline.StageTransform, result.FailedStage)
	assert.Equal(t, pipeline.SourceSheets, result.Extract.Source)
	assert.Equal(t, 1, result.Extract.Records)
}

func TestRunner_Run_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newTestRunner(t, &stubSource{err: context.Canceled}, newStore(), testPaths(t))

	result, err := r.Run(ctx)
	require.Error(t, err)
	assert.Equal(t, pipeline.StageExtract, result.FailedStage)
}
