package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/chalonov-academic/airflow-etl-data-engineering/internal/adapter/csvfile"
	"github.com/chalonov-academic/airflow-etl-data-engineering/internal/adapter/gsheets"
	"github.com/chalonov-academic/airflow-etl-data-engineering/internal/config"
	"github.com/chalonov-academic/airflow-etl-data-engineering/internal/observability"
	"github.com/chalonov-academic/airflow-etl-data-engineering/internal/pipeline"
)

// app bundles the wired pipeline pieces the subcommands share.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *observability.Metrics
	paths   pipeline.Paths
	store   *csvfile.Store

	extractor   *pipeline.Extractor
	transformer *pipeline.Transformer
	loader      *pipeline.Loader
	validator   *pipeline.Validator
	runner      *pipeline.Runner
}

func buildApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if workDir != "" {
		cfg.WorkDir = workDir
	}
	if processedDir != "" {
		cfg.ProcessedDir = processedDir
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	store := csvfile.NewStore(logger)
	source := gsheets.NewClient(cfg.SheetID, cfg.SheetRange, cfg.CredentialsFile, cfg.SheetsTimeout, logger)
	paths := pipeline.Paths{WorkDir: cfg.WorkDir, ProcessedDir: cfg.ProcessedDir}

	extractor := pipeline.NewExtractor(source, store, paths, nil, logger, metrics)
	transformer := pipeline.NewTransformer(store, paths, logger, metrics)
	loader := pipeline.NewLoader(store, paths, logger, metrics)
	validator := pipeline.NewValidator(store, paths, logger, metrics)
	runner := pipeline.NewRunner(extractor, transformer, loader, validator, logger, metrics)

	return &app{
		cfg:         cfg,
		logger:      logger,
		metrics:     metrics,
		paths:       paths,
		store:       store,
		extractor:   extractor,
		transformer: transformer,
		loader:      loader,
		validator:   validator,
		runner:      runner,
	}, nil
}

// printJSON writes v to stdout for the invoking scheduler's logs.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
