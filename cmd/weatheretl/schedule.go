package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	httpadapter "github.com/chalonov-academic/airflow-etl-data-engineering/internal/adapter/http"
	"github.com/chalonov-academic/airflow-etl-data-engineering/internal/schedule"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the pipeline on an interval as a service",
	Long: `Starts the recurring pipeline: an immediate first run, then one run every
SCHEDULE_INTERVAL, with failed runs retried per SCHEDULE_RETRIES. Also serves
/healthz, /readyz, /metrics and the read-only data endpoints on HTTP_ADDR
until SIGINT or SIGTERM.`,
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	app, err := buildApp()
	if err != nil {
		return err
	}
	logger := app.logger

	srv := httpadapter.NewServer(app.cfg.HTTPAddr, app.runner, app.validator, app.paths.Latest(), logger)
	harness := schedule.New(app.runner, app.cfg.ScheduleInterval, app.cfg.ScheduleRetries, app.cfg.ScheduleRetryDelay, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start the recurring pipeline.
	if err := harness.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	logger.Info("shutting down")

	harness.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}
