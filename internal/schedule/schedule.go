// Package schedule runs the pipeline on a fixed interval with bounded
// retries per tick.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/chalonov-academic/airflow-etl-data-engineering/internal/pipeline"
)

// PipelineRunner triggers one full pipeline pass.
type PipelineRunner interface {
	Run(ctx context.Context) (pipeline.RunResult, error)
}

// Outcome records how the most recent scheduled tick went. Attempts counts
// the initial run plus any retries.
type Outcome struct {
	RunID    string
	Attempts int
	Err      error
}

// Harness fires the runner immediately and then on every interval. A failed
// run is retried with a fixed delay; ticks never overlap, so the pipeline
// only ever sees one run at a time.
type Harness struct {
	runner     PipelineRunner
	interval   time.Duration
	retries    int
	retryDelay time.Duration
	logger     *slog.Logger
	scheduler  *gocron.Scheduler

	mu   sync.Mutex
	last *Outcome
}

// New creates a Harness. retries is the number of extra attempts after a
// failed run, matching the run's retry budget rather than a total count.
func New(runner PipelineRunner, interval time.Duration, retries int, retryDelay time.Duration, logger *slog.Logger) *Harness {
	return &Harness{
		runner:     runner,
		interval:   interval,
		retries:    retries,
		retryDelay: retryDelay,
		logger:     logger,
		scheduler:  gocron.NewScheduler(time.UTC),
	}
}

// Start schedules the recurring job and launches the scheduler in the
// background. The first tick fires immediately rather than one interval in.
func (h *Harness) Start(ctx context.Context) error {
	_, err := h.scheduler.Every(h.interval).SingletonMode().StartImmediately().Do(func() {
		h.tick(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule pipeline job: %w", err)
	}

	h.scheduler.StartAsync()
	h.logger.Info("schedule started",
		"interval", h.interval,
		"retries", h.retries,
		"retry_delay", h.retryDelay)
	return nil
}

// Stop prevents further ticks. In-flight work stops through cancellation of
// the context passed to Start.
func (h *Harness) Stop() {
	h.scheduler.Stop()
	h.logger.Info("schedule stopped")
}

// LastOutcome returns a copy of the most recent tick's outcome, nil before
// the first tick finishes.
func (h *Harness) LastOutcome() *Outcome {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.last == nil {
		return nil
	}
	out := *h.last
	return &out
}

func (h *Harness) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	var outcome Outcome
	for attempt := 0; ; attempt++ {
		outcome.Attempts = attempt + 1
		result, err := h.runner.Run(ctx)
		outcome.RunID = result.RunID
		outcome.Err = err
		if err == nil {
			break
		}
		if ctx.Err() != nil || attempt >= h.retries {
			break
		}
		h.logger.Warn("scheduled run failed, retrying",
			"attempt", attempt+1,
			"max_attempts", h.retries+1,
			"retry_delay", h.retryDelay,
			"error", err)
		if !sleepWithContext(ctx, h.retryDelay) {
			break
		}
	}

	h.mu.Lock()
	h.last = &outcome
	h.mu.Unlock()

	if outcome.Err != nil {
		h.logger.Error("scheduled run gave up",
			"attempts", outcome.Attempts,
			"error", outcome.Err)
		return
	}
	h.logger.Info("scheduled run succeeded",
		"run_id", outcome.RunID,
		"attempts", outcome.Attempts)
}

// sleepWithContext waits for d, returning false early when ctx is cancelled.
func sleepWithContext(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
