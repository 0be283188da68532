package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chalonov-academic/airflow-etl-data-engineering/internal/pipeline"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// QualityChecker produces a quality report for the published data.
type QualityChecker interface {
	Validate(ctx context.Context) (pipeline.QualityReport, error)
}

// Server exposes health, readiness, and metrics endpoints, plus read-only
// access to the latest published dataset and its quality report.
type Server struct {
	httpServer *http.Server
	quality    QualityChecker
	latestPath string
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics,
// /api/v1/latest, and /api/v1/quality routes. latestPath is the CSV file
// served by the latest endpoint.
func NewServer(addr string, ready ReadinessChecker, quality QualityChecker, latestPath string, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		quality:    quality,
		latestPath: latestPath,
		logger:     logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/v1/latest", s.handleLatest)
	mux.HandleFunc("GET /api/v1/quality", s.handleQuality)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// handleLatest streams the latest published CSV. Before the first load has
// published anything it answers 404 in the same shape the validator uses for
// a missing file.
func (s *Server) handleLatest(w http.ResponseWriter, _ *http.Request) {
	f, err := os.Open(s.latestPath)
	if errors.Is(err, fs.ErrNotExist) {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"status": pipeline.StatusFailed,
			"reason": pipeline.ReasonFileNotFound,
		})
		return
	}
	if err != nil {
		s.logger.Error("open latest data", "path", s.latestPath, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "cannot read latest data"})
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	if _, err := io.Copy(w, f); err != nil {
		s.logger.Warn("stream latest data", "error", err)
	}
}

func (s *Server) handleQuality(w http.ResponseWriter, r *http.Request) {
	report, err := s.quality.Validate(r.Context())
	if err != nil {
		s.logger.Error("quality check", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "quality check failed"})
		return
	}

	status := http.StatusOK
	if report.Status != "" {
		status = http.StatusNotFound
	}
	writeJSON(w, status, report)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort health response
}
