package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/slopewise/avalanche-advisory/internal/advisory"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// AdvisoryBuilder computes the advisory served for a zone.
type AdvisoryBuilder interface {
	BuildAdvisory(ctx context.Context, zone string) (advisory.Advisory, error)
}

// FlagChecker reports operational site flags.
type FlagChecker interface {
	Enabled(ctx context.Context, name string) bool
}

// Server exposes the advisory API plus health, readiness, and metrics
// endpoints.
type Server struct {
	httpServer *http.Server
	builder    AdvisoryBuilder
	flags      FlagChecker
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the advisory route and the
// /healthz, /readyz, and /metrics operational routes.
func NewServer(addr string, builder AdvisoryBuilder, flags FlagChecker, ready ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		builder: builder,
		flags:   flags,
		logger:  logger,
	}

	mux.HandleFunc("GET /api/v1/zones/{zone}/advisory", s.handleAdvisory)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

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

func (s *Server) handleAdvisory(w http.ResponseWriter, r *http.Request) {
	if s.flags.Enabled(r.Context(), "maintenance_mode") {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "advisory service is down for maintenance",
		})
		return
	}

	zone := r.PathValue("zone")
	adv, err := s.builder.BuildAdvisory(r.Context(), zone)
	if err != nil {
		if errors.Is(err, advisory.ErrNoForecasts) {
			writeJSON(w, http.StatusNotFound, map[string]string{
				"error": "no forecasts for zone " + zone,
			})
			return
		}
		s.logger.Error("build advisory failed", "zone", zone, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "internal error",
		})
		return
	}

	writeJSON(w, http.StatusOK, adv)
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

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
