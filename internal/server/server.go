// Package server implements the decyclify HTTP API.
//
// The API mirrors the pipeline: POST /v1/decyclify breaks cycles and returns
// the acyclic graph with both dependency matrices; POST /v1/schedule runs a
// cycle-aware iterator and returns the batch sequence. Requests carry a
// uuid request ID for log correlation.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/taskweave/decyclify/pkg/decyclify"
	"github.com/taskweave/decyclify/pkg/graph"
	"github.com/taskweave/decyclify/pkg/pipeline"
	"github.com/taskweave/decyclify/pkg/schedule"
)

// Server exposes the decyclify pipeline over HTTP.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server backed by the given runner.
// A nil logger falls back to the default logger.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Handler returns the HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/decyclify", s.handleDecyclify)
		r.Post("/schedule", s.handleSchedule)
	})
	return r
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusFor maps pipeline and validation errors to HTTP status codes.
// Contract violations are client errors; anything else is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, pipeline.ErrNoInput),
		errors.Is(err, pipeline.ErrInvalidMode),
		errors.Is(err, graph.ErrMalformedEdge),
		errors.Is(err, graph.ErrInvalidNodeID),
		errors.Is(err, decyclify.ErrUnknownStart),
		errors.Is(err, schedule.ErrNilGraph),
		errors.Is(err, schedule.ErrEmptyGraph),
		errors.Is(err, schedule.ErrInvalidCycleCount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
