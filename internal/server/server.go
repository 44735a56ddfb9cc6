// Package server implements the graphplace HTTP API.
//
// The API exposes the same layout pipeline as the CLI:
//
//	POST /v1/layout   compute a layout for a wire graph
//	GET  /healthz     liveness probe
//
// Every request gets a UUID request id, structured access logging, and
// panic recovery. Layout computation runs synchronously within a
// per-request timeout.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/mbertsch/graphplace/pkg/errors"
	"github.com/mbertsch/graphplace/pkg/pipeline"
	"github.com/mbertsch/graphplace/pkg/wire"
)

// DefaultTimeout bounds a single layout request.
const DefaultTimeout = 30 * time.Second

// Server serves the layout API.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	timeout time.Duration
}

// New creates a server around a pipeline runner.
// A nil logger falls back to the default logger; a zero timeout falls back
// to DefaultTimeout.
func New(runner *pipeline.Runner, logger *log.Logger, timeout time.Duration) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Server{runner: runner, logger: logger, timeout: timeout}
}

// Handler builds the HTTP routing tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(s.recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/layout", s.handleLayout)

	return r
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// layoutRequest is the body of POST /v1/layout.
type layoutRequest struct {
	Graph   wire.Graph       `json:"graph"`
	Options pipeline.Options `json:"options"`
}

// layoutResponse is the success body of POST /v1/layout.
type layoutResponse struct {
	Graph      wire.Graph `json:"graph"`
	GraphHash  string     `json:"graph_hash"`
	CacheHit   bool       `json:"cache_hit"`
	DurationMS float64    `json:"duration_ms"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	if len(req.Graph.Nodes) == 0 {
		writeError(w, errors.New(errors.ErrCodeInvalidGraph, "graph must contain at least one node"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	start := time.Now()
	result, err := s.runner.ComputeLayoutWithCacheInfo(ctx, req.Graph, req.Options)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, layoutResponse{
		Graph:      result.Graph,
		GraphHash:  result.GraphHash,
		CacheHit:   result.CacheInfo.LayoutHit,
		DurationMS: float64(time.Since(start).Microseconds()) / 1000,
	})
}

// =============================================================================
// Response Helpers
// =============================================================================

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps error codes to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidGraph,
		errors.ErrCodeInvalidAlgorithm, errors.ErrCodeInvalidOptions,
		errors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	case "":
		code = errors.ErrCodeInternal
	}

	writeJSON(w, status, errorBody{Error: errorDetail{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}
