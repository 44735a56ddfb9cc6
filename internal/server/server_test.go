package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/mbertsch/graphplace/pkg/cache"
	"github.com/mbertsch/graphplace/pkg/pipeline"
	"github.com/mbertsch/graphplace/pkg/wire"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(fc, nil, logger)
	t.Cleanup(func() { runner.Close() })
	return New(runner, logger, 0)
}

func layoutBody(t *testing.T, algorithm string) *bytes.Reader {
	t.Helper()
	req := map[string]any{
		"graph": wire.Graph{
			Nodes: []wire.Node{
				{ID: "a", Width: 100, Height: 50},
				{ID: "b", Width: 100, Height: 50},
			},
			Edges: []wire.Edge{{From: "a", To: "b"}},
		},
		"options": map[string]any{"algorithm": algorithm},
	}
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	return bytes.NewReader(data)
}

func TestHealthz(t *testing.T) {
	h := testServer(t).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestLayoutEndpoint(t *testing.T) {
	h := testServer(t).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/layout", layoutBody(t, "layered")))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Graph     wire.Graph `json:"graph"`
		GraphHash string     `json:"graph_hash"`
		CacheHit  bool       `json:"cache_hit"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(resp.Graph.Nodes) != 2 {
		t.Fatalf("node count = %d, want 2", len(resp.Graph.Nodes))
	}
	if resp.Graph.Nodes[1].Y <= resp.Graph.Nodes[0].Y {
		t.Error("layered layout should place b below a")
	}
	if resp.GraphHash == "" {
		t.Error("graph_hash missing")
	}
	if resp.CacheHit {
		t.Error("first request should not be a cache hit")
	}
}

func TestLayoutEndpointCacheHit(t *testing.T) {
	h := testServer(t).Handler()

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/v1/layout", layoutBody(t, "grid")))
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d", first.Code)
	}

	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/v1/layout", layoutBody(t, "grid")))
	if second.Code != http.StatusOK {
		t.Fatalf("second status = %d", second.Code)
	}

	var resp struct {
		CacheHit bool `json:"cache_hit"`
	}
	if err := json.Unmarshal(second.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !resp.CacheHit {
		t.Error("second identical request should hit the cache")
	}
}

func TestLayoutEndpointValidation(t *testing.T) {
	h := testServer(t).Handler()

	tests := []struct {
		name     string
		body     io.Reader
		wantCode string
	}{
		{"unknown algorithm", layoutBody(t, "spiral"), "INVALID_ALGORITHM"},
		{"malformed json", bytes.NewReader([]byte("{nope")), "INVALID_INPUT"},
		{"empty graph", bytes.NewReader([]byte(`{"graph":{"nodes":[],"edges":[]}}`)), "INVALID_GRAPH"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/layout", tt.body))

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (%s)", rec.Code, rec.Body.String())
			}
			var body struct {
				Error struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if body.Error.Code != tt.wantCode {
				t.Errorf("error code = %q, want %q", body.Error.Code, tt.wantCode)
			}
			if body.Error.Message == "" {
				t.Error("error message missing")
			}
		})
	}
}

func TestRequestIDAssignedAndPreserved(t *testing.T) {
	h := testServer(t).Handler()

	// Assigned when absent
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("response should carry a generated request id")
	}

	// Preserved when present
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "client-id-1")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "client-id-1" {
		t.Errorf("request id = %q, want client-id-1", got)
	}
}

func TestRecovererConvertsPanics(t *testing.T) {
	s := testServer(t)
	h := s.recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/layout", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error.Code != "INTERNAL_ERROR" {
		t.Errorf("error code = %q, want INTERNAL_ERROR", body.Error.Code)
	}
}
