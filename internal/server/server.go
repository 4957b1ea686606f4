// Package server exposes the report core over a small JSON HTTP surface and
// serves the embedded single-page UI.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"creditwatch/internal/ledger"
	"creditwatch/internal/logger"
	"creditwatch/internal/report"
)

//go:embed web
var webFS embed.FS

// SnapshotProvider hands out the current ledger snapshot, optionally forcing
// a refresh. Implemented by *dataset.Store.
type SnapshotProvider interface {
	Snapshot(ctx context.Context, force bool) (*ledger.Dataset, error)
	Age() (time.Duration, bool)
}

// Server routes HTTP requests to the report core.
type Server struct {
	store SnapshotProvider
	opts  report.Options
	mux   *http.ServeMux
	log   zerolog.Logger
}

// New creates a server over the given snapshot provider.
func New(store SnapshotProvider, opts report.Options) *Server {
	s := &Server{
		store: store,
		opts:  opts,
		mux:   http.NewServeMux(),
		log:   logger.WithComponent("server"),
	}

	static, _ := fs.Sub(webFS, "web")
	s.mux.Handle("GET /", http.FileServer(http.FS(static)))
	s.mux.HandleFunc("GET /clients-list", s.handleClientsList)
	s.mux.HandleFunc("GET /client", s.handleClient)
	s.mux.HandleFunc("GET /refresh-data", s.handleRefresh)
	s.mux.HandleFunc("GET /health", s.handleHealth)

	return s
}

// Handler returns the root handler with request logging applied.
func (s *Server) Handler() http.Handler {
	return s.requestLogger(s.mux)
}

func (s *Server) handleClientsList(w http.ResponseWriter, r *http.Request) {
	ds, err := s.store.Snapshot(r.Context(), false)
	if err != nil && ds.Empty() {
		// Nothing ever loaded; the UI treats an empty list as "no data".
		writeJSON(w, http.StatusOK, []string{})
		return
	}
	writeJSON(w, http.StatusOK, report.ListClients(ds))
}

func (s *Server) handleClient(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing client name")
		return
	}

	ds, _ := s.store.Snapshot(r.Context(), false)

	rep, err := report.Compute(ds, name, s.opts)
	switch {
	case errors.Is(err, report.ErrEmptyDataset):
		writeError(w, http.StatusServiceUnavailable, "no ledger data available")
		return
	case errors.Is(err, report.ErrClientNotFound):
		writeError(w, http.StatusNotFound, "client not found")
		return
	case err != nil:
		s.log.Error().Err(err).Str("client", name).Msg("Report computation failed")
		writeError(w, http.StatusInternalServerError, "report computation failed")
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	ds, err := s.store.Snapshot(r.Context(), true)
	if err != nil {
		s.log.Error().Err(err).Msg("Forced refresh failed")
		writeError(w, http.StatusBadGateway, "failed to refresh ledger data")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": fmt.Sprintf("ledger refreshed, %d rows loaded", ds.Len()),
	})
}

type healthResponse struct {
	Status          string  `json:"status"`
	DataLoaded      bool    `json:"data_loaded"`
	Rows            int     `json:"rows"`
	CacheAgeSeconds float64 `json:"cache_age_seconds"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ds, _ := s.store.Snapshot(r.Context(), false)

	resp := healthResponse{Status: "healthy", DataLoaded: !ds.Empty(), Rows: ds.Len()}
	if age, ok := s.store.Age(); ok {
		resp.CacheAgeSeconds = age.Seconds()
	}
	if ds.Empty() {
		resp.Status = "degraded"
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
