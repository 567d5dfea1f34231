// Package api exposes the HTTP interface for the notice crawler.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kookmin-feed/notice-crawler/internal/adapter"
	"github.com/kookmin-feed/notice-crawler/internal/metrics"
	"github.com/kookmin-feed/notice-crawler/internal/notice"
	"github.com/kookmin-feed/notice-crawler/internal/runner"
)

// Scraper triggers scrape runs. The runner.Orchestrator satisfies it.
type Scraper interface {
	Run(ctx context.Context, sources []adapter.Source) (string, []notice.RunResult)
}

// Server wires HTTP handlers to the orchestrator and source catalog.
type Server struct {
	router  chi.Router
	scraper Scraper
	logger  *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(scraper Scraper, logger *zap.Logger) *Server {
	metrics.Init()
	s := &Server{scraper: scraper, logger: logger}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoverMiddleware)
	r.Use(metricsMiddleware)

	r.Get("/healthz", s.healthz)
	r.Get("/readyz", s.readyz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/sources", s.listSources)
		r.Route("/runs", func(r chi.Router) {
			r.Post("/", s.runAll)
			r.Post("/{source_id}", s.runOne)
		})
	})

	s.router = r
	return s
}

// Handler returns the router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readyz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// sourceDTO is the wire shape of one catalog entry.
type sourceDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Mode string `json:"mode"`
}

func (s *Server) listSources(w http.ResponseWriter, _ *http.Request) {
	catalog := adapter.Catalog()
	out := make([]sourceDTO, len(catalog))
	for i, src := range catalog {
		out[i] = sourceDTO{ID: src.ID, Name: src.Name, URL: src.URL, Mode: string(src.Mode)}
	}
	writeJSON(w, http.StatusOK, map[string]any{"sources": out})
}

func (s *Server) runAll(w http.ResponseWriter, r *http.Request) {
	runID, results := s.scraper.Run(r.Context(), adapter.Catalog())
	writeJSON(w, http.StatusOK, map[string]any{
		"run_id":  runID,
		"results": results,
	})
}

func (s *Server) runOne(w http.ResponseWriter, r *http.Request) {
	sourceID := chi.URLParam(r, "source_id")
	src, ok := adapter.Lookup(sourceID)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown source")
		return
	}
	runID, results := s.scraper.Run(r.Context(), []adapter.Source{src})
	writeJSON(w, http.StatusOK, map[string]any{
		"run_id":  runID,
		"results": results,
	})
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)
		s.logger.Info("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.status),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
	})
}

func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", zap.Any("panic", rec))
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unknown"
		}
		metrics.ObserveHTTPRequest(r.Method, route, ww.status, time.Since(start))
	})
}

type requestIDKey struct{}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

var _ Scraper = (*runner.Orchestrator)(nil)
