// internal/server/server.go
// Package server serves the report over HTTP. Every request resolves the
// artifact again so a regenerated metrics.json shows up on reload.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mwiater/losdash/internal/appconfig"
	"github.com/mwiater/losdash/internal/export"
	"github.com/mwiater/losdash/internal/metrics"
	"github.com/mwiater/losdash/internal/plots"
	"github.com/mwiater/losdash/internal/render"
	"github.com/mwiater/losdash/internal/telemetry"
)

// RequestIDHeader carries the id assigned to each request.
const RequestIDHeader = "X-Request-Id"

// Server holds the router and its dependencies.
type Server struct {
	cfg      appconfig.Config
	recorder *telemetry.Recorder
	router   *chi.Mux
}

// New builds a Server for cfg. A nil recorder disables instrumentation and
// the /metrics route.
func New(cfg appconfig.Config, recorder *telemetry.Recorder) *Server {
	cfg.Normalize()
	s := &Server{
		cfg:      cfg,
		recorder: recorder,
		router:   chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(requestID)
	s.router.Use(accessLog)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/api/report", s.handleReport)
	s.router.Get("/api/plots", s.handlePlots)
	s.router.Get("/export.xlsx", s.handleExport)
	s.router.Get("/plots/{name}", s.handlePlot)
	if s.recorder != nil {
		s.router.Handle("/metrics", s.recorder.Handler())
	}
}

// ListenAndServe runs until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Serving LOS report", "addr", s.cfg.ListenAddr, "artifact", s.cfg.ArtifactPath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		slog.Info("Shutting down server")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) resolve(r *http.Request) metrics.Report {
	rv := metrics.Resolver{
		Logger:   slog.Default().With("request_id", RequestIDFrom(r.Context())),
		Recorder: s.recorder,
	}
	return rv.Resolve(s.cfg.ArtifactPath)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	report := s.resolve(r)
	figures := plots.Check(s.cfg.PlotsDir)

	start := time.Now()
	var buf bytes.Buffer
	err := render.HTML(&buf, report, figures, render.PageOptions{PlotURLPrefix: "/plots/"})
	s.recorder.ObserveRender("html", time.Since(start), err)
	if err != nil {
		slog.Error("render page", "error", err, "request_id", RequestIDFrom(r.Context()))
		http.Error(w, "failed to render report", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.resolve(r))
}

func (s *Server) handlePlots(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, plots.Check(s.cfg.PlotsDir))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	report := s.resolve(r)

	start := time.Now()
	var buf bytes.Buffer
	err := export.Write(&buf, report)
	s.recorder.ObserveRender("xlsx", time.Since(start), err)
	if err != nil {
		slog.Error("export workbook", "error", err, "request_id", RequestIDFrom(r.Context()))
		http.Error(w, "failed to export report", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="los-report.xlsx"`)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handlePlot(w http.ResponseWriter, r *http.Request) {
	status, ok := plots.Lookup(s.cfg.PlotsDir, chi.URLParam(r, "name"))
	if !ok || !status.Loadable {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	http.ServeFile(w, r, s.cfg.PlotPath(status.Name))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}
