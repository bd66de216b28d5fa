// Package server exposes the workflow API over HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.temporal.io/sdk/client"

	"github.com/gistloop/gistloop/pkg/auth"
	"github.com/gistloop/gistloop/pkg/config"
	"github.com/gistloop/gistloop/pkg/extraction"
	"github.com/gistloop/gistloop/pkg/observability"
	"github.com/gistloop/gistloop/pkg/storage"
)

// Server is the HTTP API server.
type Server struct {
	cfg      *config.Config
	temporal client.Client
	metrics  *observability.Metrics
	storage  *storage.Client
	parsers  *extraction.Registry
	httpSrv  *http.Server
}

// New builds the server. Storage may be nil when no object store is
// configured; the upload endpoint reports that at request time.
func New(cfg *config.Config, tc client.Client, store *storage.Client) (*Server, error) {
	s := &Server{
		cfg:      cfg,
		temporal: tc,
		metrics:  observability.NewMetrics(),
		storage:  store,
		parsers:  extraction.NewRegistry(),
	}

	router, err := s.routes()
	if err != nil {
		return nil, err
	}

	s.httpSrv = &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

func (s *Server) routes() (chi.Router, error) {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.corsMiddleware)
	r.Use(s.metricsMiddleware)

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	api := chi.NewRouter()
	if s.cfg.Server.Auth != nil && s.cfg.Server.Auth.Enabled {
		validator, err := auth.NewValidator(context.Background(), s.cfg.Server.Auth)
		if err != nil {
			return nil, err
		}
		api.Use(validator.HTTPMiddleware)
	}

	api.Route("/workflows", func(wr chi.Router) {
		wr.Post("/summarizer/sync", s.handleSummarizeSync)
		wr.Post("/summarizer-multi", s.handleSummarizeAllSync)
		wr.Post("/summarizer-multi/sync", s.handleSummarizeAllSync)

		wr.Post("/summarizer/run", s.handleSummarizeRun)
		wr.Post("/summarizer/retrigger_async", s.handleSummarizeRun)
		wr.Get("/summarizer/{workflowID}/status", s.handleStatus)

		wr.Post("/summarizer-all/run", s.handleSummarizeAllRun)
		wr.Post("/summarizer-all/retrigger_async", s.handleSummarizeAllRun)
		wr.Get("/summarizer-all/{workflowID}/status", s.handleStatus)

		wr.Get("/status/{workflowID}", s.handleStatus)
	})
	api.Post("/content/upload", s.handleUpload)

	r.Mount("/api", api)
	return r, nil
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "address", s.httpSrv.Addr)
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpSrv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": s.cfg.Name,
	})
}
