package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"maldreth/internal/layout"
	"maldreth/internal/lifecycle"
	"maldreth/internal/logging"
)

// Options configures the HTTP surface.
type Options struct {
	Bind         string
	LayoutStyle  layout.Style
	LayoutRadius float64
}

// Server serves the web UI and JSON API over the lifecycle store.
type Server struct {
	store  *lifecycle.Store
	logger *slog.Logger
	opts   Options
	mux    *http.ServeMux
	views  *viewSet
}

// New wires the server against an opened store.
func New(store *lifecycle.Store, logger *slog.Logger, opts Options) (*Server, error) {
	if store == nil {
		return nil, errors.New("server requires store")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	if opts.LayoutRadius <= 0 {
		opts.LayoutRadius = 1
	}

	views, err := parseViews()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		store:  store,
		logger: logger.With(logging.String(logging.FieldComponent, "server")),
		opts:   opts,
		mux:    http.NewServeMux(),
		views:  views,
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	// HTML views
	s.mux.HandleFunc("GET /{$}", s.handleSearchPage)
	s.mux.HandleFunc("GET /lifecycle", s.handleLifecyclePage)
	s.mux.HandleFunc("GET /categories", s.handleCategoriesPage)
	s.mux.HandleFunc("GET /about", s.handleAboutPage)

	// JSON API
	s.mux.HandleFunc("GET /api/healthz", s.handleHealthz)
	s.mux.HandleFunc("GET /api/stages", s.handleAPIStages)
	s.mux.HandleFunc("GET /api/connections", s.handleAPIConnections)
	s.mux.HandleFunc("GET /api/categories", s.handleAPICategories)
	s.mux.HandleFunc("GET /api/tools", s.handleAPITools)
	s.mux.HandleFunc("GET /api/search", s.handleAPISearch)
}

// Handler returns the full middleware-wrapped handler, exposed for tests.
func (s *Server) Handler() http.Handler {
	return s.withRequestLogging(s.mux)
}

// Run serves HTTP until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Bind,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("http server listening", logging.String("bind", s.opts.Bind))

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	s.logger.Info("http server stopped")
	return nil
}
