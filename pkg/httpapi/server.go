// Package httpapi exposes the layout engine over HTTP for the dashboard.
//
// The API is deliberately thin: the dashboard posts a graph with layout
// options and receives the positioned graph back. All heavy lifting lives
// in pkg/pipeline, which the CLI shares, so both surfaces behave
// identically (same caching, same validation, same defaults).
//
// # Endpoints
//
//	POST /api/v1/layout   compute a layout for the posted graph
//	GET  /healthz         liveness probe
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/skein-dev/skein/pkg/layout"
	"github.com/skein-dev/skein/pkg/pipeline"
)

// Server serves the layout API.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	http     *http.Server
	defaults layout.Options
}

// New creates a server around the given pipeline runner.
func New(addr string, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(s.logMiddleware)

	r.Get("/healthz", s.handleHealthz)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
	})

	s.http = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// SetLayoutDefaults installs server-side layout defaults. Fields the
// request body leaves at their zero value fall back to these before the
// engine applies its own built-in defaults.
func (s *Server) SetLayoutDefaults(opts layout.Options) {
	s.defaults = opts
}

// Handler returns the underlying HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// ListenAndServe serves until the context is cancelled, then shuts down
// gracefully with a 10 second drain budget.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	case err := <-errCh:
		return err
	}
}
