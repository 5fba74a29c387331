// Package server exposes the render pipeline and the saved chart store over
// HTTP.
//
// # Routes
//
//	GET    /healthz                      liveness probe
//	POST   /v1/render/{chart}            render a posted document
//	GET    /v1/charts                    list saved charts (?chart=, ?limit=)
//	POST   /v1/charts                    save a new chart
//	GET    /v1/charts/{id}               fetch a saved chart
//	PUT    /v1/charts/{id}               replace a saved chart
//	DELETE /v1/charts/{id}               delete a saved chart
//	GET    /v1/charts/{id}/render        render a saved chart
//
// Render routes take ?format= (svg, html, png, pdf, json; the chart's
// primary format by default), ?scale=, ?native=true and ?refresh=true, and
// respond with the artifact itself. Errors are JSON bodies of the form
// {"code": "INVALID_DATA", "message": "..."} with the status derived from
// the error code.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/chartkit/pkg/pipeline"
	"github.com/matzehuels/chartkit/pkg/store"
)

// Options configures a Server.
type Options struct {
	// RequestTimeout bounds each request. Zero disables the limit.
	RequestTimeout time.Duration
	// MaxBodyBytes caps request bodies. Zero means pipeline.MaxDataSize plus
	// room for props and theme.
	MaxBodyBytes int64
	// Theme applies to charts that set no theme of their own.
	Theme json.RawMessage
	// NativeRaster draws PNGs without rsvg-convert.
	NativeRaster bool
}

// Server serves the chartkit HTTP API.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	opts   Options
	router chi.Router
}

// New creates a server. A nil logger discards output.
func New(runner *pipeline.Runner, s store.Store, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = pipeline.MaxDataSize + 1<<20
	}
	srv := &Server{runner: runner, store: s, logger: logger, opts: opts}
	srv.router = srv.routes()
	return srv
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	if s.opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.opts.RequestTimeout))
	}

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Use(s.limitBody)
		r.Post("/render/{chart}", s.handleRender)
		r.Route("/charts", func(r chi.Router) {
			r.Get("/", s.handleListCharts)
			r.Post("/", s.handleCreateChart)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetChart)
				r.Put("/", s.handleUpdateChart)
				r.Delete("/", s.handleDeleteChart)
				r.Get("/render", s.handleRenderChart)
			})
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- hs.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
