// Package server exposes the regexrail pipeline over HTTP.
//
// Routes:
//
//	GET  /health   liveness and version
//	GET  /render   ?pattern=&format=svg&view=railroad&scale=2
//	POST /render   JSON {pattern | ast, format, view, theme, scale, background}
//	POST /parse    JSON {pattern} → syntax tree
//	GET  /metrics  Prometheus exposition (when a gatherer is attached)
//
// Errors are returned as JSON {"error": code, "message": ...} with the
// status derived from the error code.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/regexrail/pkg/pipeline"
	"github.com/matzehuels/regexrail/pkg/railroad"
)

// ShutdownTimeout bounds how long Run waits for in-flight requests.
const ShutdownTimeout = 5 * time.Second

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Server serves the pipeline over HTTP.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	router   chi.Router
	gatherer prometheus.Gatherer
	theme    railroad.Options
	scale    float64

	readTimeout  time.Duration
	writeTimeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics exposes g on GET /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// WithTheme sets the theme requests start from. Fields a request omits keep
// these values.
func WithTheme(theme railroad.Options) Option {
	return func(s *Server) { s.theme = theme }
}

// WithScale sets the PNG scale used when a request gives none.
func WithScale(scale float64) Option {
	return func(s *Server) { s.scale = scale }
}

// WithTimeouts sets the read and write timeouts of the listener started by Run.
func WithTimeouts(read, write time.Duration) Option {
	return func(s *Server) {
		s.readTimeout = read
		s.writeTimeout = write
	}
}

// New creates a server backed by runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:       runner,
		logger:       logger.WithPrefix("http"),
		theme:        railroad.DefaultOptions(),
		scale:        pipeline.DefaultScale,
		readTimeout:  10 * time.Second,
		writeTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(s.logRequests)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "NOT_FOUND", Message: "no route for " + r.URL.Path})
	})

	r.Group(func(r chi.Router) {
		r.Use(instrument)
		r.Get("/health", s.handleHealth)
		r.Get("/render", s.handleRenderQuery)
		r.Post("/render", s.handleRenderJSON)
		r.Post("/parse", s.handleParse)
	})

	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens on addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadTimeout:       s.readTimeout,
		ReadHeaderTimeout: s.readTimeout,
		WriteTimeout:      s.writeTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		serverErrors <- srv.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("graceful shutdown did not complete", "timeout", ShutdownTimeout, "err", err)
			return srv.Close()
		}
		return nil
	}
}
