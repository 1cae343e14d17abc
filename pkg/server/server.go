// Package server provides the HTTP API for zsketch.
//
// The API exposes the rendering pipeline over HTTP:
//
//	GET  /healthz                     liveness probe
//	GET  /v1/{kind}                   render an artifact (raw bytes)
//	POST /v1/{kind}                   render artifacts (JSON envelope)
//	GET  /v1/circuits                 list saved circuits
//	POST /v1/circuits                 save a circuit
//	GET  /v1/circuits/{id}            fetch a saved circuit
//	PUT  /v1/circuits/{id}            update a saved circuit
//	DELETE /v1/circuits/{id}          delete a saved circuit
//
// where {kind} is one of schematic, graph, bode, nyquist.
//
// GET render requests take query parameters (expression, format, direction,
// spacing, scale, title, params, freq_start, freq_end, freq_points) and
// return the artifact bytes directly with the matching Content-Type. POST
// requests take a pipeline.Options JSON body and return all requested
// formats base64-encoded in a JSON envelope.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zsketch/zsketch/pkg/pipeline"
	"github.com/zsketch/zsketch/pkg/store"
)

// Timeouts for the HTTP server.
const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 60 * time.Second
	idleTimeout     = 120 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Config configures the API server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// Runner executes the rendering pipeline.
	Runner *pipeline.Runner

	// Store persists saved circuits. Defaults to an in-memory store.
	Store store.Store

	// Logger is the structured logger. Defaults to log.Default().
	Logger *log.Logger
}

// Server is the zsketch HTTP API server.
type Server struct {
	cfg    Config
	router chi.Router
	logger *log.Logger
}

// New creates an API server with all routes registered.
func New(cfg Config) *Server {
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, cfg.Logger)
	}

	s := &Server{cfg: cfg, logger: cfg.Logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		for _, kind := range []string{
			pipeline.KindSchematic,
			pipeline.KindGraph,
			pipeline.KindBode,
			pipeline.KindNyquist,
		} {
			kind := kind
			r.Get("/"+kind, s.handleRenderGet(kind))
			r.Post("/"+kind, s.handleRenderPost(kind))
		}

		r.Route("/circuits", func(r chi.Router) {
			r.Get("/", s.handleListCircuits)
			r.Post("/", s.handleCreateCircuit)
			r.Get("/{id}", s.handleGetCircuit)
			r.Put("/{id}", s.handleUpdateCircuit)
			r.Delete("/{id}", s.handleDeleteCircuit)
		})
	})

	s.router = r
	return s
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the server until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
