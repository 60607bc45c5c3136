// Package server exposes the conversion pipeline as a small HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"

	"codeberg.org/snonux/ttsuz/internal/history"
	"codeberg.org/snonux/ttsuz/internal/logging"
	"codeberg.org/snonux/ttsuz/internal/processor"
)

// Options configure the HTTP API
type Options struct {
	// RequestsPerMinute limits requests per client IP. Zero disables it.
	RequestsPerMinute int
	AllowedOrigins    []string
	// MaxBodyBytes bounds JSON request bodies
	MaxBodyBytes int64
}

// DefaultOptions returns the options used by "ttsuz serve"
func DefaultOptions() Options {
	return Options{
		RequestsPerMinute: 60,
		AllowedOrigins:    []string{"*"},
		MaxBodyBytes:      1 << 20,
	}
}

// Server serves the API
type Server struct {
	proc    *processor.Processor
	history *history.Store
	options Options
	logger  *zap.Logger
	router  chi.Router
}

// New creates a server. store may be nil, the history endpoint then
// answers 404.
func New(proc *processor.Processor, store *history.Store, options Options, logger *zap.Logger) *Server {
	if options.MaxBodyBytes <= 0 {
		options.MaxBodyBytes = DefaultOptions().MaxBodyBytes
	}

	s := &Server{
		proc:    proc,
		history: store,
		options: options,
		logger:  logging.OrNop(logger),
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.options.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Status-Code", "X-Transliterated", "X-Request-Id"},
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(api chi.Router) {
		if s.options.RequestsPerMinute > 0 {
			api.Use(httprate.LimitByIP(s.options.RequestsPerMinute, time.Minute))
		}

		api.Post("/normalize", s.handleNormalize)
		api.Post("/speech", s.handleSpeech)
		api.Get("/history", s.handleHistory)
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening",
			zap.String("addr", addr),
			zap.String("provider", s.proc.Provider().Name()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.logger.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
