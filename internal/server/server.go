// internal/server/server.go

// Package server exposes the assistant over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pangyo-qna/kbqa/internal/assistant"
	"github.com/pangyo-qna/kbqa/internal/logging"
)

const (
	defaultRequestTimeout = 60 * time.Second
	shutdownTimeout       = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	// RequestTimeout bounds each request, remote generation included.
	RequestTimeout time.Duration
	// AllowedOrigins enables CORS for browser clients; empty disables it.
	AllowedOrigins []string
}

// Server serves the search and chat API.
type Server struct {
	assistant *assistant.Assistant
	opts      Options
}

// New creates a Server backed by a.
func New(a *assistant.Assistant, opts Options) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	return &Server{assistant: a, opts: opts}
}

// Router returns the HTTP handler with all routes configured.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)
	if len(s.opts.AllowedOrigins) > 0 {
		r.Use(cors(s.opts.AllowedOrigins))
	}
	r.Use(chimiddleware.Timeout(s.opts.RequestTimeout))

	r.Get("/health", s.health)
	r.Get("/knowledge", s.knowledge)
	r.Get("/metrics", s.metrics)
	r.Route("/api", func(r chi.Router) {
		r.Post("/search", s.search)
		r.Post("/chat", s.chat)
	})

	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logging.Logger().Info().Str("addr", addr).Msg("HTTP server listening")
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logging.LogEvent("shutdown requested")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Warn(err, "graceful shutdown failed")
		return srv.Close()
	}
	logging.LogEvent("server stopped")
	return nil
}
