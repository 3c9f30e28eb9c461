// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes conic analysis over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/pdiddy/conic-engine/internal/history"
	"github.com/pdiddy/conic-engine/internal/httputil"
	"github.com/pdiddy/conic-engine/pkg/types"
)

const (
	defaultHost         = "127.0.0.1"
	defaultPort         = "8080"
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 30 * time.Second
	shutdownTimeout     = 10 * time.Second
)

// Analyzer produces a result for one equation. It never fails.
type Analyzer interface {
	Analyze(ctx context.Context, equation string) types.ConicResult
}

// Config holds server dependencies.
type Config struct {
	Server types.ServerConfig

	// Analyzer answers POST /api/parse-conic. Required.
	Analyzer Analyzer

	// History, when set, records every analysis and serves /api/history.
	History *history.Store

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Server is the conic-engine HTTP server.
type Server struct {
	httpServer *http.Server
	analyzer   Analyzer
	history    *history.Store
	logger     *slog.Logger

	mu      sync.Mutex
	running bool
}

// New builds a Server. Empty host, port and timeouts take defaults
// (127.0.0.1:8080, 10s read, 30s write).
func New(cfg Config) (*Server, error) {
	if cfg.Analyzer == nil {
		return nil, errors.New("server requires an analyzer")
	}
	sc := cfg.Server
	if sc.Host == "" {
		sc.Host = defaultHost
	}
	if sc.Port == "" {
		sc.Port = defaultPort
	}
	if sc.ReadTimeout <= 0 {
		sc.ReadTimeout = defaultReadTimeout
	}
	if sc.WriteTimeout <= 0 {
		sc.WriteTimeout = defaultWriteTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Server{
		analyzer: cfg.Analyzer,
		history:  cfg.History,
		logger:   cfg.Logger,
	}
	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(sc.Host, sc.Port),
		Handler:      s.Handler(),
		ReadTimeout:  sc.ReadTimeout,
		WriteTimeout: sc.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}
	return s, nil
}

// Handler returns the routed handler wrapped in request ID, logging and
// panic recovery middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.registerRoutes(mux)

	var h http.Handler = mux
	h = httputil.Recover(s.logger, h)
	h = httputil.LogRequests(s.logger, h)
	return httputil.WithRequestID(h)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()
	defer s.setNotRunning()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down HTTP server: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}
