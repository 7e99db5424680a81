// Package server exposes the reconciliation engine over HTTP. It serves the
// stored collections, accepts interactive edits, and triggers syncs and
// baseline imports, mapping the engine's error taxonomy onto HTTP status
// codes.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/propilot/fbohub"
	"github.com/propilot/fbohub/pkg/constants"
	"github.com/propilot/fbohub/pkg/errors"
	"github.com/propilot/fbohub/pkg/logging"
)

// Config holds server configuration.
type Config struct {
	// Server settings
	Host string
	Port int

	// CORS settings
	CORSEnabled bool
	CORSOrigins []string

	// HTTP timeouts
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:         "localhost",
		Port:         constants.DefaultHTTPPort,
		CORSEnabled:  false,
		CORSOrigins:  []string{},
		ReadTimeout:  constants.DefaultReadTimeout,
		WriteTimeout: constants.DefaultWriteTimeout,
		IdleTimeout:  constants.DefaultIdleTimeout,
	}
}

// Server holds the HTTP server state and dependencies.
type Server struct {
	manager   fbohub.Manager
	metrics   prometheus.Gatherer
	config    Config
	startTime time.Time
}

// New creates a server around an existing manager. The gatherer backs the
// /metrics endpoint and may be nil, which disables it.
func New(manager fbohub.Manager, metrics prometheus.Gatherer, cfg Config) (*Server, error) {
	if manager == nil {
		return nil, errors.NewConfigError("server", "manager is required", nil)
	}
	if cfg.Port <= 0 {
		cfg.Port = constants.DefaultHTTPPort
	}
	return &Server{
		manager:   manager,
		metrics:   metrics,
		config:    cfg,
		startTime: time.Now(),
	}, nil
}

// Addr returns the host:port the server binds to.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Info().Msg("Shutting down HTTP server")
	sctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
