// Package server hosts hold'em games over HTTP and WebSocket: a game
// manager keyed by sortable IDs, projected per-viewer state views, and an
// ordered event stream per game.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Server ties the HTTP API, event hub and game manager to one listener.
type Server struct {
	cfg     *Config
	logger  *log.Logger
	Manager *Manager
	Hub     *Hub
	Metrics *Metrics
	api     *API
}

// New wires a server from configuration.
func New(cfg *Config, logger *log.Logger) *Server {
	metrics := NewMetrics()
	hub := NewHub(logger)
	manager := NewManager(cfg.Game, logger, metrics, hub)
	return &Server{
		cfg:     cfg,
		logger:  logger.WithPrefix("server"),
		Manager: manager,
		Hub:     hub,
		Metrics: metrics,
		api:     NewAPI(manager, hub, metrics, logger),
	}
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.api.Router()
}

// Run serves until the context is cancelled, then drains connections.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.cfg.ListenAddress(),
		Handler: s.api.Router(),
	}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		s.logger.Info("listening", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return group.Wait()
}
