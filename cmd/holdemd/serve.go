package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/cardroom/holdem/internal/server"
)

// ServeCmd runs the HTTP/WebSocket game server.
type ServeCmd struct {
	Config   string `short:"c" default:"holdemd.hcl" help:"Path to HCL configuration file"`
	Address  string `help:"Override the listen address"`
	Port     int    `help:"Override the listen port"`
	LogLevel string `help:"Override the log level (debug, info, warn, error)"`
}

func (s *ServeCmd) Run() error {
	cfg, err := server.LoadConfig(s.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if s.Address != "" {
		cfg.Server.Address = s.Address
	}
	if s.Port != 0 {
		cfg.Server.Port = s.Port
	}
	if s.LogLevel != "" {
		cfg.Server.LogLevel = s.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	level, err := log.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Server.LogLevel, err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg, logger).Run(ctx)
}
