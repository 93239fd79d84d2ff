package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete server configuration.
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Game   GameSettings   `hcl:"game,block"`
}

// ServerSettings contains listener-level configuration.
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// GameSettings contains the defaults applied to new games.
type GameSettings struct {
	SmallBlind     int  `hcl:"small_blind,optional"`
	BigBlind       int  `hcl:"big_blind,optional"`
	StartingStack  int  `hcl:"starting_stack,optional"`
	AIDelayMS      int  `hcl:"ai_delay_ms,optional"`
	EquitySamples  int  `hcl:"equity_samples,optional"`
	ShowAIThinking bool `hcl:"show_ai_thinking,optional"`
	EventCap       int  `hcl:"event_cap,optional"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Game: GameSettings{
			SmallBlind:    5,
			BigBlind:      10,
			StartingStack: 1000,
			EquitySamples: 200,
		},
	}
}

// LoadConfig loads configuration from an HCL file, falling back to defaults
// when the file does not exist. Missing fields take their default values.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	def := DefaultConfig()
	if config.Server.Address == "" {
		config.Server.Address = def.Server.Address
	}
	if config.Server.Port == 0 {
		config.Server.Port = def.Server.Port
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = def.Server.LogLevel
	}
	if config.Game.SmallBlind == 0 {
		config.Game.SmallBlind = def.Game.SmallBlind
	}
	if config.Game.BigBlind == 0 {
		config.Game.BigBlind = def.Game.BigBlind
	}
	if config.Game.StartingStack == 0 {
		config.Game.StartingStack = def.Game.StartingStack
	}
	if config.Game.EquitySamples == 0 {
		config.Game.EquitySamples = def.Game.EquitySamples
	}

	return &config, nil
}

// Validate checks the configuration for internally inconsistent values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Game.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive, got %d", c.Game.SmallBlind)
	}
	if c.Game.BigBlind <= c.Game.SmallBlind {
		return fmt.Errorf("big blind %d must exceed small blind %d", c.Game.BigBlind, c.Game.SmallBlind)
	}
	if c.Game.StartingStack < c.Game.BigBlind {
		return fmt.Errorf("starting stack %d cannot cover the big blind %d", c.Game.StartingStack, c.Game.BigBlind)
	}
	if c.Game.AIDelayMS < 0 {
		return fmt.Errorf("ai delay must not be negative, got %d", c.Game.AIDelayMS)
	}
	if c.Game.EquitySamples < 1 {
		return fmt.Errorf("equity samples must be positive, got %d", c.Game.EquitySamples)
	}
	return nil
}

// ListenAddress returns the host:port the server binds.
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
