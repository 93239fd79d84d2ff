package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Server.Address)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Game.SmallBlind)
	assert.Equal(t, 10, cfg.Game.BigBlind)
	assert.Equal(t, 1000, cfg.Game.StartingStack)
	assert.Equal(t, 200, cfg.Game.EquitySamples)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigParsesHCL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holdemd.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
server {
  address   = "0.0.0.0"
  port      = 9090
  log_level = "debug"
}

game {
  small_blind      = 10
  big_blind        = 20
  starting_stack   = 2000
  ai_delay_ms      = 250
  show_ai_thinking = true
}
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Server.Address)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 10, cfg.Game.SmallBlind)
	assert.Equal(t, 20, cfg.Game.BigBlind)
	assert.Equal(t, 2000, cfg.Game.StartingStack)
	assert.Equal(t, 250, cfg.Game.AIDelayMS)
	assert.True(t, cfg.Game.ShowAIThinking)
	// Unset fields fall back to defaults.
	assert.Equal(t, 200, cfg.Game.EquitySamples)
	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddress())
}

func TestLoadConfigRejectsInvalidHCL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.hcl")
	require.NoError(t, os.WriteFile(path, []byte("server {"), 0o644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"zero small blind", func(c *Config) { c.Game.SmallBlind = 0 }},
		{"big blind below small", func(c *Config) { c.Game.BigBlind = c.Game.SmallBlind }},
		{"stack below big blind", func(c *Config) { c.Game.StartingStack = c.Game.BigBlind - 1 }},
		{"negative delay", func(c *Config) { c.Game.AIDelayMS = -1 }},
		{"zero samples", func(c *Config) { c.Game.EquitySamples = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
