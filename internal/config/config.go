// Package config loads process-wide server configuration from TOML.
// Grounded on rdtc8822's internal/config/config.go Load/defaults pattern.
// Per-game deterministic test seeding (spec.md §9 "never process-global")
// lives separately in TestSetup, threaded explicitly through bus.Registry.Create —
// never stored here.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the process-wide server configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Logging LoggingConfig `toml:"logging"`
	Engine  EngineConfig  `toml:"engine"`
}

// ServerConfig controls the HTTP+WebSocket transport.
type ServerConfig struct {
	BindAddress string `toml:"bind_address"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// EngineConfig controls process-wide engine defaults.
type EngineConfig struct {
	// TestModeEnabled is the process-wide switch toggled by
	// POST /api/test/toggle-mode. No game-creation path reads it: games are
	// created only by POST /api/test/setup-game, always in test mode.
	TestModeEnabled  bool `toml:"test_mode_enabled"`
	ClassicBagSize   int  `toml:"classic_bag_size"`
	DefaultPlayerHP  int  `toml:"default_player_hp"`
	CommandInboxSize int  `toml:"command_inbox_size"`
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{BindAddress: "0.0.0.0:8080"},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Engine: EngineConfig{
			TestModeEnabled:  false,
			ClassicBagSize:   88,
			DefaultPlayerHP:  5,
			CommandInboxSize: 32,
		},
	}
}

// Load reads and parses a TOML config file, falling back to defaults for
// any field the file omits.
func Load(path string) (*Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
