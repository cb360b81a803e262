// Package config loads process configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds settings shared by the binaries. Command-line flags default to
// these values.
type Config struct {
	// DBPath is the SQLite file. Empty keeps everything in memory.
	DBPath      string `env:"PLUMBERS_DB"           envDefault:"plumbers.db"`
	CatalogPath string `env:"PLUMBERS_CATALOG"`
	DeckFile    string `env:"PLUMBERS_DECKS"        envDefault:"decks.yaml"`
	Addr        string `env:"PLUMBERS_ADDR"         envDefault:":9999"`
	WebAddr     string `env:"PLUMBERS_WEB_ADDR"     envDefault:":8080"`
	PlayerID    string `env:"PLUMBERS_PLAYER"       envDefault:"local"`
	LogLevel    string `env:"PLUMBERS_LOG_LEVEL"    envDefault:"info"`
	Seed        uint64 `env:"PLUMBERS_SEED"`
	Emergency   string `env:"PLUMBERS_EMERGENCY"    envDefault:"burst_pipe"`
}

// Load parses PLUMBERS_* environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
