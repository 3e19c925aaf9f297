// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string `env:"WIKIBASE_HOST" envDefault:"0.0.0.0"`
	Port int    `env:"PORT" envDefault:"3001"`
	Env  string `env:"WIKIBASE_ENV" envDefault:"development"` // "development", "production"

	// PublicURL is the externally reachable base URL used when building
	// upload URLs. Empty means http://localhost:<port>.
	PublicURL string `env:"WIKIBASE_PUBLIC_URL"`

	// Filesystem layout
	UploadsDir string `env:"WIKIBASE_UPLOADS_DIR" envDefault:"./uploads"`
	DataFile   string `env:"WIKIBASE_DATA_FILE" envDefault:"./src/data/mockData.ts"`
	DistDir    string `env:"WIKIBASE_DIST_DIR" envDefault:"./dist"`
	DBPath     string `env:"WIKIBASE_DB_PATH" envDefault:"./data/wikibase.db"`

	// Valkey (Redis-compatible) — optional; empty host disables the
	// artifact cache and the Valkey-backed local store.
	ValkeyHost     string `env:"VALKEY_HOST"`
	ValkeyPort     string `env:"VALKEY_PORT" envDefault:"6379"`
	ValkeyPassword string `env:"VALKEY_PASSWORD"`

	// Rate limiting for the mutating API routes.
	RateLimitPerSec float64 `env:"WIKIBASE_RATE_LIMIT" envDefault:"10"`
	RateLimitBurst  int     `env:"WIKIBASE_RATE_BURST" envDefault:"20"`
}

// Load reads an optional .env file, then parses configuration from
// environment variables.
func Load() (*Config, error) {
	// Missing .env is fine — real environments set variables directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BaseURL returns the public base URL for building upload links.
func (c *Config) BaseURL() string {
	if c.PublicURL != "" {
		return c.PublicURL
	}
	return fmt.Sprintf("http://localhost:%d", c.Port)
}

// IsProduction returns true when the bundled front-end should be served.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// ValkeyEnabled returns true if a Valkey host is configured.
func (c *Config) ValkeyEnabled() bool {
	return c.ValkeyHost != ""
}

// ValkeyAddr returns the Valkey address (host:port).
func (c *Config) ValkeyAddr() string {
	return fmt.Sprintf("%s:%s", c.ValkeyHost, c.ValkeyPort)
}
