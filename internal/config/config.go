package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all recollect configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Catalog  CatalogConfig
}

type ServerConfig struct {
	Bind string `env:"RECOLLECT_BIND"`
	Port int    `env:"RECOLLECT_PORT"`
}

type DatabaseConfig struct {
	Path string `env:"RECOLLECT_DB_PATH"` // empty: resolved via store.DefaultDBPath()
}

type CatalogConfig struct {
	URL    string `env:"RECOLLECT_CATALOG_URL"`
	APIKey string `env:"RECOLLECT_CATALOG_KEY"`
	UserID string `env:"RECOLLECT_USER_ID"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 37717,
		},
	}
}

// Load returns the defaults overlaid with environment variables.
func Load() (Config, error) {
	cfg := Default()
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}
