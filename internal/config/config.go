// Package config loads client configuration from a TOML file with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// API configures the remote backend connection.
type API struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Storage configures the persistence adapter.
type Storage struct {
	// Path of the SQLite database holding persisted session state.
	Path string `toml:"path"`
	// Secret, when set, encrypts stored values at rest.
	Secret string `toml:"secret"`
}

// Notifications configures local notification delivery.
type Notifications struct {
	Enabled bool `toml:"enabled"`
}

type Config struct {
	API           API           `toml:"api"`
	Storage       Storage       `toml:"storage"`
	Notifications Notifications `toml:"notifications"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		API: API{
			BaseURL:        "http://localhost:3000/api",
			TimeoutSeconds: 15,
		},
		Storage: Storage{
			Path: defaultStoragePath(),
		},
		Notifications: Notifications{Enabled: true},
	}
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "wazi.db"
	}
	return filepath.Join(home, ".wazi", "wazi.db")
}

// Load reads path when it exists, layers environment overrides on top of the
// defaults, and validates the result. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// fall through to env + defaults
		case err != nil:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := toml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.API.BaseURL = envOr("WAZI_API_URL", cfg.API.BaseURL)
	cfg.Storage.Path = envOr("WAZI_STORAGE_PATH", cfg.Storage.Path)
	cfg.Storage.Secret = envOr("WAZI_STORAGE_SECRET", cfg.Storage.Secret)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api base_url %q", c.API.BaseURL)
	}
	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("api timeout_seconds must be positive, got %d", c.API.TimeoutSeconds)
	}
	if c.Storage.Path == "" {
		return errors.New("storage path must not be empty")
	}
	return nil
}

// envOr returns the environment variable value for key, or fallback if empty.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
