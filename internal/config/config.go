package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/ochronus/goimgur/internal/services/imgur"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultClientID is the application id used when none is configured.
	DefaultClientID = "ea6c0ef2987808e"
	DefaultAPIURL   = imgur.DefaultBaseURL

	MinTimeout = 1
	MaxTimeout = 300
)

// Config represents the main application configuration
type Config struct {
	ClientID string `toml:"client_id" env:"APP_ID"`
	History  string `toml:"history" env:"APP_HISTORY"`
	APIURL   string `toml:"api_url" env:"APP_API_URL"`
	Loglevel string `toml:"loglevel" env:"APP_LOGLEVEL"`
	Timeout  int    `toml:"timeout" env:"APP_TIMEOUT"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	history := ".imgur_history"
	if home, err := os.UserHomeDir(); err == nil {
		history = filepath.Join(home, ".imgur_history")
	}

	return &Config{
		ClientID: DefaultClientID,
		History:  history,
		APIURL:   DefaultAPIURL,
		Loglevel: "info",
		Timeout:  30,
	}
}

// DefaultConfigPath returns the default configuration file path
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "goimgur", "config.toml"), nil
}

// Load loads configuration from a TOML file. A missing file leaves the
// defaults untouched.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overlays APP_* environment variables on cfg. Variables from
// dotenvFiles are loaded first without overriding the real environment;
// missing dotenv files are ignored.
func (c *Config) ApplyEnv(dotenvFiles ...string) error {
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	if err := env.Parse(c); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}
	return nil
}

// RequestTimeout returns the HTTP timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("client_id is required")
	}
	if c.APIURL == "" {
		return fmt.Errorf("api_url is required")
	}
	u, err := url.ParseRequestURI(c.APIURL)
	if err != nil {
		return fmt.Errorf("api_url is invalid: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_url must be an http or https URL")
	}
	if _, err := logrus.ParseLevel(c.Loglevel); err != nil {
		return fmt.Errorf("loglevel must be one of: panic, fatal, error, warn, info, debug, trace")
	}
	if c.Timeout < MinTimeout || c.Timeout > MaxTimeout {
		return fmt.Errorf("timeout must be between %d and %d seconds", MinTimeout, MaxTimeout)
	}

	return nil
}
