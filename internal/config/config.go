// Package config handles configuration loading and defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Default values.
const (
	DefaultServerURL      = "http://localhost:8420"
	DefaultTimeoutSeconds = 10
	DefaultTheme          = "classic"
	DefaultLogLevel       = "info"
)

// Speech configures the optional voice-input capability. An empty
// command means the capability is absent.
type Speech struct {
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
	Locale  string   `toml:"locale"`
}

// Config holds the full client configuration.
type Config struct {
	ServerURL      string `toml:"server_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	Theme          string `toml:"theme"`
	LogFile        string `toml:"log_file"`
	LogLevel       string `toml:"log_level"`
	Speech         Speech `toml:"speech"`
}

func Default() Config {
	return Config{
		ServerURL:      DefaultServerURL,
		TimeoutSeconds: DefaultTimeoutSeconds,
		Theme:          DefaultTheme,
		LogLevel:       DefaultLogLevel,
		Speech:         Speech{Locale: "en-US"},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "tudu", "config.toml"), nil
}

// Load reads the config at path, filling in defaults for anything
// unset. A missing file is not an error. The TUDU_SERVER environment
// variable overrides the server URL either way.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("stat config: %w", err)
	}

	if env := strings.TrimSpace(os.Getenv("TUDU_SERVER")); env != "" {
		cfg.ServerURL = env
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if cfg.Speech.Locale == "" {
		cfg.Speech.Locale = "en-US"
	}
	return cfg, nil
}

// Timeout returns the per-request deadline.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
