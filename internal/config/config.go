// Package config resolves cart console configuration from a YAML file,
// a .env file, and environment variables, in that order of increasing
// precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all cart console configuration.
type Config struct {
	Service ServiceConfig `yaml:"service"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServiceConfig locates the shopcarts REST service.
type ServiceConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"` // Go duration string, e.g. "30s"
}

// LoggingConfig controls the file logger. Off by default; the console is an
// operator tool and should not leave log files behind unasked.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"`
	Categories map[string]bool `yaml:"categories"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		Service: ServiceConfig{
			BaseURL: "http://localhost:8080",
			Timeout: "30s",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// StateDir is where the console keeps its config file and logs.
func StateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cartconsole"
	}
	return filepath.Join(home, ".cartconsole")
}

// Load resolves configuration. path may be empty, in which case the default
// location is tried; a missing file is not an error, only an unreadable or
// malformed one is.
func Load(path string) (*Config, error) {
	// A .env alongside the working directory can seed the environment.
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = filepath.Join(StateDir(), "config.yaml")
	}
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// fine, defaults + env
	case err != nil:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv lets the environment override the file.
func (c *Config) applyEnv() {
	if v := os.Getenv("SHOPCARTS_URL"); v != "" {
		c.Service.BaseURL = v
	}
	if v := os.Getenv("SHOPCARTS_TIMEOUT"); v != "" {
		c.Service.Timeout = v
	}
	if v := os.Getenv("CARTCONSOLE_DEBUG"); v == "1" || v == "true" {
		c.Logging.DebugMode = true
	}
	if v := os.Getenv("CARTCONSOLE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// RequestTimeout parses the service timeout, falling back to 30 seconds on
// a malformed value.
func (c *Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Service.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}
