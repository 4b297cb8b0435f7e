// Package config loads server and plan configuration from YAML with
// environment-variable fallbacks.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// PlanConfig holds the regulatory/plan parameters the server seeds profiles
// with. The engine itself reads the limit from each profile snapshot; this
// only controls defaults.
type PlanConfig struct {
	// AnnualLimit is the regulatory ceiling on employee annual
	// contributions (IRS 402(g) style limit).
	AnnualLimit float64 `yaml:"annual_limit"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// DatabaseConfig holds persistence settings.
type DatabaseConfig struct {
	// Path is the SQLite database path. ":memory:" for in-memory.
	Path string `yaml:"path"`
}

// Config is the full server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Plan     PlanConfig     `yaml:"plan"`

	// SeedScenario is the demo scenario loaded when the database holds no
	// profile yet. Empty means the default scenario.
	SeedScenario string `yaml:"seed_scenario"`
}

// Load reads configuration from the given YAML path, falling back to the
// RETIREMENT_CONFIG environment variable and then to built-in defaults.
// Env overrides (PORT, RETIREMENT_DB) apply on top of the file.
func Load(path string) (Config, error) {
	cfg := Config{
		Server:   ServerConfig{Port: 8080},
		Database: DatabaseConfig{Path: "retirement.db"},
		Plan:     PlanConfig{AnnualLimit: 23000},
	}

	if path == "" {
		path = os.Getenv("RETIREMENT_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if port := getenvIntDefault("PORT", 0); port != 0 {
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("RETIREMENT_DB"); dbPath != "" {
		cfg.Database.Path = dbPath
	}

	if cfg.Plan.AnnualLimit <= 0 {
		return cfg, fmt.Errorf("plan annual limit must be positive, got %v", cfg.Plan.AnnualLimit)
	}
	return cfg, nil
}

func getenvIntDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
