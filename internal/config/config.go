// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml), with ${VAR} expansion
//  2. Environment variables (override or fallback)
//
// Example usage:
//
//	cfg, err := config.LoadOrEnv("")
//	eng := engine.New(cfg.EngineConfig())
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"ledger-reconciler/internal/engine"
)

// Config represents the entire application configuration.
type Config struct {
	Matching MatchingConfig `yaml:"matching"`
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// MatchingConfig holds the reconciliation thresholds.
type MatchingConfig struct {
	// ExactEpsilon is the absolute difference below which two amounts count
	// as equal.
	ExactEpsilon float64 `yaml:"exact_epsilon"`
	// RelativeThreshold is the exclusive upper bound on the relative
	// difference flagged for review.
	RelativeThreshold float64 `yaml:"relative_threshold"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when nothing else is provided.
func Default() *Config {
	return &Config{
		Matching: MatchingConfig{
			ExactEpsilon:      0.01,
			RelativeThreshold: 0.05,
		},
		Server: ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"*"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads and parses the config file, then applies environment overrides.
// Keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${RECONCILER_PORT})
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, err
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables only.
func LoadFromEnv() (*Config, error) {
	cfg := Default()
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrEnv loads .env if present, then the given config file. With an empty
// path it tries config.yaml and falls back to environment variables.
func LoadOrEnv(path string) (*Config, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	if path != "" {
		return Load(path)
	}
	if cfg, err := Load("config.yaml"); err == nil {
		return cfg, nil
	}
	return LoadFromEnv()
}

// Validate rejects settings the matching passes or the server cannot work
// with.
func (c *Config) Validate() error {
	if c.Matching.ExactEpsilon <= 0 {
		return fmt.Errorf("matching.exact_epsilon must be positive, got %g", c.Matching.ExactEpsilon)
	}
	if c.Matching.RelativeThreshold <= 0 || c.Matching.RelativeThreshold >= 1 {
		return fmt.Errorf("matching.relative_threshold must be in (0, 1), got %g", c.Matching.RelativeThreshold)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be a valid port, got %d", c.Server.Port)
	}
	return nil
}

// EngineConfig converts the configured thresholds for the matching engine.
func (c *Config) EngineConfig() engine.Config {
	return engine.Config{
		ExactEpsilon:      decimal.NewFromFloat(c.Matching.ExactEpsilon),
		RelativeThreshold: decimal.NewFromFloat(c.Matching.RelativeThreshold),
	}
}

func (c *Config) applyEnv() {
	c.Matching.ExactEpsilon = getEnvFloat("RECONCILER_EXACT_EPSILON", c.Matching.ExactEpsilon)
	c.Matching.RelativeThreshold = getEnvFloat("RECONCILER_RELATIVE_THRESHOLD", c.Matching.RelativeThreshold)
	c.Server.Port = getEnvInt("RECONCILER_PORT", c.Server.Port)
	c.Logging.Level = getEnv("RECONCILER_LOG_LEVEL", c.Logging.Level)
}

// getEnv retrieves an environment variable with a fallback default.
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback default.
func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var result int
		if _, err := fmt.Sscanf(val, "%d", &result); err == nil {
			return result
		}
	}
	return fallback
}

// getEnvFloat retrieves a float environment variable with a fallback default.
func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		var result float64
		if _, err := fmt.Sscanf(val, "%g", &result); err == nil {
			return result
		}
	}
	return fallback
}
