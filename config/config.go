// Package config holds the configuration of the prover and its command line.
package config

import (
	"os"
	"strconv"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/brunokim/rewrite-search/errors"
	"github.com/brunokim/rewrite-search/search"
)

// Config holds all rwsearch configuration.
type Config struct {
	// MaxIterations is the number of vertex expansions allowed per equation.
	MaxIterations int `yaml:"max_iterations"`
	// Workers is the number of equations proven concurrently in a batch.
	Workers int `yaml:"workers"`
	// Timeout bounds a whole batch, like "30s". Empty means no timeout.
	Timeout string `yaml:"timeout"`
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
	// Catalogues are HCL rule files loaded in order.
	Catalogues []string `yaml:"catalogues"`
	// MetricsAddr, if set, is the address serving /metrics during a batch.
	MetricsAddr string `yaml:"metrics_addr"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		MaxIterations: search.DefaultMaxIterations,
		Workers:       4,
		LogLevel:      "info",
	}
}

// Load reads the configuration from a YAML file, on top of the defaults. A missing
// file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, errors.New("failed to read config: %v", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("failed to parse config %s: %v", path, err)
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.New("failed to marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New("failed to write config: %v", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if s := os.Getenv("RWSEARCH_MAX_ITERATIONS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			c.MaxIterations = n
		}
	}
	if s := os.Getenv("RWSEARCH_WORKERS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			c.Workers = n
		}
	}
	if s := os.Getenv("RWSEARCH_LOG_LEVEL"); s != "" {
		c.LogLevel = s
	}
}

// GetTimeout returns the batch timeout, or zero if there's none.
func (c *Config) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// GetLogLevel returns the parsed log level, defaulting to info.
func (c *Config) GetLogLevel() zapcore.Level {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.MaxIterations < 1 {
		return errors.New("max_iterations must be positive, got %d", c.MaxIterations)
	}
	if c.Workers < 1 {
		return errors.New("workers must be positive, got %d", c.Workers)
	}
	if c.Timeout != "" {
		if d, err := time.ParseDuration(c.Timeout); err != nil || d < 0 {
			return errors.New("invalid timeout %q", c.Timeout)
		}
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return errors.New("invalid log_level %q: %v", c.LogLevel, err)
	}
	return nil
}
