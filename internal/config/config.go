package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Environment variables recognized by Load. Each overrides the value from
// the optional YAML config file.
const (
	EnvConfigPath   = "YFINANCE_MCP_CONFIG"
	EnvCacheExpiry  = "YFINANCE_MCP_CACHE_EXPIRY_MINUTES"
	EnvLogLevel     = "YFINANCE_MCP_LOG_LEVEL"
	EnvLogFile      = "YFINANCE_MCP_LOG"
	EnvFetchTimeout = "YFINANCE_MCP_FETCH_TIMEOUT_SECONDS"
)

const (
	DefaultCacheExpiryMinutes  = 5
	DefaultLogLevel            = "info"
	DefaultFetchTimeoutSeconds = 20
)

var (
	ErrInvalidExpiry   = errors.New("config: cache expiry must be a positive number of minutes")
	ErrInvalidLogLevel = errors.New("config: invalid log level")
	ErrInvalidTimeout  = errors.New("config: fetch timeout must be a positive number of seconds")
)

// Config holds the tool configuration consumed at construction time.
type Config struct {
	// CacheExpiryMinutes is the freshness window of the request cache.
	CacheExpiryMinutes int `yaml:"cache_expiry_minutes"`

	// LogLevel is a zerolog level name (trace, debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// LogFile is the log destination. Empty means a file next to the
	// executable; stdout is never used, the MCP transport owns it.
	LogFile string `yaml:"log_file"`

	// FetchTimeoutSeconds bounds each upstream Yahoo Finance call.
	FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		CacheExpiryMinutes:  DefaultCacheExpiryMinutes,
		LogLevel:            DefaultLogLevel,
		FetchTimeoutSeconds: DefaultFetchTimeoutSeconds,
	}
}

// Load builds the configuration from defaults, the YAML file named by
// YFINANCE_MCP_CONFIG (if set) and environment overrides, then validates.
// Invalid settings are fatal: the caller must not construct the tool from a
// config that failed validation.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv(EnvConfigPath); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvCacheExpiry); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidExpiry, EnvCacheExpiry, v)
		}
		cfg.CacheExpiryMinutes = n
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv(EnvFetchTimeout); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidTimeout, EnvFetchTimeout, v)
		}
		cfg.FetchTimeoutSeconds = n
	}
	return nil
}

// Validate checks the settings that would otherwise fail deep inside the
// tool: a non-positive expiry, an unknown log level, a useless timeout.
func (c *Config) Validate() error {
	if c.CacheExpiryMinutes <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidExpiry, c.CacheExpiryMinutes)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	if c.FetchTimeoutSeconds <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTimeout, c.FetchTimeoutSeconds)
	}
	return nil
}

// CacheExpiry returns the freshness window as a duration.
func (c *Config) CacheExpiry() time.Duration {
	return time.Duration(c.CacheExpiryMinutes) * time.Minute
}

// FetchTimeout returns the upstream call timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}
