// Package config loads leavedesk settings from YAML files and the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete leavedesk configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Token   TokenConfig   `yaml:"token"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`

	// AdminURL is the backend's admin page opened from the help screen.
	AdminURL string `yaml:"admin_url"`
}

// APIConfig configures the backend connection.
type APIConfig struct {
	// BaseURL is the API root including the /api prefix.
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
	Retry   RetryConfig   `yaml:"retry"`
}

// RetryConfig controls retries of transient failures. MaxRetries is a
// pointer so an explicit 0 in a file disables retries instead of reading as
// absent.
type RetryConfig struct {
	MaxRetries      *int          `yaml:"max_retries"`
	InitialInterval time.Duration `yaml:"initial_interval"`
	Multiplier      float64       `yaml:"multiplier"`
	MaxInterval     time.Duration `yaml:"max_interval"`
}

// Retries returns the number of retries after the first attempt.
func (r RetryConfig) Retries() int {
	if r.MaxRetries == nil {
		return 0
	}
	return *r.MaxRetries
}

// TokenConfig configures token persistence.
type TokenConfig struct {
	LifetimeDays int `yaml:"lifetime_days"`
}

// StorageConfig configures the local store. Path ":memory:" keeps nothing
// between runs.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// LogConfig configures logging. Path "stderr" logs to the console.
type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// DefaultConfig returns a Config with defaults rooted at dataDir.
func DefaultConfig(dataDir string) *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://127.0.0.1:8000/api",
			Timeout: 30 * time.Second,
			Retry: RetryConfig{
				MaxRetries:      intPtr(3),
				InitialInterval: 100 * time.Millisecond,
				Multiplier:      2,
				MaxInterval:     5 * time.Second,
			},
		},
		Token:   TokenConfig{LifetimeDays: 7},
		Storage: StorageConfig{Path: filepath.Join(dataDir, "leavedesk.db")},
		Log: LogConfig{
			Level: "info",
			Path:  filepath.Join(dataDir, "leavedesk.log"),
		},
		AdminURL: "http://127.0.0.1:8000/admin/",
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL, got %q", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	if c.API.Retry.Retries() < 0 {
		return fmt.Errorf("api.retry.max_retries must not be negative")
	}
	if c.API.Retry.Multiplier < 1 {
		return fmt.Errorf("api.retry.multiplier must be at least 1")
	}
	if c.Token.LifetimeDays <= 0 {
		return fmt.Errorf("token.lifetime_days must be positive")
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	return nil
}

// LoadFromFile reads a YAML file. Keys absent from the file stay zero so
// the result can be merged over defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration as YAML.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Merge overlays the non-zero values of other onto c. A set max_retries is
// applied even when it is 0.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.API.BaseURL != "" {
		c.API.BaseURL = other.API.BaseURL
	}
	if other.API.Timeout != 0 {
		c.API.Timeout = other.API.Timeout
	}
	if other.API.Retry.MaxRetries != nil {
		c.API.Retry.MaxRetries = intPtr(*other.API.Retry.MaxRetries)
	}
	if other.API.Retry.InitialInterval != 0 {
		c.API.Retry.InitialInterval = other.API.Retry.InitialInterval
	}
	if other.API.Retry.Multiplier != 0 {
		c.API.Retry.Multiplier = other.API.Retry.Multiplier
	}
	if other.API.Retry.MaxInterval != 0 {
		c.API.Retry.MaxInterval = other.API.Retry.MaxInterval
	}

	if other.Token.LifetimeDays != 0 {
		c.Token.LifetimeDays = other.Token.LifetimeDays
	}
	if other.Storage.Path != "" {
		c.Storage.Path = other.Storage.Path
	}
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	if other.Log.Path != "" {
		c.Log.Path = other.Log.Path
	}
	if other.AdminURL != "" {
		c.AdminURL = other.AdminURL
	}
}

func intPtr(n int) *int { return &n }
