package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/GriffinCanCode/tccm/internal/providers/filesystem"
)

// Config holds all runtime configuration.
type Config struct {
	Paths   PathsConfig
	HTTP    HTTPConfig
	Archive ArchiveConfig
	Logging LogConfig
	Metrics MetricsConfig
}

// PathsConfig holds file locations.
type PathsConfig struct {
	// ConfigFile overrides the config.json beside the executable
	ConfigFile string `envconfig:"TCCM_CONFIG_FILE"`
	// TempDir is where archives are staged before upload
	TempDir string `envconfig:"TCCM_TEMP_DIR"`
}

// HTTPConfig holds registry transport configuration.
type HTTPConfig struct {
	Timeout   time.Duration `envconfig:"TCCM_HTTP_TIMEOUT" default:"5m"`
	UserAgent string        `envconfig:"TCCM_HTTP_USER_AGENT" default:"tccm"`
	RateLimit float64       `envconfig:"TCCM_HTTP_RATE_LIMIT" default:"0"`
}

// ArchiveConfig holds archiver configuration.
type ArchiveConfig struct {
	Format     string `envconfig:"TCCM_ARCHIVE_FORMAT" default:"zip"`
	IgnoreFile string `envconfig:"TCCM_ARCHIVE_IGNORE_FILE" default:".tccmignore"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"TCCM_LOG_LEVEL" default:"warn"`
	Development bool   `envconfig:"TCCM_LOG_DEV" default:"true"`
}

// MetricsConfig holds metrics export configuration.
type MetricsConfig struct {
	// File receives prometheus text format after each command; empty disables
	File string `envconfig:"TCCM_METRICS_FILE"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:   5 * time.Minute,
			UserAgent: "tccm",
		},
		Archive: ArchiveConfig{
			Format:     string(filesystem.FormatZip),
			IgnoreFile: ".tccmignore",
		},
		Logging: LogConfig{
			Level:       "warn",
			Development: true,
		},
	}
}

// Validate checks values envconfig cannot check on its own.
func (c *Config) Validate() error {
	if _, err := filesystem.ParseFormat(c.Archive.Format); err != nil {
		return fmt.Errorf("invalid TCCM_ARCHIVE_FORMAT: %w", err)
	}
	if c.HTTP.Timeout < 0 {
		return fmt.Errorf("invalid TCCM_HTTP_TIMEOUT %s", c.HTTP.Timeout)
	}
	if c.HTTP.RateLimit < 0 {
		return fmt.Errorf("invalid TCCM_HTTP_RATE_LIMIT %v", c.HTTP.RateLimit)
	}
	return nil
}

// StagingDir returns the directory archives are staged in.
func (c *Config) StagingDir() string {
	if c.Paths.TempDir != "" {
		return c.Paths.TempDir
	}
	return os.TempDir()
}
