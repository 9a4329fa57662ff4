// Package config provides configuration management for the application.
// Configuration is loaded once at process start from an optional YAML file
// plus environment variables, and passed explicitly into collaborators; no
// component reads ambient settings.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/matwasilewski/data-vortex/internal/database"
	"github.com/matwasilewski/data-vortex/internal/logger"
)

// Error types for the config package.
var (
	// ErrMissingDatabase is returned when database settings are incomplete.
	ErrMissingDatabase = errors.New("incomplete database configuration")
	// ErrInvalidCacheTTL is returned when the cache TTL is not positive.
	ErrInvalidCacheTTL = errors.New("cache TTL must be positive")
)

// AppConfig holds application metadata.
type AppConfig struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Version     string `yaml:"version" mapstructure:"version"`
	Environment string `yaml:"environment" mapstructure:"environment"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`
}

// SearchConfig holds the crawl and fetch settings.
type SearchConfig struct {
	// RequestTimeout bounds a single page fetch.
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`
	// UseCache enables the TTL response cache for search pages.
	UseCache bool `yaml:"use_cache" mapstructure:"use_cache"`
	// CacheTTL is how long cached search responses stay valid.
	CacheTTL time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
	// WaitTime is the default courtesy pause between page fetches.
	WaitTime time.Duration `yaml:"wait_time" mapstructure:"wait_time"`
}

// ArchiveConfig holds the file sink settings.
type ArchiveConfig struct {
	// Dir is the root directory for archived listings and raw pages.
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// Config represents the application configuration.
type Config struct {
	App      AppConfig       `yaml:"app" mapstructure:"app"`
	Logger   logger.Config   `yaml:"logger" mapstructure:"logger"`
	Database database.Config `yaml:"database" mapstructure:"database"`
	Search   SearchConfig    `yaml:"search" mapstructure:"search"`
	Archive  ArchiveConfig   `yaml:"archive" mapstructure:"archive"`
}

// Load decodes the current viper settings into a Config value.
func Load() (*Config, error) {
	var cfg Config

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("building config decoder: %w", err)
	}

	if err := decoder.Decode(viper.AllSettings()); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Database.Host == "" || c.Database.DBName == "" {
		return ErrMissingDatabase
	}
	if c.Search.UseCache && c.Search.CacheTTL <= 0 {
		return ErrInvalidCacheTTL
	}
	return nil
}
