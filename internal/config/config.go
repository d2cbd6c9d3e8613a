// Package config provides configuration management for the Prowler
// application. It aggregates focused sub-configs loaded from Viper (YAML
// file + environment variables), with environment variables taking
// precedence.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	dbconfig "github.com/trovehq/prowler/internal/config/database"
	extractorcfg "github.com/trovehq/prowler/internal/config/extractor"
	monitorcfg "github.com/trovehq/prowler/internal/config/monitor"
	servercfg "github.com/trovehq/prowler/internal/config/server"
	sourcecfg "github.com/trovehq/prowler/internal/config/source"
	"github.com/trovehq/prowler/internal/logger"
)

// Interface defines the interface for configuration management.
type Interface interface {
	// GetAppConfig returns the application configuration.
	GetAppConfig() *AppConfig
	// GetLoggerConfig returns the logger configuration.
	GetLoggerConfig() *logger.Config
	// GetDatabaseConfig returns the database configuration.
	GetDatabaseConfig() *dbconfig.Config
	// GetServerConfig returns the HTTP server configuration.
	GetServerConfig() *servercfg.Config
	// GetSourceConfig returns the content source configuration.
	GetSourceConfig() *sourcecfg.Config
	// GetExtractorConfig returns the AI extraction configuration.
	GetExtractorConfig() *extractorcfg.Config
	// GetMonitorConfig returns the monitoring loop configuration.
	GetMonitorConfig() *monitorcfg.Config
	// ValidatePipeline validates configuration required by the
	// monitoring pipeline (credentials for the content source and the
	// extraction model).
	ValidatePipeline() error
}

// Ensure Config implements Interface
var _ Interface = (*Config)(nil)

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"`
	Debug       bool   `yaml:"debug"`
}

// Config represents the application configuration.
type Config struct {
	// App holds application-level settings
	App *AppConfig `yaml:"app"`
	// Logger holds logger configuration
	Logger *logger.Config `yaml:"logger"`
	// Database holds database configuration
	Database *dbconfig.Config `yaml:"database"`
	// Server holds HTTP server configuration
	Server *servercfg.Config `yaml:"server"`
	// Source holds content source configuration
	Source *sourcecfg.Config `yaml:"source"`
	// Extractor holds AI extraction configuration
	Extractor *extractorcfg.Config `yaml:"extractor"`
	// Monitor holds monitoring loop configuration
	Monitor *monitorcfg.Config `yaml:"monitor"`
}

// LoadFromViper builds the full configuration from the global Viper
// instance. Call after viper has read the config file and bound env vars.
func LoadFromViper() *Config {
	v := viper.GetViper()

	app := &AppConfig{
		Name:        v.GetString("app.name"),
		Version:     v.GetString("app.version"),
		Environment: v.GetString("app.environment"),
		Debug:       v.GetBool("app.debug"),
	}

	logCfg := &logger.Config{
		Level:       logger.Level(v.GetString("logger.level")),
		Development: v.GetBool("logger.development"),
		Encoding:    v.GetString("logger.encoding"),
	}

	return &Config{
		App:       app,
		Logger:    logCfg,
		Database:  dbconfig.LoadFromViper(v),
		Server:    servercfg.LoadFromViper(v),
		Source:    sourcecfg.LoadFromViper(v),
		Extractor: extractorcfg.LoadFromViper(v),
		Monitor:   monitorcfg.LoadFromViper(v),
	}
}

// GetAppConfig returns the application configuration.
func (c *Config) GetAppConfig() *AppConfig {
	return c.App
}

// GetLoggerConfig returns the logger configuration.
func (c *Config) GetLoggerConfig() *logger.Config {
	return c.Logger
}

// GetDatabaseConfig returns the database configuration.
func (c *Config) GetDatabaseConfig() *dbconfig.Config {
	if c.Database == nil {
		return dbconfig.NewConfig()
	}
	return c.Database
}

// GetServerConfig returns the HTTP server configuration.
func (c *Config) GetServerConfig() *servercfg.Config {
	if c.Server == nil {
		return servercfg.NewConfig()
	}
	return c.Server
}

// GetSourceConfig returns the content source configuration.
func (c *Config) GetSourceConfig() *sourcecfg.Config {
	if c.Source == nil {
		return sourcecfg.NewConfig()
	}
	return c.Source
}

// GetExtractorConfig returns the AI extraction configuration.
func (c *Config) GetExtractorConfig() *extractorcfg.Config {
	if c.Extractor == nil {
		return extractorcfg.NewConfig()
	}
	return c.Extractor
}

// GetMonitorConfig returns the monitoring loop configuration.
func (c *Config) GetMonitorConfig() *monitorcfg.Config {
	if c.Monitor == nil {
		return monitorcfg.NewConfig()
	}
	return c.Monitor
}

// ValidatePipeline validates configuration required by the monitoring
// pipeline. Missing credentials are fatal at startup, before the loop
// begins, as opposed to steady-state per-influencer errors.
func (c *Config) ValidatePipeline() error {
	if err := c.GetSourceConfig().Validate(); err != nil {
		return fmt.Errorf("source: %w", err)
	}
	if err := c.GetExtractorConfig().Validate(); err != nil {
		return fmt.Errorf("extractor: %w", err)
	}
	return nil
}
