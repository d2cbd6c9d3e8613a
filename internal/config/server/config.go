// Package server provides HTTP server configuration types and functions.
package server

import (
	"time"

	"github.com/spf13/viper"
)

// Default configuration values
const (
	DefaultAddress      = ":8080"
	DefaultReadTimeout  = 15 * time.Second
	DefaultWriteTimeout = 15 * time.Second
	DefaultIdleTimeout  = 60 * time.Second
)

// Config represents server-specific configuration settings.
type Config struct {
	// Address is the address to listen on (e.g., ":8080")
	Address string `yaml:"address" env:"SERVER_ADDRESS"`
	// ReadTimeout is the maximum duration for reading the entire request
	ReadTimeout time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	// WriteTimeout is the maximum duration before timing out writes of the response
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	// IdleTimeout is the maximum amount of time to wait for the next request
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT"`
}

// NewConfig returns a server config populated with defaults.
func NewConfig() *Config {
	return &Config{
		Address:      DefaultAddress,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
		IdleTimeout:  DefaultIdleTimeout,
	}
}

// LoadFromViper loads server configuration from Viper.
func LoadFromViper(v *viper.Viper) *Config {
	cfg := NewConfig()
	if addr := v.GetString("server.address"); addr != "" {
		cfg.Address = addr
	}
	if d := v.GetDuration("server.read_timeout"); d > 0 {
		cfg.ReadTimeout = d
	}
	if d := v.GetDuration("server.write_timeout"); d > 0 {
		cfg.WriteTimeout = d
	}
	if d := v.GetDuration("server.idle_timeout"); d > 0 {
		cfg.IdleTimeout = d
	}
	return cfg
}
