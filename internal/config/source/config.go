// Package source provides content source configuration management.
package source

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Default configuration values
const (
	DefaultBaseURL        = "https://api.apify.com/v2"
	DefaultRequestTimeout = 120 * time.Second
	DefaultPostLimit      = 20
)

// Config represents content source (Apify) configuration settings.
type Config struct {
	// Token is the Apify API token. Required for pipeline commands.
	Token string `yaml:"token" env:"APIFY_TOKEN"`
	// BaseURL is the base URL for the Apify API.
	BaseURL string `yaml:"base_url" env:"APIFY_BASE_URL"`
	// RequestTimeout bounds a single fetch, including the actor run.
	RequestTimeout time.Duration `yaml:"request_timeout" env:"APIFY_REQUEST_TIMEOUT"`
	// PostLimit is the maximum number of posts fetched per influencer.
	PostLimit int `yaml:"post_limit" env:"SOURCE_POST_LIMIT"`
}

// NewConfig returns a source config populated with defaults.
func NewConfig() *Config {
	return &Config{
		BaseURL:        DefaultBaseURL,
		RequestTimeout: DefaultRequestTimeout,
		PostLimit:      DefaultPostLimit,
	}
}

// Validate checks that required credentials are present.
func (c *Config) Validate() error {
	if c.Token == "" {
		return errors.New("apify token is required (set APIFY_TOKEN)")
	}
	return nil
}

// LoadFromViper loads source configuration from Viper and environment variables.
func LoadFromViper(v *viper.Viper) *Config {
	cfg := NewConfig()
	if token := os.Getenv("APIFY_TOKEN"); token != "" {
		cfg.Token = token
	} else {
		cfg.Token = v.GetString("source.token")
	}
	if base := v.GetString("source.base_url"); base != "" {
		cfg.BaseURL = base
	}
	if d := v.GetDuration("source.request_timeout"); d > 0 {
		cfg.RequestTimeout = d
	}
	if limit := v.GetInt("source.post_limit"); limit > 0 {
		cfg.PostLimit = limit
	}
	return cfg
}
