// Package extractor provides AI extraction configuration management.
package extractor

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

// Default configuration values
const (
	DefaultModel     = "claude-3-5-haiku-latest"
	DefaultMaxTokens = 2000
	DefaultBatchSize = 20
	// DefaultCaptionLimit truncates captions to keep the batched prompt
	// inside the model's context window.
	DefaultCaptionLimit = 500
)

// Config represents product extraction configuration settings.
type Config struct {
	// APIKey is the model provider API key. Required for pipeline commands.
	APIKey string `yaml:"api_key" env:"ANTHROPIC_API_KEY"`
	// Model is the model identifier used for extraction calls.
	Model string `yaml:"model" env:"EXTRACTOR_MODEL"`
	// MaxTokens bounds the model response size.
	MaxTokens int `yaml:"max_tokens" env:"EXTRACTOR_MAX_TOKENS"`
	// BatchSize is the maximum number of captions per model call.
	BatchSize int `yaml:"batch_size" env:"EXTRACTOR_BATCH_SIZE"`
	// CaptionLimit is the maximum caption length included in the prompt.
	CaptionLimit int `yaml:"caption_limit" env:"EXTRACTOR_CAPTION_LIMIT"`
}

// NewConfig returns an extractor config populated with defaults.
func NewConfig() *Config {
	return &Config{
		Model:        DefaultModel,
		MaxTokens:    DefaultMaxTokens,
		BatchSize:    DefaultBatchSize,
		CaptionLimit: DefaultCaptionLimit,
	}
}

// Validate checks that required credentials are present.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("model API key is required (set ANTHROPIC_API_KEY)")
	}
	return nil
}

// LoadFromViper loads extractor configuration from Viper and environment variables.
func LoadFromViper(v *viper.Viper) *Config {
	cfg := NewConfig()
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		cfg.APIKey = key
	} else {
		cfg.APIKey = v.GetString("extractor.api_key")
	}
	if model := v.GetString("extractor.model"); model != "" {
		cfg.Model = model
	}
	if n := v.GetInt("extractor.max_tokens"); n > 0 {
		cfg.MaxTokens = n
	}
	if n := v.GetInt("extractor.batch_size"); n > 0 {
		cfg.BatchSize = n
	}
	if n := v.GetInt("extractor.caption_limit"); n > 0 {
		cfg.CaptionLimit = n
	}
	return cfg
}
