// Package monitor provides monitoring cycle configuration management.
package monitor

import (
	"time"

	"github.com/spf13/viper"
)

// Default configuration values
const (
	// DefaultIdlePollInterval is how often the loop re-checks the config
	// while monitoring is inactive.
	DefaultIdlePollInterval = 60 * time.Second
	// DefaultInfluencerDelay is the fixed backoff between influencers,
	// protecting content source rate limits.
	DefaultInfluencerDelay = 5 * time.Second
)

// Config represents monitoring loop configuration settings. The cycle
// interval itself lives in the database (monitor_config) so the control
// plane can change it at runtime; these values only shape the loop.
type Config struct {
	// IdlePollInterval is the wait between config polls while inactive.
	IdlePollInterval time.Duration `yaml:"idle_poll_interval" env:"MONITOR_IDLE_POLL_INTERVAL"`
	// InfluencerDelay is the fixed delay between influencers in a cycle.
	InfluencerDelay time.Duration `yaml:"influencer_delay" env:"MONITOR_INFLUENCER_DELAY"`
}

// NewConfig returns a monitor config populated with defaults.
func NewConfig() *Config {
	return &Config{
		IdlePollInterval: DefaultIdlePollInterval,
		InfluencerDelay:  DefaultInfluencerDelay,
	}
}

// LoadFromViper loads monitor configuration from Viper.
func LoadFromViper(v *viper.Viper) *Config {
	cfg := NewConfig()
	if d := v.GetDuration("monitor.idle_poll_interval"); d > 0 {
		cfg.IdlePollInterval = d
	}
	if d := v.GetDuration("monitor.influencer_delay"); d > 0 {
		cfg.InfluencerDelay = d
	}
	return cfg
}
