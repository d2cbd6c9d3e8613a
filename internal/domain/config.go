package domain

import "time"

// DefaultMonitoringInterval is the cycle interval used when no config row
// exists yet.
const DefaultMonitoringInterval = 21600 * time.Second

// MonitorConfig is the singleton runtime configuration for the monitoring
// cycle. It is read once per cycle iteration and may be mutated externally
// by the control plane between reads.
type MonitorConfig struct {
	ID                 int64     `db:"id"                  json:"id"`
	IsActive           bool      `db:"is_active"           json:"is_active"`
	MonitoringInterval int       `db:"monitoring_interval" json:"monitoring_interval"` // seconds
	UpdatedAt          time.Time `db:"updated_at"          json:"updated_at"`
}

// Interval returns the monitoring interval as a duration, falling back to
// the default when the stored value is not positive.
func (c *MonitorConfig) Interval() time.Duration {
	if c.MonitoringInterval <= 0 {
		return DefaultMonitoringInterval
	}
	return time.Duration(c.MonitoringInterval) * time.Second
}
