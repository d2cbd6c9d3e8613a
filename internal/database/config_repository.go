package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/trovehq/prowler/internal/domain"
)

// ConfigRepository handles the singleton monitoring configuration row.
// The control plane mutates it; the monitoring loop reads it once per
// cycle iteration.
type ConfigRepository struct {
	db *sqlx.DB
}

// NewConfigRepository creates a new config repository.
func NewConfigRepository(db *sqlx.DB) *ConfigRepository {
	return &ConfigRepository{db: db}
}

// Get returns the monitoring config. When no row exists yet an inactive
// default is returned so a fresh install stays idle until activated.
func (r *ConfigRepository) Get(ctx context.Context) (*domain.MonitorConfig, error) {
	var cfg domain.MonitorConfig
	query := `
		SELECT id, is_active, monitoring_interval, updated_at
		FROM monitor_config
		ORDER BY id
		LIMIT 1
	`

	err := r.db.GetContext(ctx, &cfg, query)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.MonitorConfig{
				IsActive:           false,
				MonitoringInterval: int(domain.DefaultMonitoringInterval.Seconds()),
			}, nil
		}
		return nil, fmt.Errorf("failed to get monitor config: %w", err)
	}

	return &cfg, nil
}

// SetActive flips the monitoring flag, creating the config row if needed.
// The running loop observes the change at its next config poll.
func (r *ConfigRepository) SetActive(ctx context.Context, active bool) error {
	query := `
		INSERT INTO monitor_config (id, is_active, monitoring_interval)
		VALUES (1, $1, $2)
		ON CONFLICT (id)
		DO UPDATE SET is_active = $1, updated_at = NOW()
	`

	if _, err := r.db.ExecContext(ctx, query, active, int(domain.DefaultMonitoringInterval.Seconds())); err != nil {
		return fmt.Errorf("failed to set monitor active flag: %w", err)
	}

	return nil
}

// SetInterval updates the cycle interval in seconds, creating the config
// row if needed.
func (r *ConfigRepository) SetInterval(ctx context.Context, seconds int) error {
	if seconds <= 0 {
		return fmt.Errorf("monitoring interval must be positive, got %d", seconds)
	}

	query := `
		INSERT INTO monitor_config (id, is_active, monitoring_interval)
		VALUES (1, FALSE, $1)
		ON CONFLICT (id)
		DO UPDATE SET monitoring_interval = $1, updated_at = NOW()
	`

	if _, err := r.db.ExecContext(ctx, query, seconds); err != nil {
		return fmt.Errorf("failed to set monitoring interval: %w", err)
	}

	return nil
}

// Ensure repositories implement their interfaces.
var (
	_ InfluencerRepositoryInterface  = (*InfluencerRepository)(nil)
	_ ProductRepositoryInterface     = (*ProductRepository)(nil)
	_ ActivityLogRepositoryInterface = (*ActivityLogRepository)(nil)
	_ ConfigRepositoryInterface      = (*ConfigRepository)(nil)
	_ TaskRepositoryInterface        = (*TaskRepository)(nil)
)
