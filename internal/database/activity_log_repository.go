package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/trovehq/prowler/internal/domain"
)

// ActivityLogRepository handles the append-only processing log. Entries
// are never updated or deleted by the application.
type ActivityLogRepository struct {
	db *sqlx.DB
}

// NewActivityLogRepository creates a new activity log repository.
func NewActivityLogRepository(db *sqlx.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

// Append writes one processing attempt record.
func (r *ActivityLogRepository) Append(ctx context.Context, entry *domain.ActivityLogEntry) error {
	query := `
		INSERT INTO activity_log (influencer_handle, platform, action, status,
		                          products_found, products_saved, error_message, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		entry.InfluencerHandle,
		entry.Platform,
		entry.Action,
		entry.Status,
		entry.ProductsFound,
		entry.ProductsSaved,
		entry.ErrorMessage,
		entry.DurationMs,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to append activity log entry: %w", err)
	}

	return nil
}

// ListRecent retrieves the most recent log entries, newest first.
func (r *ActivityLogRepository) ListRecent(ctx context.Context, limit int) ([]*domain.ActivityLogEntry, error) {
	var entries []*domain.ActivityLogEntry
	query := `
		SELECT id, influencer_handle, platform, action, status,
		       products_found, products_saved, error_message, duration_ms, created_at
		FROM activity_log
		ORDER BY created_at DESC
		LIMIT $1
	`

	if err := r.db.SelectContext(ctx, &entries, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list activity log entries: %w", err)
	}

	if entries == nil {
		entries = []*domain.ActivityLogEntry{}
	}

	return entries, nil
}
