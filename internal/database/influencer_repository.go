package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/trovehq/prowler/internal/domain"
)

// uniqueViolationCode is the PostgreSQL error code for unique constraint
// violations.
const uniqueViolationCode = "23505"

// InfluencerRepository handles database operations for the watchlist.
type InfluencerRepository struct {
	db *sqlx.DB
}

// NewInfluencerRepository creates a new influencer repository.
func NewInfluencerRepository(db *sqlx.DB) *InfluencerRepository {
	return &InfluencerRepository{db: db}
}

// Create inserts a new influencer into the watchlist.
func (r *InfluencerRepository) Create(ctx context.Context, influencer *domain.Influencer) error {
	query := `
		INSERT INTO influencers (handle, platform, display_name, avatar_url, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		influencer.Handle,
		influencer.Platform,
		influencer.DisplayName,
		influencer.AvatarURL,
		influencer.Status,
	).Scan(&influencer.ID, &influencer.CreatedAt, &influencer.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolationCode {
			return ErrDuplicateInfluencer
		}
		return fmt.Errorf("failed to create influencer: %w", err)
	}

	return nil
}

// GetByHandle retrieves an influencer by (handle, platform).
func (r *InfluencerRepository) GetByHandle(
	ctx context.Context,
	handle string,
	platform domain.Platform,
) (*domain.Influencer, error) {
	var influencer domain.Influencer
	query := `
		SELECT id, handle, platform, display_name, avatar_url, status,
		       last_checked_at, total_products_found, created_at, updated_at
		FROM influencers
		WHERE handle = $1 AND platform = $2
	`

	err := r.db.GetContext(ctx, &influencer, query, handle, platform)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get influencer: %w", err)
	}

	return &influencer, nil
}

// List retrieves all influencers regardless of status.
func (r *InfluencerRepository) List(ctx context.Context) ([]*domain.Influencer, error) {
	var influencers []*domain.Influencer
	query := `
		SELECT id, handle, platform, display_name, avatar_url, status,
		       last_checked_at, total_products_found, created_at, updated_at
		FROM influencers
		ORDER BY handle
	`

	if err := r.db.SelectContext(ctx, &influencers, query); err != nil {
		return nil, fmt.Errorf("failed to list influencers: %w", err)
	}

	if influencers == nil {
		influencers = []*domain.Influencer{}
	}

	return influencers, nil
}

// GetActiveWatchlist retrieves all influencers marked active.
func (r *InfluencerRepository) GetActiveWatchlist(ctx context.Context) ([]*domain.Influencer, error) {
	var influencers []*domain.Influencer
	query := `
		SELECT id, handle, platform, display_name, avatar_url, status,
		       last_checked_at, total_products_found, created_at, updated_at
		FROM influencers
		WHERE status = $1
		ORDER BY handle
	`

	if err := r.db.SelectContext(ctx, &influencers, query, domain.WatchStatusActive); err != nil {
		return nil, fmt.Errorf("failed to get active watchlist: %w", err)
	}

	if influencers == nil {
		influencers = []*domain.Influencer{}
	}

	return influencers, nil
}

// UpdateStatus changes an influencer's watch status. Influencers are never
// hard-deleted while referenced by products; removal is a status change.
func (r *InfluencerRepository) UpdateStatus(
	ctx context.Context,
	handle string,
	platform domain.Platform,
	status domain.WatchStatus,
) error {
	query := `
		UPDATE influencers
		SET status = $1, updated_at = NOW()
		WHERE handle = $2 AND platform = $3
	`

	result, err := r.db.ExecContext(ctx, query, status, handle, platform)
	if err != nil {
		return fmt.Errorf("failed to update influencer status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// UpdateCheckpoint records a completed processing attempt for an
// influencer. The products-found counter is cumulative across cycles.
func (r *InfluencerRepository) UpdateCheckpoint(
	ctx context.Context,
	handle string,
	platform domain.Platform,
	checkedAt time.Time,
	foundDelta int,
) error {
	query := `
		UPDATE influencers
		SET last_checked_at = $1,
		    total_products_found = total_products_found + $2,
		    updated_at = NOW()
		WHERE handle = $3 AND platform = $4
	`

	result, err := r.db.ExecContext(ctx, query, checkedAt, foundDelta, handle, platform)
	if err != nil {
		return fmt.Errorf("failed to update influencer checkpoint: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
