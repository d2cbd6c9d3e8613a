package database

import (
	"context"
	"time"

	"github.com/trovehq/prowler/internal/domain"
)

// InfluencerRepositoryInterface defines the contract for watchlist data access.
type InfluencerRepositoryInterface interface {
	Create(ctx context.Context, influencer *domain.Influencer) error
	GetByHandle(ctx context.Context, handle string, platform domain.Platform) (*domain.Influencer, error)
	List(ctx context.Context) ([]*domain.Influencer, error)
	// GetActiveWatchlist returns all influencers marked active. The
	// monitoring cycle reads this once per cycle.
	GetActiveWatchlist(ctx context.Context) ([]*domain.Influencer, error)
	UpdateStatus(ctx context.Context, handle string, platform domain.Platform, status domain.WatchStatus) error
	// UpdateCheckpoint records a completed processing attempt: sets
	// last_checked_at and adds foundDelta to the cumulative counter.
	UpdateCheckpoint(ctx context.Context, handle string, platform domain.Platform, checkedAt time.Time, foundDelta int) error
}

// ProductRepositoryInterface defines the contract for product data access.
type ProductRepositoryInterface interface {
	// FindByNameAndInfluencer looks up a product by exact, case-sensitive
	// (name, handle, platform) match. Returns (nil, nil) when absent.
	FindByNameAndInfluencer(ctx context.Context, name, handle string, platform domain.Platform) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	InsertBuyLink(ctx context.Context, link *domain.BuyLink) error
	ListBuyLinks(ctx context.Context, productID int64) ([]domain.BuyLink, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Product, error)
	// Delete removes a product; its buy links cascade.
	Delete(ctx context.Context, id int64) error
}

// ActivityLogRepositoryInterface defines the contract for the append-only
// activity log.
type ActivityLogRepositoryInterface interface {
	Append(ctx context.Context, entry *domain.ActivityLogEntry) error
	ListRecent(ctx context.Context, limit int) ([]*domain.ActivityLogEntry, error)
}

// ConfigRepositoryInterface defines the contract for the singleton
// monitoring configuration row.
type ConfigRepositoryInterface interface {
	// Get returns the monitoring config, or an inactive default when no
	// row exists yet.
	Get(ctx context.Context) (*domain.MonitorConfig, error)
	SetActive(ctx context.Context, active bool) error
	SetInterval(ctx context.Context, seconds int) error
}

// TaskRepositoryInterface defines the contract for manual trigger tasks.
type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	MarkRunning(ctx context.Context, id string, startedAt time.Time) error
	Complete(ctx context.Context, id string, found, saved int) error
	Fail(ctx context.Context, id string, errorMessage string) error
}
