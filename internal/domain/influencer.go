package domain

import "time"

// Influencer is a watchlist entry identified by (handle, platform).
type Influencer struct {
	ID          int64       `db:"id"           json:"id"`
	Handle      string      `db:"handle"       json:"handle"`
	Platform    Platform    `db:"platform"     json:"platform"`
	DisplayName string      `db:"display_name" json:"display_name"`
	AvatarURL   *string     `db:"avatar_url"   json:"avatar_url,omitempty"`
	Status      WatchStatus `db:"status"       json:"status"`

	// Checkpoint fields mutated by the monitoring cycle.
	LastCheckedAt      *time.Time `db:"last_checked_at"      json:"last_checked_at,omitempty"`
	TotalProductsFound int        `db:"total_products_found" json:"total_products_found"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
