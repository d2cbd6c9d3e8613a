package domain

import "time"

// Activity log entry statuses.
const (
	// ActivityStatusSuccess marks a successful processing attempt.
	ActivityStatusSuccess = "success"
	// ActivityStatusError marks a failed processing attempt.
	ActivityStatusError = "error"
)

// ActivityActionMonitor is the action kind recorded by the monitoring
// pipeline.
const ActivityActionMonitor = "monitor"

// ActivityLogEntry is an append-only record of one processing attempt for
// one influencer. Entries are immutable once written.
type ActivityLogEntry struct {
	ID               int64    `db:"id"                json:"id"`
	InfluencerHandle string   `db:"influencer_handle" json:"influencer_handle"`
	Platform         Platform `db:"platform"          json:"platform"`
	Action           string   `db:"action"            json:"action"`
	Status           string   `db:"status"            json:"status"`
	ProductsFound    int      `db:"products_found"    json:"products_found"`
	ProductsSaved    int      `db:"products_saved"    json:"products_saved"`
	ErrorMessage     *string  `db:"error_message"     json:"error_message,omitempty"`
	DurationMs       int64    `db:"duration_ms"       json:"duration_ms"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
