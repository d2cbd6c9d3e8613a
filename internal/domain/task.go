package domain

import "time"

// Task statuses.
const (
	// TaskStatusPending means the task has been accepted but not started.
	TaskStatusPending = "pending"
	// TaskStatusRunning means the pipeline is processing the influencer.
	TaskStatusRunning = "running"
	// TaskStatusCompleted means the pipeline finished successfully.
	TaskStatusCompleted = "completed"
	// TaskStatusFailed means the pipeline finished with an error.
	TaskStatusFailed = "failed"
)

// Task tracks one manually triggered single-influencer processing run. It
// backs the polling status endpoint so callers are decoupled from the
// pipeline's synchronous execution.
type Task struct {
	ID               string   `db:"id"                json:"id"`
	InfluencerHandle string   `db:"influencer_handle" json:"influencer_handle"`
	Platform         Platform `db:"platform"          json:"platform"`
	Status           string   `db:"status"            json:"status"`
	ProductsFound    int      `db:"products_found"    json:"products_found"`
	ProductsSaved    int      `db:"products_saved"    json:"products_saved"`
	ErrorMessage     *string  `db:"error_message"     json:"error_message,omitempty"`

	CreatedAt   time.Time  `db:"created_at"   json:"created_at"`
	StartedAt   *time.Time `db:"started_at"   json:"started_at,omitempty"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
}
