package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/trovehq/prowler/internal/domain"
)

// TaskRepository handles manual trigger task records.
type TaskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a new pending task.
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (id, influencer_handle, platform, status)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		task.ID,
		task.InfluencerHandle,
		task.Platform,
		task.Status,
	).Scan(&task.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// GetByID retrieves a task by its ID.
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	var task domain.Task
	query := `
		SELECT id, influencer_handle, platform, status,
		       products_found, products_saved, error_message,
		       created_at, started_at, completed_at
		FROM tasks
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &task, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return &task, nil
}

// MarkRunning transitions a task to running.
func (r *TaskRepository) MarkRunning(ctx context.Context, id string, startedAt time.Time) error {
	query := `
		UPDATE tasks
		SET status = $1, started_at = $2
		WHERE id = $3
	`

	return r.exec(ctx, query, domain.TaskStatusRunning, startedAt, id)
}

// Complete transitions a task to completed with its result counts.
func (r *TaskRepository) Complete(ctx context.Context, id string, found, saved int) error {
	query := `
		UPDATE tasks
		SET status = $1, products_found = $2, products_saved = $3, completed_at = NOW()
		WHERE id = $4
	`

	return r.exec(ctx, query, domain.TaskStatusCompleted, found, saved, id)
}

// Fail transitions a task to failed with an error message.
func (r *TaskRepository) Fail(ctx context.Context, id string, errorMessage string) error {
	query := `
		UPDATE tasks
		SET status = $1, error_message = $2, completed_at = NOW()
		WHERE id = $3
	`

	return r.exec(ctx, query, domain.TaskStatusFailed, errorMessage, id)
}

// exec runs an update and converts a zero row count into ErrNotFound.
func (r *TaskRepository) exec(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
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
