// Package tasks runs manual single-influencer triggers asynchronously.
package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/trovehq/prowler/internal/database"
	"github.com/trovehq/prowler/internal/domain"
	"github.com/trovehq/prowler/internal/logger"
	"github.com/trovehq/prowler/internal/monitor"
)

// Processor is the part of the pipeline a manual trigger needs.
type Processor interface {
	Process(ctx context.Context, handle string, platform domain.Platform) monitor.Result
}

// Service enqueues manual processing tasks. Each trigger gets a task ID
// immediately; the pipeline runs in the background and the task row
// records its progress and outcome.
type Service struct {
	tasks       database.TaskRepositoryInterface
	influencers database.InfluencerRepositoryInterface
	processor   Processor
	logger      logger.Interface

	// baseCtx detaches background runs from the request context so a
	// closed HTTP connection does not abort a running trigger.
	baseCtx context.Context
}

// NewService creates a task service. baseCtx bounds background task
// lifetimes; cancel it on shutdown.
func NewService(
	baseCtx context.Context,
	tasks database.TaskRepositoryInterface,
	influencers database.InfluencerRepositoryInterface,
	processor Processor,
	log logger.Interface,
) *Service {
	return &Service{
		tasks:       tasks,
		influencers: influencers,
		processor:   processor,
		logger:      log.WithComponent("tasks"),
		baseCtx:     baseCtx,
	}
}

// Enqueue validates the influencer exists, records a pending task and
// starts processing in the background. The returned task is immediately
// queryable by ID.
func (s *Service) Enqueue(ctx context.Context, handle string, platform domain.Platform) (*domain.Task, error) {
	if _, err := s.influencers.GetByHandle(ctx, handle, platform); err != nil {
		return nil, fmt.Errorf("failed to look up influencer: %w", err)
	}

	task := &domain.Task{
		ID:               uuid.NewString(),
		InfluencerHandle: handle,
		Platform:         platform,
		Status:           domain.TaskStatusPending,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	go s.execute(task.ID, handle, platform)

	return task, nil
}

// Get returns a task by ID.
func (s *Service) Get(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

// execute runs the pipeline for a queued task and records the outcome.
func (s *Service) execute(taskID, handle string, platform domain.Platform) {
	ctx := s.baseCtx
	log := s.logger.WithInfluencer(handle, string(platform)).With("task_id", taskID)

	if err := s.tasks.MarkRunning(ctx, taskID, time.Now().UTC()); err != nil {
		log.WithError(err).Error("failed to mark task running")
		return
	}

	result := s.processor.Process(ctx, handle, platform)

	if result.Err != nil {
		if err := s.tasks.Fail(ctx, taskID, result.Err.Error()); err != nil {
			log.WithError(err).Error("failed to mark task failed")
		}
		return
	}

	if err := s.tasks.Complete(ctx, taskID, result.ProductsFound, result.ProductsSaved); err != nil {
		log.WithError(err).Error("failed to mark task completed")
	}
}
