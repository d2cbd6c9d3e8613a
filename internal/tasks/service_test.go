package tasks_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/trovehq/prowler/internal/database"
	"github.com/trovehq/prowler/internal/domain"
	"github.com/trovehq/prowler/internal/logger"
	"github.com/trovehq/prowler/internal/monitor"
	"github.com/trovehq/prowler/internal/tasks"
)

type fakeTaskRepo struct {
	database.TaskRepositoryInterface

	mu    sync.Mutex
	byID  map[string]*domain.Task
	order []string
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{byID: map[string]*domain.Task{}}
}

func (f *fakeTaskRepo) Create(_ context.Context, task *domain.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *task
	f.byID[task.ID] = &copied
	f.order = append(f.order, task.ID)
	return nil
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	task, ok := f.byID[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	copied := *task
	return &copied, nil
}

func (f *fakeTaskRepo) MarkRunning(_ context.Context, id string, startedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[id].Status = domain.TaskStatusRunning
	f.byID[id].StartedAt = &startedAt
	return nil
}

func (f *fakeTaskRepo) Complete(_ context.Context, id string, found, saved int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	task := f.byID[id]
	task.Status = domain.TaskStatusCompleted
	task.ProductsFound = found
	task.ProductsSaved = saved
	return nil
}

func (f *fakeTaskRepo) Fail(_ context.Context, id string, msg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	task := f.byID[id]
	task.Status = domain.TaskStatusFailed
	task.ErrorMessage = &msg
	return nil
}

type fakeInfluencerLookup struct {
	database.InfluencerRepositoryInterface

	known map[string]bool
}

func (f *fakeInfluencerLookup) GetByHandle(
	_ context.Context,
	handle string,
	_ domain.Platform,
) (*domain.Influencer, error) {
	if !f.known[handle] {
		return nil, database.ErrNotFound
	}
	return &domain.Influencer{Handle: handle}, nil
}

type fakeProcessor struct {
	result monitor.Result
	delay  time.Duration
}

func (f *fakeProcessor) Process(context.Context, string, domain.Platform) monitor.Result {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.result
}

func newService(repo *fakeTaskRepo, processor *fakeProcessor) *tasks.Service {
	influencers := &fakeInfluencerLookup{known: map[string]bool{"hudabeauty": true}}
	return tasks.NewService(context.Background(), repo, influencers, processor, logger.NewNoOp())
}

func waitForStatus(t *testing.T, repo *fakeTaskRepo, id string, want string) *domain.Task {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		task, err := repo.GetByID(context.Background(), id)
		if err == nil && task.Status == want {
			return task
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("task %s never reached status %s", id, want)
	return nil
}

func TestEnqueue_ReturnsPendingTaskImmediately(t *testing.T) {
	repo := newFakeTaskRepo()
	service := newService(repo, &fakeProcessor{
		delay:  100 * time.Millisecond,
		result: monitor.Result{Status: domain.ActivityStatusSuccess},
	})

	task, err := service.Enqueue(context.Background(), "hudabeauty", domain.PlatformInstagram)
	if err != nil {
		t.Fatalf("Enqueue returned error: %v", err)
	}
	if task.ID == "" {
		t.Error("expected task ID assigned")
	}
	if task.Status != domain.TaskStatusPending {
		t.Errorf("expected pending status at enqueue time, got %s", task.Status)
	}
}

func TestEnqueue_CompletesWithCounts(t *testing.T) {
	repo := newFakeTaskRepo()
	service := newService(repo, &fakeProcessor{
		result: monitor.Result{
			Status:        domain.ActivityStatusSuccess,
			ProductsFound: 4,
			ProductsSaved: 2,
		},
	})

	task, err := service.Enqueue(context.Background(), "hudabeauty", domain.PlatformInstagram)
	if err != nil {
		t.Fatalf("Enqueue returned error: %v", err)
	}

	final := waitForStatus(t, repo, task.ID, domain.TaskStatusCompleted)
	if final.ProductsFound != 4 || final.ProductsSaved != 2 {
		t.Errorf("expected counts 4/2, got %d/%d", final.ProductsFound, final.ProductsSaved)
	}
}

func TestEnqueue_FailureRecorded(t *testing.T) {
	repo := newFakeTaskRepo()
	service := newService(repo, &fakeProcessor{
		result: monitor.Result{
			Status: domain.ActivityStatusError,
			Err:    errors.New("failed to fetch posts: actor timed out"),
		},
	})

	task, err := service.Enqueue(context.Background(), "hudabeauty", domain.PlatformInstagram)
	if err != nil {
		t.Fatalf("Enqueue returned error: %v", err)
	}

	final := waitForStatus(t, repo, task.ID, domain.TaskStatusFailed)
	if final.ErrorMessage == nil {
		t.Fatal("expected error message on failed task")
	}
}

func TestEnqueue_UnknownInfluencer(t *testing.T) {
	repo := newFakeTaskRepo()
	service := newService(repo, &fakeProcessor{})

	_, err := service.Enqueue(context.Background(), "nobody", domain.PlatformInstagram)
	if !errors.Is(err, database.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown influencer, got %v", err)
	}
	if len(repo.order) != 0 {
		t.Error("no task should be created for unknown influencer")
	}
}
