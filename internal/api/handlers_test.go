package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trovehq/prowler/internal/api"
	"github.com/trovehq/prowler/internal/database"
	"github.com/trovehq/prowler/internal/domain"
	"github.com/trovehq/prowler/internal/logger"
	"github.com/trovehq/prowler/internal/monitor"
	"github.com/trovehq/prowler/internal/tasks"
)

type fakeInfluencerRepo struct {
	database.InfluencerRepositoryInterface

	mu     sync.Mutex
	byKey  map[string]*domain.Influencer
	nextID int64
}

func influencerKey(handle string, platform domain.Platform) string {
	return handle + "|" + string(platform)
}

func newFakeInfluencerRepo() *fakeInfluencerRepo {
	return &fakeInfluencerRepo{byKey: map[string]*domain.Influencer{}}
}

func (f *fakeInfluencerRepo) Create(_ context.Context, influencer *domain.Influencer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := influencerKey(influencer.Handle, influencer.Platform)
	if _, exists := f.byKey[key]; exists {
		return database.ErrDuplicateInfluencer
	}
	f.nextID++
	influencer.ID = f.nextID
	f.byKey[key] = influencer
	return nil
}

func (f *fakeInfluencerRepo) GetByHandle(_ context.Context, handle string, platform domain.Platform) (*domain.Influencer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	influencer, ok := f.byKey[influencerKey(handle, platform)]
	if !ok {
		return nil, database.ErrNotFound
	}
	return influencer, nil
}

func (f *fakeInfluencerRepo) List(context.Context) ([]*domain.Influencer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Influencer, 0, len(f.byKey))
	for _, influencer := range f.byKey {
		out = append(out, influencer)
	}
	return out, nil
}

func (f *fakeInfluencerRepo) UpdateStatus(_ context.Context, handle string, platform domain.Platform, status domain.WatchStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	influencer, ok := f.byKey[influencerKey(handle, platform)]
	if !ok {
		return database.ErrNotFound
	}
	influencer.Status = status
	return nil
}

type fakeProductRepo struct {
	database.ProductRepositoryInterface

	products []*domain.Product
	links    map[int64][]domain.BuyLink
}

func (f *fakeProductRepo) List(_ context.Context, limit, _ int) ([]*domain.Product, error) {
	if limit > len(f.products) {
		limit = len(f.products)
	}
	return f.products[:limit], nil
}

func (f *fakeProductRepo) ListBuyLinks(_ context.Context, productID int64) ([]domain.BuyLink, error) {
	return f.links[productID], nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id int64) error {
	for i, p := range f.products {
		if p.ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return database.ErrNotFound
}

type fakeActivityRepo struct {
	database.ActivityLogRepositoryInterface

	entries []*domain.ActivityLogEntry
}

func (f *fakeActivityRepo) ListRecent(_ context.Context, limit int) ([]*domain.ActivityLogEntry, error) {
	if limit > len(f.entries) {
		limit = len(f.entries)
	}
	return f.entries[:limit], nil
}

type fakeConfigRepo struct {
	database.ConfigRepositoryInterface

	mu  sync.Mutex
	cfg domain.MonitorConfig
}

func (f *fakeConfigRepo) Get(context.Context) (*domain.MonitorConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cfg := f.cfg
	return &cfg, nil
}

func (f *fakeConfigRepo) SetActive(_ context.Context, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cfg.IsActive = active
	return nil
}

func (f *fakeConfigRepo) SetInterval(_ context.Context, seconds int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cfg.MonitoringInterval = seconds
	return nil
}

type fakeTaskRepo struct {
	database.TaskRepositoryInterface

	mu   sync.Mutex
	byID map[string]*domain.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{byID: map[string]*domain.Task{}}
}

func (f *fakeTaskRepo) Create(_ context.Context, task *domain.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *task
	f.byID[task.ID] = &copied
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

func (f *fakeTaskRepo) Fail(_ context.Context, id, msg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	task := f.byID[id]
	task.Status = domain.TaskStatusFailed
	task.ErrorMessage = &msg
	return nil
}

type fakeProcessor struct {
	result monitor.Result
}

func (f *fakeProcessor) Process(context.Context, string, domain.Platform) monitor.Result {
	return f.result
}

type fixture struct {
	router      http.Handler
	influencers *fakeInfluencerRepo
	products    *fakeProductRepo
	activity    *fakeActivityRepo
	configs     *fakeConfigRepo
	taskRepo    *fakeTaskRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{
		influencers: newFakeInfluencerRepo(),
		products:    &fakeProductRepo{links: map[int64][]domain.BuyLink{}},
		activity:    &fakeActivityRepo{},
		configs:     &fakeConfigRepo{cfg: domain.MonitorConfig{MonitoringInterval: 21600}},
		taskRepo:    newFakeTaskRepo(),
	}

	taskService := tasks.NewService(
		context.Background(),
		f.taskRepo,
		f.influencers,
		&fakeProcessor{result: monitor.Result{Status: domain.ActivityStatusSuccess}},
		logger.NewNoOp(),
	)

	handler := api.NewHandler(api.HandlerParams{
		Influencers: f.influencers,
		Products:    f.products,
		Activity:    f.activity,
		Configs:     f.configs,
		Tasks:       taskService,
		Logger:      logger.NewNoOp(),
	})

	router := gin.New()
	router.GET("/healthz", handler.Health)
	v1 := router.Group("/api/v1")
	v1.GET("/watchlist", handler.ListWatchlist)
	v1.POST("/watchlist", handler.AddInfluencer)
	v1.DELETE("/watchlist/:platform/:handle", handler.RemoveInfluencer)
	v1.POST("/process", handler.TriggerProcess)
	v1.GET("/tasks/:id", handler.GetTask)
	v1.GET("/products", handler.ListProducts)
	v1.DELETE("/products/:id", handler.DeleteProduct)
	v1.GET("/logs", handler.ListLogs)
	v1.GET("/monitoring", handler.MonitoringStatus)
	v1.POST("/monitoring/start", handler.StartMonitoring)
	v1.POST("/monitoring/stop", handler.StopMonitoring)
	v1.PUT("/monitoring/interval", handler.SetInterval)

	f.router = router
	return f
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, req)
	return recorder
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	resp := f.do(t, http.MethodGet, "/healthz", nil)
	if resp.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.Code)
	}
}

func TestAddInfluencer(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/api/v1/watchlist", gin.H{
		"handle":       "hudabeauty",
		"platform":     "instagram",
		"display_name": "Huda Beauty",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body)
	}

	// Adding the same influencer again conflicts.
	resp = f.do(t, http.MethodPost, "/api/v1/watchlist", gin.H{
		"handle":   "hudabeauty",
		"platform": "instagram",
	})
	if resp.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate, got %d", resp.Code)
	}
}

func TestAddInfluencer_InvalidPlatform(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/api/v1/watchlist", gin.H{
		"handle":   "someone",
		"platform": "myspace",
	})
	if resp.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown platform, got %d", resp.Code)
	}
}

func TestRemoveInfluencer_Pauses(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/api/v1/watchlist", gin.H{"handle": "hudabeauty", "platform": "instagram"})

	resp := f.do(t, http.MethodDelete, "/api/v1/watchlist/instagram/hudabeauty", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	influencer, err := f.influencers.GetByHandle(context.Background(), "hudabeauty", domain.PlatformInstagram)
	if err != nil {
		t.Fatalf("influencer should still exist: %v", err)
	}
	if influencer.Status != domain.WatchStatusPaused {
		t.Errorf("expected paused status, got %s", influencer.Status)
	}
}

func TestTriggerProcess_ReturnsTask(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/api/v1/watchlist", gin.H{"handle": "hudabeauty", "platform": "instagram"})

	resp := f.do(t, http.MethodPost, "/api/v1/process", gin.H{
		"handle":   "hudabeauty",
		"platform": "instagram",
	})
	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", resp.Code, resp.Body)
	}

	var task domain.Task
	if err := json.Unmarshal(resp.Body.Bytes(), &task); err != nil {
		t.Fatalf("failed to decode task: %v", err)
	}
	if task.ID == "" {
		t.Error("expected task ID in response")
	}

	// The task is immediately queryable.
	resp = f.do(t, http.MethodGet, "/api/v1/tasks/"+task.ID, nil)
	if resp.Code != http.StatusOK {
		t.Errorf("expected 200 for task lookup, got %d", resp.Code)
	}
}

func TestTriggerProcess_UnknownInfluencer(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/api/v1/process", gin.H{
		"handle":   "nobody",
		"platform": "instagram",
	})
	if resp.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.Code)
	}
}

func TestGetTask_NotFound(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodGet, "/api/v1/tasks/does-not-exist", nil)
	if resp.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.Code)
	}
}

func TestListProducts_IncludesBuyLinks(t *testing.T) {
	f := newFixture(t)
	f.products.products = []*domain.Product{{ID: 1, Name: "Gloss Bomb"}}
	f.products.links[1] = []domain.BuyLink{
		{ProductID: 1, StoreName: "Amazon"},
		{ProductID: 1, StoreName: "Google Shopping"},
	}

	resp := f.do(t, http.MethodGet, "/api/v1/products", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Products []*domain.Product `json:"products"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body.Products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(body.Products))
	}
	if len(body.Products[0].BuyLinks) != 2 {
		t.Errorf("expected buy links attached, got %d", len(body.Products[0].BuyLinks))
	}
}

func TestMonitoringControl(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/api/v1/monitoring/start", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !f.configs.cfg.IsActive {
		t.Error("start should activate monitoring")
	}

	resp = f.do(t, http.MethodPut, "/api/v1/monitoring/interval", gin.H{"seconds": 3600})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body)
	}
	if f.configs.cfg.MonitoringInterval != 3600 {
		t.Errorf("expected interval 3600, got %d", f.configs.cfg.MonitoringInterval)
	}

	resp = f.do(t, http.MethodPost, "/api/v1/monitoring/stop", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if f.configs.cfg.IsActive {
		t.Error("stop should deactivate monitoring")
	}
}

func TestListLogs(t *testing.T) {
	f := newFixture(t)
	msg := "actor timed out"
	f.activity.entries = []*domain.ActivityLogEntry{
		{InfluencerHandle: "hudabeauty", Status: domain.ActivityStatusError, ErrorMessage: &msg},
	}

	resp := f.do(t, http.MethodGet, "/api/v1/logs", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Logs []*domain.ActivityLogEntry `json:"logs"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body.Logs) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(body.Logs))
	}
}
