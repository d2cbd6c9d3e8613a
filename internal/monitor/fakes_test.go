package monitor_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/trovehq/prowler/internal/database"
	"github.com/trovehq/prowler/internal/domain"
)

type fakeSource struct {
	posts   map[string][]domain.RawPost
	err     error
	errs    map[string]error
	fetches []string
}

func (f *fakeSource) FetchRecentPosts(
	_ context.Context,
	handle string,
	_ domain.Platform,
	_ int,
) ([]domain.RawPost, error) {
	f.fetches = append(f.fetches, handle)
	if f.err != nil {
		return nil, f.err
	}
	if err := f.errs[handle]; err != nil {
		return nil, err
	}
	return f.posts[handle], nil
}

type fakeExtractor struct {
	candidates map[string][]domain.CandidateProduct
	err        error
	calls      int
}

func (f *fakeExtractor) Extract(_ context.Context, posts []domain.RawPost) ([]domain.CandidateProduct, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if len(posts) == 0 {
		return nil, nil
	}
	return f.candidates[posts[0].PostID], nil
}

type fakeDedup struct {
	duplicates map[string]bool
	err        error
}

func (f *fakeDedup) IsDuplicate(_ context.Context, name, _ string, _ domain.Platform) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.duplicates[name], nil
}

type fakeLinks struct{}

func (fakeLinks) Generate(product *domain.Product) []domain.BuyLink {
	links := make([]domain.BuyLink, 4)
	for i := range links {
		links[i] = domain.BuyLink{ProductID: product.ID, StoreName: "Store", URL: "https://store/q"}
	}
	return links
}

type fakeProductRepo struct {
	database.ProductRepositoryInterface

	mu              sync.Mutex
	created         []*domain.Product
	links           []*domain.BuyLink
	createErr       error
	linkAttempts    int
	failLinkAttempt int // 1-based attempt that fails, 0 disables
}

func (f *fakeProductRepo) Create(_ context.Context, product *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	product.ID = int64(len(f.created) + 1)
	f.created = append(f.created, product)
	return nil
}

func (f *fakeProductRepo) InsertBuyLink(_ context.Context, link *domain.BuyLink) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.linkAttempts++
	if f.failLinkAttempt > 0 && f.linkAttempts == f.failLinkAttempt {
		return errors.New("connection reset")
	}
	f.links = append(f.links, link)
	return nil
}

type fakeInfluencerRepo struct {
	database.InfluencerRepositoryInterface

	mu          sync.Mutex
	watchlist   []*domain.Influencer
	checkpoints map[string]int
	listErr     error
}

func (f *fakeInfluencerRepo) GetActiveWatchlist(context.Context) ([]*domain.Influencer, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.watchlist, nil
}

func (f *fakeInfluencerRepo) UpdateCheckpoint(
	_ context.Context,
	handle string,
	_ domain.Platform,
	_ time.Time,
	foundDelta int,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.checkpoints == nil {
		f.checkpoints = map[string]int{}
	}
	f.checkpoints[handle] += foundDelta
	return nil
}

type fakeActivityRepo struct {
	database.ActivityLogRepositoryInterface

	mu      sync.Mutex
	entries []*domain.ActivityLogEntry
}

func (f *fakeActivityRepo) Append(_ context.Context, entry *domain.ActivityLogEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
	return nil
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
