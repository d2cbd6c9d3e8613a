// Package monitor runs the product discovery pipeline over the watchlist.
package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/trovehq/prowler/internal/database"
	"github.com/trovehq/prowler/internal/domain"
	"github.com/trovehq/prowler/internal/logger"
	"github.com/trovehq/prowler/internal/source"
)

// CandidateExtractor turns raw posts into product candidates.
type CandidateExtractor interface {
	Extract(ctx context.Context, posts []domain.RawPost) ([]domain.CandidateProduct, error)
}

// DuplicateChecker decides whether a candidate already exists for an
// influencer.
type DuplicateChecker interface {
	IsDuplicate(ctx context.Context, name, handle string, platform domain.Platform) (bool, error)
}

// LinkGenerator produces buy links for a saved product.
type LinkGenerator interface {
	Generate(product *domain.Product) []domain.BuyLink
}

// Result summarizes one processing attempt for an influencer.
type Result struct {
	Status        string `json:"status"`
	ProductsFound int    `json:"products_found"`
	ProductsSaved int    `json:"products_saved"`
	Err           error  `json:"-"`
}

// Pipeline processes a single influencer: fetch posts, extract products,
// deduplicate, persist with buy links, checkpoint, log. Both the
// monitoring cycle and manual triggers share it.
type Pipeline struct {
	source      source.ContentSource
	extractor   CandidateExtractor
	dedup       DuplicateChecker
	links       LinkGenerator
	influencers database.InfluencerRepositoryInterface
	products    database.ProductRepositoryInterface
	activity    database.ActivityLogRepositoryInterface
	postLimit   int
	logger      logger.Interface
}

// PipelineParams bundles the pipeline's dependencies.
type PipelineParams struct {
	Source      source.ContentSource
	Extractor   CandidateExtractor
	Dedup       DuplicateChecker
	Links       LinkGenerator
	Influencers database.InfluencerRepositoryInterface
	Products    database.ProductRepositoryInterface
	Activity    database.ActivityLogRepositoryInterface
	PostLimit   int
	Logger      logger.Interface
}

// NewPipeline creates a processing pipeline.
func NewPipeline(p PipelineParams) *Pipeline {
	return &Pipeline{
		source:      p.Source,
		extractor:   p.Extractor,
		dedup:       p.Dedup,
		links:       p.Links,
		influencers: p.Influencers,
		products:    p.Products,
		activity:    p.Activity,
		postLimit:   p.PostLimit,
		logger:      p.Logger.WithComponent("pipeline"),
	}
}

// Process runs the full pipeline for one influencer. Failures are
// captured in the result rather than returned, so the cycle can move on
// to the next influencer. Every attempt, successful or not, leaves an
// activity log entry.
func (p *Pipeline) Process(ctx context.Context, handle string, platform domain.Platform) Result {
	start := time.Now()
	log := p.logger.WithInfluencer(handle, string(platform))

	log.Info("processing influencer")

	result := p.run(ctx, log, handle, platform)
	duration := time.Since(start)

	p.appendActivity(ctx, log, handle, platform, result, duration)

	if result.Err != nil {
		log.WithError(result.Err).WithDuration(duration).Error("processing failed")
		return result
	}

	if err := p.influencers.UpdateCheckpoint(ctx, handle, platform, time.Now().UTC(), result.ProductsSaved); err != nil {
		log.WithError(err).Warn("failed to update influencer checkpoint")
	}

	log.WithDuration(duration).Info("processing finished",
		"products_found", result.ProductsFound,
		"products_saved", result.ProductsSaved,
	)

	return result
}

// run executes fetch, extract and persist. Fetch and extract failures
// abort the attempt; a persistence failure on one candidate only skips
// that candidate.
func (p *Pipeline) run(ctx context.Context, log logger.Interface, handle string, platform domain.Platform) Result {
	posts, err := p.source.FetchRecentPosts(ctx, handle, platform, p.postLimit)
	if err != nil {
		return Result{
			Status: domain.ActivityStatusError,
			Err:    fmt.Errorf("failed to fetch posts: %w", err),
		}
	}

	candidates, err := p.extractor.Extract(ctx, posts)
	if err != nil {
		return Result{
			Status: domain.ActivityStatusError,
			Err:    fmt.Errorf("failed to extract products: %w", err),
		}
	}

	saved := 0
	for _, candidate := range candidates {
		ok, saveErr := p.saveCandidate(ctx, log, candidate, handle, platform)
		if saveErr != nil {
			log.WithError(saveErr).Warn("failed to save candidate",
				"product_name", candidate.Name,
			)
			continue
		}
		if ok {
			saved++
		}
	}

	return Result{
		Status:        domain.ActivityStatusSuccess,
		ProductsFound: len(candidates),
		ProductsSaved: saved,
	}
}

// saveCandidate persists one candidate unless it is a duplicate. Returns
// true when a new product was stored.
func (p *Pipeline) saveCandidate(
	ctx context.Context,
	log logger.Interface,
	candidate domain.CandidateProduct,
	handle string,
	platform domain.Platform,
) (bool, error) {
	duplicate, err := p.dedup.IsDuplicate(ctx, candidate.Name, handle, platform)
	if err != nil {
		return false, err
	}
	if duplicate {
		return false, nil
	}

	product := &domain.Product{
		Name:             candidate.Name,
		Brand:            candidate.Brand,
		Category:         candidate.Category,
		Quote:            candidate.Quote,
		InfluencerHandle: handle,
		Platform:         platform,
		PostURL:          candidate.PostURL,
	}

	if err := p.products.Create(ctx, product); err != nil {
		return false, err
	}

	// Buy links are best-effort: once the product row exists it counts as
	// saved, and a failed link insert never stops the remaining stores.
	for _, link := range p.links.Generate(product) {
		if err := p.products.InsertBuyLink(ctx, &link); err != nil {
			log.WithError(err).Warn("failed to insert buy link",
				"product_name", product.Name,
				"store", link.StoreName,
			)
		}
	}

	return true, nil
}

// appendActivity records the attempt in the append-only log. Log failures
// are reported but never mask the pipeline result.
func (p *Pipeline) appendActivity(
	ctx context.Context,
	log logger.Interface,
	handle string,
	platform domain.Platform,
	result Result,
	duration time.Duration,
) {
	entry := &domain.ActivityLogEntry{
		InfluencerHandle: handle,
		Platform:         platform,
		Action:           domain.ActivityActionMonitor,
		Status:           result.Status,
		ProductsFound:    result.ProductsFound,
		ProductsSaved:    result.ProductsSaved,
		DurationMs:       duration.Milliseconds(),
	}
	if result.Err != nil {
		msg := result.Err.Error()
		entry.ErrorMessage = &msg
	}

	if err := p.activity.Append(ctx, entry); err != nil {
		log.WithError(err).Warn("failed to append activity log entry")
	}
}
