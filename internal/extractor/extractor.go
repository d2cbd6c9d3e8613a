// Package extractor turns post captions into structured product mentions
// using a language model.
package extractor

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	extractorconfig "github.com/trovehq/prowler/internal/config/extractor"
	"github.com/trovehq/prowler/internal/domain"
	"github.com/trovehq/prowler/internal/logger"
)

// Extractor batches captions into a single model call and parses the
// reply into product candidates.
type Extractor struct {
	model        ModelClient
	batchSize    int
	captionLimit int
	logger       logger.Interface
}

// New creates an extractor.
func New(model ModelClient, cfg *extractorconfig.Config, log logger.Interface) *Extractor {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = extractorconfig.DefaultBatchSize
	}
	captionLimit := cfg.CaptionLimit
	if captionLimit <= 0 {
		captionLimit = extractorconfig.DefaultCaptionLimit
	}

	return &Extractor{
		model:        model,
		batchSize:    batchSize,
		captionLimit: captionLimit,
		logger:       log.WithComponent("extractor"),
	}
}

// Extract returns product candidates mentioned in the given posts. Posts
// with empty or whitespace-only captions are dropped first; if none
// remain, no model call is made. The rest are batched so each call
// carries at most batchSize captions. A model transport failure is
// returned; an unparseable reply is not, it just contributes nothing.
func (e *Extractor) Extract(ctx context.Context, posts []domain.RawPost) ([]domain.CandidateProduct, error) {
	posts = filterCaptioned(posts)
	if len(posts) == 0 {
		return nil, nil
	}

	var candidates []domain.CandidateProduct
	for start := 0; start < len(posts); start += e.batchSize {
		end := min(start+e.batchSize, len(posts))
		batch := posts[start:end]

		batchCandidates, err := e.extractBatch(ctx, batch)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, batchCandidates...)
	}

	return candidates, nil
}

// filterCaptioned keeps only posts with a non-whitespace caption.
func filterCaptioned(posts []domain.RawPost) []domain.RawPost {
	kept := make([]domain.RawPost, 0, len(posts))
	for _, post := range posts {
		if strings.TrimSpace(post.Caption) != "" {
			kept = append(kept, post)
		}
	}
	return kept
}

// extractBatch sends one model call for a batch of posts.
func (e *Extractor) extractBatch(ctx context.Context, batch []domain.RawPost) ([]domain.CandidateProduct, error) {
	prompt := e.buildPrompt(batch)

	reply, err := e.model.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("extraction call failed: %w", err)
	}

	raw := parseCandidates(reply)
	if len(raw) == 0 {
		e.logger.Debug("no candidates parsed from model reply", "posts", len(batch))
		return nil, nil
	}

	candidates := make([]domain.CandidateProduct, 0, len(raw))
	for _, candidate := range raw {
		name := strings.TrimSpace(candidate.ProductName)
		if name == "" {
			continue
		}

		postURL := ""
		if candidate.PostNumber >= 1 && candidate.PostNumber <= len(batch) {
			postURL = batch[candidate.PostNumber-1].URL
		}

		candidates = append(candidates, domain.CandidateProduct{
			Name:     name,
			Brand:    strings.TrimSpace(candidate.Brand),
			Category: domain.NormalizeCategory(candidate.Category),
			Quote:    strings.TrimSpace(candidate.Quote),
			PostURL:  postURL,
		})
	}

	e.logger.Debug("extracted candidates", "posts", len(batch), "candidates", len(candidates))

	return candidates, nil
}

// buildPrompt renders the numbered caption list with extraction
// instructions. Captions are truncated to keep the prompt bounded.
func (e *Extractor) buildPrompt(batch []domain.RawPost) string {
	var b strings.Builder

	b.WriteString("You are analyzing social media captions from an influencer to find product recommendations.\n\n")
	b.WriteString("For every product genuinely mentioned or recommended, output a JSON array of objects with these fields:\n")
	b.WriteString(`  "product_name": the specific product name` + "\n")
	b.WriteString(`  "brand": the brand, or "" if unknown` + "\n")
	b.WriteString(`  "category": one of skincare, makeup, haircare, fragrance, fashion, food, tech, lifestyle, beauty, other` + "\n")
	b.WriteString(`  "quote": the caption phrase mentioning the product` + "\n")
	b.WriteString(`  "post_number": the number of the post the product appears in` + "\n\n")
	b.WriteString("Respond with ONLY the JSON array. If no products are mentioned, respond with [].\n\n")

	for i, post := range batch {
		fmt.Fprintf(&b, "Post %d: %s\n\n", i+1, truncateCaption(post.Caption, e.captionLimit))
	}

	return b.String()
}

// truncateCaption cuts a caption down to at most limit bytes without
// splitting a multi-byte rune.
func truncateCaption(caption string, limit int) string {
	if len(caption) <= limit {
		return caption
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(caption[cut]) {
		cut--
	}
	return caption[:cut]
}
