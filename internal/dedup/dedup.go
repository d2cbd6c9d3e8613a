// Package dedup decides whether an extracted product has already been
// recorded for an influencer.
package dedup

import (
	"context"
	"fmt"

	"github.com/trovehq/prowler/internal/database"
	"github.com/trovehq/prowler/internal/domain"
	"github.com/trovehq/prowler/internal/logger"
)

// Deduplicator checks extracted candidates against stored products using
// an exact, case-sensitive match on product name, influencer handle and
// platform. "Gloss Bomb" and "gloss bomb" are distinct on purpose: the
// extractor is expected to return canonical product names, and fuzzy
// matching would silently drop legitimate variants.
type Deduplicator struct {
	products database.ProductRepositoryInterface
	logger   logger.Interface
}

// New creates a deduplicator backed by the product store.
func New(products database.ProductRepositoryInterface, log logger.Interface) *Deduplicator {
	return &Deduplicator{
		products: products,
		logger:   log.WithComponent("dedup"),
	}
}

// IsDuplicate reports whether a product with this exact name already
// exists for the influencer. A storage failure is returned to the caller
// rather than treated as "not a duplicate".
func (d *Deduplicator) IsDuplicate(
	ctx context.Context,
	name, handle string,
	platform domain.Platform,
) (bool, error) {
	existing, err := d.products.FindByNameAndInfluencer(ctx, name, handle, platform)
	if err != nil {
		return false, fmt.Errorf("failed to check for duplicate product: %w", err)
	}

	if existing != nil {
		d.logger.Debug("skipping duplicate product",
			"product_name", name,
			"influencer_handle", handle,
			"platform", platform,
		)
		return true, nil
	}

	return false, nil
}
