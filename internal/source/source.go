// Package source defines the contract for fetching recent posts from
// social platforms.
package source

import (
	"context"
	"errors"

	"github.com/trovehq/prowler/internal/domain"
)

// ErrUnsupportedPlatform is returned when a source has no fetcher for the
// requested platform.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// ContentSource fetches an influencer's recent posts. Implementations
// return at most limit posts, newest first where the platform allows it.
type ContentSource interface {
	FetchRecentPosts(ctx context.Context, handle string, platform domain.Platform, limit int) ([]domain.RawPost, error)
}
