// Package domain provides domain models used across the application.
package domain

import (
	"fmt"
	"strings"
)

// Platform identifies the social network a post or influencer belongs to.
type Platform string

const (
	// PlatformInstagram is the Instagram platform.
	PlatformInstagram Platform = "instagram"
	// PlatformTikTok is the TikTok platform.
	PlatformTikTok Platform = "tiktok"
	// PlatformYouTube is the YouTube platform.
	PlatformYouTube Platform = "youtube"
)

// ParsePlatform validates a raw platform string.
func ParsePlatform(raw string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(raw)))
	switch p {
	case PlatformInstagram, PlatformTikTok, PlatformYouTube:
		return p, nil
	default:
		return "", fmt.Errorf("unknown platform %q", raw)
	}
}

// WatchStatus represents an influencer's monitoring status.
type WatchStatus string

const (
	// WatchStatusActive marks an influencer for recurring monitoring.
	WatchStatusActive WatchStatus = "active"
	// WatchStatusPaused excludes an influencer from monitoring without
	// deleting the record. Influencers referenced by products are never
	// hard-deleted.
	WatchStatusPaused WatchStatus = "paused"
)

// Category classifies a product. Unrecognized values fall back to
// CategoryOther.
type Category string

const (
	CategorySkincare  Category = "skincare"
	CategoryMakeup    Category = "makeup"
	CategoryHaircare  Category = "haircare"
	CategoryFragrance Category = "fragrance"
	CategoryFashion   Category = "fashion"
	CategoryFood      Category = "food"
	CategoryTech      Category = "tech"
	CategoryLifestyle Category = "lifestyle"
	CategoryBeauty    Category = "beauty"
	CategoryOther     Category = "other"
)

// knownCategories is the closed set accepted from model output.
var knownCategories = map[Category]struct{}{
	CategorySkincare:  {},
	CategoryMakeup:    {},
	CategoryHaircare:  {},
	CategoryFragrance: {},
	CategoryFashion:   {},
	CategoryFood:      {},
	CategoryTech:      {},
	CategoryLifestyle: {},
	CategoryBeauty:    {},
	CategoryOther:     {},
}

// NormalizeCategory maps a raw category string onto the known set,
// defaulting to CategoryOther.
func NormalizeCategory(raw string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := knownCategories[c]; ok {
		return c
	}
	return CategoryOther
}
