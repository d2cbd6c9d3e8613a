package database

import "errors"

// Common errors returned by repositories.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateInfluencer is returned when creating a watchlist entry
	// that already exists for the same (handle, platform).
	ErrDuplicateInfluencer = errors.New("influencer already on watchlist")
)
