package domain

// RawPost is a transient post record returned by a content source. It is
// consumed by the extractor and never persisted.
type RawPost struct {
	// PostID is the source-specific post identifier (e.g. an Instagram
	// short code).
	PostID string `json:"post_id"`
	// Caption is the post's caption text. Posts with empty or
	// whitespace-only captions are skipped before extraction.
	Caption string `json:"caption"`
	// MediaURL is an optional URL to the post's media.
	MediaURL string `json:"media_url,omitempty"`
	// URL is the canonical post URL, if known.
	URL string `json:"url,omitempty"`
}

// CandidateProduct is a transient product mention produced by the
// extractor. It becomes a Product only after passing deduplication.
type CandidateProduct struct {
	Name     string   `json:"product_name"`
	Brand    string   `json:"brand,omitempty"`
	Category Category `json:"category"`
	Quote    string   `json:"quote,omitempty"`
	PostURL  string   `json:"post_url,omitempty"`
}
