package domain

import "time"

// Product is a persisted product mention extracted from an influencer's
// posts. No two products may share the same (name, influencer handle,
// platform) tuple; the deduplicator enforces this with an exact
// case-sensitive match before insert.
type Product struct {
	ID               int64    `db:"id"                json:"id"`
	Name             string   `db:"product_name"      json:"product_name"`
	Brand            string   `db:"brand"             json:"brand"`
	Category         Category `db:"category"          json:"category"`
	Quote            string   `db:"quote"             json:"quote"`
	InfluencerHandle string   `db:"influencer_handle" json:"influencer_handle"`
	Platform         Platform `db:"platform"          json:"platform"`
	PostURL          string   `db:"post_url"          json:"post_url"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// BuyLinks is populated on reads that join the buy_links table.
	BuyLinks []BuyLink `db:"-" json:"buy_links,omitempty"`
}

// BuyLink is a purchase link belonging to exactly one product. Its
// lifecycle is tied to the parent product (cascade delete). When no real
// link is known, four templated marketplace search URLs are generated as
// a fallback.
type BuyLink struct {
	ID        int64     `db:"id"         json:"id"`
	ProductID int64     `db:"product_id" json:"product_id"`
	StoreName string    `db:"store_name" json:"store_name"`
	URL       string    `db:"url"        json:"url"`
	Price     *float64  `db:"price"      json:"price,omitempty"`
	Currency  *string   `db:"currency"   json:"currency,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
