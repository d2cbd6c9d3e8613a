package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/trovehq/prowler/internal/domain"
)

// ProductRepository handles database operations for products and their
// buy links.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// FindByNameAndInfluencer looks up a product by exact, case-sensitive
// (name, handle, platform) match. Returns (nil, nil) when no such product
// exists; the deduplicator relies on this distinction.
func (r *ProductRepository) FindByNameAndInfluencer(
	ctx context.Context,
	name, handle string,
	platform domain.Platform,
) (*domain.Product, error) {
	var product domain.Product
	query := `
		SELECT id, product_name, brand, category, quote,
		       influencer_handle, platform, post_url, created_at
		FROM products
		WHERE product_name = $1 AND influencer_handle = $2 AND platform = $3
	`

	err := r.db.GetContext(ctx, &product, query, name, handle, platform)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	return &product, nil
}

// Create inserts a new product.
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (product_name, brand, category, quote,
		                      influencer_handle, platform, post_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		product.Name,
		product.Brand,
		product.Category,
		product.Quote,
		product.InfluencerHandle,
		product.Platform,
		product.PostURL,
	).Scan(&product.ID, &product.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// InsertBuyLink inserts a single buy link for a product.
func (r *ProductRepository) InsertBuyLink(ctx context.Context, link *domain.BuyLink) error {
	query := `
		INSERT INTO buy_links (product_id, store_name, url, price, currency)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		link.ProductID,
		link.StoreName,
		link.URL,
		link.Price,
		link.Currency,
	).Scan(&link.ID, &link.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert buy link: %w", err)
	}

	return nil
}

// ListBuyLinks retrieves all buy links for a product.
func (r *ProductRepository) ListBuyLinks(ctx context.Context, productID int64) ([]domain.BuyLink, error) {
	var links []domain.BuyLink
	query := `
		SELECT id, product_id, store_name, url, price, currency, created_at
		FROM buy_links
		WHERE product_id = $1
		ORDER BY id
	`

	if err := r.db.SelectContext(ctx, &links, query, productID); err != nil {
		return nil, fmt.Errorf("failed to list buy links: %w", err)
	}

	if links == nil {
		links = []domain.BuyLink{}
	}

	return links, nil
}

// List retrieves products ordered by recency.
func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*domain.Product, error) {
	var products []*domain.Product
	query := `
		SELECT id, product_name, brand, category, quote,
		       influencer_handle, platform, post_url, created_at
		FROM products
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	if err := r.db.SelectContext(ctx, &products, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	if products == nil {
		products = []*domain.Product{}
	}

	return products, nil
}

// Delete removes a product. Buy links cascade via the foreign key.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
