// Package buylinks builds purchase search links for discovered products.
package buylinks

import (
	"strings"

	"github.com/trovehq/prowler/internal/domain"
)

// store describes one storefront the generator targets.
type store struct {
	name      string
	urlPrefix string
	currency  string
}

// Stores are ordered; the output order is stable for a given product.
var stores = []store{
	{name: "Amazon", urlPrefix: "https://www.amazon.com/s?k=", currency: "USD"},
	{name: "Google Shopping", urlPrefix: "https://www.google.com/search?tbm=shop&q="},
	{name: "Jumia Egypt", urlPrefix: "https://www.jumia.com.eg/catalog/?q=", currency: "EGP"},
	{name: "Noon Egypt", urlPrefix: "https://www.noon.com/egypt-en/search?q=", currency: "EGP"},
}

// Generator produces storefront search links from a product's brand and
// name. Links are search URLs, so no price is attached.
type Generator struct{}

// NewGenerator creates a buy link generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate returns one link per known storefront for the given product.
func (g *Generator) Generate(product *domain.Product) []domain.BuyLink {
	query := searchQuery(product.Brand, product.Name)

	links := make([]domain.BuyLink, 0, len(stores))
	for _, s := range stores {
		link := domain.BuyLink{
			ProductID: product.ID,
			StoreName: s.name,
			URL:       s.urlPrefix + query,
		}
		if s.currency != "" {
			currency := s.currency
			link.Currency = &currency
		}
		links = append(links, link)
	}

	return links
}

// searchQuery joins brand and name and encodes spaces as plus signs.
// An empty brand does not produce a leading separator.
func searchQuery(brand, name string) string {
	term := strings.TrimSpace(strings.TrimSpace(brand) + " " + strings.TrimSpace(name))
	return strings.ReplaceAll(term, " ", "+")
}
