package buylinks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trovehq/prowler/internal/buylinks"
	"github.com/trovehq/prowler/internal/domain"
)

func TestGenerate_FourStores(t *testing.T) {
	gen := buylinks.NewGenerator()
	product := &domain.Product{
		ID:    42,
		Name:  "Gloss Bomb",
		Brand: "Fenty Beauty",
	}

	links := gen.Generate(product)
	require.Len(t, links, 4)

	wantURLs := map[string]string{
		"Amazon":          "https://www.amazon.com/s?k=Fenty+Beauty+Gloss+Bomb",
		"Google Shopping": "https://www.google.com/search?tbm=shop&q=Fenty+Beauty+Gloss+Bomb",
		"Jumia Egypt":     "https://www.jumia.com.eg/catalog/?q=Fenty+Beauty+Gloss+Bomb",
		"Noon Egypt":      "https://www.noon.com/egypt-en/search?q=Fenty+Beauty+Gloss+Bomb",
	}

	for _, link := range links {
		want, ok := wantURLs[link.StoreName]
		require.True(t, ok, "unexpected store %q", link.StoreName)
		assert.Equal(t, want, link.URL)
		assert.Equal(t, int64(42), link.ProductID)
		assert.Nil(t, link.Price, "search links carry no price")
	}
}

func TestGenerate_Currencies(t *testing.T) {
	gen := buylinks.NewGenerator()
	links := gen.Generate(&domain.Product{Name: "Serum", Brand: "The Ordinary"})

	wantCurrency := map[string]string{
		"Amazon":      "USD",
		"Jumia Egypt": "EGP",
		"Noon Egypt":  "EGP",
	}

	for _, link := range links {
		want, hasCurrency := wantCurrency[link.StoreName]
		if hasCurrency {
			require.NotNil(t, link.Currency, "store %s", link.StoreName)
			assert.Equal(t, want, *link.Currency)
		} else {
			assert.Nil(t, link.Currency, "store %s", link.StoreName)
		}
	}
}

func TestGenerate_EmptyBrand(t *testing.T) {
	gen := buylinks.NewGenerator()
	links := gen.Generate(&domain.Product{Name: "Gloss Bomb"})

	assert.Equal(t, "https://www.amazon.com/s?k=Gloss+Bomb", links[0].URL,
		"empty brand must not produce a leading separator")
}

func TestGenerate_StableOrder(t *testing.T) {
	gen := buylinks.NewGenerator()
	product := &domain.Product{Name: "Gloss Bomb", Brand: "Fenty Beauty"}

	first := gen.Generate(product)
	second := gen.Generate(product)
	require.Equal(t, first, second)
}
