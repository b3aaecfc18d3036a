package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogServices(t *testing.T) {
	require.Len(t, Services, 10)
	require.Equal(t, len(Services), ExpectedServiceCount)

	seen := map[string]bool{}
	for _, s := range Services {
		assert.NotEmpty(t, s.Title)
		assert.NotEmpty(t, s.Description)
		assert.False(t, seen[s.Title], "duplicate title %q", s.Title)
		seen[s.Title] = true
		assert.True(t, ValidCategory(s.Category), "service %q has category %q outside the taxonomy", s.Title, s.Category)
	}
}

func TestCatalogCategoriesAgreeWithClassifier(t *testing.T) {
	// The catalog's preassigned categories must match what the keyword
	// rules would derive, otherwise a backfill would reclassify rows.
	for _, s := range Services {
		assert.Equal(t, Classify(s.Title), s.Category, s.Title)
	}
}

func TestCatalogPortfolio(t *testing.T) {
	require.Len(t, PortfolioItems, 6)
	featured := 0
	for _, p := range PortfolioItems {
		assert.NotEmpty(t, p.Title)
		assert.NotEmpty(t, p.Category)
		if p.Featured {
			featured++
		}
	}
	assert.Equal(t, 5, featured)
}

func TestCatalogAdvertisements(t *testing.T) {
	require.Len(t, Advertisements, 2)
	for _, a := range Advertisements {
		assert.NotEmpty(t, a.Title)
		assert.NotEmpty(t, a.CTAText)
		// Order positions are assigned at seeding time, not in the catalog.
		assert.Zero(t, a.DisplayOrder)
	}
}
