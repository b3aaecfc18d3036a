package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Administrative & Executive Support", "administrative"},
		{"Project & Operations Support", "operations"},
		{"Data Management & Analytics", "data"},
		{"Communications & Documentation", "communications"},
		{"Branding, Design & Marketing", "branding"},
		{"Business & Startup Support", "business"},
		{"Systems & Process Optimization", "systems"},
		{"Capacity Building & Training", "training"},
		{"Creative & Individual Services", "creative"},
		{"Consulting & Strategy", "consulting"},
	}
	for _, tc := range cases {
		t.Run(tc.title, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.title))
		})
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	assert.Equal(t, "data", Classify("DATA ENTRY"))
	assert.Equal(t, "data", Classify("data entry"))
}

func TestClassifyFallback(t *testing.T) {
	// Nothing in the rule list matches, so the fallback applies.
	assert.Equal(t, FallbackCategory, Classify("Underwater Basket Weaving"))
	assert.Equal(t, FallbackCategory, Classify(""))
}

func TestClassifyFirstMatchWins(t *testing.T) {
	// "administrative" is checked before "executive", and "branding"
	// before "marketing"; a title containing several keywords must
	// resolve to the earliest rule.
	assert.Equal(t, "administrative", Classify("Executive Administrative Assistant"))
	assert.Equal(t, "branding", Classify("Marketing and Branding Review"))
	// "project" outranks "data" because it appears earlier in the list.
	assert.Equal(t, "operations", Classify("Project Data Review"))
}

func TestClassifyDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, Classify("Consulting & Strategy"), Classify("Consulting & Strategy"))
	}
}

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, ValidCategory(c), c)
	}
	assert.False(t, ValidCategory("finance"))
	assert.False(t, ValidCategory(""))
	assert.False(t, ValidCategory("Administrative")) // taxonomy is lowercase
}
