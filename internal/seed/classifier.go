// Package seed holds the canonical content catalog and the startup
// reconciliation logic that brings the database to its baseline state.
package seed

import "strings"

// Categories is the fixed service taxonomy. Every service row must end
// up with one of these values; unclassifiable legacy rows fall back to
// FallbackCategory.
var Categories = []string{
	"administrative",
	"operations",
	"data",
	"communications",
	"branding",
	"business",
	"systems",
	"training",
	"creative",
	"consulting",
}

// FallbackCategory is assigned when no keyword matches a title.
const FallbackCategory = "administrative"

// keywordRule maps a lowercase keyword to a category. The rules are an
// ordered list because first match wins: a title containing several
// keywords resolves to whichever rule is checked first.
type keywordRule struct {
	keyword  string
	category string
}

var keywordRules = []keywordRule{
	{"administrative", "administrative"},
	{"executive", "administrative"},
	{"project", "operations"},
	{"operations", "operations"},
	{"data", "data"},
	{"analytics", "data"},
	{"communications", "communications"},
	{"documentation", "communications"},
	{"branding", "branding"},
	{"design", "branding"},
	{"marketing", "branding"},
	{"business", "business"},
	{"startup", "business"},
	{"systems", "systems"},
	{"process", "systems"},
	{"capacity", "training"},
	{"training", "training"},
	{"creative", "creative"},
	{"individual", "creative"},
	{"consulting", "consulting"},
	{"strategy", "consulting"},
}

// Classify maps a free-text service title to exactly one category.
// The scan is case-insensitive and deterministic so repeated
// reconciliation runs always produce the same result.
func Classify(title string) string {
	lower := strings.ToLower(title)
	for _, rule := range keywordRules {
		if strings.Contains(lower, rule.keyword) {
			return rule.category
		}
	}
	return FallbackCategory
}

// ValidCategory reports whether c belongs to the taxonomy.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}
