package feed

import (
	"strings"
)

// Mapper derives the stored article category from the raw source category a
// feed item was fetched under. Deployments differ in how many categories
// they run with, so the mapping is injected rather than hardcoded.
type Mapper func(sourceCategory string) Category

// NewMapper builds the standard mapper: case-insensitive substring match on
// "classic" and "retail", with everything else falling back to the
// deployment's default category.
func NewMapper(defaultCategory Category) Mapper {
	return func(sourceCategory string) Category {
		normalized := strings.ToLower(sourceCategory)
		if strings.Contains(normalized, "classic") {
			return CategoryClassic
		}
		if strings.Contains(normalized, "retail") {
			return CategoryRetail
		}
		return defaultCategory
	}
}
