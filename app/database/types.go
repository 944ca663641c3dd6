package database

// ListOptions narrows and pages an article listing. Published and
// IsGenerated are tri-state: nil means no filter. Category is the raw
// value from the caller and is resolved through the category mapper.
type ListOptions struct {
	Category    string
	Search      string
	Published   *bool
	IsGenerated *bool
	PinnedFirst bool
	SortAsc     bool
	Limit       int
	Offset      int
}
