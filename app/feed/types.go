package feed

import (
	"time"
)

// Category is the editorial category an article is filed under. Which
// values are in play depends on the deployment's category scheme.
type Category string

const (
	CategoryClassic  Category = "Classic"
	CategoryRetail   Category = "Retail"
	CategoryBlizzard Category = "Blizzard"
)

// Source is a single configured feed: the category name it is registered
// under and the URL it is fetched from.
type Source struct {
	Category string
	URL      string
}

// Item is a normalized feed entry, the unit handed from the parser to the
// article store. Link is the natural key and is always non-empty once an
// item leaves the parser.
type Item struct {
	Title          string
	Link           string
	Description    string
	Image          string
	PublishedAt    time.Time
	SourceCategory string
}

// SyncResult tallies one completed sync run.
type SyncResult struct {
	Saved   int `json:"saved"`
	New     int `json:"new"`
	Updated int `json:"updated"`
}
