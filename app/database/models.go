package database

import (
	"time"

	"newsdesk/app/feed"
)

// Article is the persisted, admin-manageable record derived from a feed
// item. The RSS-owned fields (title, link, description, image, category,
// pub date) are refreshed on every sync. The editorial fields (published,
// pinned, generation state) belong to admin actions and the generation
// job and are never touched by sync.
type Article struct {
	ID            int64         `json:"id"`
	Title         string        `json:"title"`
	Link          string        `json:"link"`
	Description   string        `json:"description"`
	Image         string        `json:"image,omitempty"`
	Category      feed.Category `json:"category"`
	PubDate       time.Time     `json:"pubDate"`
	Published     bool          `json:"published"`
	Pinned        bool          `json:"pinned"`
	IsGenerated   bool          `json:"isGenerated"`
	GeneratedText string        `json:"generatedText,omitempty"`
	GeneratedAt   *time.Time    `json:"generatedAt,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// ArticleUpdate is a partial update: nil fields are left unchanged.
type ArticleUpdate struct {
	Title         *string
	Description   *string
	Published     *bool
	Pinned        *bool
	GeneratedText *string
	IsGenerated   *bool
	GeneratedAt   *time.Time
}

// ArticleStats summarizes the article table for the stats endpoint.
type ArticleStats struct {
	Total     int `json:"total"`
	Published int `json:"published"`
	Generated int `json:"generated"`
	Pinned    int `json:"pinned"`
}
