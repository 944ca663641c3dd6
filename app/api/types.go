package api

import (
	"context"
	"time"

	"newsdesk/app/database"
	"newsdesk/app/events"
	"newsdesk/app/feed"
)

// Syncer triggers one feed synchronization run; satisfied by *feed.Syncer.
type Syncer interface {
	Run(ctx context.Context) (*feed.SyncResult, error)
}

// Handler carries the dependencies the HTTP endpoints work against.
type Handler struct {
	articles database.ArticleRepository
	syncer   Syncer
	hub      *events.Hub
	version  string
}

// updateRequest is the PATCH body for an article. Absent fields are left
// unchanged.
type updateRequest struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	Published     *bool      `json:"published"`
	Pinned        *bool      `json:"pinned"`
	GeneratedText *string    `json:"generatedText"`
	IsGenerated   *bool      `json:"isGenerated"`
	GeneratedAt   *time.Time `json:"generatedAt"`
}

type pinRequest struct {
	Pinned *bool `json:"pinned"`
}

type bulkDeleteRequest struct {
	IDs []int64 `json:"ids"`
}
