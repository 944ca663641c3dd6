package feed

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ArticleStore is the slice of the article repository the syncer needs: an
// idempotent create-or-update keyed by item link.
type ArticleStore interface {
	UpsertArticle(item Item) (id int64, isNew bool, err error)
}

// Syncer drives one full sync run: aggregate every configured source, then
// upsert each item into the store and tally new versus updated records.
type Syncer struct {
	aggregator *Aggregator
	store      ArticleStore
}

func NewSyncer(aggregator *Aggregator, store ArticleStore) *Syncer {
	return &Syncer{
		aggregator: aggregator,
		store:      store,
	}
}

// Run executes a sync run to completion. Upserts are applied sequentially
// in merge order; there is no batch transaction, so a mid-run failure
// leaves earlier items committed. That partial progress is safe: upserts
// are idempotent by link and the next run picks up where this one stopped.
func (s *Syncer) Run(ctx context.Context) (*SyncResult, error) {
	start := time.Now()
	slog.Info("Starting RSS sync")

	items, err := s.aggregator.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate feeds: %w", err)
	}

	result := &SyncResult{}
	for _, item := range items {
		_, isNew, err := s.store.UpsertArticle(item)
		if err != nil {
			return nil, fmt.Errorf("failed to save article %s: %w", item.Link, err)
		}

		if isNew {
			result.New++
		} else {
			result.Updated++
		}
		result.Saved++
	}

	slog.Info("RSS sync completed",
		"saved", result.Saved,
		"new", result.New,
		"updated", result.Updated,
		"duration", time.Since(start))

	return result, nil
}
