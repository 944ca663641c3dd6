package database

import (
	"newsdesk/app/feed"
)

// EventPublisher receives change notifications from the repository.
// Publishing is fire and forget: a slow or absent subscriber never fails
// the mutation that triggered the event.
type EventPublisher interface {
	PublishUpdated(article Article)
	PublishDeleted(ids []int64)
	PublishPinChanged(article Article)
}

type ArticleRepository interface {
	UpsertArticle(item feed.Item) (int64, bool, error)
	GetArticle(id int64) (*Article, error)
	UpdateArticle(id int64, update ArticleUpdate) (*Article, error)
	SetPinned(id int64, pinned bool) (*Article, error)
	DeleteArticle(id int64) error
	DeleteArticles(ids []int64) error
	ListArticles(opts ListOptions) ([]Article, int, error)
	ListPinned(limit int) ([]Article, error)
	GetStats() (*ArticleStats, error)
}
