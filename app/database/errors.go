package database

import (
	"errors"
	"fmt"
)

// MaxPinnedArticles caps how many articles may be pinned at once.
const MaxPinnedArticles = 4

var (
	// ErrPinLimitExceeded is returned when pinning an article would exceed
	// MaxPinnedArticles.
	ErrPinLimitExceeded = errors.New("pin limit reached: at most 4 articles can be pinned")

	// ErrPinNotGenerated is returned when pinning an article whose text has
	// not been generated yet.
	ErrPinNotGenerated = errors.New("article cannot be pinned before its text is generated")
)

// NotFoundError reports an operation against an article id that does not
// exist.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("article not found: %d", e.ID)
}
