package database

import (
	"testing"
	"time"
)

func TestBuildUpdateClauses(t *testing.T) {
	title := "New Title"
	published := true
	generatedAt := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	set, args := buildUpdateClauses(ArticleUpdate{
		Title:       &title,
		Published:   &published,
		GeneratedAt: &generatedAt,
	})

	if len(set) != 3 {
		t.Fatalf("Expected 3 SET clauses, got: %d (%v)", len(set), set)
	}
	if set[0] != "title = $1" {
		t.Errorf("Expected 'title = $1', got: %s", set[0])
	}
	if set[1] != "published = $2" {
		t.Errorf("Expected 'published = $2', got: %s", set[1])
	}
	if set[2] != "generated_at = $3" {
		t.Errorf("Expected 'generated_at = $3', got: %s", set[2])
	}

	if len(args) != 3 {
		t.Fatalf("Expected 3 args, got: %d", len(args))
	}
	if args[0] != "New Title" {
		t.Errorf("Expected first arg 'New Title', got: %v", args[0])
	}
	if args[1] != true {
		t.Errorf("Expected second arg true, got: %v", args[1])
	}
}

func TestBuildUpdateClausesEmpty(t *testing.T) {
	set, args := buildUpdateClauses(ArticleUpdate{})

	if len(set) != 0 {
		t.Errorf("Expected no SET clauses, got: %v", set)
	}
	if len(args) != 0 {
		t.Errorf("Expected no args, got: %v", args)
	}
}

func TestBuildUpdateClausesIgnoresPinned(t *testing.T) {
	pinned := true
	set, _ := buildUpdateClauses(ArticleUpdate{Pinned: &pinned})

	// Pinned is handled by the guarded pin path, never by a plain SET.
	if len(set) != 0 {
		t.Errorf("Expected pinned to be excluded from SET clauses, got: %v", set)
	}
}

func TestBuildListFilters(t *testing.T) {
	published := true
	generated := false

	where, args := buildListFilters(ListOptions{
		Category:    "Classic",
		Search:      "raid",
		Published:   &published,
		IsGenerated: &generated,
	})

	expected := " WHERE category = $1 AND (title ILIKE $2 OR description ILIKE $2) AND published = $3 AND is_generated = $4"
	if where != expected {
		t.Errorf("Expected %q, got: %q", expected, where)
	}

	if len(args) != 4 {
		t.Fatalf("Expected 4 args, got: %d", len(args))
	}
	if args[0] != "Classic" {
		t.Errorf("Expected first arg 'Classic', got: %v", args[0])
	}
	if args[1] != "%raid%" {
		t.Errorf("Expected search arg '%%raid%%', got: %v", args[1])
	}
	if args[2] != true || args[3] != false {
		t.Errorf("Expected bool args [true false], got: %v %v", args[2], args[3])
	}
}

func TestBuildListFiltersEmpty(t *testing.T) {
	where, args := buildListFilters(ListOptions{})

	if where != "" {
		t.Errorf("Expected empty WHERE clause, got: %q", where)
	}
	if args != nil {
		t.Errorf("Expected nil args, got: %v", args)
	}
}

func TestBuildListOrder(t *testing.T) {
	tests := []struct {
		opts     ListOptions
		expected string
	}{
		{ListOptions{}, " ORDER BY pub_date DESC"},
		{ListOptions{SortAsc: true}, " ORDER BY pub_date ASC"},
		{ListOptions{PinnedFirst: true}, " ORDER BY pinned DESC, pub_date DESC"},
		{ListOptions{PinnedFirst: true, SortAsc: true}, " ORDER BY pinned DESC, pub_date ASC"},
	}

	for _, tt := range tests {
		if got := buildListOrder(tt.opts); got != tt.expected {
			t.Errorf("buildListOrder(%+v) = %q, expected %q", tt.opts, got, tt.expected)
		}
	}
}

func TestNullString(t *testing.T) {
	if ns := nullString(""); ns.Valid {
		t.Error("Expected empty string to map to NULL")
	}
	if ns := nullString("https://example.com/image.jpg"); !ns.Valid || ns.String != "https://example.com/image.jpg" {
		t.Errorf("Expected valid string, got: %+v", ns)
	}
}

func TestNotFoundErrorMessage(t *testing.T) {
	err := &NotFoundError{ID: 42}
	if err.Error() != "article not found: 42" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
}

func TestPinErrorMessages(t *testing.T) {
	if MaxPinnedArticles != 4 {
		t.Errorf("Expected pin cap of 4, got: %d", MaxPinnedArticles)
	}
	if ErrPinLimitExceeded.Error() == "" || ErrPinNotGenerated.Error() == "" {
		t.Error("Expected non-empty pin error messages")
	}
}
