package cfg

import (
	"os"
	"path/filepath"
	"testing"

	"newsdesk/app/feed"
)

func TestDefaultCategory(t *testing.T) {
	threeWay := &Cfg{CategoryScheme: "three-way"}
	if got := threeWay.DefaultCategory(); got != feed.CategoryBlizzard {
		t.Errorf("three-way scheme: expected %s, got: %s", feed.CategoryBlizzard, got)
	}

	twoWay := &Cfg{CategoryScheme: "two-way"}
	if got := twoWay.DefaultCategory(); got != feed.CategoryRetail {
		t.Errorf("two-way scheme: expected %s, got: %s", feed.CategoryRetail, got)
	}
}

func TestSourcesBuiltInOrdering(t *testing.T) {
	c := &Cfg{
		ClassicFeedURL: "https://example.com/classic.xml",
		RetailFeedURL:  "https://example.com/retail.xml",
	}

	sources, err := c.Sources()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(sources) != 2 {
		t.Fatalf("Expected 2 sources, got: %d", len(sources))
	}
	if sources[0].Category != "classic" || sources[0].URL != "https://example.com/classic.xml" {
		t.Errorf("Expected classic source first, got: %+v", sources[0])
	}
	if sources[1].Category != "retail" || sources[1].URL != "https://example.com/retail.xml" {
		t.Errorf("Expected retail source second, got: %+v", sources[1])
	}
}

func TestSourcesIncludesFileEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yml")
	content := `sources:
  - category: hotfixes
    url: https://example.com/hotfixes.xml
  - category: esports
    url: https://example.com/esports.xml
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write sources file: %v", err)
	}

	c := &Cfg{
		ClassicFeedURL: "https://example.com/classic.xml",
		RetailFeedURL:  "https://example.com/retail.xml",
		SourcesFile:    path,
	}

	sources, err := c.Sources()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(sources) != 4 {
		t.Fatalf("Expected 4 sources, got: %d", len(sources))
	}
	if sources[2].Category != "hotfixes" {
		t.Errorf("Expected 'hotfixes' source third, got: %s", sources[2].Category)
	}
	if sources[3].URL != "https://example.com/esports.xml" {
		t.Errorf("Expected esports URL fourth, got: %s", sources[3].URL)
	}
}

func TestSourcesFileMissingCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yml")
	content := `sources:
  - category: ""
    url: https://example.com/feed.xml
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write sources file: %v", err)
	}

	c := &Cfg{SourcesFile: path}
	if _, err := c.Sources(); err == nil {
		t.Error("Expected error for entry without category, got none")
	}
}

func TestSourcesFileNotFound(t *testing.T) {
	c := &Cfg{SourcesFile: "/nonexistent/sources.yml"}
	if _, err := c.Sources(); err == nil {
		t.Error("Expected error for missing sources file, got none")
	}
}

func TestSourcesFileMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yml")
	if err := os.WriteFile(path, []byte("sources: [not: closed"), 0644); err != nil {
		t.Fatalf("Failed to write sources file: %v", err)
	}

	c := &Cfg{SourcesFile: path}
	if _, err := c.Sources(); err == nil {
		t.Error("Expected error for malformed YAML, got none")
	}
}
