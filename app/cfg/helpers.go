package cfg

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"newsdesk/app/feed"
)

// DefaultCategory returns the fallback category for sources that match
// neither "classic" nor "retail" under the configured scheme.
func (c *Cfg) DefaultCategory() feed.Category {
	if c.CategoryScheme == "two-way" {
		return feed.CategoryRetail
	}
	return feed.CategoryBlizzard
}

// Sources builds the ordered feed source list: the built-in classic and
// retail sources first, then any extra sources from the YAML sources file.
// URLs are passed through unvalidated; a source with an empty URL is
// rejected by the sync run that encounters it.
func (c *Cfg) Sources() ([]feed.Source, error) {
	sources := []feed.Source{
		{Category: "classic", URL: c.ClassicFeedURL},
		{Category: "retail", URL: c.RetailFeedURL},
	}

	if c.SourcesFile != "" {
		extra, err := loadSourcesFile(c.SourcesFile)
		if err != nil {
			return nil, err
		}
		sources = append(sources, extra...)
	}

	return sources, nil
}

type sourcesFile struct {
	Sources []struct {
		Category string `yaml:"category"`
		URL      string `yaml:"url"`
	} `yaml:"sources"`
}

func loadSourcesFile(path string) ([]feed.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var parsed sourcesFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse sources file: %w", err)
	}

	sources := make([]feed.Source, 0, len(parsed.Sources))
	for i, s := range parsed.Sources {
		if strings.TrimSpace(s.Category) == "" {
			return nil, fmt.Errorf("sources file entry %d: category is required", i)
		}
		sources = append(sources, feed.Source{Category: s.Category, URL: s.URL})
	}

	return sources, nil
}
