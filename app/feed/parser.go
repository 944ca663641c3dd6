package feed

import (
	"bytes"
	"log/slog"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// imageStrategy extracts an image URL from a raw feed item, returning ""
// when the item carries no image in the shape this strategy understands.
type imageStrategy func(*gofeed.Item) string

// Parser converts raw feed markup into normalized items. It is a pure
// transform: no network access, no persistence.
type Parser struct {
	gofeedParser    *gofeed.Parser
	imageStrategies []imageStrategy
	now             func() time.Time
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
		// Some sources populate several image-bearing fields at once; the
		// first matching strategy decides which image readers see.
		imageStrategies: []imageStrategy{
			mediaContentImage,
			enclosureImage,
			directImage,
			mediaThumbnailImage,
		},
		now: time.Now,
	}
}

// Run parses raw feed markup into an ordered slice of items. Items without
// a link are dropped: link is the natural key downstream and an empty one
// would corrupt the merge.
func (p *Parser) Run(data []byte) ([]Item, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &ParseError{Msg: "empty content"}
	}

	parsed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	items := make([]Item, 0, len(parsed.Items))
	for _, raw := range parsed.Items {
		if raw == nil {
			continue
		}

		item := p.normalizeItem(raw)
		if item.Link == "" {
			slog.Warn("Dropping feed item without link", "title", item.Title)
			continue
		}

		items = append(items, item)
	}

	return items, nil
}

func (p *Parser) normalizeItem(raw *gofeed.Item) Item {
	item := Item{
		Title:       raw.Title,
		Link:        strings.TrimSpace(raw.Link),
		Description: raw.Description,
		Image:       p.extractImage(raw),
	}

	if raw.PublishedParsed != nil {
		item.PublishedAt = *raw.PublishedParsed
	} else {
		// Sources occasionally omit pubDate entirely; fall back to the
		// parse time so the item still takes part in the merge sort.
		item.PublishedAt = p.now().UTC()
	}

	return item
}

func (p *Parser) extractImage(raw *gofeed.Item) string {
	for _, strategy := range p.imageStrategies {
		if url := strategy(raw); url != "" {
			return url
		}
	}
	return ""
}

func mediaContentImage(raw *gofeed.Item) string {
	return mediaExtensionURL(raw, "content")
}

func enclosureImage(raw *gofeed.Item) string {
	for _, enclosure := range raw.Enclosures {
		if enclosure == nil {
			continue
		}
		if strings.HasPrefix(enclosure.Type, "image/") {
			return enclosure.URL
		}
	}
	return ""
}

func directImage(raw *gofeed.Item) string {
	if raw.Image != nil {
		return raw.Image.URL
	}
	return ""
}

func mediaThumbnailImage(raw *gofeed.Item) string {
	return mediaExtensionURL(raw, "thumbnail")
}

func mediaExtensionURL(raw *gofeed.Item, element string) string {
	media, ok := raw.Extensions["media"]
	if !ok {
		return ""
	}
	for _, ext := range media[element] {
		if url := ext.Attrs["url"]; url != "" {
			return url
		}
	}
	return ""
}
