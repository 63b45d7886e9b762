package feeds

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// Headline is one entry pulled from a configured feed.
type Headline struct {
	Title       string
	Summary     string
	URL         string
	Source      string
	PublishedAt time.Time
}

// String renders the headline as a single grounding line for prompts.
func (h Headline) String() string {
	if h.URL == "" {
		return h.Title
	}
	return fmt.Sprintf("%s (%s)", h.Title, h.URL)
}

type Client struct {
	urls       []string
	httpClient *http.Client
}

func NewClient(urls []string) *Client {
	return &Client{
		urls:       urls,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Name() string {
	return "RSS"
}

// Fetch collects the newest headlines across all feeds. A feed that cannot
// be read is logged and skipped; an error is returned only when every feed
// failed.
func (c *Client) Fetch(ctx context.Context, limit int) ([]Headline, error) {
	if len(c.urls) == 0 {
		return nil, nil
	}

	fp := gofeed.NewParser()
	fp.Client = c.httpClient

	var headlines []Headline
	var failed int
	seen := make(map[string]bool)

	for _, u := range c.urls {
		feed, err := fp.ParseURLWithContext(u, ctx)
		if err != nil {
			slog.Warn("feed fetch failed", "url", u, "error", err)
			failed++
			continue
		}

		for _, item := range feed.Items {
			h := toHeadline(feed.Title, item)
			if h.Title == "" {
				continue
			}
			key := strings.TrimSuffix(h.URL, "/")
			if key == "" {
				key = h.Title
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			headlines = append(headlines, h)
		}
	}

	if failed == len(c.urls) {
		return nil, fmt.Errorf("all %d feeds failed", failed)
	}

	sort.SliceStable(headlines, func(i, j int) bool {
		return headlines[i].PublishedAt.After(headlines[j].PublishedAt)
	})

	if limit > 0 && len(headlines) > limit {
		headlines = headlines[:limit]
	}

	return headlines, nil
}

func toHeadline(source string, item *gofeed.Item) Headline {
	var publishedAt time.Time
	switch {
	case item.PublishedParsed != nil:
		publishedAt = item.PublishedParsed.UTC()
	case item.UpdatedParsed != nil:
		publishedAt = item.UpdatedParsed.UTC()
	}

	return Headline{
		Title:       stripHTML(item.Title),
		Summary:     stripHTML(item.Description),
		URL:         strings.TrimSpace(item.Link),
		Source:      source,
		PublishedAt: publishedAt,
	}
}

// stripHTML reduces feed markup to its readable text.
func stripHTML(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.Contains(trimmed, "<") {
		return strings.Join(strings.Fields(trimmed), " ")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(trimmed))
	if err != nil {
		return trimmed
	}
	doc.Find("script, style").Remove()

	return strings.Join(strings.Fields(doc.Text()), " ")
}
