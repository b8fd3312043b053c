package rss

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"PulseBriefing/internal/config"
	"PulseBriefing/internal/domain"
	"PulseBriefing/internal/fetcher"
	"PulseBriefing/internal/htmltext"
	"PulseBriefing/internal/ports"
)

const (
	maxEntriesPerFeed = 10
	maxContentLength  = 2000
	userAgent         = "PulseBriefing/1.0"
)

// Fetcher polls the configured RSS/Atom feeds. One unreachable or
// unparseable feed yields nothing for that feed only.
type Fetcher struct {
	feeds  []config.RSSFeed
	client *http.Client
	ids    ports.IDGenerator
	logger *slog.Logger
	now    func() time.Time
}

var _ ports.Fetcher = (*Fetcher)(nil)

// NewFetcher wires an HTTP client; a nil client defaults with a 10s timeout.
func NewFetcher(feeds []config.RSSFeed, client *http.Client, ids ports.IDGenerator, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Fetcher{
		feeds:  feeds,
		client: client,
		ids:    ids,
		logger: logger,
		now:    time.Now,
	}
}

// Name identifies the fetcher in logs and fan-out.
func (f *Fetcher) Name() string {
	return "rss"
}

// Fetch walks every configured feed and returns the recent entries.
func (f *Fetcher) Fetch(ctx context.Context) ([]domain.RawNewsItem, error) {
	var items []domain.RawNewsItem
	for _, feed := range f.feeds {
		feedItems, err := f.fetchFeed(ctx, feed)
		if err != nil {
			f.logger.Warn("feed fetch failed", "feed", feed.Name, "url", feed.URL, "error", err)
			continue
		}
		f.logger.Debug("feed fetched", "feed", feed.Name, "items", len(feedItems))
		items = append(items, feedItems...)
	}
	return items, nil
}

func (f *Fetcher) fetchFeed(ctx context.Context, feed config.RSSFeed) ([]domain.RawNewsItem, error) {
	parser := gofeed.NewParser()
	parser.Client = f.client
	parser.UserAgent = userAgent

	parsed, err := parser.ParseURLWithContext(feed.URL, ctx)
	if err != nil {
		return nil, err
	}

	now := f.now()
	entries := parsed.Items
	if len(entries) > maxEntriesPerFeed {
		entries = entries[:maxEntriesPerFeed]
	}

	items := make([]domain.RawNewsItem, 0, len(entries))
	for _, entry := range entries {
		if entry == nil || entry.Title == "" || entry.Link == "" {
			continue
		}

		publishedAt := entryTime(entry)
		if !fetcher.Recent(publishedAt, now) {
			continue
		}

		content := entry.Content
		if content == "" {
			content = entry.Description
		}

		items = append(items, domain.RawNewsItem{
			ID:          f.ids.NewID("rss-" + fetcher.Slug(feed.Name)),
			Title:       entry.Title,
			Content:     htmltext.Truncate(htmltext.Strip(content), maxContentLength),
			URL:         entry.Link,
			Source:      feed.Name,
			SourceType:  domain.SourceRSS,
			Category:    feed.Category,
			PublishedAt: publishedAt,
			Author:      entryAuthor(entry),
		})
	}
	return items, nil
}

func entryTime(entry *gofeed.Item) time.Time {
	if entry.PublishedParsed != nil {
		return *entry.PublishedParsed
	}
	if entry.UpdatedParsed != nil {
		return *entry.UpdatedParsed
	}
	return time.Time{}
}

func entryAuthor(entry *gofeed.Item) string {
	if entry.Author != nil && entry.Author.Name != "" {
		return entry.Author.Name
	}
	if len(entry.Authors) > 0 && entry.Authors[0] != nil {
		return entry.Authors[0].Name
	}
	return ""
}
