package hackernews

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"PulseBriefing/internal/config"
	"PulseBriefing/internal/domain"
	"PulseBriefing/internal/fetcher"
	"PulseBriefing/internal/ports"
)

const defaultBaseURL = "https://hn.algolia.com/api/v1/search"

// Fetcher queries the Algolia HN search index once per configured keyword,
// restricted to stories from the recency window above the points threshold.
// Hits are deduplicated by story ID across queries within one fetch.
type Fetcher struct {
	cfg     config.HackerNewsConfig
	baseURL string
	client  *http.Client
	logger  *slog.Logger
	now     func() time.Time
}

var _ ports.Fetcher = (*Fetcher)(nil)

// NewFetcher wires an HTTP client; a nil client defaults with a 10s timeout.
func NewFetcher(cfg config.HackerNewsConfig, client *http.Client, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Fetcher{
		cfg:     cfg,
		baseURL: defaultBaseURL,
		client:  client,
		logger:  logger,
		now:     time.Now,
	}
}

// WithBaseURL redirects requests, for tests.
func (f *Fetcher) WithBaseURL(baseURL string) *Fetcher {
	f.baseURL = strings.TrimSuffix(baseURL, "/")
	return f
}

// Name identifies the fetcher in logs and fan-out.
func (f *Fetcher) Name() string {
	return "hackernews"
}

type searchResponse struct {
	Hits []hit `json:"hits"`
}

type hit struct {
	ObjectID    string `json:"objectID"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Author      string `json:"author"`
	Points      int    `json:"points"`
	StoryText   string `json:"story_text"`
	CreatedAt   string `json:"created_at"`
	NumComments int    `json:"num_comments"`
}

// Fetch runs every configured query and caps the combined result.
func (f *Fetcher) Fetch(ctx context.Context) ([]domain.RawNewsItem, error) {
	var items []domain.RawNewsItem
	seen := map[string]struct{}{}
	cutoff := f.now().Add(-fetcher.MaxItemAge).Unix()

	for _, query := range f.cfg.Queries {
		hits, err := f.search(ctx, query, cutoff)
		if err != nil {
			f.logger.Warn("query failed", "query", query, "error", err)
			continue
		}
		f.logger.Debug("query done", "query", query, "hits", len(hits))

		for _, h := range hits {
			if h.URL == "" {
				continue
			}
			if _, ok := seen[h.ObjectID]; ok {
				continue
			}
			seen[h.ObjectID] = struct{}{}

			content := h.StoryText
			if content == "" {
				content = fmt.Sprintf("%s - Discussion on HackerNews with %d comments and %d points.", h.Title, h.NumComments, h.Points)
			}

			publishedAt, err := time.Parse(time.RFC3339, h.CreatedAt)
			if err != nil {
				publishedAt = f.now()
			}

			items = append(items, domain.RawNewsItem{
				ID:          "hn-" + h.ObjectID,
				Title:       h.Title,
				Content:     content,
				URL:         h.URL,
				Source:      "HackerNews",
				SourceType:  domain.SourceHackerNews,
				Category:    f.cfg.Category,
				PublishedAt: publishedAt,
				Author:      h.Author,
			})
		}
	}

	if f.cfg.Limit > 0 && len(items) > f.cfg.Limit {
		items = items[:f.cfg.Limit]
	}
	return items, nil
}

func (f *Fetcher) search(ctx context.Context, query string, cutoff int64) ([]hit, error) {
	params := url.Values{}
	params.Set("tags", "story")
	params.Set("query", query)
	params.Set("numericFilters", fmt.Sprintf("created_at_i>%d,points>%d", cutoff, f.cfg.MinPoints))
	params.Set("hitsPerPage", "20")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("algolia returned %s", resp.Status)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return body.Hits, nil
}
