package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"PulseBriefing/internal/config"
	"PulseBriefing/internal/domain"
	"PulseBriefing/internal/ports"
)

const (
	defaultBaseURL = "https://www.reddit.com"
	userAgent      = "PulseBriefing/1.0"
	minScore       = 10
)

// Fetcher reads subreddit "hot" listings through Reddit's unauthenticated
// JSON endpoint. Requests run sequentially, paced at two per second so the
// shared egress IP does not get throttled.
type Fetcher struct {
	subreddits []config.RedditSubreddit
	baseURL    string
	client     *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

var _ ports.Fetcher = (*Fetcher)(nil)

// NewFetcher wires an HTTP client; a nil client defaults with a 10s timeout.
func NewFetcher(subreddits []config.RedditSubreddit, client *http.Client, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Fetcher{
		subreddits: subreddits,
		baseURL:    defaultBaseURL,
		client:     client,
		limiter:    rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
		logger:     logger,
	}
}

// WithBaseURL redirects requests, for tests.
func (f *Fetcher) WithBaseURL(baseURL string) *Fetcher {
	f.baseURL = strings.TrimSuffix(baseURL, "/")
	return f
}

// Name identifies the fetcher in logs and fan-out.
func (f *Fetcher) Name() string {
	return "reddit"
}

// Fetch walks the configured subreddits sequentially.
func (f *Fetcher) Fetch(ctx context.Context) ([]domain.RawNewsItem, error) {
	var items []domain.RawNewsItem
	for _, sub := range f.subreddits {
		if err := f.limiter.Wait(ctx); err != nil {
			return items, err
		}

		posts, err := f.fetchSubreddit(ctx, sub)
		if err != nil {
			f.logger.Warn("subreddit fetch failed", "subreddit", sub.Name, "error", err)
			continue
		}
		f.logger.Debug("subreddit fetched", "subreddit", sub.Name, "posts", len(posts))
		items = append(items, posts...)
	}
	return items, nil
}

type listing struct {
	Data struct {
		Children []struct {
			Data post `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type post struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	URL         string  `json:"url"`
	Permalink   string  `json:"permalink"`
	Subreddit   string  `json:"subreddit"`
	Author      string  `json:"author"`
	CreatedUTC  float64 `json:"created_utc"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
}

func (f *Fetcher) fetchSubreddit(ctx context.Context, sub config.RedditSubreddit) ([]domain.RawNewsItem, error) {
	endpoint := fmt.Sprintf("%s/r/%s/hot.json?limit=%d", f.baseURL, sub.Name, sub.Limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reddit returned %s", resp.Status)
	}

	var body listing
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}

	var items []domain.RawNewsItem
	for _, child := range body.Data.Children {
		p := child.Data
		if p.Score < minScore {
			continue
		}

		content := p.Selftext
		if content == "" {
			content = fmt.Sprintf("Discussion on r/%s with %d comments", p.Subreddit, p.NumComments)
		}

		postURL := p.URL
		if !strings.HasPrefix(postURL, "http") {
			postURL = "https://reddit.com" + p.Permalink
		}

		items = append(items, domain.RawNewsItem{
			ID:          "reddit-" + p.ID,
			Title:       p.Title,
			Content:     content,
			URL:         postURL,
			Source:      "r/" + p.Subreddit,
			SourceType:  domain.SourceReddit,
			Category:    sub.Category,
			PublishedAt: time.Unix(int64(p.CreatedUTC), 0).UTC(),
			Author:      p.Author,
		})
	}
	return items, nil
}
