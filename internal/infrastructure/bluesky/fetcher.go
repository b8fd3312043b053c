package bluesky

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
	"PulseBriefing/internal/htmltext"
	"PulseBriefing/internal/ports"
)

const (
	defaultBaseURL = "https://bsky.social"
	feedPageSize   = 20
	minPostLength  = 50
	maxTitleLength = 100
)

// Fetcher resolves each configured handle to its DID and pulls that actor's
// recent posts. Any per-account failure skips the account only.
type Fetcher struct {
	accounts []config.SocialAccount
	baseURL  string
	client   *http.Client
	logger   *slog.Logger
	now      func() time.Time
}

var _ ports.Fetcher = (*Fetcher)(nil)

// NewFetcher wires an HTTP client; a nil client defaults with a 10s timeout.
func NewFetcher(accounts []config.SocialAccount, client *http.Client, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Fetcher{
		accounts: accounts,
		baseURL:  defaultBaseURL,
		client:   client,
		logger:   logger,
		now:      time.Now,
	}
}

// WithBaseURL redirects requests, for tests.
func (f *Fetcher) WithBaseURL(baseURL string) *Fetcher {
	f.baseURL = strings.TrimSuffix(baseURL, "/")
	return f
}

// Name identifies the fetcher in logs and fan-out.
func (f *Fetcher) Name() string {
	return "bluesky"
}

// Fetch walks the configured accounts.
func (f *Fetcher) Fetch(ctx context.Context) ([]domain.RawNewsItem, error) {
	var items []domain.RawNewsItem
	for _, account := range f.accounts {
		posts, err := f.fetchAccount(ctx, account)
		if err != nil {
			f.logger.Warn("account fetch failed", "handle", account.Handle, "error", err)
			continue
		}
		f.logger.Debug("account fetched", "handle", account.Handle, "posts", len(posts))
		items = append(items, posts...)
	}
	return items, nil
}

type externalEmbed struct {
	URI         string `json:"uri"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type embed struct {
	External *externalEmbed `json:"external"`
}

type record struct {
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
	Embed     *embed `json:"embed"`
}

type feedPost struct {
	URI    string `json:"uri"`
	CID    string `json:"cid"`
	Author struct {
		Handle      string `json:"handle"`
		DisplayName string `json:"displayName"`
	} `json:"author"`
	Record record `json:"record"`
	Embed  *embed `json:"embed"`
}

type feedResponse struct {
	Feed []struct {
		Post feedPost `json:"post"`
	} `json:"feed"`
}

func (f *Fetcher) fetchAccount(ctx context.Context, account config.SocialAccount) ([]domain.RawNewsItem, error) {
	did, err := f.resolveDID(ctx, account.Handle)
	if err != nil {
		return nil, fmt.Errorf("resolve handle: %w", err)
	}

	endpoint := fmt.Sprintf("%s/xrpc/app.bsky.feed.getAuthorFeed?actor=%s&limit=%d",
		f.baseURL, url.QueryEscape(did), feedPageSize)

	var body feedResponse
	if err := f.getJSON(ctx, endpoint, &body); err != nil {
		return nil, fmt.Errorf("author feed: %w", err)
	}

	now := f.now()
	var items []domain.RawNewsItem
	for _, entry := range body.Feed {
		post := entry.Post
		text := post.Record.Text
		if text == "" || len(text) < minPostLength {
			continue
		}

		createdAt, err := time.Parse(time.RFC3339, post.Record.CreatedAt)
		if err != nil || !fetcher.Recent(createdAt, now) {
			continue
		}

		external := externalOf(post)

		content := text
		if external != nil && external.Title != "" {
			content += "\n\nLinked: " + external.Title
		}
		if external != nil && external.Description != "" {
			content += "\n" + external.Description
		}

		postURL := profilePostURL(account.Handle, post.URI)
		if external != nil && external.URI != "" {
			postURL = external.URI
		}

		author := account.Handle
		if post.Author.DisplayName != "" {
			author = post.Author.DisplayName
		}

		items = append(items, domain.RawNewsItem{
			ID:          fmt.Sprintf("bluesky-%s-%s", account.Handle, post.CID),
			Title:       buildTitle(text, external),
			Content:     htmltext.Truncate(content, 2000),
			URL:         postURL,
			Source:      fmt.Sprintf("@%s (Bluesky)", account.Handle),
			SourceType:  domain.SourceBluesky,
			Category:    account.Category,
			PublishedAt: createdAt,
			Author:      author,
		})
	}
	return items, nil
}

func (f *Fetcher) resolveDID(ctx context.Context, handle string) (string, error) {
	endpoint := fmt.Sprintf("%s/xrpc/com.atproto.identity.resolveHandle?handle=%s",
		f.baseURL, url.QueryEscape(handle))

	var body struct {
		DID string `json:"did"`
	}
	if err := f.getJSON(ctx, endpoint, &body); err != nil {
		return "", err
	}
	if body.DID == "" {
		return "", fmt.Errorf("empty did for handle %s", handle)
	}
	return body.DID, nil
}

func (f *Fetcher) getJSON(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bluesky returned %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// externalOf prefers the hydrated embed over the raw record embed.
func externalOf(post feedPost) *externalEmbed {
	if post.Embed != nil && post.Embed.External != nil {
		return post.Embed.External
	}
	if post.Record.Embed != nil && post.Record.Embed.External != nil {
		return post.Record.Embed.External
	}
	return nil
}

// buildTitle derives a headline: the linked page's title when present, the
// first sentence when it reads like one, otherwise a truncated prefix.
func buildTitle(text string, external *externalEmbed) string {
	if external != nil && len(external.Title) > 10 {
		return htmltext.Truncate(external.Title, maxTitleLength)
	}

	firstSentence := text
	if idx := strings.IndexAny(text, ".!?"); idx >= 0 {
		firstSentence = text[:idx]
	}
	firstSentence = strings.TrimSpace(firstSentence)
	if len(firstSentence) > 20 && len(firstSentence) < maxTitleLength {
		return firstSentence
	}

	if len(text) > maxTitleLength {
		return strings.TrimSpace(htmltext.Truncate(text, maxTitleLength)) + "..."
	}
	return strings.TrimSpace(text)
}

func profilePostURL(handle, uri string) string {
	postID := uri
	if idx := strings.LastIndex(uri, "/"); idx >= 0 {
		postID = uri[idx+1:]
	}
	return fmt.Sprintf("https://bsky.app/profile/%s/post/%s", handle, postID)
}
