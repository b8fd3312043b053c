package twitter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"PulseBriefing/internal/config"
	"PulseBriefing/internal/domain"
	"PulseBriefing/internal/htmltext"
	"PulseBriefing/internal/ports"
)

// Fetcher is an intentional no-op. The v2 API requires paid access and the
// public mirrors are too flaky to depend on, so the account list is kept as
// configuration and fetching returns nothing. This is distinct from a failed
// fetch: the source settles successfully with zero items.
//
// TODO: revisit Nitter RSS once a stable instance list exists; the RSS
// fetcher can then consume per-account feeds directly.
type Fetcher struct {
	accounts []config.SocialAccount
	logger   *slog.Logger
}

var _ ports.Fetcher = (*Fetcher)(nil)

// NewFetcher keeps the configured accounts for the day the API is wired up.
func NewFetcher(accounts []config.SocialAccount, logger *slog.Logger) *Fetcher {
	return &Fetcher{accounts: accounts, logger: logger}
}

// Name identifies the fetcher in logs and fan-out.
func (f *Fetcher) Name() string {
	return "twitter"
}

// Fetch settles immediately with no items.
func (f *Fetcher) Fetch(ctx context.Context) ([]domain.RawNewsItem, error) {
	f.logger.Info("twitter fetching disabled", "accounts", len(f.accounts))
	return nil, nil
}

// ManualTweet builds a hand-curated item so important tweets can be injected
// without API access.
func ManualTweet(ids ports.IDGenerator, handle, text, url string, category domain.Category) domain.RawNewsItem {
	title := fmt.Sprintf("@%s: %s", handle, htmltext.Truncate(text, 100))
	if len(text) > 100 {
		title += "..."
	}
	return domain.RawNewsItem{
		ID:          ids.NewID("twitter-manual"),
		Title:       title,
		Content:     text,
		URL:         url,
		Source:      "@" + handle,
		SourceType:  domain.SourceTwitter,
		Category:    category,
		PublishedAt: time.Now().UTC(),
		Author:      handle,
	}
}
