package config

import "PulseBriefing/internal/domain"

// defaultConfig mirrors the checked-in source list; edit here (or via the
// YAML file) to add or remove sources.
func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Output:  OutputConfig{Path: "data/live/briefings.json"},
		Ledger:  LedgerConfig{Path: ""},
		DeepSeek: DeepSeekConfig{
			Endpoint:       "https://api.deepseek.com/chat/completions",
			Model:          "deepseek-chat",
			APIKey:         "",
			TimeoutSeconds: 30,
		},
		Pipeline: PipelineConfig{
			MaxItemsPerBriefing: 10,
			MaxDaysToKeep:       7,
			ProcessLimit:        15,
			MinRelevanceScore:   5,
			BatchSize:           15,
			BatchDelayMS:        0,
			RunTimeoutSeconds:   300,
		},
		Sources: SourcesConfig{
			RSS: RSSConfig{
				Enabled: true,
				Feeds: []RSSFeed{
					{URL: "https://techcrunch.com/category/artificial-intelligence/feed/", Name: "TechCrunch AI", Category: domain.CategoryIndustry},
					{URL: "https://www.wired.com/feed/tag/ai/latest/rss", Name: "Wired AI", Category: domain.CategoryIndustry},
					{URL: "https://openai.com/blog/rss.xml", Name: "OpenAI Blog", Category: domain.CategoryReleases},
					{URL: "https://blog.google/technology/ai/rss/", Name: "Google AI Blog", Category: domain.CategoryReleases},
					{URL: "http://export.arxiv.org/rss/cs.AI", Name: "ArXiv AI", Category: domain.CategoryResearch},
					{URL: "https://huggingface.co/blog/feed.xml", Name: "Hugging Face Blog", Category: domain.CategoryTools},
				},
			},
			Reddit: RedditConfig{
				// Disabled: CI egress IPs get 403 blocked by Reddit.
				Enabled: false,
				Subreddits: []RedditSubreddit{
					{Name: "MachineLearning", Category: domain.CategoryResearch, Limit: 10},
					{Name: "LocalLLaMA", Category: domain.CategoryTools, Limit: 10},
					{Name: "artificial", Category: domain.CategoryIndustry, Limit: 5},
					{Name: "ChatGPT", Category: domain.CategoryWorkflows, Limit: 5},
					{Name: "ClaudeAI", Category: domain.CategoryWorkflows, Limit: 5},
				},
			},
			HackerNews: HackerNewsConfig{
				Enabled:   true,
				Queries:   []string{"LLM", "OpenAI", "AI"},
				MinPoints: 100,
				Limit:     10,
				Category:  domain.CategoryIndustry,
			},
			Bluesky: BlueskyConfig{
				// Disabled: public feed endpoint started returning 401.
				Enabled: false,
				Accounts: []SocialAccount{
					{Handle: "openai.bsky.social", Category: domain.CategoryReleases},
					{Handle: "anthropic.bsky.social", Category: domain.CategoryReleases},
					{Handle: "huggingface.co", Category: domain.CategoryTools},
					{Handle: "karpathy.bsky.social", Category: domain.CategoryResearch},
					{Handle: "simonw.bsky.social", Category: domain.CategoryTools},
					{Handle: "swyx.io", Category: domain.CategoryIndustry},
					{Handle: "cursor.com", Category: domain.CategoryTools},
					{Handle: "replicate.com", Category: domain.CategoryTools},
				},
			},
			Twitter: TwitterConfig{
				// The fetcher itself is a placeholder; accounts are kept so the
				// list survives until API access is sorted out.
				Enabled: false,
				Accounts: []SocialAccount{
					{Handle: "OpenAI", Category: domain.CategoryReleases},
					{Handle: "AnthropicAI", Category: domain.CategoryReleases},
					{Handle: "GoogleAI", Category: domain.CategoryReleases},
					{Handle: "MistralAI", Category: domain.CategoryReleases},
					{Handle: "cursor_ai", Category: domain.CategoryTools},
					{Handle: "karpathy", Category: domain.CategoryResearch},
					{Handle: "ylecun", Category: domain.CategoryResearch},
					{Handle: "sama", Category: domain.CategoryIndustry},
				},
			},
		},
	}
}
