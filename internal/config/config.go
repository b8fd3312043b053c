package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"PulseBriefing/internal/domain"
)

const (
	configPathEnv     = "PULSE_CONFIG"
	deepSeekAPIKeyEnv = "DEEPSEEK_API_KEY"
	deepSeekModelEnv  = "DEEPSEEK_MODEL"
	outputPathEnv     = "PULSE_OUTPUT_PATH"
	ledgerPathEnv     = "PULSE_LEDGER_PATH"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
)

// Config holds all settings for one generator run.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Output        OutputConfig       `yaml:"output"`
	Ledger        LedgerConfig       `yaml:"ledger"`
	DeepSeek      DeepSeekConfig     `yaml:"deepseek"`
	Pipeline      PipelineConfig     `yaml:"pipeline"`
	Notifications NotificationConfig `yaml:"notifications"`
	Sources       SourcesConfig      `yaml:"sources"`
}

// LoggingConfig controls slog verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// OutputConfig locates the published archive artifact.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// LedgerConfig locates the optional SQLite run ledger; empty disables it.
type LedgerConfig struct {
	Path string `yaml:"path"`
}

// DeepSeekConfig defines how to contact the completion API.
type DeepSeekConfig struct {
	Endpoint       string `yaml:"endpoint"`
	Model          string `yaml:"model"`
	APIKey         string `yaml:"apiKey"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// PipelineConfig carries the tuning knobs of the curation pipeline.
type PipelineConfig struct {
	MaxItemsPerBriefing int `yaml:"maxItemsPerBriefing"`
	MaxDaysToKeep       int `yaml:"maxDaysToKeep"`
	ProcessLimit        int `yaml:"processLimit"`
	MinRelevanceScore   int `yaml:"minRelevanceScore"`
	BatchSize           int `yaml:"batchSize"`
	BatchDelayMS        int `yaml:"batchDelayMs"`
	RunTimeoutSeconds   int `yaml:"runTimeoutSeconds"`
}

// NotificationConfig encapsulates outbound channels.
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires the optional run-summary notification.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// SourcesConfig enumerates every fetcher kind and its parameters.
type SourcesConfig struct {
	RSS        RSSConfig        `yaml:"rss"`
	Reddit     RedditConfig     `yaml:"reddit"`
	HackerNews HackerNewsConfig `yaml:"hackernews"`
	Bluesky    BlueskyConfig    `yaml:"bluesky"`
	Twitter    TwitterConfig    `yaml:"twitter"`
}

// RSSFeed describes one feed endpoint.
type RSSFeed struct {
	URL      string          `yaml:"url"`
	Name     string          `yaml:"name"`
	Category domain.Category `yaml:"category"`
}

// RSSConfig lists the RSS feeds to poll.
type RSSConfig struct {
	Enabled bool      `yaml:"enabled"`
	Feeds   []RSSFeed `yaml:"feeds"`
}

// RedditSubreddit describes one subreddit listing.
type RedditSubreddit struct {
	Name     string          `yaml:"name"`
	Category domain.Category `yaml:"category"`
	Limit    int             `yaml:"limit"`
}

// RedditConfig lists the subreddits to poll.
type RedditConfig struct {
	Enabled    bool              `yaml:"enabled"`
	Subreddits []RedditSubreddit `yaml:"subreddits"`
}

// HackerNewsConfig drives the Algolia story search.
type HackerNewsConfig struct {
	Enabled   bool            `yaml:"enabled"`
	Queries   []string        `yaml:"queries"`
	MinPoints int             `yaml:"minPoints"`
	Limit     int             `yaml:"limit"`
	Category  domain.Category `yaml:"category"`
}

// SocialAccount is a handle plus its topic bucket (Bluesky, Twitter).
type SocialAccount struct {
	Handle   string          `yaml:"handle"`
	Category domain.Category `yaml:"category"`
}

// BlueskyConfig lists the Bluesky accounts to poll.
type BlueskyConfig struct {
	Enabled  bool            `yaml:"enabled"`
	Accounts []SocialAccount `yaml:"accounts"`
}

// TwitterConfig is retained as an extension point; fetching stays disabled.
type TwitterConfig struct {
	Enabled  bool            `yaml:"enabled"`
	Accounts []SocialAccount `yaml:"accounts"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(deepSeekAPIKeyEnv); v != "" {
		c.DeepSeek.APIKey = v
	}
	if v := os.Getenv(deepSeekModelEnv); v != "" {
		c.DeepSeek.Model = v
	}
	if v := os.Getenv(outputPathEnv); v != "" {
		c.Output.Path = v
	}
	if v := os.Getenv(ledgerPathEnv); v != "" {
		c.Ledger.Path = v
	}
	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}
	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Output.Path != "" {
		base.Output.Path = override.Output.Path
	}
	if override.Ledger.Path != "" {
		base.Ledger.Path = override.Ledger.Path
	}

	if override.DeepSeek.Endpoint != "" {
		base.DeepSeek.Endpoint = override.DeepSeek.Endpoint
	}
	if override.DeepSeek.Model != "" {
		base.DeepSeek.Model = override.DeepSeek.Model
	}
	if override.DeepSeek.APIKey != "" {
		base.DeepSeek.APIKey = override.DeepSeek.APIKey
	}
	if override.DeepSeek.TimeoutSeconds > 0 {
		base.DeepSeek.TimeoutSeconds = override.DeepSeek.TimeoutSeconds
	}

	if override.Pipeline.MaxItemsPerBriefing > 0 {
		base.Pipeline.MaxItemsPerBriefing = override.Pipeline.MaxItemsPerBriefing
	}
	if override.Pipeline.MaxDaysToKeep > 0 {
		base.Pipeline.MaxDaysToKeep = override.Pipeline.MaxDaysToKeep
	}
	if override.Pipeline.ProcessLimit > 0 {
		base.Pipeline.ProcessLimit = override.Pipeline.ProcessLimit
	}
	if override.Pipeline.MinRelevanceScore > 0 {
		base.Pipeline.MinRelevanceScore = override.Pipeline.MinRelevanceScore
	}
	if override.Pipeline.BatchSize > 0 {
		base.Pipeline.BatchSize = override.Pipeline.BatchSize
	}
	if override.Pipeline.BatchDelayMS > 0 {
		base.Pipeline.BatchDelayMS = override.Pipeline.BatchDelayMS
	}
	if override.Pipeline.RunTimeoutSeconds > 0 {
		base.Pipeline.RunTimeoutSeconds = override.Pipeline.RunTimeoutSeconds
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	base.Sources = mergeSources(base.Sources, override.Sources)

	return base
}

// mergeSources swaps whole source groups: a group present in the file
// replaces the default group, enabled flag included.
func mergeSources(base, override SourcesConfig) SourcesConfig {
	if len(override.RSS.Feeds) > 0 {
		base.RSS = override.RSS
	}
	if len(override.Reddit.Subreddits) > 0 {
		base.Reddit = override.Reddit
	}
	if len(override.HackerNews.Queries) > 0 {
		base.HackerNews = override.HackerNews
	}
	if len(override.Bluesky.Accounts) > 0 {
		base.Bluesky = override.Bluesky
	}
	if len(override.Twitter.Accounts) > 0 {
		base.Twitter = override.Twitter
	}
	return base
}
