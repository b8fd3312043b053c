package app

import (
	"context"
	"log/slog"
	"time"

	"PulseBriefing/internal/briefing"
	"PulseBriefing/internal/config"
	"PulseBriefing/internal/curator"
	"PulseBriefing/internal/dedup"
	"PulseBriefing/internal/fetcher"
	"PulseBriefing/internal/infrastructure/bluesky"
	"PulseBriefing/internal/infrastructure/hackernews"
	"PulseBriefing/internal/infrastructure/llm"
	"PulseBriefing/internal/infrastructure/reddit"
	"PulseBriefing/internal/infrastructure/rss"
	"PulseBriefing/internal/infrastructure/storage"
	"PulseBriefing/internal/infrastructure/telegram"
	"PulseBriefing/internal/infrastructure/twitter"
	"PulseBriefing/internal/logging"
	"PulseBriefing/internal/ports"
	"PulseBriefing/internal/usecase"
)

// Application wires configuration to the pipeline and owns closable
// resources.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
	ledger   *storage.SQLiteLedger
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	ids := fetcher.UUIDGenerator{}

	var fetchers []ports.Fetcher
	if cfg.Sources.RSS.Enabled {
		fetchers = append(fetchers, rss.NewFetcher(
			cfg.Sources.RSS.Feeds, nil, ids, baseLogger.With("component", "fetcher.rss")))
	}
	if cfg.Sources.Reddit.Enabled {
		fetchers = append(fetchers, reddit.NewFetcher(
			cfg.Sources.Reddit.Subreddits, nil, baseLogger.With("component", "fetcher.reddit")))
	}
	if cfg.Sources.HackerNews.Enabled {
		fetchers = append(fetchers, hackernews.NewFetcher(
			cfg.Sources.HackerNews, nil, baseLogger.With("component", "fetcher.hackernews")))
	}
	if cfg.Sources.Bluesky.Enabled {
		fetchers = append(fetchers, bluesky.NewFetcher(
			cfg.Sources.Bluesky.Accounts, nil, baseLogger.With("component", "fetcher.bluesky")))
	}
	if cfg.Sources.Twitter.Enabled {
		fetchers = append(fetchers, twitter.NewFetcher(
			cfg.Sources.Twitter.Accounts, baseLogger.With("component", "fetcher.twitter")))
	}

	var ledger *storage.SQLiteLedger
	if cfg.Ledger.Path != "" {
		opened, err := storage.OpenSQLiteLedger(cfg.Ledger.Path)
		if err != nil {
			baseLogger.Warn("run ledger unavailable", "path", cfg.Ledger.Path, "error", err)
		} else {
			ledger = opened
		}
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" && cfg.Notifications.Telegram.ChatID != "" {
		notifier = telegram.NewNotifier(
			cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	deps := usecase.PipelineDeps{
		Fetchers: fetcher.NewFanOut(fetchers, baseLogger.With("component", "fanout")),
		Dedup:    dedup.New(dedup.DefaultThreshold, baseLogger.With("component", "dedup")),
		Curator: curator.New(
			llm.NewDeepSeekClient(cfg.DeepSeek),
			curator.Options{
				BatchSize:  cfg.Pipeline.BatchSize,
				BatchDelay: time.Duration(cfg.Pipeline.BatchDelayMS) * time.Millisecond,
			},
			baseLogger.With("component", "curator"),
		),
		Assembler:         briefing.NewAssembler(cfg.Pipeline.MaxItemsPerBriefing, nil),
		Archive:           storage.NewFileArchive(cfg.Output.Path, baseLogger.With("component", "archive")),
		Notifier:          notifier,
		Logger:            baseLogger.With("component", "pipeline"),
		ProcessLimit:      cfg.Pipeline.ProcessLimit,
		MinRelevanceScore: cfg.Pipeline.MinRelevanceScore,
		RetentionDays:     cfg.Pipeline.MaxDaysToKeep,
	}
	if ledger != nil {
		deps.Ledger = ledger
	}

	return &Application{
		cfg:      cfg,
		pipeline: usecase.NewPipeline(deps),
		ledger:   ledger,
	}
}

// Run performs a single pipeline execution.
func (a *Application) Run(ctx context.Context) error {
	return a.pipeline.Run(ctx)
}

// Close releases owned resources.
func (a *Application) Close() {
	if a.ledger != nil {
		_ = a.ledger.Close()
	}
}
