package config

import (
	"os"
	"path/filepath"
	"testing"

	"PulseBriefing/internal/domain"
)

func TestDefaults(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Pipeline.MaxItemsPerBriefing != 10 || cfg.Pipeline.MaxDaysToKeep != 7 {
		t.Fatalf("unexpected pipeline defaults: %+v", cfg.Pipeline)
	}
	if cfg.Pipeline.ProcessLimit != 15 || cfg.Pipeline.MinRelevanceScore != 5 {
		t.Fatalf("unexpected curation defaults: %+v", cfg.Pipeline)
	}
	if cfg.DeepSeek.Endpoint != "https://api.deepseek.com/chat/completions" || cfg.DeepSeek.Model != "deepseek-chat" {
		t.Fatalf("unexpected deepseek defaults: %+v", cfg.DeepSeek)
	}
	if !cfg.Sources.RSS.Enabled || len(cfg.Sources.RSS.Feeds) == 0 {
		t.Fatalf("rss should be enabled by default")
	}
	if cfg.Sources.Reddit.Enabled || cfg.Sources.Bluesky.Enabled || cfg.Sources.Twitter.Enabled {
		t.Fatalf("blocked sources should be disabled by default")
	}
	if !cfg.Sources.HackerNews.Enabled || cfg.Sources.HackerNews.MinPoints != 100 {
		t.Fatalf("unexpected hackernews defaults: %+v", cfg.Sources.HackerNews)
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	t.Setenv(deepSeekAPIKeyEnv, "env-key")
	t.Setenv(deepSeekModelEnv, "deepseek-reasoner")
	t.Setenv(outputPathEnv, "/tmp/out.json")
	t.Setenv(ledgerPathEnv, "/tmp/ledger.db")
	t.Setenv(configPathEnv, "")

	cfg := Load()

	if cfg.DeepSeek.APIKey != "env-key" || cfg.DeepSeek.Model != "deepseek-reasoner" {
		t.Fatalf("env overrides not applied: %+v", cfg.DeepSeek)
	}
	if cfg.Output.Path != "/tmp/out.json" || cfg.Ledger.Path != "/tmp/ledger.db" {
		t.Fatalf("path overrides not applied: %s %s", cfg.Output.Path, cfg.Ledger.Path)
	}
}

func TestLoadMergesYAMLFile(t *testing.T) {
	raw := `
logging:
  level: debug
pipeline:
  maxItemsPerBriefing: 5
  minRelevanceScore: 7
sources:
  rss:
    enabled: true
    feeds:
      - url: https://example.com/feed.xml
        name: Custom Feed
        category: tools
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(configPathEnv, path)

	cfg := Load()

	if cfg.Logging.Level != "debug" {
		t.Fatalf("logging level not merged: %s", cfg.Logging.Level)
	}
	if cfg.Pipeline.MaxItemsPerBriefing != 5 || cfg.Pipeline.MinRelevanceScore != 7 {
		t.Fatalf("pipeline overrides not merged: %+v", cfg.Pipeline)
	}
	// Unset fields keep their defaults.
	if cfg.Pipeline.MaxDaysToKeep != 7 {
		t.Fatalf("default lost in merge: %d", cfg.Pipeline.MaxDaysToKeep)
	}

	// A source group present in the file replaces the default group entirely.
	if len(cfg.Sources.RSS.Feeds) != 1 || cfg.Sources.RSS.Feeds[0].Name != "Custom Feed" {
		t.Fatalf("rss group not replaced: %+v", cfg.Sources.RSS.Feeds)
	}
	if cfg.Sources.RSS.Feeds[0].Category != domain.CategoryTools {
		t.Fatalf("category not parsed: %s", cfg.Sources.RSS.Feeds[0].Category)
	}
	// Groups absent from the file keep their defaults.
	if len(cfg.Sources.HackerNews.Queries) != 3 {
		t.Fatalf("hackernews defaults lost: %+v", cfg.Sources.HackerNews)
	}
}

func TestLoadIgnoresMissingFile(t *testing.T) {
	t.Setenv(configPathEnv, filepath.Join(t.TempDir(), "absent.yaml"))

	cfg := Load()
	if cfg.Pipeline.MaxItemsPerBriefing != 10 {
		t.Fatalf("missing file should fall back to defaults: %+v", cfg.Pipeline)
	}
}

func TestLoadIgnoresBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{not yaml: ["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(configPathEnv, path)

	cfg := Load()
	if cfg.Pipeline.MaxItemsPerBriefing != 10 {
		t.Fatalf("broken file should fall back to defaults: %+v", cfg.Pipeline)
	}
}
