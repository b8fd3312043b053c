package ports

import (
	"context"

	"PulseBriefing/internal/domain"
)

// Fetcher pulls recent candidate items from one external source type.
// Implementations recover from their own per-endpoint failures; a returned
// error means the whole source yielded nothing this run.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) ([]domain.RawNewsItem, error)
}

// CompletionRequest carries one chat-completion exchange to the model.
type CompletionRequest struct {
	System string
	User   string
}

// Completer issues a single text-completion call and returns the raw
// assistant content. The curator depends on this capability so tests can
// substitute a deterministic fake.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// ArchiveStore owns the persisted rolling archive of daily briefings.
type ArchiveStore interface {
	// Load returns the stored archive; a missing or unreadable archive is
	// reported as empty, not as an error.
	Load(ctx context.Context) ([]domain.DailyBriefings, error)
	// Save atomically replaces the archive. A failure here is fatal to the run.
	Save(ctx context.Context, days []domain.DailyBriefings) error
}

// RunRecord summarizes one pipeline run for the audit ledger.
type RunRecord struct {
	StartedAt  string
	FinishedAt string
	Fetched    int
	Merged     int
	Curated    int
	Published  int
	Status     string
}

// PublishedItem is one briefing item written during a run.
type PublishedItem struct {
	ItemID string
	Title  string
	Score  int
}

// Ledger records run outcomes for audit. Implementations must tolerate
// failure; callers log and continue.
type Ledger interface {
	RecordRun(ctx context.Context, run RunRecord, items []PublishedItem) error
}

// Notifier announces a published briefing to an external channel.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// IDGenerator mints identifiers for items that have no natural ID (RSS
// entries, manual tweets). Injected so tests can supply deterministic values.
type IDGenerator interface {
	NewID(prefix string) string
}
