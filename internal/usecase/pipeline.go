package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"PulseBriefing/internal/briefing"
	"PulseBriefing/internal/curator"
	"PulseBriefing/internal/dedup"
	"PulseBriefing/internal/domain"
	"PulseBriefing/internal/fetcher"
	"PulseBriefing/internal/ports"
)

// ErrNoItems signals that every source settled with zero items. That points
// at systemic misconfiguration, so the run fails instead of publishing an
// empty briefing.
var ErrNoItems = errors.New("no items fetched from any source")

// PipelineDeps wires all collaborators into the generation pipeline.
type PipelineDeps struct {
	Fetchers  *fetcher.FanOut
	Dedup     *dedup.Deduplicator
	Curator   *curator.Curator
	Assembler *briefing.Assembler
	Archive   ports.ArchiveStore
	Ledger    ports.Ledger
	Notifier  ports.Notifier
	Logger    *slog.Logger

	ProcessLimit      int
	MinRelevanceScore int
	RetentionDays     int
	Now               func() time.Time
}

// Pipeline implements one run of the briefing generator: fetch → dedup →
// curate → rank → assemble → merge into archive → persist.
type Pipeline struct {
	deps PipelineDeps
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	if deps.ProcessLimit <= 0 {
		deps.ProcessLimit = 15
	}
	if deps.MinRelevanceScore <= 0 {
		deps.MinRelevanceScore = 5
	}
	if deps.RetentionDays <= 0 {
		deps.RetentionDays = briefing.DefaultRetentionDays
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Pipeline{deps: deps}
}

// Run executes the whole pipeline once. Source and per-item curation
// failures are absorbed upstream; any error returned here is fatal and must
// produce a non-zero exit.
func (p *Pipeline) Run(ctx context.Context) error {
	log := p.deps.Logger
	startedAt := p.deps.Now().UTC()

	pool := p.deps.Fetchers.FetchAll(ctx)
	log.Info("fetch complete", "raw_items", len(pool))
	if len(pool) == 0 {
		return ErrNoItems
	}

	merged := p.deps.Dedup.Merge(pool)
	log.Info("dedup complete", "items", len(merged))

	candidates := recentFirst(merged)
	if len(candidates) > p.deps.ProcessLimit {
		candidates = candidates[:p.deps.ProcessLimit]
	}
	log.Info("curating", "items", len(candidates))

	results := p.deps.Curator.CurateAll(ctx, candidates)
	ranked := curator.FilterAndRank(results, p.deps.MinRelevanceScore)
	log.Info("curation complete",
		"curated", len(results), "passed_filter", len(ranked), "min_score", p.deps.MinRelevanceScore)

	fresh := p.deps.Assembler.Assemble(ranked)

	archive, err := p.deps.Archive.Load(ctx)
	if err != nil {
		return fmt.Errorf("load archive: %w", err)
	}
	days := briefing.MergeArchive(archive, fresh, p.deps.RetentionDays, p.deps.Now())

	if err := p.deps.Archive.Save(ctx, days); err != nil {
		return fmt.Errorf("save archive: %w", err)
	}
	log.Info("briefing published",
		"id", fresh.ID, "items", len(fresh.Items), "archive_days", len(days))

	p.record(ctx, startedAt, len(pool), len(merged), len(results), fresh, ranked)
	p.notify(ctx, fresh)

	return nil
}

func recentFirst(items []domain.RawNewsItem) []domain.RawNewsItem {
	out := make([]domain.RawNewsItem, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	return out
}

// record writes the run to the audit ledger; failures are logged, not fatal.
func (p *Pipeline) record(ctx context.Context, startedAt time.Time, fetched, merged, curated int, fresh domain.Briefing, ranked []curator.Result) {
	if p.deps.Ledger == nil {
		return
	}

	published := make([]ports.PublishedItem, 0, len(fresh.Items))
	for i, item := range fresh.Items {
		score := 0
		if i < len(ranked) {
			score = ranked[i].Score
		}
		published = append(published, ports.PublishedItem{
			ItemID: item.ID,
			Title:  item.Title,
			Score:  score,
		})
	}

	run := ports.RunRecord{
		StartedAt:  startedAt.Format(time.RFC3339),
		FinishedAt: p.deps.Now().UTC().Format(time.RFC3339),
		Fetched:    fetched,
		Merged:     merged,
		Curated:    curated,
		Published:  len(fresh.Items),
		Status:     "ok",
	}
	if err := p.deps.Ledger.RecordRun(ctx, run, published); err != nil {
		p.deps.Logger.Warn("ledger write failed", "error", err)
	}
}

// notify announces the published briefing; failures are logged, not fatal.
func (p *Pipeline) notify(ctx context.Context, fresh domain.Briefing) {
	if p.deps.Notifier == nil {
		return
	}

	digest := fmt.Sprintf("%s briefing published: %d items, %d min read",
		fresh.Period, len(fresh.Items), fresh.TotalReadTimeMinutes)
	if err := p.deps.Notifier.PublishDigest(ctx, digest); err != nil {
		p.deps.Logger.Warn("notification failed", "error", err)
	}
}
