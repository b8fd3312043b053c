// Package curator turns deduplicated raw items into scored briefing items
// through a single completion call per item.
package curator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"PulseBriefing/internal/domain"
	"PulseBriefing/internal/ports"
)

const defaultScore = 5

// Result pairs a curated item with the relevance score the model assigned.
type Result struct {
	Item  domain.BriefingItem
	Score int
}

// Options tune batch orchestration against the completion API's rate limits.
type Options struct {
	BatchSize  int
	BatchDelay time.Duration
}

// Curator enriches raw items via the injected completion capability.
// A failure on one item drops that item only.
type Curator struct {
	completer ports.Completer
	opts      Options
	logger    *slog.Logger
}

// New builds a curator; a batch size <= 0 defaults to 15.
func New(completer ports.Completer, opts Options, logger *slog.Logger) *Curator {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 15
	}
	return &Curator{completer: completer, opts: opts, logger: logger}
}

// curatedPayload is the JSON shape the model is instructed to return.
type curatedPayload struct {
	RelevanceScore int              `json:"relevanceScore"`
	Title          string           `json:"title"`
	TLDR           string           `json:"tldr"`
	WhyItMatters   []string         `json:"whyItMatters"`
	WhatToTry      domain.WhatToTry `json:"whatToTry"`
	Tags           []struct {
		Label string `json:"label"`
		Type  string `json:"type"`
	} `json:"tags"`
	ReadTimeMinutes int `json:"readTimeMinutes"`
}

// CurateAll processes items in fixed-size batches, concurrently within a
// batch, with an optional delay between batches. Failed items are logged and
// omitted; the survivors keep the input encounter order.
func (c *Curator) CurateAll(ctx context.Context, items []domain.RawNewsItem) []Result {
	results := make([]*Result, len(items))

	for start := 0; start < len(items); start += c.opts.BatchSize {
		end := start + c.opts.BatchSize
		if end > len(items) {
			end = len(items)
		}
		c.logger.Info("curating batch", "from", start, "to", end, "total", len(items))

		var g errgroup.Group
		for i := start; i < end; i++ {
			g.Go(func() error {
				result, err := c.curateOne(ctx, items[i])
				if err != nil {
					c.logger.Warn("item dropped", "title", items[i].Title, "error", err)
					return nil
				}
				results[i] = &result
				return nil
			})
		}
		_ = g.Wait()

		if c.opts.BatchDelay > 0 && end < len(items) {
			select {
			case <-time.After(c.opts.BatchDelay):
			case <-ctx.Done():
				c.logger.Warn("curation cut short", "error", ctx.Err())
				return collect(results)
			}
		}
	}

	return collect(results)
}

func collect(results []*Result) []Result {
	out := make([]Result, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}

func (c *Curator) curateOne(ctx context.Context, item domain.RawNewsItem) (Result, error) {
	content, err := c.completer.Complete(ctx, ports.CompletionRequest{
		System: systemPrompt,
		User:   userPrompt(item),
	})
	if err != nil {
		return Result{}, fmt.Errorf("completion: %w", err)
	}

	var payload curatedPayload
	if err := json.Unmarshal([]byte(stripFences(content)), &payload); err != nil {
		return Result{}, fmt.Errorf("parse model output: %w", err)
	}
	if payload.Title == "" || payload.TLDR == "" {
		return Result{}, fmt.Errorf("model output missing title or tldr")
	}

	score := payload.RelevanceScore
	if score == 0 {
		score = defaultScore
	}

	tags := make([]domain.BriefingTag, 0, len(payload.Tags))
	for idx, tag := range payload.Tags {
		tags = append(tags, domain.BriefingTag{
			ID:    fmt.Sprintf("tag-%s-%d", item.ID, idx),
			Label: tag.Label,
			Type:  domain.TagType(tag.Type),
		})
	}

	return Result{
		Item: domain.BriefingItem{
			ID:              item.ID,
			Title:           payload.Title,
			TLDR:            payload.TLDR,
			WhyItMatters:    payload.WhyItMatters,
			WhatToTry:       payload.WhatToTry,
			Sources:         buildSources(item),
			Tags:            tags,
			Category:        item.Category,
			ReadTimeMinutes: payload.ReadTimeMinutes,
			IsRead:          false,
			PublishedAt:     item.PublishedAt.UTC().Format(time.RFC3339),
		},
		Score: score,
	}, nil
}

// FilterAndRank drops results below minScore and orders the rest by score
// descending; equal scores keep their encounter order.
func FilterAndRank(results []Result, minScore int) []Result {
	kept := make([]Result, 0, len(results))
	for _, r := range results {
		if r.Score >= minScore {
			kept = append(kept, r)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score > kept[j].Score
	})
	return kept
}

// buildSources re-derives one attribution entry per contributing origin. A
// merged item carries its labels comma-joined in Source; only the primary
// origin keeps the URL, the rest are label-only references.
func buildSources(item domain.RawNewsItem) []domain.BriefingSource {
	labels := strings.Split(item.Source, ", ")
	sources := make([]domain.BriefingSource, 0, len(labels))

	for idx, label := range labels {
		src := domain.BriefingSource{
			ID:     fmt.Sprintf("src-%s-%d", item.ID, idx),
			Title:  label,
			Domain: label,
		}
		if idx == 0 {
			src.Title = item.Title
			src.URL = item.URL
			src.Domain = extractDomain(item.URL)
			src.Type = inferSourceKind(item.URL)
		}
		sources = append(sources, src)
	}
	return sources
}

// stripFences removes markdown code fences the model sometimes wraps around
// its JSON.
func stripFences(content string) string {
	content = strings.ReplaceAll(content, "```json", "")
	content = strings.ReplaceAll(content, "```", "")
	return strings.TrimSpace(content)
}

func extractDomain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return "unknown"
	}
	return strings.TrimPrefix(parsed.Hostname(), "www.")
}

func inferSourceKind(rawURL string) domain.SourceKind {
	switch {
	case strings.Contains(rawURL, "arxiv.org"):
		return domain.SourcePaper
	case strings.Contains(rawURL, "github.com"):
		return domain.SourceRepository
	case strings.Contains(rawURL, "blog"), strings.Contains(rawURL, "medium.com"):
		return domain.SourceBlog
	default:
		return domain.SourceArticle
	}
}
