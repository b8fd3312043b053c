// Package dedup clusters near-duplicate stories and merges each cluster into
// one item with combined multi-source attribution.
package dedup

import (
	"fmt"
	"log/slog"
	"strings"

	"PulseBriefing/internal/domain"
)

const (
	// DefaultThreshold is the Jaccard term-overlap at or above which two
	// items are considered the same story.
	DefaultThreshold = 0.35

	contentSampleLength = 500
	mergedContentLimit  = 3000
)

// Deduplicator groups similar items by lexical term overlap.
type Deduplicator struct {
	threshold float64
	logger    *slog.Logger
}

// New builds a deduplicator; a threshold <= 0 uses the default.
func New(threshold float64, logger *slog.Logger) *Deduplicator {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Deduplicator{threshold: threshold, logger: logger}
}

// Merge clusters the raw pool and collapses each cluster into one item.
//
// Clustering is greedy and seed-first: items are scanned in input order, each
// unassigned item seeds a cluster and absorbs every later unassigned item
// similar enough to the seed (only to the seed, not pairwise). The tie-break
// is therefore fully determined by input order, which keeps results
// reproducible for a given pool.
func (d *Deduplicator) Merge(items []domain.RawNewsItem) []domain.RawNewsItem {
	groups := d.cluster(items)

	merged := 0
	out := make([]domain.RawNewsItem, 0, len(groups))
	for _, group := range groups {
		if len(group) == 1 {
			out = append(out, group[0])
			continue
		}
		merged++
		combined := mergeGroup(group)
		d.logger.Debug("merged similar stories", "title", combined.Title, "sources", len(group))
		out = append(out, combined)
	}

	if merged > 0 {
		d.logger.Info("deduplication complete",
			"input", len(items), "output", len(out), "combined_stories", merged)
	}
	return out
}

func (d *Deduplicator) cluster(items []domain.RawNewsItem) [][]domain.RawNewsItem {
	terms := make([]map[string]struct{}, len(items))
	for i, item := range items {
		sample := item.Content
		if len(sample) > contentSampleLength {
			sample = sample[:contentSampleLength]
		}
		terms[i] = KeyTerms(item.Title + " " + sample)
	}

	assigned := make([]bool, len(items))
	var groups [][]domain.RawNewsItem

	for i := range items {
		if assigned[i] {
			continue
		}
		group := []domain.RawNewsItem{items[i]}
		assigned[i] = true

		for j := i + 1; j < len(items); j++ {
			if assigned[j] {
				continue
			}
			if Jaccard(terms[i], terms[j]) >= d.threshold {
				group = append(group, items[j])
				assigned[j] = true
			}
		}
		groups = append(groups, group)
	}
	return groups
}

// mergeGroup collapses a cluster: the longest-content member becomes primary,
// every member's content is concatenated under a [source] label, and the
// source field lists all contributors (primary first, then input order).
func mergeGroup(group []domain.RawNewsItem) domain.RawNewsItem {
	primaryIdx := 0
	for i, item := range group {
		if len(item.Content) > len(group[primaryIdx].Content) {
			primaryIdx = i
		}
	}

	ordered := make([]domain.RawNewsItem, 0, len(group))
	ordered = append(ordered, group[primaryIdx])
	for i, item := range group {
		if i != primaryIdx {
			ordered = append(ordered, item)
		}
	}

	primary := ordered[0]

	sources := make([]string, 0, len(ordered))
	parts := make([]string, 0, len(ordered))
	for _, item := range ordered {
		sources = append(sources, item.Source)
		parts = append(parts, fmt.Sprintf("[%s]: %s", item.Source, item.Content))
	}

	combined := strings.Join(parts, "\n\n")
	if len(combined) > mergedContentLimit {
		combined = combined[:mergedContentLimit]
	}

	primary.Content = combined
	primary.Source = strings.Join(sources, ", ")
	return primary
}

// Jaccard returns |a∩b| / |a∪b|, or 0 when either set is empty.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	for term := range a {
		if _, ok := b[term]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// KeyTerms extracts the bag of significant terms from text: lower-cased,
// punctuation stripped, stop words removed, length > 2.
func KeyTerms(text string) map[string]struct{} {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	terms := map[string]struct{}{}
	for _, word := range strings.Fields(b.String()) {
		if len(word) <= 2 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		terms[word] = struct{}{}
	}
	return terms
}
