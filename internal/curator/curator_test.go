package curator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"PulseBriefing/internal/domain"
	"PulseBriefing/internal/logging"
	"PulseBriefing/internal/ports"
)

// fakeCompleter returns canned responses keyed by a substring of the user
// prompt; unmatched prompts get the fallback.
type fakeCompleter struct {
	responses map[string]string
	fallback  string
	err       error
}

func (f *fakeCompleter) Complete(_ context.Context, req ports.CompletionRequest) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	for key, resp := range f.responses {
		if strings.Contains(req.User, key) {
			return resp, nil
		}
	}
	return f.fallback, nil
}

func payloadJSON(score int, title string) string {
	return fmt.Sprintf(`{
		"relevanceScore": %d,
		"title": %q,
		"tldr": "A short summary.",
		"whyItMatters": ["It matters."],
		"whatToTry": {"description": "Try it."},
		"tags": [{"label": "GPT-4o", "type": "model"}],
		"readTimeMinutes": 2
	}`, score, title)
}

func rawItem(id, title string) domain.RawNewsItem {
	return domain.RawNewsItem{
		ID:          id,
		Title:       title,
		Content:     "Some content about " + title,
		URL:         "https://example.com/" + id,
		Source:      "TechCrunch AI",
		SourceType:  domain.SourceRSS,
		Category:    domain.CategoryReleases,
		PublishedAt: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestCurateAll(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{fallback: payloadJSON(8, "Curated title")}
	c := New(completer, Options{BatchSize: 2}, logging.Discard())

	items := []domain.RawNewsItem{rawItem("a", "One"), rawItem("b", "Two"), rawItem("c", "Three")}
	results := c.CurateAll(context.Background(), items)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Item.ID != items[i].ID {
			t.Fatalf("result %d: encounter order broken, got %s", i, r.Item.ID)
		}
		if r.Score != 8 {
			t.Fatalf("result %d: expected score 8, got %d", i, r.Score)
		}
		if r.Item.Title != "Curated title" {
			t.Fatalf("result %d: unexpected title %q", i, r.Item.Title)
		}
		if r.Item.IsRead {
			t.Fatalf("result %d: new item marked read", i)
		}
		if r.Item.PublishedAt != "2025-06-01T08:00:00Z" {
			t.Fatalf("result %d: unexpected publishedAt %q", i, r.Item.PublishedAt)
		}
	}
}

func TestCurateAllDropsFailedItems(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{
		responses: map[string]string{"Broken": "not json at all"},
		fallback:  payloadJSON(7, "Fine"),
	}
	c := New(completer, Options{}, logging.Discard())

	items := []domain.RawNewsItem{rawItem("a", "Fine one"), rawItem("b", "Broken one"), rawItem("c", "Fine two")}
	results := c.CurateAll(context.Background(), items)

	if len(results) != 2 {
		t.Fatalf("expected 2 surviving results, got %d", len(results))
	}
	if results[0].Item.ID != "a" || results[1].Item.ID != "c" {
		t.Fatalf("survivors out of order: %s, %s", results[0].Item.ID, results[1].Item.ID)
	}
}

func TestCurateAllHandlesCompleterError(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{err: errors.New("upstream down")}
	c := New(completer, Options{}, logging.Discard())

	results := c.CurateAll(context.Background(), []domain.RawNewsItem{rawItem("a", "One")})
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}

func TestCurateOneStripsFences(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{fallback: "```json\n" + payloadJSON(9, "Fenced") + "\n```"}
	c := New(completer, Options{}, logging.Discard())

	results := c.CurateAll(context.Background(), []domain.RawNewsItem{rawItem("a", "One")})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Item.Title != "Fenced" || results[0].Score != 9 {
		t.Fatalf("fenced payload not parsed: %+v", results[0])
	}
}

func TestCurateOneDefaultsScore(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{fallback: `{"title": "T", "tldr": "S"}`}
	c := New(completer, Options{}, logging.Discard())

	results := c.CurateAll(context.Background(), []domain.RawNewsItem{rawItem("a", "One")})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Score != 5 {
		t.Fatalf("expected default score 5, got %d", results[0].Score)
	}
}

func TestCurateOneRejectsIncompleteOutput(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{fallback: `{"relevanceScore": 8, "title": "", "tldr": ""}`}
	c := New(completer, Options{}, logging.Discard())

	results := c.CurateAll(context.Background(), []domain.RawNewsItem{rawItem("a", "One")})
	if len(results) != 0 {
		t.Fatalf("expected item without title/tldr to be dropped, got %d results", len(results))
	}
}

func TestFilterAndRank(t *testing.T) {
	t.Parallel()

	results := []Result{
		{Item: domain.BriefingItem{ID: "a"}, Score: 4},
		{Item: domain.BriefingItem{ID: "b"}, Score: 9},
		{Item: domain.BriefingItem{ID: "c"}, Score: 5},
		{Item: domain.BriefingItem{ID: "d"}, Score: 2},
		{Item: domain.BriefingItem{ID: "e"}, Score: 6},
	}

	ranked := FilterAndRank(results, 5)

	want := []struct {
		id    string
		score int
	}{{"b", 9}, {"e", 6}, {"c", 5}}

	if len(ranked) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(ranked))
	}
	for i, w := range want {
		if ranked[i].Item.ID != w.id || ranked[i].Score != w.score {
			t.Fatalf("rank %d: expected %s/%d, got %s/%d",
				i, w.id, w.score, ranked[i].Item.ID, ranked[i].Score)
		}
	}
}

func TestFilterAndRankStableForEqualScores(t *testing.T) {
	t.Parallel()

	results := []Result{
		{Item: domain.BriefingItem{ID: "a"}, Score: 7},
		{Item: domain.BriefingItem{ID: "b"}, Score: 7},
		{Item: domain.BriefingItem{ID: "c"}, Score: 7},
	}

	ranked := FilterAndRank(results, 5)
	for i, id := range []string{"a", "b", "c"} {
		if ranked[i].Item.ID != id {
			t.Fatalf("equal scores reordered: position %d is %s", i, ranked[i].Item.ID)
		}
	}
}

func TestBuildSourcesForMergedItem(t *testing.T) {
	t.Parallel()

	item := rawItem("a", "Merged story")
	item.Source = "TechCrunch AI, Wired AI, HackerNews"
	item.URL = "https://techcrunch.com/story"

	completer := &fakeCompleter{fallback: payloadJSON(8, "Merged story")}
	c := New(completer, Options{}, logging.Discard())

	results := c.CurateAll(context.Background(), []domain.RawNewsItem{item})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	sources := results[0].Item.Sources
	if len(sources) != 3 {
		t.Fatalf("expected 3 sources, got %d", len(sources))
	}
	if sources[0].URL != item.URL || sources[0].Domain != "techcrunch.com" {
		t.Fatalf("primary source not hydrated: %+v", sources[0])
	}
	if sources[1].Title != "Wired AI" || sources[1].URL != "" {
		t.Fatalf("secondary source should be label-only: %+v", sources[1])
	}
	if sources[2].Title != "HackerNews" {
		t.Fatalf("unexpected third source: %+v", sources[2])
	}
}

func TestInferSourceKind(t *testing.T) {
	t.Parallel()

	cases := []struct {
		url  string
		want domain.SourceKind
	}{
		{"https://arxiv.org/abs/2501.0001", domain.SourcePaper},
		{"https://github.com/org/repo", domain.SourceRepository},
		{"https://openai.com/blog/post", domain.SourceBlog},
		{"https://medium.com/@x/post", domain.SourceBlog},
		{"https://techcrunch.com/story", domain.SourceArticle},
	}
	for _, tc := range cases {
		if got := inferSourceKind(tc.url); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.url, tc.want, got)
		}
	}
}
