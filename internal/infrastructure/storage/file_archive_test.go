package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"PulseBriefing/internal/domain"
	"PulseBriefing/internal/logging"
)

func TestFileArchiveRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "briefings.json")
	archive := NewFileArchive(path, logging.Discard())

	days := []domain.DailyBriefings{
		{
			Date:        "2025-06-15",
			DisplayDate: "Today",
			Briefings: []domain.Briefing{
				{
					ID:               "briefing-2025-06-15-morning",
					Period:           domain.PeriodMorning,
					Date:             "2025-06-15",
					ScheduledTime:    "07:30",
					ExecutiveSummary: "Today's highlights: one, two.",
					IsAvailable:      true,
				},
			},
		},
	}

	if err := archive.Save(context.Background(), days); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := archive.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Date != "2025-06-15" {
		t.Fatalf("unexpected archive: %+v", loaded)
	}
	if loaded[0].Briefings[0].ID != "briefing-2025-06-15-morning" {
		t.Fatalf("briefing lost on round trip: %+v", loaded[0].Briefings)
	}
}

func TestFileArchiveJSONShape(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "briefings.json")
	archive := NewFileArchive(path, logging.Discard())

	days := []domain.DailyBriefings{{Date: "2025-06-15", DisplayDate: "Today"}}
	if err := archive.Save(context.Background(), days); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	// The client contract uses camelCase keys and a pretty-printed document.
	for _, key := range []string{`"date"`, `"displayDate"`, `"briefings"`} {
		if !strings.Contains(string(raw), key) {
			t.Fatalf("artifact missing key %s: %s", key, raw)
		}
	}
	if !strings.Contains(string(raw), "\n  ") {
		t.Fatalf("artifact should be indented: %s", raw)
	}
}

func TestFileArchiveLoadMissing(t *testing.T) {
	t.Parallel()

	archive := NewFileArchive(filepath.Join(t.TempDir(), "absent.json"), logging.Discard())

	days, err := archive.Load(context.Background())
	if err != nil {
		t.Fatalf("missing archive should not error: %v", err)
	}
	if days != nil {
		t.Fatalf("expected empty archive, got %+v", days)
	}
}

func TestFileArchiveLoadCorrupt(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "briefings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}

	archive := NewFileArchive(path, logging.Discard())
	days, err := archive.Load(context.Background())
	if err != nil {
		t.Fatalf("corrupt archive should not error: %v", err)
	}
	if days != nil {
		t.Fatalf("expected empty archive, got %+v", days)
	}
}

func TestFileArchiveSaveCreatesDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "briefings.json")
	archive := NewFileArchive(path, logging.Discard())

	if err := archive.Save(context.Background(), nil); err != nil {
		t.Fatalf("save into missing dir: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("artifact not written: %v", err)
	}
}

func TestFileArchiveSaveLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	archive := NewFileArchive(filepath.Join(dir, "briefings.json"), logging.Discard())

	if err := archive.Save(context.Background(), nil); err != nil {
		t.Fatalf("save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "briefings.json" {
		t.Fatalf("unexpected leftovers: %v", entries)
	}
}
