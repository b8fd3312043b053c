package briefing

import (
	"strings"
	"testing"
	"time"

	"PulseBriefing/internal/curator"
	"PulseBriefing/internal/domain"
)

func fixedClock(hour int) func() time.Time {
	return func() time.Time {
		return time.Date(2025, 6, 15, hour, 5, 0, 0, time.UTC)
	}
}

func resultWith(id, title string, readTime int) curator.Result {
	return curator.Result{
		Item: domain.BriefingItem{
			ID:              id,
			Title:           title,
			TLDR:            "tldr",
			ReadTimeMinutes: readTime,
		},
		Score: 8,
	}
}

func TestAssemble(t *testing.T) {
	t.Parallel()

	a := NewAssembler(10, fixedClock(14))
	ranked := []curator.Result{
		resultWith("a", "First story", 2),
		resultWith("b", "Second story", 3),
		resultWith("c", "Third story", 1),
		resultWith("d", "Fourth story", 4),
	}

	b := a.Assemble(ranked)

	if b.ID != "briefing-2025-06-15-afternoon" {
		t.Fatalf("unexpected id: %s", b.ID)
	}
	if b.Period != domain.PeriodAfternoon || b.ScheduledTime != "13:30" {
		t.Fatalf("unexpected period/time: %s %s", b.Period, b.ScheduledTime)
	}
	if b.Date != "2025-06-15" {
		t.Fatalf("unexpected date: %s", b.Date)
	}
	if len(b.Items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(b.Items))
	}
	if b.TotalReadTimeMinutes != 10 {
		t.Fatalf("expected total read time 10, got %d", b.TotalReadTimeMinutes)
	}
	if !b.IsAvailable || b.IsRead {
		t.Fatalf("unexpected flags: available=%v read=%v", b.IsAvailable, b.IsRead)
	}

	want := "Today's highlights: First story, Second story, Third story."
	if b.ExecutiveSummary != want {
		t.Fatalf("unexpected summary: %q", b.ExecutiveSummary)
	}
	if strings.Contains(b.ExecutiveSummary, "Fourth") {
		t.Fatalf("summary should cap at three highlights: %q", b.ExecutiveSummary)
	}
}

func TestAssembleCapsItems(t *testing.T) {
	t.Parallel()

	a := NewAssembler(2, fixedClock(8))
	ranked := []curator.Result{
		resultWith("a", "First", 2),
		resultWith("b", "Second", 2),
		resultWith("c", "Third", 2),
	}

	b := a.Assemble(ranked)
	if len(b.Items) != 2 {
		t.Fatalf("expected cap at 2 items, got %d", len(b.Items))
	}
	if b.Items[0].ID != "a" || b.Items[1].ID != "b" {
		t.Fatalf("cap should keep the top-ranked items: %s, %s", b.Items[0].ID, b.Items[1].ID)
	}
}

func TestAssembleEmpty(t *testing.T) {
	t.Parallel()

	a := NewAssembler(10, fixedClock(21))
	b := a.Assemble(nil)

	if b.Period != domain.PeriodEvening || b.ScheduledTime != "20:30" {
		t.Fatalf("unexpected period/time: %s %s", b.Period, b.ScheduledTime)
	}
	if len(b.Items) != 0 || b.TotalReadTimeMinutes != 0 {
		t.Fatalf("empty input should produce empty briefing: %+v", b)
	}
	if b.ExecutiveSummary != "No significant AI news this period." {
		t.Fatalf("unexpected empty summary: %q", b.ExecutiveSummary)
	}
}

func TestPeriodAt(t *testing.T) {
	t.Parallel()

	cases := []struct {
		hour int
		want domain.Period
	}{
		{0, domain.PeriodMorning},
		{11, domain.PeriodMorning},
		{12, domain.PeriodAfternoon},
		{17, domain.PeriodAfternoon},
		{18, domain.PeriodEvening},
		{23, domain.PeriodEvening},
	}
	for _, tc := range cases {
		at := time.Date(2025, 6, 15, tc.hour, 0, 0, 0, time.UTC)
		if got := PeriodAt(at); got != tc.want {
			t.Fatalf("hour %d: expected %s, got %s", tc.hour, tc.want, got)
		}
	}
}
