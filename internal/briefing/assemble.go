// Package briefing assembles curated items into period briefings and merges
// them into the rolling archive.
package briefing

import (
	"fmt"
	"strings"
	"time"

	"PulseBriefing/internal/curator"
	"PulseBriefing/internal/domain"
)

const summaryHighlights = 3

// Assembler groups ranked items into the briefing for the current period.
type Assembler struct {
	maxItems int
	now      func() time.Time
}

// NewAssembler bounds briefings at maxItems (<= 0 defaults to 10). The clock
// decides the active period and is injectable for tests.
func NewAssembler(maxItems int, now func() time.Time) *Assembler {
	if maxItems <= 0 {
		maxItems = 10
	}
	if now == nil {
		now = time.Now
	}
	return &Assembler{maxItems: maxItems, now: now}
}

// Assemble builds exactly one briefing from the ranked results. The period
// is inferred from the run's wall clock; the pipeline is invoked once per
// scheduled slot, not continuously.
func (a *Assembler) Assemble(ranked []curator.Result) domain.Briefing {
	now := a.now()
	date := now.Format("2006-01-02")
	period := PeriodAt(now)

	if len(ranked) > a.maxItems {
		ranked = ranked[:a.maxItems]
	}

	items := make([]domain.BriefingItem, 0, len(ranked))
	totalReadTime := 0
	for _, r := range ranked {
		items = append(items, r.Item)
		totalReadTime += r.Item.ReadTimeMinutes
	}

	return domain.Briefing{
		ID:                   fmt.Sprintf("briefing-%s-%s", date, period),
		Period:               period,
		Date:                 date,
		ScheduledTime:        ScheduledTime(period),
		ExecutiveSummary:     executiveSummary(items),
		Items:                items,
		TotalReadTimeMinutes: totalReadTime,
		IsAvailable:          true,
		IsRead:               false,
	}
}

// PeriodAt maps a wall-clock hour to its briefing period.
func PeriodAt(t time.Time) domain.Period {
	switch hour := t.Hour(); {
	case hour < 12:
		return domain.PeriodMorning
	case hour < 18:
		return domain.PeriodAfternoon
	default:
		return domain.PeriodEvening
	}
}

// ScheduledTime returns the fixed clock time a period is published at.
func ScheduledTime(period domain.Period) string {
	switch period {
	case domain.PeriodMorning:
		return "07:30"
	case domain.PeriodAfternoon:
		return "13:30"
	default:
		return "20:30"
	}
}

func executiveSummary(items []domain.BriefingItem) string {
	if len(items) == 0 {
		return "No significant AI news this period."
	}

	n := len(items)
	if n > summaryHighlights {
		n = summaryHighlights
	}
	titles := make([]string, 0, n)
	for _, item := range items[:n] {
		titles = append(titles, item.Title)
	}
	return fmt.Sprintf("Today's highlights: %s.", strings.Join(titles, ", "))
}
