package briefing

import (
	"sort"
	"time"

	"PulseBriefing/internal/domain"
)

// DefaultRetentionDays is the archive's retention horizon.
const DefaultRetentionDays = 7

// MergeArchive folds one freshly generated briefing into the persisted
// archive: same (date, period) entries are replaced, new periods appended,
// day and period ordering re-derived, retention applied, and display labels
// recomputed relative to today. The input slice is not mutated.
func MergeArchive(archive []domain.DailyBriefings, fresh domain.Briefing, retentionDays int, today time.Time) []domain.DailyBriefings {
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}

	merged := make([]domain.DailyBriefings, len(archive))
	copy(merged, archive)

	dayIdx := -1
	for i, day := range merged {
		if day.Date == fresh.Date {
			dayIdx = i
			break
		}
	}

	if dayIdx < 0 {
		merged = append(merged, domain.DailyBriefings{
			Date:      fresh.Date,
			Briefings: []domain.Briefing{fresh},
		})
	} else {
		day := merged[dayIdx]
		day.Briefings = upsertPeriod(day.Briefings, fresh)
		merged[dayIdx] = day
	}

	// Ordering is re-derived on every run, never assumed from prior state.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date > merged[j].Date
	})
	if len(merged) > retentionDays {
		merged = merged[:retentionDays]
	}

	relabel(merged, today)
	return merged
}

// upsertPeriod replaces the entry for fresh's period or appends it, then
// restores morning→afternoon→evening order. Sibling periods are copied
// untouched.
func upsertPeriod(briefings []domain.Briefing, fresh domain.Briefing) []domain.Briefing {
	out := make([]domain.Briefing, len(briefings))
	copy(out, briefings)

	replaced := false
	for i, b := range out {
		if b.Period == fresh.Period {
			out[i] = fresh
			replaced = true
			break
		}
	}
	if !replaced {
		out = append(out, fresh)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return domain.PeriodOrder(out[i].Period) < domain.PeriodOrder(out[j].Period)
	})
	return out
}

// relabel recomputes every day's display label so older entries shift from
// "Today" to "Yesterday" to a formatted date as time passes.
func relabel(days []domain.DailyBriefings, today time.Time) {
	todayStr := today.Format("2006-01-02")
	yesterdayStr := today.AddDate(0, 0, -1).Format("2006-01-02")

	for i := range days {
		switch days[i].Date {
		case todayStr:
			days[i].DisplayDate = "Today"
		case yesterdayStr:
			days[i].DisplayDate = "Yesterday"
		default:
			days[i].DisplayDate = formatDisplayDate(days[i].Date)
		}
	}
}

func formatDisplayDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Monday, Jan 2")
}
