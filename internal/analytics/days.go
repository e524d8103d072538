package analytics

import (
	"sort"
	"time"

	"github.com/julianstephens/moodatlas/internal/models"
)

// distinctDays returns the sorted, deduplicated calendar days of entries.
func distinctDays(entries []models.Entry) []time.Time {
	seen := make(map[time.Time]struct{}, len(entries))
	days := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		day := e.Day()
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})
	return days
}

// daysBetween returns the whole number of days from a to b (both civil days).
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// filterWindow keeps entries whose calendar day falls inside [start, end].
// A nil bound leaves that side open.
func filterWindow(entries []models.Entry, start, end *time.Time) []models.Entry {
	if start == nil && end == nil {
		return entries
	}

	var from, to time.Time
	if start != nil {
		from = models.CivilDay(*start)
	}
	if end != nil {
		to = models.CivilDay(*end)
	}

	filtered := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		day := e.Day()
		if start != nil && day.Before(from) {
			continue
		}
		if end != nil && day.After(to) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}
