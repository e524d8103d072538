package analytics

import (
	"time"

	"github.com/julianstephens/moodatlas/internal/models"
)

// MissedDays returns how many days in the inclusive window [start, end] have
// no entry. start defaults to the earliest entry day and end to today. days
// must be sorted ascending and deduplicated. The result is never negative.
func MissedDays(days []time.Time, start, end *time.Time, today time.Time) int {
	var from time.Time
	switch {
	case start != nil:
		from = models.CivilDay(*start)
	case len(days) > 0:
		from = days[0]
	default:
		return 0
	}

	to := models.CivilDay(today)
	if end != nil {
		to = models.CivilDay(*end)
	}
	if to.Before(from) {
		return 0
	}

	total := daysBetween(from, to) + 1
	withEntries := 0
	for _, d := range days {
		if d.Before(from) || d.After(to) {
			continue
		}
		withEntries++
	}

	missed := total - withEntries
	if missed < 0 {
		return 0
	}
	return missed
}
