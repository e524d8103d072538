package analytics

import (
	"time"

	"github.com/julianstephens/moodatlas/internal/models"
)

// CurrentStreak counts consecutive days with entries ending today. If there
// is no entry for today the streak is 0, even when yesterday has one.
func CurrentStreak(days []time.Time, today time.Time) int {
	if len(days) == 0 {
		return 0
	}

	set := make(map[time.Time]struct{}, len(days))
	for _, d := range days {
		set[models.CivilDay(d)] = struct{}{}
	}

	streak := 0
	for day := models.CivilDay(today); ; day = day.AddDate(0, 0, -1) {
		if _, ok := set[day]; !ok {
			break
		}
		streak++
	}
	return streak
}

// LongestStreak returns the longest run of consecutive calendar days.
// days must be sorted ascending and deduplicated (see distinctDays).
func LongestStreak(days []time.Time) int {
	if len(days) == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Equal(days[i-1].AddDate(0, 0, 1)) {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}
	return longest
}
