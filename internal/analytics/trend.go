package analytics

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/julianstephens/moodatlas/internal/constants"
	"github.com/julianstephens/moodatlas/internal/models"
)

// WeekBucket is the average word count for the week starting on WeekStart.
type WeekBucket struct {
	WeekStart        time.Time
	AverageWordCount int
}

func (b WeekBucket) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		WeekStart        string `json:"week_start"`
		AverageWordCount int    `json:"average_word_count"`
	}{
		WeekStart:        b.WeekStart.Format(constants.DateFormat),
		AverageWordCount: b.AverageWordCount,
	})
}

// WeekStart returns the Monday on or before the calendar day of t.
func WeekStart(t time.Time) time.Time {
	day := models.CivilDay(t)
	offset := (int(day.Weekday()) - int(time.Monday) + 7) % 7
	return day.AddDate(0, 0, -offset)
}

// AverageWordCount is the truncated mean word count, 0 for no entries.
func AverageWordCount(entries []models.Entry) int {
	if len(entries) == 0 {
		return 0
	}
	total := 0
	for _, e := range entries {
		total += e.WordCount
	}
	return total / len(entries)
}

// WordCountTrend buckets entries by Monday-starting week and averages each
// bucket. Weeks without entries are omitted; buckets are ordered by week.
func WordCountTrend(entries []models.Entry) []WeekBucket {
	type acc struct {
		total int
		count int
	}
	weeks := make(map[time.Time]*acc)
	for _, e := range entries {
		key := WeekStart(e.EntryDate)
		a, ok := weeks[key]
		if !ok {
			a = &acc{}
			weeks[key] = a
		}
		a.total += e.WordCount
		a.count++
	}

	trend := make([]WeekBucket, 0, len(weeks))
	for start, a := range weeks {
		trend = append(trend, WeekBucket{WeekStart: start, AverageWordCount: a.total / a.count})
	}
	sort.Slice(trend, func(i, j int) bool {
		return trend[i].WeekStart.Before(trend[j].WeekStart)
	})
	return trend
}
