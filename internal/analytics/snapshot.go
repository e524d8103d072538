package analytics

import "github.com/julianstephens/moodatlas/internal/models"

// Snapshot is the result of one analytics run. All collection fields are
// non-nil so consumers can range over them without checks.
type Snapshot struct {
	TotalEntries     int                         `json:"total_entries"`
	CurrentStreak    int                         `json:"current_streak"`
	LongestStreak    int                         `json:"longest_streak"`
	MissedDays       int                         `json:"missed_days"`
	MoodDistribution map[models.MoodCategory]int `json:"mood_distribution"`
	TagFrequency     []TagCount                  `json:"tag_frequency"`
	MostFrequentMood string                      `json:"most_frequent_mood"`
	MostUsedTags     []string                    `json:"most_used_tags"`
	AverageWordCount int                         `json:"average_word_count"`
	WordCountTrend   []WeekBucket                `json:"word_count_trend"`
}

// MoodOccurrences returns the sum of all mood distribution buckets.
func (s Snapshot) MoodOccurrences() int {
	total := 0
	for _, n := range s.MoodDistribution {
		total += n
	}
	return total
}
