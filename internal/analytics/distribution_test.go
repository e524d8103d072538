package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/julianstephens/moodatlas/internal/constants"
	"github.com/julianstephens/moodatlas/internal/models"
)

var (
	happy   = models.Mood{ID: "m-happy", Name: "Happy", Category: models.MoodPositive}
	calm    = models.Mood{ID: "m-calm", Name: "Calm", Category: models.MoodNeutral}
	sad     = models.Mood{ID: "m-sad", Name: "Sad", Category: models.MoodNegative}
	excited = models.Mood{ID: "m-excited", Name: "Excited", Category: models.MoodPositive}
)

func TestMoodDistributionSeedsEveryCategory(t *testing.T) {
	dist := MoodDistribution(nil, nil)
	assert.Equal(t, map[models.MoodCategory]int{
		models.MoodPositive: 0,
		models.MoodNeutral:  0,
		models.MoodNegative: 0,
	}, dist)
	assert.Equal(t, constants.NoMoodsRecorded, MostFrequentMood(dist))
}

func TestMoodDistributionCountsOccurrences(t *testing.T) {
	entries := []models.Entry{entry("e1", "2024-01-01", 10), entry("e2", "2024-01-02", 10)}
	moodsByEntry := map[string][]models.Mood{
		"e1": {happy, excited, sad},
		"e2": {happy},
		"e3": {calm}, // not in the entry set
	}

	dist := MoodDistribution(entries, moodsByEntry)
	assert.Equal(t, 3, dist[models.MoodPositive])
	assert.Equal(t, 0, dist[models.MoodNeutral])
	assert.Equal(t, 1, dist[models.MoodNegative])

	sum := 0
	for _, n := range dist {
		sum += n
	}
	assert.Equal(t, 4, sum)
	assert.Equal(t, "Positive (3 entries)", MostFrequentMood(dist))
}

func TestMostFrequentMoodTieGoesToFirstCategory(t *testing.T) {
	dist := map[models.MoodCategory]int{
		models.MoodPositive: 1,
		models.MoodNeutral:  4,
		models.MoodNegative: 4,
	}
	assert.Equal(t, "Neutral (4 entries)", MostFrequentMood(dist))
}

func TestResolveMoodsSkipsDanglingAndUnknown(t *testing.T) {
	odd := models.Mood{ID: "m-odd", Name: "Odd", Category: "Sideways"}
	links := []models.EntryMood{
		{EntryID: "e1", MoodID: happy.ID},
		{EntryID: "e1", MoodID: "missing"},
		{EntryID: "e1", MoodID: odd.ID},
		{EntryID: "e2", MoodID: sad.ID},
	}

	got := resolveMoods(links, []models.Mood{happy, sad, odd})
	assert.Equal(t, []models.Mood{happy}, got["e1"])
	assert.Equal(t, []models.Mood{sad}, got["e2"])
}

func TestTagFrequency(t *testing.T) {
	work := models.Tag{ID: "t-work", Name: "Work"}
	family := models.Tag{ID: "t-family", Name: "Family"}
	health := models.Tag{ID: "t-health", Name: "Health"}
	travel := models.Tag{ID: "t-travel", Name: "Travel"}

	entries := []models.Entry{
		entry("e1", "2024-01-01", 0),
		entry("e2", "2024-01-02", 0),
		entry("e3", "2024-01-03", 0),
	}
	tagsByEntry := map[string][]models.Tag{
		"e1": {work, family},
		"e2": {health, travel},
		"e3": {health, family},
	}

	got := TagFrequency(entries, tagsByEntry)
	// Family and Health tie at 2; Family was seen first. Work and Travel
	// tie at 1; Work was seen first.
	assert.Equal(t, []TagCount{
		{Name: "Family", Count: 2},
		{Name: "Health", Count: 2},
		{Name: "Work", Count: 1},
		{Name: "Travel", Count: 1},
	}, got)
}

func TestTagFrequencyEmpty(t *testing.T) {
	got := TagFrequency(nil, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, MostUsedTags(got, constants.MostUsedTagsLimit))
}

func TestMostUsedTags(t *testing.T) {
	ranking := []TagCount{
		{Name: "Work", Count: 9},
		{Name: "Family", Count: 7},
		{Name: "Health", Count: 5},
		{Name: "Travel", Count: 3},
		{Name: "Reading", Count: 2},
		{Name: "Music", Count: 1},
	}

	got := MostUsedTags(ranking, constants.MostUsedTagsLimit)
	assert.Equal(t, []string{"Work (9)", "Family (7)", "Health (5)", "Travel (3)", "Reading (2)"}, got)
	assert.Equal(t, []string{"Work (9)"}, MostUsedTags(ranking[:1], constants.MostUsedTagsLimit))
}
