package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/moodatlas/internal/constants"
	"github.com/julianstephens/moodatlas/internal/models"
)

func TestComputeEmptyHistory(t *testing.T) {
	store := &fakeStore{}
	engine := NewEngine(store, store, store, fixedClock("2024-01-03"))

	snap, err := engine.Compute(context.Background(), "u1", nil, nil)
	require.NoError(t, err)

	assert.Zero(t, snap.TotalEntries)
	assert.Zero(t, snap.CurrentStreak)
	assert.Zero(t, snap.LongestStreak)
	assert.Zero(t, snap.MissedDays)
	assert.Zero(t, snap.AverageWordCount)
	assert.Equal(t, constants.NoMoodsRecorded, snap.MostFrequentMood)
	assert.Len(t, snap.MoodDistribution, len(models.MoodCategories))
	assert.NotNil(t, snap.TagFrequency)
	assert.NotNil(t, snap.MostUsedTags)
	assert.NotNil(t, snap.WordCountTrend)
	assert.Zero(t, store.moodLinkCalls, "no association lookups without entries")
}

func TestComputeConsecutiveDays(t *testing.T) {
	store := &fakeStore{
		entries: []models.Entry{
			entry("e3", "2024-01-03", 30),
			entry("e2", "2024-01-02", 20),
			entry("e1", "2024-01-01", 10),
		},
	}
	engine := NewEngine(store, store, store, fixedClock("2024-01-03"))

	snap, err := engine.Compute(context.Background(), "u1", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.TotalEntries)
	assert.Equal(t, 3, snap.CurrentStreak)
	assert.Equal(t, 3, snap.LongestStreak)
	assert.Equal(t, 0, snap.MissedDays)
	assert.Equal(t, 20, snap.AverageWordCount)
}

func TestComputeGapInHistory(t *testing.T) {
	store := &fakeStore{
		entries: []models.Entry{
			entry("e2", "2024-01-03", 0),
			entry("e1", "2024-01-01", 0),
		},
	}
	engine := NewEngine(store, store, store, fixedClock("2024-01-04"))

	snap, err := engine.Compute(context.Background(), "u1", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, snap.CurrentStreak)
	assert.Equal(t, 1, snap.LongestStreak)
	assert.Equal(t, 2, snap.MissedDays)
}

func TestComputeStreaksIgnoreWindow(t *testing.T) {
	store := &fakeStore{
		entries: []models.Entry{
			entry("e5", "2024-01-05", 50),
			entry("e4", "2024-01-04", 40),
			entry("e3", "2024-01-03", 30),
			entry("e2", "2024-01-02", 20),
			entry("e1", "2024-01-01", 10),
		},
	}
	engine := NewEngine(store, store, store, fixedClock("2024-01-05"))

	snap, err := engine.Compute(context.Background(), "u1", dayPtr("2024-01-02"), dayPtr("2024-01-03"))
	require.NoError(t, err)
	assert.Equal(t, 2, snap.TotalEntries)
	assert.Equal(t, 25, snap.AverageWordCount)
	assert.Equal(t, 0, snap.MissedDays)
	assert.Equal(t, 5, snap.CurrentStreak)
	assert.Equal(t, 5, snap.LongestStreak)
}

func TestComputeAggregatesAssociations(t *testing.T) {
	work := models.Tag{ID: "t-work", Name: "Work"}
	family := models.Tag{ID: "t-family", Name: "Family"}

	store := &fakeStore{
		entries: []models.Entry{
			entry("e2", "2024-01-04", 300),
			entry("e1", "2024-01-02", 100),
			entry("e0", "2023-12-20", 999),
		},
		moods: []models.Mood{happy, calm, sad},
		moodLinks: []models.EntryMood{
			{EntryID: "e1", MoodID: happy.ID, IsPrimary: true},
			{EntryID: "e1", MoodID: calm.ID},
			{EntryID: "e2", MoodID: happy.ID},
			{EntryID: "e2", MoodID: "deleted-mood"},
			{EntryID: "e0", MoodID: sad.ID},
		},
		tags: []models.Tag{work, family},
		tagLinks: []models.EntryTag{
			{EntryID: "e1", TagID: family.ID},
			{EntryID: "e2", TagID: work.ID},
			{EntryID: "e2", TagID: family.ID},
			{EntryID: "e2", TagID: "deleted-tag"},
			{EntryID: "e0", TagID: work.ID},
		},
	}
	engine := NewEngine(store, store, store, fixedClock("2024-01-04"))

	snap, err := engine.Compute(context.Background(), "u1", dayPtr("2024-01-01"), nil)
	require.NoError(t, err)

	assert.Equal(t, 2, snap.TotalEntries)
	assert.Equal(t, map[models.MoodCategory]int{
		models.MoodPositive: 2,
		models.MoodNeutral:  1,
		models.MoodNegative: 0,
	}, snap.MoodDistribution)
	assert.Equal(t, 3, snap.MoodOccurrences())
	assert.Equal(t, "Positive (2 entries)", snap.MostFrequentMood)
	assert.Equal(t, []TagCount{{Name: "Family", Count: 2}, {Name: "Work", Count: 1}}, snap.TagFrequency)
	assert.Equal(t, []string{"Family (2)", "Work (1)"}, snap.MostUsedTags)
	require.Len(t, snap.WordCountTrend, 1)
	assert.Equal(t, day("2024-01-01"), snap.WordCountTrend[0].WeekStart)
	assert.Equal(t, 200, snap.WordCountTrend[0].AverageWordCount)
	assert.Equal(t, 2, snap.MissedDays)

	assert.Equal(t, 1, store.moodLinkCalls, "mood links fetched in one batch")
	assert.Equal(t, 1, store.tagLinkCalls, "tag links fetched in one batch")
}

func TestComputeNoMoodsLinked(t *testing.T) {
	store := &fakeStore{
		entries: []models.Entry{entry("e1", "2024-01-01", 5)},
		moods:   []models.Mood{happy},
	}
	engine := NewEngine(store, store, store, fixedClock("2024-01-01"))

	snap, err := engine.Compute(context.Background(), "u1", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, constants.NoMoodsRecorded, snap.MostFrequentMood)
	assert.Equal(t, 0, snap.MoodOccurrences())
}

func TestComputePropagatesRepositoryErrors(t *testing.T) {
	errDB := errors.New("database is locked")

	tests := []struct {
		name    string
		store   *fakeStore
		wantMsg string
	}{
		{name: "entries", store: &fakeStore{entriesErr: errDB}, wantMsg: "failed to fetch entries"},
		{name: "mood links", store: &fakeStore{entries: []models.Entry{entry("e1", "2024-01-01", 1)}, moodsErr: errDB}, wantMsg: "failed to fetch mood links"},
		{name: "tag links", store: &fakeStore{entries: []models.Entry{entry("e1", "2024-01-01", 1)}, tagsErr: errDB}, wantMsg: "failed to fetch tag links"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine(tt.store, tt.store, tt.store, fixedClock("2024-01-01"))
			_, err := engine.Compute(context.Background(), "u1", nil, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, errDB)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	store := &fakeStore{
		entries:   []models.Entry{entry("e2", "2024-01-09", 40), entry("e1", "2024-01-01", 20)},
		moods:     []models.Mood{happy, sad},
		moodLinks: []models.EntryMood{{EntryID: "e1", MoodID: sad.ID}, {EntryID: "e2", MoodID: happy.ID}},
	}
	engine := NewEngine(store, store, store, fixedClock("2024-01-10"))

	first, err := engine.Compute(context.Background(), "u1", nil, nil)
	require.NoError(t, err)
	second, err := engine.Compute(context.Background(), "u1", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
