package analytics

import (
	"context"
	"time"

	"github.com/julianstephens/moodatlas/internal/models"
)

// fakeStore serves fixed data for all three repository interfaces.
type fakeStore struct {
	entries   []models.Entry
	moodLinks []models.EntryMood
	moods     []models.Mood
	tagLinks  []models.EntryTag
	tags      []models.Tag

	entriesErr error
	moodsErr   error
	tagsErr    error

	moodLinkCalls int
	tagLinkCalls  int
}

func (f *fakeStore) GetEntriesByUser(_ context.Context, userID string) ([]models.Entry, error) {
	if f.entriesErr != nil {
		return nil, f.entriesErr
	}
	var out []models.Entry
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) GetEntryMoodLinks(_ context.Context, entryIDs []string) ([]models.EntryMood, error) {
	f.moodLinkCalls++
	if f.moodsErr != nil {
		return nil, f.moodsErr
	}
	want := idSet(entryIDs)
	var out []models.EntryMood
	for _, l := range f.moodLinks {
		if _, ok := want[l.EntryID]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeStore) GetAllMoods(context.Context) ([]models.Mood, error) {
	return f.moods, nil
}

func (f *fakeStore) GetEntryTagLinks(_ context.Context, entryIDs []string) ([]models.EntryTag, error) {
	f.tagLinkCalls++
	if f.tagsErr != nil {
		return nil, f.tagsErr
	}
	want := idSet(entryIDs)
	var out []models.EntryTag
	for _, l := range f.tagLinks {
		if _, ok := want[l.EntryID]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeStore) GetAllTags(context.Context) ([]models.Tag, error) {
	return f.tags, nil
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

func entry(id, date string, words int) models.Entry {
	return models.Entry{ID: id, UserID: "u1", EntryDate: day(date), WordCount: words}
}

func days(dates ...string) []time.Time {
	out := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		out = append(out, day(d))
	}
	return out
}

// fixedClock pins "today" to date, evaluated in UTC.
func fixedClock(date string) Option {
	return func(e *Engine) {
		WithClock(func() time.Time { return day(date).Add(15 * time.Hour) })(e)
		WithLocation(time.UTC)(e)
	}
}
