package analytics

import (
	"context"

	"github.com/julianstephens/moodatlas/internal/models"
)

// EntryRepository returns journal entries for a user, newest first.
type EntryRepository interface {
	GetEntriesByUser(ctx context.Context, userID string) ([]models.Entry, error)
}

// MoodRepository returns mood association records and the mood catalog.
type MoodRepository interface {
	// GetEntryMoodLinks returns every mood link for the given entries in a
	// single call, in stored order.
	GetEntryMoodLinks(ctx context.Context, entryIDs []string) ([]models.EntryMood, error)
	GetAllMoods(ctx context.Context) ([]models.Mood, error)
}

// TagRepository returns tag association records and the tag catalog.
type TagRepository interface {
	GetEntryTagLinks(ctx context.Context, entryIDs []string) ([]models.EntryTag, error)
	GetAllTags(ctx context.Context) ([]models.Tag, error)
}
