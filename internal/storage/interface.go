package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/julianstephens/moodatlas/internal/models"
)

// ErrNotFound is returned by single-record lookups that match nothing. It
// wraps sql.ErrNoRows so either sentinel works with errors.Is.
var ErrNotFound = notFoundError{}

type notFoundError struct{}

func (notFoundError) Error() string { return "record not found" }
func (notFoundError) Unwrap() error { return sql.ErrNoRows }

// NotFound maps sql.ErrNoRows to ErrNotFound and leaves other errors alone.
func NotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings(ctx context.Context) (models.Settings, error)
	SaveSettings(ctx context.Context, settings models.Settings) error

	// Users
	AddUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id string) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	// DeleteUser removes the user together with their entries, categories,
	// custom tags and all links touching those entries.
	DeleteUser(ctx context.Context, id string) error

	// Categories
	AddCategory(ctx context.Context, category *models.Category) error
	GetCategory(ctx context.Context, id string) (models.Category, error)
	GetCategoriesByUser(ctx context.Context, userID string) ([]models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id string) error

	// Entries
	AddEntry(ctx context.Context, entry *models.Entry) error
	GetEntry(ctx context.Context, id string) (models.Entry, error)
	GetAllEntries(ctx context.Context) ([]models.Entry, error)
	// GetEntriesByUser returns the user's entries, newest entry date first.
	GetEntriesByUser(ctx context.Context, userID string) ([]models.Entry, error)
	GetEntriesByCategory(ctx context.Context, categoryID string) ([]models.Entry, error)
	GetEntryByUserAndDate(ctx context.Context, userID string, day time.Time) (models.Entry, error)
	// GetEntriesByDateRange returns entries whose date falls on or between the
	// calendar days of start and end, newest first.
	GetEntriesByDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.Entry, error)
	CountEntriesByUser(ctx context.Context, userID string) (int, error)
	UpdateEntry(ctx context.Context, entry *models.Entry) error
	// DeleteEntry removes the entry and its mood and tag links.
	DeleteEntry(ctx context.Context, id string) error

	// Moods
	AddMood(ctx context.Context, mood *models.Mood) error
	GetMood(ctx context.Context, id string) (models.Mood, error)
	GetAllMoods(ctx context.Context) ([]models.Mood, error)
	GetMoodsByCategory(ctx context.Context, category models.MoodCategory) ([]models.Mood, error)
	GetDefaultMoods(ctx context.Context) ([]models.Mood, error)
	UpdateMood(ctx context.Context, mood *models.Mood) error
	DeleteMood(ctx context.Context, id string) error

	// Entry moods
	GetMoodsForEntry(ctx context.Context, entryID string) ([]models.Mood, error)
	AddMoodToEntry(ctx context.Context, entryID, moodID string, primary bool) error
	RemoveMoodFromEntry(ctx context.Context, entryID, moodID string) error
	SetPrimaryMood(ctx context.Context, entryID, moodID string) error
	// GetEntryMoodLinks returns every mood link for the given entries in one query.
	GetEntryMoodLinks(ctx context.Context, entryIDs []string) ([]models.EntryMood, error)

	// Tags
	AddTag(ctx context.Context, tag *models.Tag) error
	GetTag(ctx context.Context, id string) (models.Tag, error)
	GetAllTags(ctx context.Context) ([]models.Tag, error)
	GetDefaultTags(ctx context.Context) ([]models.Tag, error)
	// GetTagsByUser returns the user's own tags plus the default tags.
	GetTagsByUser(ctx context.Context, userID string) ([]models.Tag, error)
	UpdateTag(ctx context.Context, tag *models.Tag) error
	DeleteTag(ctx context.Context, id string) error

	// Entry tags
	GetTagsForEntry(ctx context.Context, entryID string) ([]models.Tag, error)
	AddTagToEntry(ctx context.Context, entryID, tagID string) error
	RemoveTagFromEntry(ctx context.Context, entryID, tagID string) error
	// GetEntryTagLinks returns every tag link for the given entries in one query.
	GetEntryTagLinks(ctx context.Context, entryIDs []string) ([]models.EntryTag, error)

	// Utils
	GetConfigPath() string
}
