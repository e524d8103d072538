package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/moodatlas/internal/constants"
	"github.com/julianstephens/moodatlas/internal/logger"
	"github.com/julianstephens/moodatlas/internal/models"
)

// Engine computes analytics snapshots. It holds no mutable state and is safe
// for concurrent use.
type Engine struct {
	entries EntryRepository
	moods   MoodRepository
	tags    TagRepository
	now     func() time.Time
	loc     *time.Location
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the source of "now", used to determine today.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithLocation sets the timezone in which "today" is evaluated.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// NewEngine creates an Engine reading from the given repositories.
func NewEngine(entries EntryRepository, moods MoodRepository, tags TagRepository, opts ...Option) *Engine {
	e := &Engine{
		entries: entries,
		moods:   moods,
		tags:    tags,
		now:     time.Now,
		loc:     time.Local,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compute builds a snapshot for userID. start and end bound the reporting
// window inclusively at day granularity; either may be nil. Streaks ignore
// the window and always use the user's full history. Repository errors are
// returned wrapped with the failing fetch; errors.Is still matches the cause.
func (e *Engine) Compute(ctx context.Context, userID string, start, end *time.Time) (Snapshot, error) {
	all, err := e.entries.GetEntriesByUser(ctx, userID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to fetch entries: %w", err)
	}

	today := models.CivilDay(e.now().In(e.loc))
	history := distinctDays(all)
	filtered := filterWindow(all, start, end)

	moodsByEntry, tagsByEntry, err := e.Associations(ctx, filtered)
	if err != nil {
		return Snapshot{}, err
	}

	dist := MoodDistribution(filtered, moodsByEntry)
	ranking := TagFrequency(filtered, tagsByEntry)

	snap := Snapshot{
		TotalEntries:     len(filtered),
		CurrentStreak:    CurrentStreak(history, today),
		LongestStreak:    LongestStreak(history),
		MissedDays:       MissedDays(history, start, end, today),
		MoodDistribution: dist,
		TagFrequency:     ranking,
		MostFrequentMood: MostFrequentMood(dist),
		MostUsedTags:     MostUsedTags(ranking, constants.MostUsedTagsLimit),
		AverageWordCount: AverageWordCount(filtered),
		WordCountTrend:   WordCountTrend(filtered),
	}

	logger.Debug("Computed analytics snapshot",
		"user", userID,
		"entries", snap.TotalEntries,
		"history_days", len(history),
		"current_streak", snap.CurrentStreak,
		"longest_streak", snap.LongestStreak,
	)

	return snap, nil
}

// Associations loads mood and tag links for entries with one batch call
// per kind. The two kinds are fetched concurrently, and the first failure
// is returned wrapped with the fetch that produced it.
func (e *Engine) Associations(ctx context.Context, entries []models.Entry) (map[string][]models.Mood, map[string][]models.Tag, error) {
	if len(entries) == 0 {
		return map[string][]models.Mood{}, map[string][]models.Tag{}, nil
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ID)
	}

	var (
		moodsByEntry map[string][]models.Mood
		tagsByEntry  map[string][]models.Tag
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		links, err := e.moods.GetEntryMoodLinks(gctx, ids)
		if err != nil {
			return fmt.Errorf("failed to fetch mood links: %w", err)
		}
		catalog, err := e.moods.GetAllMoods(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch moods: %w", err)
		}
		moodsByEntry = resolveMoods(links, catalog)
		return nil
	})
	g.Go(func() error {
		links, err := e.tags.GetEntryTagLinks(gctx, ids)
		if err != nil {
			return fmt.Errorf("failed to fetch tag links: %w", err)
		}
		catalog, err := e.tags.GetAllTags(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch tags: %w", err)
		}
		tagsByEntry = resolveTags(links, catalog)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return moodsByEntry, tagsByEntry, nil
}
