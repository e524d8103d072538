package export

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/julianstephens/moodatlas/internal/analytics"
	"github.com/julianstephens/moodatlas/internal/constants"
	"github.com/julianstephens/moodatlas/internal/logger"
	"github.com/julianstephens/moodatlas/internal/models"
)

// ErrNoEntries is returned when the requested range holds no entries.
var ErrNoEntries = errors.New("no entries found for the selected date range")

const (
	banner    = "=== MoodAtlas Journal Export ==="
	separator = "================================="
)

// EntrySource returns a user's entries within an inclusive day range.
type EntrySource interface {
	GetEntriesByDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.Entry, error)
}

// Exporter renders a user's journal as plain text.
type Exporter struct {
	entries EntrySource
	engine  *analytics.Engine
}

func New(entries EntrySource, engine *analytics.Engine) *Exporter {
	return &Exporter{entries: entries, engine: engine}
}

// WriteText writes every entry of user between start and end (inclusive),
// newest first, preceded by a header and an analytics summary.
func (x *Exporter) WriteText(ctx context.Context, w io.Writer, user models.User, start, end time.Time) error {
	entries, err := x.entries.GetEntriesByDateRange(ctx, user.ID, start, end)
	if err != nil {
		return fmt.Errorf("failed to fetch entries: %w", err)
	}
	if len(entries) == 0 {
		return ErrNoEntries
	}

	snap, err := x.engine.Compute(ctx, user.ID, &start, &end)
	if err != nil {
		return fmt.Errorf("failed to compute analytics: %w", err)
	}

	moodsByEntry, tagsByEntry, err := x.engine.Associations(ctx, entries)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, banner)
	fmt.Fprintf(bw, "User: %s\n", user.Username)
	fmt.Fprintf(bw, "Period: %s to %s\n", start.Format(constants.PeriodDateFormat), end.Format(constants.PeriodDateFormat))
	fmt.Fprintf(bw, "Total Entries: %d\n", len(entries))
	fmt.Fprintln(bw)
	writeSummary(bw, snap)
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, separator)
	fmt.Fprintln(bw)

	for _, entry := range entries {
		writeEntry(bw, entry, moodsByEntry[entry.ID], tagsByEntry[entry.ID])
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	logger.Info("Exported journal", "user", user.Username, "entries", len(entries))
	return nil
}

func writeSummary(w io.Writer, snap analytics.Snapshot) {
	tags := "none"
	if len(snap.MostUsedTags) > 0 {
		tags = strings.Join(snap.MostUsedTags, ", ")
	}

	fmt.Fprintln(w, "Summary")
	fmt.Fprintf(w, "  Current streak: %s\n", pluralDays(snap.CurrentStreak))
	fmt.Fprintf(w, "  Longest streak: %s\n", pluralDays(snap.LongestStreak))
	fmt.Fprintf(w, "  Missed days: %d\n", snap.MissedDays)
	fmt.Fprintf(w, "  Average words per entry: %d\n", snap.AverageWordCount)
	fmt.Fprintf(w, "  Most frequent mood: %s\n", snap.MostFrequentMood)
	fmt.Fprintf(w, "  Most used tags: %s\n", tags)
}

func writeEntry(w io.Writer, entry models.Entry, moods []models.Mood, tags []models.Tag) {
	fmt.Fprintf(w, "Date: %s\n", entry.EntryDate.Format(constants.LongDateFormat))
	fmt.Fprintf(w, "Title: %s\n", entry.Title)

	if len(moods) > 0 {
		names := make([]string, 0, len(moods))
		for _, m := range moods {
			names = append(names, strings.TrimSpace(m.Emoji+" "+m.Name))
		}
		fmt.Fprintf(w, "Moods: %s\n", strings.Join(names, ", "))
	}

	if len(tags) > 0 {
		names := make([]string, 0, len(tags))
		for _, t := range tags {
			names = append(names, t.Name)
		}
		fmt.Fprintf(w, "Tags: %s\n", strings.Join(names, ", "))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, entry.Content)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Word count: %d\n", entry.WordCount)
	fmt.Fprintln(w, "---")
	fmt.Fprintln(w)
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
