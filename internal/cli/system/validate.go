package system

import (
	"context"
	"fmt"

	"github.com/julianstephens/moodatlas/internal/cli"
	"github.com/julianstephens/moodatlas/internal/storage"
	"github.com/julianstephens/moodatlas/internal/validation"
)

type ValidateCmd struct{}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	journal, err := LoadJournal(ctx.Context(), ctx.Store)
	if err != nil {
		return err
	}

	result := validation.New().ValidateJournal(journal)
	ctx.Print(result.FormatReport())
	if result.HasConflicts() {
		return fmt.Errorf("found %d conflict(s)", len(result.Conflicts))
	}
	return nil
}

// LoadJournal reads every record the validator checks.
func LoadJournal(ctx context.Context, store storage.Provider) (validation.Journal, error) {
	var j validation.Journal
	var err error

	if j.Users, err = store.GetAllUsers(ctx); err != nil {
		return j, fmt.Errorf("failed to get users: %w", err)
	}
	for _, u := range j.Users {
		categories, err := store.GetCategoriesByUser(ctx, u.ID)
		if err != nil {
			return j, fmt.Errorf("failed to get categories: %w", err)
		}
		j.Categories = append(j.Categories, categories...)
	}
	if j.Entries, err = store.GetAllEntries(ctx); err != nil {
		return j, fmt.Errorf("failed to get entries: %w", err)
	}
	if j.Moods, err = store.GetAllMoods(ctx); err != nil {
		return j, fmt.Errorf("failed to get moods: %w", err)
	}
	if j.Tags, err = store.GetAllTags(ctx); err != nil {
		return j, fmt.Errorf("failed to get tags: %w", err)
	}

	ids := make([]string, 0, len(j.Entries))
	for _, e := range j.Entries {
		ids = append(ids, e.ID)
	}
	if j.MoodLinks, err = store.GetEntryMoodLinks(ctx, ids); err != nil {
		return j, fmt.Errorf("failed to get mood links: %w", err)
	}
	if j.TagLinks, err = store.GetEntryTagLinks(ctx, ids); err != nil {
		return j, fmt.Errorf("failed to get tag links: %w", err)
	}
	return j, nil
}
