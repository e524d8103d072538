package entries

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/moodatlas/internal/cli"
	"github.com/julianstephens/moodatlas/internal/cli/catalog"
	"github.com/julianstephens/moodatlas/internal/constants"
	"github.com/julianstephens/moodatlas/internal/models"
	"github.com/julianstephens/moodatlas/internal/storage"
	"github.com/julianstephens/moodatlas/internal/validation"
)

type EntryCmd struct {
	Add    EntryAddCmd    `cmd:"" help:"Write a journal entry."`
	List   EntryListCmd   `cmd:"" help:"List entries."`
	Show   EntryShowCmd   `cmd:"" help:"Show one entry."`
	Edit   EntryEditCmd   `cmd:"" help:"Edit an entry."`
	Delete EntryDeleteCmd `cmd:"" help:"Delete an entry."`
	Mood   EntryMoodCmd   `cmd:"" help:"Manage the moods of an entry."`
	Tag    EntryTagCmd    `cmd:"" help:"Manage the tags of an entry."`
}

type EntryAddCmd struct {
	Date        string   `short:"d" help:"Entry date (YYYY-MM-DD, today or yesterday)." default:"today"`
	Title       string   `short:"t" help:"Entry title."`
	Content     string   `short:"c" help:"Entry text. Omit to open the interactive form."`
	Category    string   `help:"Category name."`
	Mood        []string `short:"m" help:"Mood names; the first is the primary mood." sep:","`
	Tag         []string `help:"Tag names." sep:","`
	PrimaryMood string   `name:"primary" help:"Primary mood, if not the first --mood."`
}

func (c *EntryAddCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	day, err := ctx.ParseDay(c.Date)
	if err != nil {
		return err
	}

	fm := entryForm{Title: c.Title, Content: c.Content, Moods: c.Mood, Tags: c.Tag}
	if strings.TrimSpace(c.Content) == "" {
		moods, err := ctx.Store.GetAllMoods(ctx.Context())
		if err != nil {
			return fmt.Errorf("failed to get moods: %w", err)
		}
		tags, err := ctx.Store.GetTagsByUser(ctx.Context(), user.ID)
		if err != nil {
			return fmt.Errorf("failed to get tags: %w", err)
		}
		if err := runForm(&fm, moods, tags); err != nil {
			return fmt.Errorf("entry form cancelled: %w", err)
		}
	}

	entry := models.Entry{
		UserID:    user.ID,
		Title:     strings.TrimSpace(fm.Title),
		Content:   fm.Content,
		EntryDate: day,
	}
	if entry.Title == "" {
		entry.Title = day.Format(constants.LongDateFormat)
	}
	if c.Category != "" {
		category, err := catalog.FindCategory(ctx, user.ID, c.Category)
		if err != nil {
			return err
		}
		entry.CategoryID = category.ID
	}

	// Resolve every name before writing so a typo leaves nothing behind
	moods, err := resolveMoods(ctx, fm.Moods)
	if err != nil {
		return err
	}
	tags, err := resolveTags(ctx, user.ID, fm.Tags)
	if err != nil {
		return err
	}
	primary := ""
	if len(moods) > 0 {
		primary = moods[0].ID
	}
	if c.PrimaryMood != "" {
		m, err := catalog.FindMood(ctx, c.PrimaryMood)
		if err != nil {
			return err
		}
		primary = m.ID
		if !containsMood(moods, m.ID) {
			moods = append(moods, m)
		}
	}

	if err := validation.New().Struct(entry); err != nil {
		return err
	}
	if err := ctx.Store.AddEntry(ctx.Context(), &entry); err != nil {
		return fmt.Errorf("failed to add entry: %w", err)
	}
	for _, m := range moods {
		if err := ctx.Store.AddMoodToEntry(ctx.Context(), entry.ID, m.ID, m.ID == primary); err != nil {
			return fmt.Errorf("failed to add mood %s: %w", m.Name, err)
		}
	}
	for _, t := range tags {
		if err := ctx.Store.AddTagToEntry(ctx.Context(), entry.ID, t.ID); err != nil {
			return fmt.Errorf("failed to add tag %s: %w", t.Name, err)
		}
	}

	ctx.Printf("✓ Added entry for %s (%d words)\n", day.Format(constants.DateFormat), entry.WordCount)
	ctx.Printf("  ID: %s\n", entry.ID)
	return nil
}

type EntryListCmd struct {
	From  string `help:"First day to include (YYYY-MM-DD)."`
	To    string `help:"Last day to include (YYYY-MM-DD)."`
	Limit int    `short:"n" help:"Show at most this many entries (0 for all)." default:"0"`
}

func (c *EntryListCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	start, end, err := ctx.ParseRange(c.From, c.To)
	if err != nil {
		return err
	}

	var entries []models.Entry
	if start == nil && end == nil {
		entries, err = ctx.Store.GetEntriesByUser(ctx.Context(), user.ID)
	} else {
		from, to := openRange(start, end)
		entries, err = ctx.Store.GetEntriesByDateRange(ctx.Context(), user.ID, from, to)
	}
	if err != nil {
		return fmt.Errorf("failed to get entries: %w", err)
	}
	if len(entries) == 0 {
		ctx.Println("No entries found.")
		return nil
	}
	if c.Limit > 0 && len(entries) > c.Limit {
		entries = entries[:c.Limit]
	}

	moodsByEntry, tagsByEntry, err := engineAssociations(ctx, entries)
	if err != nil {
		return err
	}
	for _, e := range entries {
		ctx.Printf("%s  %s  (%d words)\n", e.EntryDate.Format(constants.DateFormat), e.Title, e.WordCount)
		if line := moodLine(moodsByEntry[e.ID]); line != "" {
			ctx.Printf("    %s\n", line)
		}
		if names := tagNames(tagsByEntry[e.ID]); names != "" {
			ctx.Printf("    #%s\n", names)
		}
		ctx.Printf("    id: %s\n", e.ID)
	}
	return nil
}

type EntryShowCmd struct {
	Entry string `arg:"" help:"Entry ID or date (YYYY-MM-DD, today, yesterday)."`
}

func (c *EntryShowCmd) Run(ctx *cli.Context) error {
	entry, err := resolveEntry(ctx, c.Entry)
	if err != nil {
		return err
	}
	moods, err := ctx.Store.GetMoodsForEntry(ctx.Context(), entry.ID)
	if err != nil {
		return fmt.Errorf("failed to get moods: %w", err)
	}
	tags, err := ctx.Store.GetTagsForEntry(ctx.Context(), entry.ID)
	if err != nil {
		return fmt.Errorf("failed to get tags: %w", err)
	}

	ctx.Printf("%s\n", entry.EntryDate.Format(constants.LongDateFormat))
	ctx.Printf("%s\n", entry.Title)
	if entry.CategoryID != "" {
		if category, err := ctx.Store.GetCategory(ctx.Context(), entry.CategoryID); err == nil {
			ctx.Printf("Category: %s %s\n", category.Icon, category.Name)
		}
	}
	if line := moodLine(moods); line != "" {
		ctx.Printf("Moods: %s\n", line)
	}
	if names := tagNames(tags); names != "" {
		ctx.Printf("Tags: %s\n", names)
	}
	ctx.Println()
	ctx.Println(entry.Content)
	ctx.Println()
	ctx.Printf("Word count: %d\n", entry.WordCount)
	return nil
}

type EntryEditCmd struct {
	Entry    string  `arg:"" help:"Entry ID or date."`
	Title    *string `help:"New title."`
	Content  *string `help:"New content."`
	Date     string  `help:"Move the entry to another day."`
	Category *string `help:"New category name (empty to clear)."`
}

func (c *EntryEditCmd) Run(ctx *cli.Context) error {
	entry, err := resolveEntry(ctx, c.Entry)
	if err != nil {
		return err
	}

	changed := false
	if c.Title != nil {
		entry.Title = strings.TrimSpace(*c.Title)
		changed = true
	}
	if c.Content != nil {
		entry.Content = *c.Content
		changed = true
	}
	if c.Date != "" {
		day, err := ctx.ParseDay(c.Date)
		if err != nil {
			return err
		}
		entry.EntryDate = day
		changed = true
	}
	if c.Category != nil {
		entry.CategoryID = ""
		if *c.Category != "" {
			category, err := catalog.FindCategory(ctx, entry.UserID, *c.Category)
			if err != nil {
				return err
			}
			entry.CategoryID = category.ID
		}
		changed = true
	}
	if !changed {
		ctx.Println("No changes specified.")
		return nil
	}

	if err := validation.New().Struct(entry); err != nil {
		return err
	}
	if err := ctx.Store.UpdateEntry(ctx.Context(), &entry); err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	ctx.Printf("✓ Updated entry for %s (%d words)\n", entry.EntryDate.Format(constants.DateFormat), entry.WordCount)
	return nil
}

type EntryDeleteCmd struct {
	Entry string `arg:"" help:"Entry ID or date."`
}

func (c *EntryDeleteCmd) Run(ctx *cli.Context) error {
	entry, err := resolveEntry(ctx, c.Entry)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Store.DeleteEntry(ctx.Context(), entry.ID); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	ctx.Printf("✓ Deleted entry: %s (%s)\n", entry.Title, entry.EntryDate.Format(constants.DateFormat))
	return nil
}

// resolveEntry finds one of the current user's entries by ID, or by day when
// ref parses as a date.
func resolveEntry(ctx *cli.Context, ref string) (models.Entry, error) {
	user, err := ctx.CurrentUser()
	if err != nil {
		return models.Entry{}, err
	}

	entry, err := ctx.Store.GetEntry(ctx.Context(), ref)
	switch {
	case err == nil:
		if entry.UserID != user.ID {
			return models.Entry{}, fmt.Errorf("entry %s not found", ref)
		}
		return entry, nil
	case !errors.Is(err, storage.ErrNotFound):
		return models.Entry{}, fmt.Errorf("failed to get entry: %w", err)
	}

	day, perr := ctx.ParseDay(ref)
	if perr != nil {
		return models.Entry{}, fmt.Errorf("entry %s not found", ref)
	}
	entry, err = ctx.Store.GetEntryByUserAndDate(ctx.Context(), user.ID, day)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Entry{}, fmt.Errorf("no entry on %s", day.Format(constants.DateFormat))
		}
		return models.Entry{}, fmt.Errorf("failed to get entry: %w", err)
	}
	return entry, nil
}
