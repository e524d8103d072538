package entries

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/moodatlas/internal/cli"
	"github.com/julianstephens/moodatlas/internal/cli/catalog"
	"github.com/julianstephens/moodatlas/internal/models"
)

type EntryMoodCmd struct {
	Add     EntryMoodAddCmd     `cmd:"" help:"Attach a mood to an entry."`
	Remove  EntryMoodRemoveCmd  `cmd:"" help:"Detach a mood from an entry."`
	Primary EntryMoodPrimaryCmd `cmd:"" help:"Make an attached mood the primary one."`
}

type EntryMoodAddCmd struct {
	Entry   string `arg:"" help:"Entry ID or date."`
	Mood    string `arg:"" help:"Mood name."`
	Primary bool   `help:"Make it the primary mood."`
}

func (c *EntryMoodAddCmd) Run(ctx *cli.Context) error {
	entry, err := resolveEntry(ctx, c.Entry)
	if err != nil {
		return err
	}
	mood, err := catalog.FindMood(ctx, c.Mood)
	if err != nil {
		return err
	}
	if err := ctx.Store.AddMoodToEntry(ctx.Context(), entry.ID, mood.ID, c.Primary); err != nil {
		return fmt.Errorf("failed to add mood: %w", err)
	}
	ctx.Printf("✓ Added mood %s %s to %s\n", mood.Emoji, mood.Name, entry.Title)
	return nil
}

type EntryMoodRemoveCmd struct {
	Entry string `arg:"" help:"Entry ID or date."`
	Mood  string `arg:"" help:"Mood name."`
}

func (c *EntryMoodRemoveCmd) Run(ctx *cli.Context) error {
	entry, err := resolveEntry(ctx, c.Entry)
	if err != nil {
		return err
	}
	mood, err := catalog.FindMood(ctx, c.Mood)
	if err != nil {
		return err
	}
	if err := ctx.Store.RemoveMoodFromEntry(ctx.Context(), entry.ID, mood.ID); err != nil {
		return fmt.Errorf("failed to remove mood: %w", err)
	}
	ctx.Printf("✓ Removed mood %s from %s\n", mood.Name, entry.Title)
	return nil
}

type EntryMoodPrimaryCmd struct {
	Entry string `arg:"" help:"Entry ID or date."`
	Mood  string `arg:"" help:"Mood name."`
}

func (c *EntryMoodPrimaryCmd) Run(ctx *cli.Context) error {
	entry, err := resolveEntry(ctx, c.Entry)
	if err != nil {
		return err
	}
	mood, err := catalog.FindMood(ctx, c.Mood)
	if err != nil {
		return err
	}
	if err := ctx.Store.SetPrimaryMood(ctx.Context(), entry.ID, mood.ID); err != nil {
		return fmt.Errorf("failed to set primary mood: %w", err)
	}
	ctx.Printf("✓ %s is now the primary mood of %s\n", mood.Name, entry.Title)
	return nil
}

type EntryTagCmd struct {
	Add    EntryTagAddCmd    `cmd:"" help:"Attach a tag to an entry."`
	Remove EntryTagRemoveCmd `cmd:"" help:"Detach a tag from an entry."`
}

type EntryTagAddCmd struct {
	Entry string `arg:"" help:"Entry ID or date."`
	Tag   string `arg:"" help:"Tag name."`
}

func (c *EntryTagAddCmd) Run(ctx *cli.Context) error {
	entry, err := resolveEntry(ctx, c.Entry)
	if err != nil {
		return err
	}
	tag, err := catalog.FindTag(ctx, entry.UserID, c.Tag)
	if err != nil {
		return err
	}
	if err := ctx.Store.AddTagToEntry(ctx.Context(), entry.ID, tag.ID); err != nil {
		return fmt.Errorf("failed to add tag: %w", err)
	}
	ctx.Printf("✓ Tagged %s with %s\n", entry.Title, tag.Name)
	return nil
}

type EntryTagRemoveCmd struct {
	Entry string `arg:"" help:"Entry ID or date."`
	Tag   string `arg:"" help:"Tag name."`
}

func (c *EntryTagRemoveCmd) Run(ctx *cli.Context) error {
	entry, err := resolveEntry(ctx, c.Entry)
	if err != nil {
		return err
	}
	tag, err := catalog.FindTag(ctx, entry.UserID, c.Tag)
	if err != nil {
		return err
	}
	if err := ctx.Store.RemoveTagFromEntry(ctx.Context(), entry.ID, tag.ID); err != nil {
		return fmt.Errorf("failed to remove tag: %w", err)
	}
	ctx.Printf("✓ Removed tag %s from %s\n", tag.Name, entry.Title)
	return nil
}

func resolveMoods(ctx *cli.Context, names []string) ([]models.Mood, error) {
	moods := make([]models.Mood, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		m, err := catalog.FindMood(ctx, name)
		if err != nil {
			return nil, err
		}
		if !containsMood(moods, m.ID) {
			moods = append(moods, m)
		}
	}
	return moods, nil
}

func resolveTags(ctx *cli.Context, userID string, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		t, err := catalog.FindTag(ctx, userID, name)
		if err != nil {
			return nil, err
		}
		if !seen[t.ID] {
			seen[t.ID] = true
			tags = append(tags, t)
		}
	}
	return tags, nil
}

func containsMood(moods []models.Mood, id string) bool {
	for _, m := range moods {
		if m.ID == id {
			return true
		}
	}
	return false
}

func engineAssociations(ctx *cli.Context, entries []models.Entry) (map[string][]models.Mood, map[string][]models.Tag, error) {
	engine, err := ctx.Engine()
	if err != nil {
		return nil, nil, err
	}
	moods, tags, err := engine.Associations(ctx.Context(), entries)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load moods and tags: %w", err)
	}
	return moods, tags, nil
}

func moodLine(moods []models.Mood) string {
	parts := make([]string, 0, len(moods))
	for _, m := range moods {
		parts = append(parts, strings.TrimSpace(m.Emoji+" "+m.Name))
	}
	return strings.Join(parts, ", ")
}

func tagNames(tags []models.Tag) string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return strings.Join(names, ", #")
}

// openRange fills a missing bound with a date outside any journal.
func openRange(start, end *time.Time) (time.Time, time.Time) {
	from := time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
	if start != nil {
		from = *start
	}
	if end != nil {
		to = *end
	}
	return from, to
}
