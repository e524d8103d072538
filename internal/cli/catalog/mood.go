package catalog

import (
	"fmt"
	"strings"

	"github.com/julianstephens/moodatlas/internal/cli"
	"github.com/julianstephens/moodatlas/internal/models"
	"github.com/julianstephens/moodatlas/internal/validation"
)

type MoodCmd struct {
	List   MoodListCmd   `cmd:"" help:"List the mood catalog."`
	Add    MoodAddCmd    `cmd:"" help:"Add a custom mood."`
	Delete MoodDeleteCmd `cmd:"" help:"Delete a custom mood and unlink it from entries."`
}

type MoodListCmd struct {
	Category string `help:"Only show moods in this category (Positive, Neutral, Negative)."`
}

func (c *MoodListCmd) Run(ctx *cli.Context) error {
	var moods []models.Mood
	var err error
	if c.Category != "" {
		category, perr := models.ParseMoodCategory(c.Category)
		if perr != nil {
			return perr
		}
		moods, err = ctx.Store.GetMoodsByCategory(ctx.Context(), category)
	} else {
		moods, err = ctx.Store.GetAllMoods(ctx.Context())
	}
	if err != nil {
		return fmt.Errorf("failed to get moods: %w", err)
	}
	if len(moods) == 0 {
		ctx.Println("No moods found.")
		return nil
	}

	current := models.MoodCategory("")
	for _, m := range moods {
		if m.Category != current {
			if current != "" {
				ctx.Println()
			}
			ctx.Printf("%s:\n", m.Category)
			current = m.Category
		}
		custom := ""
		if !m.IsDefault {
			custom = " (custom)"
		}
		ctx.Printf("  %s %s%s\n", m.Emoji, m.Name, custom)
	}
	return nil
}

type MoodAddCmd struct {
	Name        string `arg:"" help:"Mood name."`
	Category    string `required:"" help:"Positive, Neutral or Negative."`
	Emoji       string `help:"Emoji shown next to the mood."`
	Description string `help:"Short description."`
}

func (c *MoodAddCmd) Run(ctx *cli.Context) error {
	category, err := models.ParseMoodCategory(c.Category)
	if err != nil {
		return err
	}
	if _, err := FindMood(ctx, c.Name); err == nil {
		return fmt.Errorf("mood %q already exists", c.Name)
	}

	mood := models.Mood{
		Name:        strings.TrimSpace(c.Name),
		Category:    category,
		Emoji:       c.Emoji,
		Description: c.Description,
	}
	if err := validation.New().Struct(mood); err != nil {
		return err
	}
	if err := ctx.Store.AddMood(ctx.Context(), &mood); err != nil {
		return fmt.Errorf("failed to add mood: %w", err)
	}

	ctx.Printf("✓ Added mood: %s %s (%s)\n", mood.Emoji, mood.Name, mood.Category)
	return nil
}

type MoodDeleteCmd struct {
	Name string `arg:"" help:"Mood name."`
}

func (c *MoodDeleteCmd) Run(ctx *cli.Context) error {
	mood, err := FindMood(ctx, c.Name)
	if err != nil {
		return err
	}
	if mood.IsDefault {
		return fmt.Errorf("cannot delete default mood %q", mood.Name)
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Store.DeleteMood(ctx.Context(), mood.ID); err != nil {
		return fmt.Errorf("failed to delete mood: %w", err)
	}

	ctx.Printf("✓ Deleted mood: %s\n", mood.Name)
	return nil
}
