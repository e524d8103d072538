package entries

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/moodatlas/internal/models"
)

// entryForm holds the values collected by the interactive entry form.
type entryForm struct {
	Title   string
	Content string
	Moods   []string
	Tags    []string
}

// runForm is replaced in tests.
var runForm = func(fm *entryForm, moods []models.Mood, tags []models.Tag) error {
	return newEntryForm(fm, moods, tags).Run()
}

func newEntryForm(fm *entryForm, moods []models.Mood, tags []models.Tag) *huh.Form {
	moodOptions := make([]huh.Option[string], 0, len(moods))
	for _, m := range moods {
		moodOptions = append(moodOptions, huh.NewOption(fmt.Sprintf("%s %s", m.Emoji, m.Name), m.Name))
	}
	tagOptions := make([]huh.Option[string], 0, len(tags))
	for _, t := range tags {
		tagOptions = append(tagOptions, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(func(s string) error {
					if len(s) > 200 {
						return fmt.Errorf("title must be at most 200 characters")
					}
					return nil
				}),
			huh.NewText().
				Title("What's on your mind?").
				Value(&fm.Content).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("entry cannot be empty")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Moods").
				Description("The first one selected is the primary mood").
				Options(moodOptions...).
				Value(&fm.Moods),
			huh.NewMultiSelect[string]().
				Title("Tags").
				Options(tagOptions...).
				Value(&fm.Tags),
		),
	).WithTheme(huh.ThemeDracula())
}
