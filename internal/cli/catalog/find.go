package catalog

import (
	"fmt"
	"strings"

	"github.com/julianstephens/moodatlas/internal/cli"
	"github.com/julianstephens/moodatlas/internal/models"
)

// FindMood looks up a catalog mood by case-insensitive name.
func FindMood(ctx *cli.Context, name string) (models.Mood, error) {
	moods, err := ctx.Store.GetAllMoods(ctx.Context())
	if err != nil {
		return models.Mood{}, fmt.Errorf("failed to get moods: %w", err)
	}
	for _, m := range moods {
		if strings.EqualFold(m.Name, strings.TrimSpace(name)) {
			return m, nil
		}
	}
	return models.Mood{}, fmt.Errorf("mood %q not found", name)
}

// FindTag looks up a tag visible to userID (their own or a default) by name.
func FindTag(ctx *cli.Context, userID, name string) (models.Tag, error) {
	tags, err := ctx.Store.GetTagsByUser(ctx.Context(), userID)
	if err != nil {
		return models.Tag{}, fmt.Errorf("failed to get tags: %w", err)
	}
	for _, t := range tags {
		if strings.EqualFold(t.Name, strings.TrimSpace(name)) {
			return t, nil
		}
	}
	return models.Tag{}, fmt.Errorf("tag %q not found", name)
}

// FindCategory looks up one of userID's categories by name.
func FindCategory(ctx *cli.Context, userID, name string) (models.Category, error) {
	categories, err := ctx.Store.GetCategoriesByUser(ctx.Context(), userID)
	if err != nil {
		return models.Category{}, fmt.Errorf("failed to get categories: %w", err)
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c, nil
		}
	}
	return models.Category{}, fmt.Errorf("category %q not found", name)
}
