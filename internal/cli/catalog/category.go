package catalog

import (
	"fmt"
	"strings"

	"github.com/julianstephens/moodatlas/internal/cli"
	"github.com/julianstephens/moodatlas/internal/constants"
	"github.com/julianstephens/moodatlas/internal/models"
	"github.com/julianstephens/moodatlas/internal/validation"
)

type CategoryCmd struct {
	Add    CategoryAddCmd    `cmd:"" help:"Create a category."`
	List   CategoryListCmd   `cmd:"" help:"List your categories."`
	Edit   CategoryEditCmd   `cmd:"" help:"Rename or restyle a category."`
	Delete CategoryDeleteCmd `cmd:"" help:"Delete a category. Its entries are kept uncategorized."`
}

type CategoryAddCmd struct {
	Name  string `arg:"" help:"Category name."`
	Color string `help:"Hex color." default:"${category_color}"`
	Icon  string `help:"Icon shown next to the name." default:"${category_icon}"`
}

func (c *CategoryAddCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	if _, err := FindCategory(ctx, user.ID, c.Name); err == nil {
		return fmt.Errorf("category %q already exists", c.Name)
	}

	category := models.Category{
		UserID: user.ID,
		Name:   strings.TrimSpace(c.Name),
		Color:  orDefault(c.Color, constants.DefaultCategoryColor),
		Icon:   orDefault(c.Icon, constants.DefaultCategoryIcon),
	}
	if err := validation.New().Struct(category); err != nil {
		return err
	}
	if err := ctx.Store.AddCategory(ctx.Context(), &category); err != nil {
		return fmt.Errorf("failed to add category: %w", err)
	}

	ctx.Printf("✓ Added category: %s %s\n", category.Icon, category.Name)
	return nil
}

type CategoryListCmd struct{}

func (c *CategoryListCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	categories, err := ctx.Store.GetCategoriesByUser(ctx.Context(), user.ID)
	if err != nil {
		return fmt.Errorf("failed to get categories: %w", err)
	}
	if len(categories) == 0 {
		ctx.Println("No categories found.")
		return nil
	}

	for _, cat := range categories {
		entries, err := ctx.Store.GetEntriesByCategory(ctx.Context(), cat.ID)
		if err != nil {
			return fmt.Errorf("failed to get entries: %w", err)
		}
		ctx.Printf("%s %s  %s  (%d entries)\n", cat.Icon, cat.Name, cat.Color, len(entries))
	}
	return nil
}

type CategoryEditCmd struct {
	Name    string `arg:"" help:"Current category name."`
	NewName string `name:"name" help:"New name."`
	Color   string `help:"New hex color."`
	Icon    string `help:"New icon."`
}

func (c *CategoryEditCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	category, err := FindCategory(ctx, user.ID, c.Name)
	if err != nil {
		return err
	}

	if c.NewName == "" && c.Color == "" && c.Icon == "" {
		ctx.Println("No changes specified.")
		return nil
	}
	if c.NewName != "" {
		if other, err := FindCategory(ctx, user.ID, c.NewName); err == nil && other.ID != category.ID {
			return fmt.Errorf("category %q already exists", c.NewName)
		}
		category.Name = strings.TrimSpace(c.NewName)
	}
	if c.Color != "" {
		category.Color = c.Color
	}
	if c.Icon != "" {
		category.Icon = c.Icon
	}

	if err := validation.New().Struct(category); err != nil {
		return err
	}
	if err := ctx.Store.UpdateCategory(ctx.Context(), &category); err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	ctx.Printf("✓ Updated category: %s %s\n", category.Icon, category.Name)
	return nil
}

type CategoryDeleteCmd struct {
	Name string `arg:"" help:"Category name."`
}

func (c *CategoryDeleteCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	category, err := FindCategory(ctx, user.ID, c.Name)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Store.DeleteCategory(ctx.Context(), category.ID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	ctx.Printf("✓ Deleted category: %s\n", category.Name)
	return nil
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
