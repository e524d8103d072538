package catalog

import (
	"fmt"
	"strings"

	"github.com/julianstephens/moodatlas/internal/cli"
	"github.com/julianstephens/moodatlas/internal/constants"
	"github.com/julianstephens/moodatlas/internal/models"
	"github.com/julianstephens/moodatlas/internal/validation"
)

type TagCmd struct {
	List   TagListCmd   `cmd:"" help:"List your tags and the default tags."`
	Add    TagAddCmd    `cmd:"" help:"Create a tag."`
	Delete TagDeleteCmd `cmd:"" help:"Delete one of your tags and unlink it from entries."`
}

type TagListCmd struct{}

func (c *TagListCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	tags, err := ctx.Store.GetTagsByUser(ctx.Context(), user.ID)
	if err != nil {
		return fmt.Errorf("failed to get tags: %w", err)
	}
	if len(tags) == 0 {
		ctx.Println("No tags found.")
		return nil
	}

	for _, t := range tags {
		kind := "custom"
		if t.IsDefault {
			kind = "default"
		}
		ctx.Printf("  %-20s %s  (%s)\n", t.Name, t.Color, kind)
	}
	return nil
}

type TagAddCmd struct {
	Name  string `arg:"" help:"Tag name."`
	Color string `help:"Hex color." default:"${tag_color}"`
}

func (c *TagAddCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	if _, err := FindTag(ctx, user.ID, c.Name); err == nil {
		return fmt.Errorf("tag %q already exists", c.Name)
	}

	tag := models.Tag{
		UserID: user.ID,
		Name:   strings.TrimSpace(c.Name),
		Color:  orDefault(c.Color, constants.DefaultTagColor),
	}
	if err := validation.New().Struct(tag); err != nil {
		return err
	}
	if err := ctx.Store.AddTag(ctx.Context(), &tag); err != nil {
		return fmt.Errorf("failed to add tag: %w", err)
	}

	ctx.Printf("✓ Added tag: %s\n", tag.Name)
	return nil
}

type TagDeleteCmd struct {
	Name string `arg:"" help:"Tag name."`
}

func (c *TagDeleteCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	tag, err := FindTag(ctx, user.ID, c.Name)
	if err != nil {
		return err
	}
	if tag.IsDefault {
		return fmt.Errorf("cannot delete default tag %q", tag.Name)
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Store.DeleteTag(ctx.Context(), tag.ID); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	ctx.Printf("✓ Deleted tag: %s\n", tag.Name)
	return nil
}
