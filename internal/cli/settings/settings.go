package settings

import (
	"errors"
	"fmt"

	"github.com/julianstephens/moodatlas/internal/cli"
	"github.com/julianstephens/moodatlas/internal/storage"
	"github.com/julianstephens/moodatlas/internal/utils"
)

type SettingsCmd struct {
	Show SettingsShowCmd `cmd:"" default:"1" help:"Show current settings."`
	Set  SettingsSetCmd  `cmd:"" help:"Update settings."`
}

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	defaultUser := settings.DefaultUser
	if defaultUser == "" {
		defaultUser = "(none)"
	}

	ctx.Println("Current Settings:")
	ctx.Printf("  Timezone:          %s\n", settings.Timezone)
	ctx.Printf("  Default User:      %s\n", defaultUser)
	ctx.Printf("  Reminders Enabled: %v\n", settings.RemindersEnabled)

	if loc, err := ctx.Location(); err == nil && loc.String() != settings.Timezone {
		ctx.Printf("\nEffective timezone: %s (from config)\n", loc)
	}
	return nil
}

type SettingsSetCmd struct {
	Timezone    *string `help:"IANA timezone name, or Local."`
	DefaultUser *string `name:"default-user" help:"User picked when --user is omitted (empty to clear)."`
	Reminders   *bool   `help:"Enable or disable daily reminders."`
}

func (c *SettingsSetCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	updated := false
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone %q", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.DefaultUser != nil {
		if *c.DefaultUser != "" {
			if _, err := ctx.Store.GetUserByUsername(ctx.Context(), *c.DefaultUser); err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return fmt.Errorf("user %q not found", *c.DefaultUser)
				}
				return fmt.Errorf("failed to get user: %w", err)
			}
		}
		settings.DefaultUser = *c.DefaultUser
		updated = true
	}
	if c.Reminders != nil {
		settings.RemindersEnabled = *c.Reminders
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use 'settings show' to view settings or flags to update them.")
		return nil
	}

	if err := ctx.Store.SaveSettings(ctx.Context(), settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("Settings updated successfully.")
	return nil
}
