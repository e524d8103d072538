package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/moodatlas/internal/analytics"
	"github.com/julianstephens/moodatlas/internal/cli"
	"github.com/julianstephens/moodatlas/internal/constants"
	"github.com/julianstephens/moodatlas/internal/logger"
	"github.com/julianstephens/moodatlas/internal/notifier"
	"github.com/julianstephens/moodatlas/internal/storage"
)

// Sender delivers a desktop notification.
type Sender interface {
	Notify(title, text string) error
}

type RemindCmd struct {
	DryRun bool `help:"Print the reminder to stdout instead of sending it."`

	sender Sender
}

func (c *RemindCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if (ctx.Config != nil && !ctx.Config.Reminders.Enabled) || !settings.RemindersEnabled {
		if c.DryRun {
			ctx.Println("Reminders are disabled.")
		}
		return nil
	}

	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	today, err := ctx.Today()
	if err != nil {
		return err
	}

	_, err = ctx.Store.GetEntryByUserAndDate(ctx.Context(), user.ID, today)
	if err == nil {
		if c.DryRun {
			ctx.Println("Already journaled today.")
		}
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to check today's entry: %w", err)
	}

	entries, err := ctx.Store.GetEntriesByUser(ctx.Context(), user.ID)
	if err != nil {
		return fmt.Errorf("failed to get entries: %w", err)
	}
	days := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		days = append(days, e.EntryDate)
	}
	// The streak that ends today without an entry
	atRisk := analytics.CurrentStreak(days, today.AddDate(0, 0, -1))
	msg := notifier.ReminderMessage(user.Username, atRisk)

	if c.DryRun {
		ctx.Println("[DryRun] " + msg)
		return nil
	}

	sender := c.sender
	if sender == nil {
		sender = notifier.New()
	}
	if err := sender.Notify(constants.DisplayName, msg); err != nil {
		return err
	}
	logger.Info("Reminder sent", "user", user.Username, "streak", atRisk)
	return nil
}
