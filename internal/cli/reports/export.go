package reports

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/moodatlas/internal/cli"
	"github.com/julianstephens/moodatlas/internal/export"
	"github.com/julianstephens/moodatlas/internal/utils"
)

type ExportCmd struct {
	From   string `help:"First day to include (YYYY-MM-DD). Defaults to your first entry."`
	To     string `help:"Last day to include (YYYY-MM-DD). Defaults to today."`
	Output string `short:"o" help:"Write to this file instead of stdout." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	start, end, err := ctx.ParseRange(c.From, c.To)
	if err != nil {
		return err
	}

	if end == nil {
		today, err := ctx.Today()
		if err != nil {
			return err
		}
		end = &today
	}
	if start == nil {
		entries, err := ctx.Store.GetEntriesByUser(ctx.Context(), user.ID)
		if err != nil {
			return fmt.Errorf("failed to get entries: %w", err)
		}
		if len(entries) == 0 {
			return export.ErrNoEntries
		}
		// Newest first, so the last entry is the earliest
		first := entries[len(entries)-1].EntryDate
		start = &first
	}

	engine, err := ctx.Engine()
	if err != nil {
		return err
	}
	exporter := export.New(ctx.Store, engine)

	if c.Output == "" {
		return exporter.WriteText(ctx.Context(), ctx.Stdout(), user, *start, *end)
	}

	path, err := utils.ExpandPath(c.Output)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	err = exporter.WriteText(ctx.Context(), f, user, *start, *end)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		if errors.Is(err, export.ErrNoEntries) {
			_ = os.Remove(path)
		}
		return err
	}

	ctx.Printf("✓ Exported %s's journal to %s\n", user.Username, path)
	return nil
}

