package system

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/moodatlas/internal/cli"
	"github.com/julianstephens/moodatlas/internal/models"
	"github.com/julianstephens/moodatlas/internal/storage"
)

type DebugCmd struct {
	DBPath       DebugDBPathCmd       `cmd:"" name:"db-path" help:"Show database path."`
	DumpEntry    DebugDumpEntryCmd    `cmd:"" help:"Dump an entry with its moods and tags as JSON."`
	DumpSettings DebugDumpSettingsCmd `cmd:"" help:"Dump settings as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(ctx, map[string]string{"path": ctx.Store.GetConfigPath()})
}

type DebugDumpEntryCmd struct {
	ID string `arg:"" help:"ID of the entry to dump."`
}

type entryDump struct {
	Entry models.Entry  `json:"entry"`
	Moods []models.Mood `json:"moods"`
	Tags  []models.Tag  `json:"tags"`
}

func (cmd *DebugDumpEntryCmd) Run(ctx *cli.Context) error {
	entry, err := ctx.Store.GetEntry(ctx.Context(), cmd.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("entry not found: %s", cmd.ID)
		}
		return fmt.Errorf("failed to get entry: %w", err)
	}

	dump := entryDump{Entry: entry}
	if dump.Moods, err = ctx.Store.GetMoodsForEntry(ctx.Context(), entry.ID); err != nil {
		return fmt.Errorf("failed to get moods: %w", err)
	}
	if dump.Tags, err = ctx.Store.GetTagsForEntry(ctx.Context(), entry.ID); err != nil {
		return fmt.Errorf("failed to get tags: %w", err)
	}
	return printJSON(ctx, dump)
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return printJSON(ctx, settings)
}

func printJSON(ctx *cli.Context, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}
