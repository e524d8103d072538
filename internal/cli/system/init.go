package system

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/moodatlas/internal/cli"
	"github.com/julianstephens/moodatlas/internal/constants"
	"github.com/julianstephens/moodatlas/internal/models"
	"github.com/julianstephens/moodatlas/internal/storage"
	"github.com/julianstephens/moodatlas/internal/storage/sqlite"
	"github.com/julianstephens/moodatlas/internal/utils"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to migrate data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	// If force flag is provided, delete existing database
	if c.Force {
		if _, ok := ctx.Store.(*sqlite.Store); !ok {
			return fmt.Errorf("--force is only supported for SQLite databases")
		}
		dbPath := ctx.Store.GetConfigPath()
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			// Database exists, close it first to prevent file locking issues
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			ctx.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized %s storage at: %s\n", constants.AppName, ctx.Store.GetConfigPath())

	if c.Source != "" {
		source, err := openSource(c.Source)
		if err != nil {
			return err
		}
		if err := source.Load(); err != nil {
			return fmt.Errorf("failed to load source database: %w", err)
		}
		defer source.Close()

		ctx.Printf("Migrating data from: %s\n", source.GetConfigPath())
		if err := CopyJournal(ctx.Context(), source, ctx.Store, func(msg string) { ctx.Println(msg) }); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
	}

	return nil
}

func openSource(source string) (storage.Provider, error) {
	if cli.IsPostgres(source) {
		return cli.OpenStore(source)
	}
	path, err := utils.ExpandPath(source)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("source database not found: %w", err)
	}
	return sqlite.NewStore(path), nil
}

// CopyJournal copies every record from src into an initialized dst. Moods
// and tags are matched by name against dst's catalog so seeded defaults are
// reused instead of duplicated.
func CopyJournal(ctx context.Context, src, dst storage.Provider, progress func(string)) error {
	progress("  Migrating settings...")
	settings, err := src.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := dst.SaveSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	progress("  Migrating users...")
	users, err := src.GetAllUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to get users from source: %w", err)
	}
	for _, u := range users {
		if err := dst.AddUser(ctx, &u); err != nil {
			return fmt.Errorf("failed to add user %s: %w", u.Username, err)
		}
	}
	progress(fmt.Sprintf("    Migrated %d users", len(users)))

	progress("  Migrating moods...")
	moodIDs, err := copyMoods(ctx, src, dst)
	if err != nil {
		return err
	}

	progress("  Migrating tags...")
	tagIDs, err := copyTags(ctx, src, dst)
	if err != nil {
		return err
	}

	progress("  Migrating categories and entries...")
	entryCount := 0
	for _, u := range users {
		categories, err := src.GetCategoriesByUser(ctx, u.ID)
		if err != nil {
			return fmt.Errorf("failed to get categories for %s: %w", u.Username, err)
		}
		for _, cat := range categories {
			if err := dst.AddCategory(ctx, &cat); err != nil {
				return fmt.Errorf("failed to add category %s: %w", cat.Name, err)
			}
		}

		entries, err := src.GetEntriesByUser(ctx, u.ID)
		if err != nil {
			return fmt.Errorf("failed to get entries for %s: %w", u.Username, err)
		}
		for _, e := range entries {
			if err := dst.AddEntry(ctx, &e); err != nil {
				return fmt.Errorf("failed to add entry %s: %w", e.ID, err)
			}
		}
		if err := copyLinks(ctx, src, dst, entries, moodIDs, tagIDs); err != nil {
			return err
		}
		entryCount += len(entries)
	}
	progress(fmt.Sprintf("    Migrated %d entries", entryCount))

	return nil
}

func copyMoods(ctx context.Context, src, dst storage.Provider) (map[string]string, error) {
	srcMoods, err := src.GetAllMoods(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get moods from source: %w", err)
	}
	dstMoods, err := dst.GetAllMoods(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get moods from destination: %w", err)
	}

	existing := make(map[string]string, len(dstMoods))
	for _, m := range dstMoods {
		existing[strings.ToLower(m.Name)] = m.ID
	}

	ids := make(map[string]string, len(srcMoods))
	for _, m := range srcMoods {
		if id, ok := existing[strings.ToLower(m.Name)]; ok {
			ids[m.ID] = id
			continue
		}
		srcID := m.ID
		if err := dst.AddMood(ctx, &m); err != nil {
			return nil, fmt.Errorf("failed to add mood %s: %w", m.Name, err)
		}
		ids[srcID] = m.ID
	}
	return ids, nil
}

func copyTags(ctx context.Context, src, dst storage.Provider) (map[string]string, error) {
	srcTags, err := src.GetAllTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get tags from source: %w", err)
	}
	dstTags, err := dst.GetAllTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get tags from destination: %w", err)
	}

	key := func(t models.Tag) string { return t.UserID + "/" + strings.ToLower(t.Name) }
	existing := make(map[string]string, len(dstTags))
	for _, t := range dstTags {
		existing[key(t)] = t.ID
	}

	ids := make(map[string]string, len(srcTags))
	for _, t := range srcTags {
		if id, ok := existing[key(t)]; ok {
			ids[t.ID] = id
			continue
		}
		srcID := t.ID
		if err := dst.AddTag(ctx, &t); err != nil {
			return nil, fmt.Errorf("failed to add tag %s: %w", t.Name, err)
		}
		ids[srcID] = t.ID
	}
	return ids, nil
}

func copyLinks(ctx context.Context, src, dst storage.Provider, entries []models.Entry, moodIDs, tagIDs map[string]string) error {
	if len(entries) == 0 {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}

	moodLinks, err := src.GetEntryMoodLinks(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to get mood links from source: %w", err)
	}
	for _, l := range moodLinks {
		moodID, ok := moodIDs[l.MoodID]
		if !ok {
			continue
		}
		if err := dst.AddMoodToEntry(ctx, l.EntryID, moodID, l.IsPrimary); err != nil {
			return fmt.Errorf("failed to link mood to entry %s: %w", l.EntryID, err)
		}
	}

	tagLinks, err := src.GetEntryTagLinks(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to get tag links from source: %w", err)
	}
	for _, l := range tagLinks {
		tagID, ok := tagIDs[l.TagID]
		if !ok {
			continue
		}
		if err := dst.AddTagToEntry(ctx, l.EntryID, tagID); err != nil {
			return fmt.Errorf("failed to link tag to entry %s: %w", l.EntryID, err)
		}
	}
	return nil
}
