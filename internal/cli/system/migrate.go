package system

import (
	"fmt"

	"github.com/julianstephens/moodatlas/internal/cli"
)

type MigrateCmd struct {
	Status bool `help:"Show the schema version without applying migrations."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	runner, err := ctx.MigrationRunner()
	if err != nil {
		return err
	}

	if c.Status {
		status, err := runner.Status()
		if err != nil {
			return fmt.Errorf("failed to read schema status: %w", err)
		}
		ctx.Printf("Current schema version: %d\n", status.Current)
		ctx.Printf("Latest schema version:  %d\n", status.Latest)
		if status.UpToDate() {
			ctx.Println("Database is up to date.")
		} else {
			ctx.Printf("%d migration(s) pending.\n", len(status.Pending))
		}
		return nil
	}

	// Snapshot before touching the schema
	ctx.PerformAutomaticBackup()

	count, err := runner.ApplyMigrations(func(msg string) {
		ctx.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
	} else {
		ctx.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}

	return nil
}
