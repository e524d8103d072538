package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/moodatlas/internal/cli"
	"github.com/julianstephens/moodatlas/internal/cli/backups"
	"github.com/julianstephens/moodatlas/internal/cli/catalog"
	"github.com/julianstephens/moodatlas/internal/cli/entries"
	"github.com/julianstephens/moodatlas/internal/cli/reports"
	"github.com/julianstephens/moodatlas/internal/cli/settings"
	"github.com/julianstephens/moodatlas/internal/cli/system"
	"github.com/julianstephens/moodatlas/internal/cli/users"
	"github.com/julianstephens/moodatlas/internal/config"
	"github.com/julianstephens/moodatlas/internal/constants"
	"github.com/julianstephens/moodatlas/internal/errors"
	"github.com/julianstephens/moodatlas/internal/logger"
	"github.com/julianstephens/moodatlas/internal/utils"
)

var CLI struct {
	Version    kong.VersionFlag
	ConfigFile string `name:"config-file" help:"YAML config file." placeholder:"PATH"`
	Database   string `help:"SQLite path or PostgreSQL connection string. PostgreSQL credentials must NOT be embedded; use the OS keyring, PGPASSWORD or ~/.pgpass."`
	User       string `short:"u" help:"Act as this user."`
	Debug      bool   `help:"Enable debug logging."`

	Init     system.InitCmd     `cmd:"" help:"Initialize storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Validate system.ValidateCmd `cmd:"" help:"Check the journal for inconsistent data."`
	DebugCmd system.DebugCmd    `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Keyring  system.KeyringCmd  `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Backup   backups.BackupCmd  `cmd:"" help:"Manage database backups."`

	Users    users.UserCmd       `cmd:"" name:"user" help:"Manage users."`
	Category catalog.CategoryCmd `cmd:"" help:"Manage your categories."`
	Mood     catalog.MoodCmd     `cmd:"" help:"Manage the mood catalog."`
	Tag      catalog.TagCmd      `cmd:"" help:"Manage tags."`
	Entry    entries.EntryCmd    `cmd:"" help:"Write and manage journal entries."`

	Stats    reports.StatsCmd     `cmd:"" help:"Show journaling analytics."`
	Export   reports.ExportCmd    `cmd:"" help:"Export entries as text."`
	Remind   system.RemindCmd     `cmd:"" help:"Send a reminder if you haven't written today."`
	Serve    system.ServeCmd      `cmd:"" help:"Serve the read-only HTTP API."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
}

// Commands that open or inspect the database themselves.
var selfLoading = map[string]bool{
	"init":    true,
	"doctor":  true,
	"keyring": true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description(constants.DisplayName+": journaling analytics for your terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"category_color": constants.DefaultCategoryColor,
			"category_icon":  constants.DefaultCategoryIcon,
			"tag_color":      constants.DefaultTagColor,
		},
	)

	cfg, err := config.Load(CLI.ConfigFile)
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.Database != "" {
		if cfg.Database, err = utils.ExpandPath(CLI.Database); err != nil {
			errors.Fatal(err)
		}
	}
	cfg.Debug = cfg.Debug || CLI.Debug

	configFile, err := utils.ExpandPath(constants.DefaultConfigFile)
	if err != nil {
		errors.Fatal(err)
	}
	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: filepath.Dir(configFile)}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}

	store, err := cli.OpenStore(cfg.Database)
	if err != nil {
		errors.Fatal(err)
	}
	defer store.Close()

	command := strings.Fields(ctx.Command())
	if len(command) > 0 && !selfLoading[command[0]] {
		if err := store.Load(); err != nil {
			store.Close()
			errors.Fatal(err)
		}
	}

	appCtx := &cli.Context{
		Store:    store,
		Config:   cfg,
		Username: CLI.User,
		Ctx:      context.Background(),
		Out:      os.Stdout,
		In:       os.Stdin,
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}
