package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/moodatlas/internal/analytics"
	"github.com/julianstephens/moodatlas/internal/backup"
	"github.com/julianstephens/moodatlas/internal/config"
	"github.com/julianstephens/moodatlas/internal/constants"
	"github.com/julianstephens/moodatlas/internal/keyring"
	"github.com/julianstephens/moodatlas/internal/logger"
	"github.com/julianstephens/moodatlas/internal/migration"
	"github.com/julianstephens/moodatlas/internal/models"
	"github.com/julianstephens/moodatlas/internal/storage"
	"github.com/julianstephens/moodatlas/internal/storage/postgres"
	"github.com/julianstephens/moodatlas/internal/storage/sqlite"
	"github.com/julianstephens/moodatlas/internal/utils"
)

type Context struct {
	Store  storage.Provider
	Config *config.Config
	// Username is the --user flag; empty falls back to config and settings.
	Username string

	Ctx context.Context
	Out io.Writer
	In  io.Reader
	Now func() time.Time
}

// Context returns the command's context.Context.
func (c *Context) Context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Stdin() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

func (c *Context) Print(args ...any) {
	fmt.Fprint(c.Stdout(), args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Stdout(), args...)
}

// Clock returns the current time, honoring Now when set.
func (c *Context) Clock() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Location resolves the timezone used for "today". A timezone set in the
// config file or environment wins over the per-database setting.
func (c *Context) Location() (*time.Location, error) {
	tz := ""
	if c.Config != nil && c.Config.Timezone != "" && c.Config.Timezone != constants.DefaultTimezone {
		tz = c.Config.Timezone
	} else {
		settings, err := c.Store.GetSettings(c.Context())
		if err != nil {
			return nil, fmt.Errorf("failed to get settings: %w", err)
		}
		tz = settings.Timezone
	}
	loc, err := utils.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}

// Today returns today's calendar day, as midnight UTC, in the configured timezone.
func (c *Context) Today() (time.Time, error) {
	loc, err := c.Location()
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := c.Clock().In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// ParseDay accepts YYYY-MM-DD, "today" or "yesterday". An empty value means today.
func (c *Context) ParseDay(value string) (time.Time, error) {
	today, err := c.Today()
	if err != nil {
		return time.Time{}, err
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}
	day, err := utils.ParseDateInLocation(value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD, today or yesterday)", value)
	}
	return day, nil
}

// ParseRange parses optional --from/--to flags. Either may be empty.
func (c *Context) ParseRange(from, to string) (*time.Time, *time.Time, error) {
	start, err := utils.ParseOptionalDate(from, time.UTC)
	if err != nil {
		return nil, nil, err
	}
	end, err := utils.ParseOptionalDate(to, time.UTC)
	if err != nil {
		return nil, nil, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, nil, fmt.Errorf("--to (%s) is before --from (%s)", to, from)
	}
	return start, end, nil
}

// CurrentUser resolves the acting user from --user, the config file, the
// default_user setting, or the only user in the database, in that order.
func (c *Context) CurrentUser() (models.User, error) {
	ctx := c.Context()

	name := c.Username
	if name == "" && c.Config != nil {
		name = c.Config.User
	}
	if name == "" {
		settings, err := c.Store.GetSettings(ctx)
		if err != nil {
			return models.User{}, fmt.Errorf("failed to get settings: %w", err)
		}
		name = settings.DefaultUser
	}

	if name != "" {
		user, err := c.Store.GetUserByUsername(ctx, name)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return models.User{}, fmt.Errorf("user %q not found", name)
			}
			return models.User{}, fmt.Errorf("failed to get user: %w", err)
		}
		return user, nil
	}

	users, err := c.Store.GetAllUsers(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to list users: %w", err)
	}
	switch len(users) {
	case 0:
		return models.User{}, fmt.Errorf("no users found. Create one with '%s user add <name>'", constants.AppName)
	case 1:
		return users[0], nil
	default:
		return models.User{}, fmt.Errorf("multiple users exist. Pass --user or run '%s settings set --default-user <name>'", constants.AppName)
	}
}

// Engine builds an analytics engine over the store using the configured timezone.
func (c *Context) Engine() (*analytics.Engine, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	return analytics.NewEngine(c.Store, c.Store, c.Store,
		analytics.WithClock(c.Clock),
		analytics.WithLocation(loc),
	), nil
}

// BackupManager returns a backup manager for SQLite stores, or false for
// stores that cannot be backed up by file copy.
func (c *Context) BackupManager() (*backup.Manager, bool) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil, false
	}
	return backup.NewManager(c.Store.GetConfigPath()), true
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr, ok := c.BackupManager()
	if !ok {
		return
	}
	if _, err := mgr.Create(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

type migrator interface {
	MigrationRunner() (*migration.Runner, error)
}

// MigrationRunner returns the schema runner of a loaded store.
func (c *Context) MigrationRunner() (*migration.Runner, error) {
	m, ok := c.Store.(migrator)
	if !ok {
		return nil, fmt.Errorf("store does not support migrations")
	}
	return m.MigrationRunner()
}

// IsPostgres reports whether value should be opened as a PostgreSQL database.
func IsPostgres(value string) bool {
	return postgres.IsConnString(value) || strings.Contains(value, "host=")
}

// OpenStore picks the storage backend for database. A PostgreSQL connection
// string given on the command line or in config must not embed a password;
// when database is the default SQLite path and the keyring holds a
// connection string, that connection string is used instead.
func OpenStore(database string) (storage.Provider, error) {
	if IsPostgres(database) {
		if err := postgres.ValidateConnString(database); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("PostgreSQL connection strings with embedded credentials are not allowed. Use '%s keyring set', PGPASSWORD or ~/.pgpass instead", constants.AppName)
			}
			return nil, err
		}
		return postgres.New(database), nil
	}

	defaultPath, err := utils.ExpandPath(constants.DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	if database == defaultPath {
		connStr, err := keyring.GetConnectionString()
		switch {
		case err == nil:
			logger.Debug("Using connection string from keyring")
			return postgres.New(connStr), nil
		case errors.Is(err, keyring.ErrNotFound):
		default:
			logger.Debug("Keyring lookup failed, falling back to SQLite", "error", err)
		}
	}

	return sqlite.NewStore(database), nil
}
