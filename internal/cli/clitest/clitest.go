// Package clitest builds command contexts backed by a temporary SQLite store.
package clitest

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/julianstephens/moodatlas/internal/cli"
	"github.com/julianstephens/moodatlas/internal/config"
	"github.com/julianstephens/moodatlas/internal/models"
	"github.com/julianstephens/moodatlas/internal/storage/sqlite"
)

// Now is the fixed clock used by NewContext.
var Now = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

// NewContext initializes a fresh database and returns a context writing to
// the returned buffer. Timezone is UTC and the clock is pinned to Now.
func NewContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })

	out := &bytes.Buffer{}
	ctx := &cli.Context{
		Store: store,
		Config: &config.Config{
			Database:  store.GetConfigPath(),
			Timezone:  "UTC",
			Reminders: config.RemindersConfig{Enabled: true},
		},
		Ctx: context.Background(),
		Out: out,
		In:  strings.NewReader(""),
		Now: func() time.Time { return Now },
	}
	return ctx, out
}

// Day returns the calendar day offset days from Now.
func Day(offset int) time.Time {
	y, m, d := Now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func AddUser(t *testing.T, ctx *cli.Context, username string) models.User {
	t.Helper()
	u := models.User{Username: username}
	require.NoError(t, ctx.Store.AddUser(ctx.Context(), &u))
	return u
}

func AddEntry(t *testing.T, ctx *cli.Context, userID string, day time.Time, content string) models.Entry {
	t.Helper()
	e := models.Entry{UserID: userID, Title: "Entry", Content: content, EntryDate: day}
	require.NoError(t, ctx.Store.AddEntry(ctx.Context(), &e))
	return e
}

// MoodByName returns the catalog mood with the given name.
func MoodByName(t *testing.T, ctx *cli.Context, name string) models.Mood {
	t.Helper()
	moods, err := ctx.Store.GetAllMoods(ctx.Context())
	require.NoError(t, err)
	for _, m := range moods {
		if strings.EqualFold(m.Name, name) {
			return m
		}
	}
	t.Fatalf("mood %q not found", name)
	return models.Mood{}
}
