package system

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/moodatlas/internal/cli"
	"github.com/julianstephens/moodatlas/internal/cli/clitest"
	"github.com/julianstephens/moodatlas/internal/models"
	"github.com/julianstephens/moodatlas/internal/storage/sqlite"
)

func TestDoctorCmd_HealthyDB(t *testing.T) {
	ctx, out := clitest.NewContext(t)

	err := (&DoctorCmd{}).Run(ctx)
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "✓ Database reachable: OK")
	assert.Contains(t, output, "✓ Schema version: OK")
	assert.Contains(t, output, "✓ Data validation: OK")
	// No backups yet is only a warning
	assert.Contains(t, output, "⚠ Backups present: WARNING")
	assert.Contains(t, output, "All diagnostics passed!")
}

func TestDoctorCmd_BrokenSchema(t *testing.T) {
	ctx, out := clitest.NewContext(t)
	db := ctx.Store.(*sqlite.Store).GetDB()
	_, err := db.Exec("DELETE FROM schema_version")
	require.NoError(t, err)

	err = (&DoctorCmd{}).Run(ctx)
	require.Error(t, err)
	assert.Contains(t, out.String(), "❌ Migrations complete: FAIL")
}

func TestDoctorCmd_WithBackup(t *testing.T) {
	ctx, out := clitest.NewContext(t)
	mgr, ok := ctx.BackupManager()
	require.True(t, ok)
	_, err := mgr.Create()
	require.NoError(t, err)

	require.NoError(t, (&DoctorCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "✓ Backups present: OK")
}

func TestDoctorCmd_BadClock(t *testing.T) {
	ctx, out := clitest.NewContext(t)
	ctx.Now = func() time.Time { return time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC) }

	require.Error(t, (&DoctorCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "❌ Clock: FAIL")
}

func TestValidateCmd(t *testing.T) {
	ctx, out := clitest.NewContext(t)
	u := clitest.AddUser(t, ctx, "ana")
	clitest.AddEntry(t, ctx, u.ID, clitest.Day(0), "a calm morning")

	require.NoError(t, (&ValidateCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "No conflicts detected.")
}

func TestValidateCmd_WordCountMismatch(t *testing.T) {
	ctx, out := clitest.NewContext(t)
	u := clitest.AddUser(t, ctx, "ana")
	e := clitest.AddEntry(t, ctx, u.ID, clitest.Day(0), "a calm morning")

	db := ctx.Store.(*sqlite.Store).GetDB()
	_, err := db.Exec("UPDATE entries SET word_count = 99 WHERE id = ?", e.ID)
	require.NoError(t, err)

	err = (&ValidateCmd{}).Run(ctx)
	require.Error(t, err)
	assert.Contains(t, out.String(), "Conflicts detected:")
}

func TestDebugDumpEntry(t *testing.T) {
	ctx, out := clitest.NewContext(t)
	u := clitest.AddUser(t, ctx, "ana")
	e := clitest.AddEntry(t, ctx, u.ID, clitest.Day(0), "hello there")

	require.NoError(t, (&DebugDumpEntryCmd{ID: e.ID}).Run(ctx))
	assert.Contains(t, out.String(), `"id": "`+e.ID+`"`)
	assert.Contains(t, out.String(), `"word_count": 2`)

	err := (&DebugDumpEntryCmd{ID: "missing"}).Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry not found")
}

func TestDebugDBPath(t *testing.T) {
	ctx, out := clitest.NewContext(t)
	require.NoError(t, (&DebugDBPathCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "test.db")
}

type fakeSender struct {
	title, text string
	calls       int
	err         error
}

func (f *fakeSender) Notify(title, text string) error {
	f.calls++
	f.title, f.text = title, text
	return f.err
}

func TestRemindCmd(t *testing.T) {
	t.Run("sends with streak at risk", func(t *testing.T) {
		ctx, _ := clitest.NewContext(t)
		u := clitest.AddUser(t, ctx, "ana")
		clitest.AddEntry(t, ctx, u.ID, clitest.Day(-1), "yesterday")
		clitest.AddEntry(t, ctx, u.ID, clitest.Day(-2), "before")

		sender := &fakeSender{}
		require.NoError(t, (&RemindCmd{sender: sender}).Run(ctx))
		assert.Equal(t, 1, sender.calls)
		assert.Equal(t, "MoodAtlas", sender.title)
		assert.Contains(t, sender.text, "2-day streak")
	})

	t.Run("skips when already journaled", func(t *testing.T) {
		ctx, _ := clitest.NewContext(t)
		u := clitest.AddUser(t, ctx, "ana")
		clitest.AddEntry(t, ctx, u.ID, clitest.Day(0), "today")

		sender := &fakeSender{}
		require.NoError(t, (&RemindCmd{sender: sender}).Run(ctx))
		assert.Zero(t, sender.calls)
	})

	t.Run("skips when disabled in config", func(t *testing.T) {
		ctx, out := clitest.NewContext(t)
		clitest.AddUser(t, ctx, "ana")
		ctx.Config.Reminders.Enabled = false

		sender := &fakeSender{}
		require.NoError(t, (&RemindCmd{sender: sender, DryRun: true}).Run(ctx))
		assert.Zero(t, sender.calls)
		assert.Contains(t, out.String(), "Reminders are disabled.")
	})

	t.Run("dry run prints message", func(t *testing.T) {
		ctx, out := clitest.NewContext(t)
		clitest.AddUser(t, ctx, "ana")

		require.NoError(t, (&RemindCmd{DryRun: true}).Run(ctx))
		assert.Contains(t, out.String(), "[DryRun] Hi ana, you haven't written")
	})

	t.Run("propagates send failure", func(t *testing.T) {
		ctx, _ := clitest.NewContext(t)
		clitest.AddUser(t, ctx, "ana")

		sender := &fakeSender{err: errors.New("no display")}
		require.Error(t, (&RemindCmd{sender: sender}).Run(ctx))
	})
}

func TestMigrateCmd_Status(t *testing.T) {
	ctx, out := clitest.NewContext(t)
	require.NoError(t, (&MigrateCmd{Status: true}).Run(ctx))
	assert.Contains(t, out.String(), "Database is up to date.")
}

func TestInitCmd_CopiesFromSource(t *testing.T) {
	src, _ := clitest.NewContext(t)
	u := clitest.AddUser(t, src, "ana")
	e := clitest.AddEntry(t, src, u.ID, clitest.Day(0), "copied entry text")
	moods, err := src.Store.GetAllMoods(src.Context())
	require.NoError(t, err)
	require.NoError(t, src.Store.AddMoodToEntry(src.Context(), e.ID, moods[0].ID, true))
	tag := models.Tag{UserID: u.ID, Name: "Garden", Color: "#00ff00"}
	require.NoError(t, src.Store.AddTag(src.Context(), &tag))
	require.NoError(t, src.Store.AddTagToEntry(src.Context(), e.ID, tag.ID))

	dst := sqlite.NewStore(filepath.Join(t.TempDir(), "dest.db"))
	t.Cleanup(func() { dst.Close() })
	out := &bytes.Buffer{}
	ctx := &cli.Context{Store: dst, Ctx: context.Background(), Out: out}

	cmd := &InitCmd{Source: src.Store.GetConfigPath()}
	require.NoError(t, cmd.Run(ctx))
	assert.Contains(t, out.String(), "Migration completed successfully!")

	got, err := dst.GetEntry(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, "copied entry text", got.Content)

	gotMoods, err := dst.GetMoodsForEntry(context.Background(), e.ID)
	require.NoError(t, err)
	require.Len(t, gotMoods, 1)
	assert.Equal(t, moods[0].Name, gotMoods[0].Name)

	gotTags, err := dst.GetTagsForEntry(context.Background(), e.ID)
	require.NoError(t, err)
	require.Len(t, gotTags, 1)
	assert.Equal(t, "Garden", gotTags[0].Name)
}

func TestInitCmd_ForceRefusesSameSource(t *testing.T) {
	ctx, _ := clitest.NewContext(t)
	cmd := &InitCmd{Force: true, Source: ctx.Store.GetConfigPath()}
	err := cmd.Run(ctx)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "same"))
}

func TestMaskPassword(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"uri with password", "postgres://ana:secret@db:5432/journal", "postgres://ana:****@db:5432/journal"},
		{"uri without password", "postgresql://ana@db/journal", "postgresql://ana@db/journal"},
		{"dsn", "host=db user=ana password=secret dbname=journal", "host=db user=ana password=**** dbname=journal"},
		{"dsn without password", "host=db user=ana", "host=db user=ana"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, maskPassword(tt.in))
		})
	}
}
