package reports

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/moodatlas/internal/cli/clitest"
	"github.com/julianstephens/moodatlas/internal/export"
)

func TestStatsJSON(t *testing.T) {
	ctx, out := clitest.NewContext(t)
	u := clitest.AddUser(t, ctx, "ana")
	today := clitest.AddEntry(t, ctx, u.ID, clitest.Day(0), "one two three four")
	clitest.AddEntry(t, ctx, u.ID, clitest.Day(-1), "one two")
	require.NoError(t, ctx.Store.AddMoodToEntry(ctx.Context(), today.ID, clitest.MoodByName(t, ctx, "Happy").ID, true))

	require.NoError(t, (&StatsCmd{JSON: true}).Run(ctx))

	var snap map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &snap))
	assert.EqualValues(t, 2, snap["total_entries"])
	assert.EqualValues(t, 2, snap["current_streak"])
	assert.EqualValues(t, 3, snap["average_word_count"])
	assert.Equal(t, "Positive (1 entries)", snap["most_frequent_mood"])
}

func TestStatsRendered(t *testing.T) {
	ctx, out := clitest.NewContext(t)
	u := clitest.AddUser(t, ctx, "ana")
	clitest.AddEntry(t, ctx, u.ID, clitest.Day(0), "hello")

	require.NoError(t, (&StatsCmd{From: "2024-05-01", To: "2024-05-10"}).Run(ctx))
	assert.Contains(t, out.String(), "May 01, 2024 to May 10, 2024")
	assert.Contains(t, out.String(), "Mood distribution")
}

func TestStatsRejectsInvertedRange(t *testing.T) {
	ctx, _ := clitest.NewContext(t)
	clitest.AddUser(t, ctx, "ana")
	require.Error(t, (&StatsCmd{From: "2024-05-10", To: "2024-05-01"}).Run(ctx))
}

func TestPeriodLabel(t *testing.T) {
	assert.Equal(t, "All time", periodLabel(nil, nil))
	d := clitest.Day(0)
	assert.Equal(t, "Since May 10, 2024", periodLabel(&d, nil))
	assert.Equal(t, "Through May 10, 2024", periodLabel(nil, &d))
}

func TestExportToStdout(t *testing.T) {
	ctx, out := clitest.NewContext(t)
	u := clitest.AddUser(t, ctx, "ana")
	clitest.AddEntry(t, ctx, u.ID, clitest.Day(-2), "first words")
	clitest.AddEntry(t, ctx, u.ID, clitest.Day(0), "latest words")

	require.NoError(t, (&ExportCmd{}).Run(ctx))
	output := out.String()
	assert.Contains(t, output, "=== MoodAtlas Journal Export ===")
	assert.Contains(t, output, "Period: May 08, 2024 to May 10, 2024")
	assert.Contains(t, output, "Total Entries: 2")
}

func TestExportToFile(t *testing.T) {
	ctx, out := clitest.NewContext(t)
	u := clitest.AddUser(t, ctx, "ana")
	clitest.AddEntry(t, ctx, u.ID, clitest.Day(0), "latest words")

	path := filepath.Join(t.TempDir(), "nested", "journal.txt")
	require.NoError(t, (&ExportCmd{From: "2024-05-01", Output: path}).Run(ctx))
	assert.Contains(t, out.String(), "✓ Exported ana's journal to")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "latest words")
}

func TestExportEmptyRange(t *testing.T) {
	ctx, _ := clitest.NewContext(t)
	u := clitest.AddUser(t, ctx, "ana")
	clitest.AddEntry(t, ctx, u.ID, clitest.Day(0), "latest words")

	path := filepath.Join(t.TempDir(), "journal.txt")
	err := (&ExportCmd{From: "2023-01-01", To: "2023-01-31", Output: path}).Run(ctx)
	require.ErrorIs(t, err, export.ErrNoEntries)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestExportWithoutEntries(t *testing.T) {
	ctx, _ := clitest.NewContext(t)
	clitest.AddUser(t, ctx, "ana")
	require.ErrorIs(t, (&ExportCmd{}).Run(ctx), export.ErrNoEntries)
}
