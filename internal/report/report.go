// Package report renders analytics snapshots for the terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/moodatlas/internal/analytics"
	"github.com/julianstephens/moodatlas/internal/constants"
	"github.com/julianstephens/moodatlas/internal/models"
)

const barWidth = 24

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("111")).MarginTop(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(18)
	valueStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1)

	categoryColors = map[models.MoodCategory]lipgloss.Color{
		models.MoodPositive: lipgloss.Color("42"),
		models.MoodNeutral:  lipgloss.Color("214"),
		models.MoodNegative: lipgloss.Color("196"),
	}
)

// Render formats snap as a boxed overview followed by mood, tag and word
// count sections. period is shown under the title and may be empty.
func Render(username, period string, snap analytics.Snapshot) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s stats for %s", constants.DisplayName, username)))
	b.WriteString("\n")
	if period != "" {
		b.WriteString(mutedStyle.Render(period))
		b.WriteString("\n")
	}

	b.WriteString(boxStyle.Render(overview(snap)))
	b.WriteString("\n")

	b.WriteString(headingStyle.Render("Mood distribution"))
	b.WriteString("\n")
	b.WriteString(moodBars(snap))

	b.WriteString(headingStyle.Render("Top tags"))
	b.WriteString("\n")
	b.WriteString(tagList(snap))

	b.WriteString(headingStyle.Render("Weekly word count"))
	b.WriteString("\n")
	b.WriteString(trendList(snap))

	return b.String()
}

func overview(snap analytics.Snapshot) string {
	rows := [][2]string{
		{"Entries", fmt.Sprintf("%d", snap.TotalEntries)},
		{"Current streak", days(snap.CurrentStreak)},
		{"Longest streak", days(snap.LongestStreak)},
		{"Missed days", fmt.Sprintf("%d", snap.MissedDays)},
		{"Average words", fmt.Sprintf("%d", snap.AverageWordCount)},
		{"Top mood", snap.MostFrequentMood},
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(row[0]), valueStyle.Render(row[1])))
	}
	return strings.Join(lines, "\n")
}

func moodBars(snap analytics.Snapshot) string {
	total := snap.MoodOccurrences()
	if total == 0 {
		return mutedStyle.Render(constants.NoMoodsRecorded) + "\n"
	}

	var b strings.Builder
	for _, c := range models.MoodCategories {
		n := snap.MoodDistribution[c]
		width := n * barWidth / total
		bar := lipgloss.NewStyle().Foreground(categoryColors[c]).Render(strings.Repeat("█", width))
		fmt.Fprintf(&b, "%s %s %d (%d%%)\n", labelStyle.Render(c.String()), bar, n, n*100/total)
	}
	return b.String()
}

func tagList(snap analytics.Snapshot) string {
	if len(snap.MostUsedTags) == 0 {
		return mutedStyle.Render("No tags used") + "\n"
	}

	var b strings.Builder
	for i, tag := range snap.MostUsedTags {
		fmt.Fprintf(&b, "%d. %s\n", i+1, tag)
	}
	return b.String()
}

func trendList(snap analytics.Snapshot) string {
	if len(snap.WordCountTrend) == 0 {
		return mutedStyle.Render("No entries in this period") + "\n"
	}

	var b strings.Builder
	for _, bucket := range snap.WordCountTrend {
		label := "Week of " + bucket.WeekStart.Format(constants.DateFormat)
		fmt.Fprintf(&b, "%s %d words\n", labelStyle.Width(22).Render(label), bucket.AverageWordCount)
	}
	return b.String()
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
