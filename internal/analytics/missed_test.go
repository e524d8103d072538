package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMissedDays(t *testing.T) {
	tests := []struct {
		name  string
		days  []time.Time
		start *time.Time
		end   *time.Time
		today string
		want  int
	}{
		{name: "no entries no window", today: "2024-01-10", want: 0},
		{name: "no entries explicit window", start: dayPtr("2024-01-01"), end: dayPtr("2024-01-07"), today: "2024-01-10", want: 7},
		{name: "every day covered", days: days("2024-01-01", "2024-01-02", "2024-01-03"), today: "2024-01-03", want: 0},
		{name: "defaults to earliest entry and today", days: days("2024-01-01", "2024-01-03"), today: "2024-01-05", want: 3},
		{name: "explicit window clips entries outside", days: days("2023-12-30", "2024-01-02", "2024-01-09"), start: dayPtr("2024-01-01"), end: dayPtr("2024-01-03"), today: "2024-01-10", want: 2},
		{name: "inverted window", days: days("2024-01-01"), start: dayPtr("2024-01-05"), end: dayPtr("2024-01-01"), today: "2024-01-10", want: 0},
		{name: "entries after today", days: days("2024-01-01", "2024-01-20"), today: "2024-01-02", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MissedDays(tt.days, tt.start, tt.end, day(tt.today))
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
		})
	}
}

// Missed days plus covered days always adds up to the window length.
func TestMissedDaysPartitionsWindow(t *testing.T) {
	history := days("2024-02-01", "2024-02-02", "2024-02-05", "2024-02-09", "2024-02-10")
	start, end := day("2024-02-01"), day("2024-02-14")

	for cursor := start; !cursor.After(end); cursor = cursor.AddDate(0, 0, 1) {
		from, to := start, cursor
		covered := 0
		for _, d := range history {
			if !d.Before(from) && !d.After(to) {
				covered++
			}
		}
		total := daysBetween(from, to) + 1
		missed := MissedDays(history, &from, &to, day("2024-03-01"))
		assert.Equal(t, total, missed+covered, "window ending %s", to.Format("2006-01-02"))
	}
}
