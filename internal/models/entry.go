package models

import (
	"strings"
	"time"
)

// Entry is a single journal entry
type Entry struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id" validate:"required"`
	CategoryID string    `json:"category_id,omitempty"`
	Title      string    `json:"title" validate:"max=200"`
	Content    string    `json:"content" validate:"required"`
	EntryDate  time.Time `json:"entry_date" validate:"required"`
	WordCount  int       `json:"word_count" validate:"gte=0"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Day returns the entry's calendar day as midnight UTC.
func (e Entry) Day() time.Time {
	return CivilDay(e.EntryDate)
}

// CivilDay maps t to midnight UTC of its calendar date in t's own location.
// Keying days in UTC keeps day arithmetic free of DST shifts.
func CivilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CountWords returns the number of whitespace-separated words in content.
func CountWords(content string) int {
	return len(strings.Fields(content))
}
