package models

import (
	"fmt"
	"strings"
	"time"
)

// MoodCategory is the closed set of buckets a mood belongs to.
type MoodCategory string

const (
	MoodPositive MoodCategory = "Positive"
	MoodNeutral  MoodCategory = "Neutral"
	MoodNegative MoodCategory = "Negative"
)

// MoodCategories lists every category in display order.
var MoodCategories = []MoodCategory{MoodPositive, MoodNeutral, MoodNegative}

func (c MoodCategory) String() string {
	return string(c)
}

// Valid reports whether c is one of the known categories.
func (c MoodCategory) Valid() bool {
	for _, known := range MoodCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseMoodCategory parses a category name case-insensitively.
func ParseMoodCategory(s string) (MoodCategory, error) {
	for _, known := range MoodCategories {
		if strings.EqualFold(strings.TrimSpace(s), string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("invalid mood category %q (expected Positive, Neutral or Negative)", s)
}

// Mood is an entry in the shared mood catalog
type Mood struct {
	ID          string       `json:"id"`
	Name        string       `json:"name" validate:"required,max=50"`
	Category    MoodCategory `json:"category" validate:"required,oneof=Positive Neutral Negative"`
	Emoji       string       `json:"emoji"`
	Description string       `json:"description"`
	IsDefault   bool         `json:"is_default"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// EntryMood links a mood to an entry
type EntryMood struct {
	ID        string    `json:"id"`
	EntryID   string    `json:"entry_id"`
	MoodID    string    `json:"mood_id"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
}
