package models

import (
	"testing"
	"time"
)

func TestParseMoodCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    MoodCategory
		wantErr bool
	}{
		{"Positive", MoodPositive, false},
		{"neutral", MoodNeutral, false},
		{"  NEGATIVE ", MoodNegative, false},
		{"Ecstatic", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMoodCategory(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMoodCategory(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMoodCategory(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMoodCategoryValid(t *testing.T) {
	for _, c := range MoodCategories {
		if !c.Valid() {
			t.Errorf("%q should be valid", c)
		}
	}
	if MoodCategory("positive").Valid() {
		t.Error("lowercase category should not be valid")
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 0},
		{"whitespace only", "  \n\t ", 0},
		{"single word", "hello", 1},
		{"multiple spaces", "a  quiet   morning", 3},
		{"newlines", "line one\nline two\n", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountWords(tt.content); got != tt.want {
				t.Errorf("CountWords(%q) = %d, want %d", tt.content, got, tt.want)
			}
		})
	}
}

func TestEntryDay(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	e := Entry{EntryDate: time.Date(2024, 3, 10, 23, 45, 0, 0, loc)}

	// 23:45 at UTC-5 is already March 11 in UTC; the local date wins.
	want := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	if got := e.Day(); !got.Equal(want) || got.Location() != time.UTC {
		t.Errorf("Day() = %v, want %v", got, want)
	}
}

func TestCivilDayCollapsesTimeOfDay(t *testing.T) {
	tokyo := time.FixedZone("UTC+9", 9*60*60)
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"midnight", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"last nanosecond", time.Date(2024, 1, 1, 23, 59, 59, 999999999, time.UTC), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"east of UTC", time.Date(2024, 1, 2, 1, 0, 0, 0, tokyo), time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CivilDay(tt.in); !got.Equal(tt.want) {
				t.Errorf("CivilDay(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
