package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/moodatlas/internal/models"
)

func validJournal() Journal {
	day := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	return Journal{
		Users:      []models.User{{ID: "u1", Username: "ana"}},
		Categories: []models.Category{{ID: "c1", UserID: "u1", Name: "Personal", Color: "#667eea"}},
		Entries: []models.Entry{
			{ID: "e1", UserID: "u1", CategoryID: "c1", Title: "Monday", Content: "a quiet morning", EntryDate: day, WordCount: 3},
		},
		Moods: []models.Mood{
			{ID: "m1", Name: "Happy", Category: models.MoodPositive},
			{ID: "m2", Name: "Calm", Category: models.MoodNeutral},
		},
		Tags:      []models.Tag{{ID: "t1", Name: "Work", Color: "#6c757d", IsDefault: true}},
		MoodLinks: []models.EntryMood{{ID: "l1", EntryID: "e1", MoodID: "m1", IsPrimary: true}},
		TagLinks:  []models.EntryTag{{ID: "l2", EntryID: "e1", TagID: "t1"}},
	}
}

func conflictTypes(result ValidationResult) []ConflictType {
	var types []ConflictType
	for _, c := range result.Conflicts {
		types = append(types, c.Type)
	}
	return types
}

func TestValidateJournal_Valid(t *testing.T) {
	result := New().ValidateJournal(validJournal())
	if result.HasConflicts() {
		t.Errorf("Expected no conflicts, got: %s", result.FormatReport())
	}
	if result.FormatReport() != "No conflicts detected." {
		t.Errorf("Unexpected report: %q", result.FormatReport())
	}
}

func TestValidateJournal_Conflicts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(j *Journal)
		want   ConflictType
	}{
		{
			name: "invalid mood category",
			mutate: func(j *Journal) {
				j.Moods[1].Category = "Ecstatic"
			},
			want: ConflictInvalidRecord,
		},
		{
			name: "invalid tag color",
			mutate: func(j *Journal) {
				j.Tags[0].Color = "blue"
			},
			want: ConflictInvalidRecord,
		},
		{
			name: "duplicate username",
			mutate: func(j *Journal) {
				j.Users = append(j.Users, models.User{ID: "u2", Username: "ana"})
			},
			want: ConflictDuplicateUsername,
		},
		{
			name: "duplicate mood name ignores case",
			mutate: func(j *Journal) {
				j.Moods = append(j.Moods, models.Mood{ID: "m3", Name: "happy", Category: models.MoodPositive})
			},
			want: ConflictDuplicateMoodName,
		},
		{
			name: "duplicate default tag",
			mutate: func(j *Journal) {
				j.Tags = append(j.Tags, models.Tag{ID: "t2", Name: "work", IsDefault: true})
			},
			want: ConflictDuplicateTagName,
		},
		{
			name: "word count mismatch",
			mutate: func(j *Journal) {
				j.Entries[0].WordCount = 10
			},
			want: ConflictWordCountMismatch,
		},
		{
			name: "orphaned entry",
			mutate: func(j *Journal) {
				j.Entries[0].UserID = "ghost"
			},
			want: ConflictOrphanedEntry,
		},
		{
			name: "unknown category",
			mutate: func(j *Journal) {
				j.Entries[0].CategoryID = "c9"
			},
			want: ConflictUnknownEntryCategory,
		},
		{
			name: "dangling mood link",
			mutate: func(j *Journal) {
				j.MoodLinks = append(j.MoodLinks, models.EntryMood{ID: "l3", EntryID: "e1", MoodID: "gone"})
			},
			want: ConflictDanglingMoodLink,
		},
		{
			name: "dangling tag link",
			mutate: func(j *Journal) {
				j.TagLinks[0].EntryID = "gone"
			},
			want: ConflictDanglingTagLink,
		},
		{
			name: "two primary moods",
			mutate: func(j *Journal) {
				j.MoodLinks = append(j.MoodLinks, models.EntryMood{ID: "l4", EntryID: "e1", MoodID: "m2", IsPrimary: true})
			},
			want: ConflictMultiplePrimaryMoods,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := validJournal()
			tt.mutate(&j)
			result := New().ValidateJournal(j)

			types := conflictTypes(result)
			if len(types) != 1 || types[0] != tt.want {
				t.Fatalf("Expected exactly one %s conflict, got %v", tt.want, types)
			}
		})
	}
}

func TestValidateJournal_SameTagNameDifferentOwners(t *testing.T) {
	j := validJournal()
	j.Users = append(j.Users, models.User{ID: "u2", Username: "ben"})
	j.Tags = append(j.Tags,
		models.Tag{ID: "t2", UserID: "u1", Name: "Garden"},
		models.Tag{ID: "t3", UserID: "u2", Name: "Garden"},
	)

	result := New().ValidateJournal(j)
	if result.HasConflicts() {
		t.Errorf("Tags owned by different users should not conflict, got: %s", result.FormatReport())
	}
}

func TestFormatReportListsEveryConflict(t *testing.T) {
	j := validJournal()
	j.Entries[0].WordCount = 1
	j.TagLinks[0].TagID = "gone"

	result := New().ValidateJournal(j)
	report := result.FormatReport()
	if !strings.HasPrefix(report, "Conflicts detected:\n") {
		t.Errorf("Unexpected report header: %q", report)
	}
	if got := strings.Count(report, "\n- "); got != 2 {
		t.Errorf("Expected 2 report lines, got %d in %q", got, report)
	}
}

func TestStructTimezoneTag(t *testing.T) {
	type settings struct {
		Timezone string `validate:"tz"`
	}

	v := New()
	for _, tz := range []string{"", "Local", "UTC", "Europe/Paris"} {
		if err := v.Struct(settings{Timezone: tz}); err != nil {
			t.Errorf("Timezone %q should be valid: %v", tz, err)
		}
	}
	err := v.Struct(settings{Timezone: "Mars/Olympus"})
	if err == nil {
		t.Fatal("Expected error for unknown timezone")
	}
	if !strings.Contains(err.Error(), "validation failed") {
		t.Errorf("Unexpected error: %v", err)
	}
}
