package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/moodatlas/internal/constants"
	"github.com/julianstephens/moodatlas/internal/models"
	"github.com/julianstephens/moodatlas/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictInvalidRecord        ConflictType = "invalid_record"
	ConflictDuplicateUsername    ConflictType = "duplicate_username"
	ConflictDuplicateTagName     ConflictType = "duplicate_tag_name"
	ConflictDuplicateMoodName    ConflictType = "duplicate_mood_name"
	ConflictWordCountMismatch    ConflictType = "word_count_mismatch"
	ConflictOrphanedEntry        ConflictType = "orphaned_entry"
	ConflictDanglingMoodLink     ConflictType = "dangling_mood_link"
	ConflictDanglingTagLink      ConflictType = "dangling_tag_link"
	ConflictMultiplePrimaryMoods ConflictType = "multiple_primary_moods"
	ConflictUnknownEntryCategory ConflictType = "unknown_entry_category"
)

// Conflict represents a detected problem in the journal data
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // names or titles involved
	IDs         []string // record IDs involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

func (vr *ValidationResult) add(c Conflict) {
	vr.Conflicts = append(vr.Conflicts, c)
}

// Journal is a full dump of the records checked by ValidateJournal.
type Journal struct {
	Users      []models.User
	Categories []models.Category
	Entries    []models.Entry
	Moods      []models.Mood
	Tags       []models.Tag
	MoodLinks  []models.EntryMood
	TagLinks   []models.EntryTag
}

// Validator checks records against their struct tags and the journal
// against cross-record rules.
type Validator struct {
	validate *validator.Validate
}

// New creates a new Validator
func New() *Validator {
	v := validator.New()
	// "timezone" in validator rejects "Local", which is our default.
	_ = v.RegisterValidation("tz", func(fl validator.FieldLevel) bool {
		return utils.ValidateTimezone(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Struct validates a single value using its validate tags.
func (v *Validator) Struct(s any) error {
	if err := v.validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// Var validates a single field value against a tag expression.
func (v *Validator) Var(field any, tag string) error {
	return v.validate.Var(field, tag)
}

// ValidateJournal runs every record and cross-record check over j.
func (v *Validator) ValidateJournal(j Journal) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	v.checkRecords(&result, j)
	checkDuplicates(&result, j)
	checkEntries(&result, j)
	checkLinks(&result, j)

	return result
}

func (v *Validator) checkRecords(result *ValidationResult, j Journal) {
	check := func(kind, name, id string, record any) {
		if err := v.validate.Struct(record); err != nil {
			result.add(Conflict{
				Type:        ConflictInvalidRecord,
				Description: fmt.Sprintf("%s %q is invalid: %v", kind, name, err),
				Items:       []string{name},
				IDs:         []string{id},
			})
		}
	}

	for _, u := range j.Users {
		check("User", u.Username, u.ID, u)
	}
	for _, c := range j.Categories {
		check("Category", c.Name, c.ID, c)
	}
	for _, e := range j.Entries {
		check("Entry", e.Title, e.ID, e)
	}
	for _, m := range j.Moods {
		check("Mood", m.Name, m.ID, m)
	}
	for _, t := range j.Tags {
		check("Tag", t.Name, t.ID, t)
	}
}

func checkDuplicates(result *ValidationResult, j Journal) {
	usernames := make(map[string][]string)
	for _, u := range j.Users {
		usernames[u.Username] = append(usernames[u.Username], u.ID)
	}
	reportDuplicates(result, ConflictDuplicateUsername, "Duplicate username", usernames)

	moodNames := make(map[string][]string)
	for _, m := range j.Moods {
		moodNames[strings.ToLower(m.Name)] = append(moodNames[strings.ToLower(m.Name)], m.ID)
	}
	reportDuplicates(result, ConflictDuplicateMoodName, "Duplicate mood name", moodNames)

	// Tag names are unique per owner; default tags share the empty owner.
	tagNames := make(map[string][]string)
	for _, t := range j.Tags {
		key := t.UserID + "/" + strings.ToLower(t.Name)
		tagNames[key] = append(tagNames[key], t.ID)
	}
	reportDuplicates(result, ConflictDuplicateTagName, "Duplicate tag name", tagNames)
}

func reportDuplicates(result *ValidationResult, kind ConflictType, label string, seen map[string][]string) {
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		ids := seen[k]
		if len(ids) < 2 {
			continue
		}
		name := k
		if i := strings.LastIndex(k, "/"); i >= 0 {
			name = k[i+1:]
		}
		result.add(Conflict{
			Type:        kind,
			Description: fmt.Sprintf("%s: %q (IDs: %v)", label, name, ids),
			Items:       []string{name},
			IDs:         ids,
		})
	}
}

func checkEntries(result *ValidationResult, j Journal) {
	users := make(map[string]bool, len(j.Users))
	for _, u := range j.Users {
		users[u.ID] = true
	}
	categories := make(map[string]bool, len(j.Categories))
	for _, c := range j.Categories {
		categories[c.ID] = true
	}

	for _, e := range j.Entries {
		label := entryLabel(e)
		if !users[e.UserID] {
			result.add(Conflict{
				Type:        ConflictOrphanedEntry,
				Description: fmt.Sprintf("Entry %s belongs to unknown user %s", label, e.UserID),
				Items:       []string{label},
				IDs:         []string{e.ID},
			})
		}
		if e.CategoryID != "" && !categories[e.CategoryID] {
			result.add(Conflict{
				Type:        ConflictUnknownEntryCategory,
				Description: fmt.Sprintf("Entry %s references unknown category %s", label, e.CategoryID),
				Items:       []string{label},
				IDs:         []string{e.ID},
			})
		}
		if want := models.CountWords(e.Content); e.WordCount != want {
			result.add(Conflict{
				Type:        ConflictWordCountMismatch,
				Description: fmt.Sprintf("Entry %s has word count %d, content has %d words", label, e.WordCount, want),
				Items:       []string{label},
				IDs:         []string{e.ID},
			})
		}
	}
}

func checkLinks(result *ValidationResult, j Journal) {
	entries := make(map[string]bool, len(j.Entries))
	for _, e := range j.Entries {
		entries[e.ID] = true
	}
	moods := make(map[string]bool, len(j.Moods))
	for _, m := range j.Moods {
		moods[m.ID] = true
	}
	tags := make(map[string]bool, len(j.Tags))
	for _, t := range j.Tags {
		tags[t.ID] = true
	}

	primaries := make(map[string][]string)
	for _, l := range j.MoodLinks {
		if !entries[l.EntryID] || !moods[l.MoodID] {
			result.add(Conflict{
				Type:        ConflictDanglingMoodLink,
				Description: fmt.Sprintf("Mood link %s references a missing entry or mood", l.ID),
				IDs:         []string{l.ID},
			})
			continue
		}
		if l.IsPrimary {
			primaries[l.EntryID] = append(primaries[l.EntryID], l.MoodID)
		}
	}

	entryIDs := make([]string, 0, len(primaries))
	for id := range primaries {
		entryIDs = append(entryIDs, id)
	}
	sort.Strings(entryIDs)
	for _, id := range entryIDs {
		if moodIDs := primaries[id]; len(moodIDs) > 1 {
			result.add(Conflict{
				Type:        ConflictMultiplePrimaryMoods,
				Description: fmt.Sprintf("Entry %s has %d primary moods", id, len(moodIDs)),
				IDs:         append([]string{id}, moodIDs...),
			})
		}
	}

	for _, l := range j.TagLinks {
		if !entries[l.EntryID] || !tags[l.TagID] {
			result.add(Conflict{
				Type:        ConflictDanglingTagLink,
				Description: fmt.Sprintf("Tag link %s references a missing entry or tag", l.ID),
				IDs:         []string{l.ID},
			})
		}
	}
}

func entryLabel(e models.Entry) string {
	date := e.EntryDate.Format(constants.DateFormat)
	if e.Title == "" {
		return date
	}
	return fmt.Sprintf("%q (%s)", e.Title, date)
}
