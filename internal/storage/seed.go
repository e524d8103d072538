package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/moodatlas/internal/constants"
	"github.com/julianstephens/moodatlas/internal/logger"
	"github.com/julianstephens/moodatlas/internal/models"
)

type seedMood struct {
	name        string
	category    models.MoodCategory
	emoji       string
	description string
}

var defaultMoods = []seedMood{
	{"Happy", models.MoodPositive, "😊", "Feeling joyful and content"},
	{"Excited", models.MoodPositive, "🎉", "Full of enthusiasm"},
	{"Relaxed", models.MoodPositive, "😌", "Calm and at ease"},
	{"Grateful", models.MoodPositive, "🙏", "Thankful and appreciative"},
	{"Confident", models.MoodPositive, "💪", "Self-assured and strong"},

	{"Calm", models.MoodNeutral, "😐", "Peaceful and balanced"},
	{"Thoughtful", models.MoodNeutral, "🤔", "Deep in thought"},
	{"Curious", models.MoodNeutral, "🧐", "Interested and inquisitive"},
	{"Nostalgic", models.MoodNeutral, "📸", "Reminiscing about the past"},
	{"Bored", models.MoodNeutral, "😒", "Lacking interest or excitement"},

	{"Sad", models.MoodNegative, "😢", "Feeling unhappy or sorrowful"},
	{"Angry", models.MoodNegative, "😠", "Feeling strong annoyance"},
	{"Stressed", models.MoodNegative, "😫", "Under mental or emotional pressure"},
	{"Lonely", models.MoodNegative, "😔", "Feeling isolated or alone"},
	{"Anxious", models.MoodNegative, "😰", "Worried or uneasy"},
}

var defaultTags = []string{
	"Work", "Career", "Studies", "Family", "Friends", "Relationships",
	"Health", "Fitness", "Personal Growth", "Self-care", "Hobbies", "Travel",
	"Nature", "Finance", "Spirituality", "Birthday", "Holiday", "Vacation",
	"Celebration", "Exercise", "Reading", "Writing", "Cooking", "Meditation",
	"Yoga", "Music", "Shopping", "Parenting", "Projects", "Planning",
	"Reflection",
}

// DefaultMoods returns the built-in mood catalog with fresh IDs.
func DefaultMoods(now time.Time) []models.Mood {
	moods := make([]models.Mood, 0, len(defaultMoods))
	for _, m := range defaultMoods {
		moods = append(moods, models.Mood{
			ID:          uuid.NewString(),
			Name:        m.name,
			Category:    m.category,
			Emoji:       m.emoji,
			Description: m.description,
			IsDefault:   true,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return moods
}

// DefaultTags returns the built-in, ownerless tags with fresh IDs.
func DefaultTags(now time.Time) []models.Tag {
	tags := make([]models.Tag, 0, len(defaultTags))
	for _, name := range defaultTags {
		tags = append(tags, models.Tag{
			ID:        uuid.NewString(),
			Name:      name,
			Color:     constants.DefaultTagColor,
			IsDefault: true,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return tags
}

// Seed fills empty mood and tag catalogs and writes default settings when
// none exist. Running it against a populated database is a no-op.
func Seed(ctx context.Context, p Provider) error {
	now := time.Now().UTC()

	moods, err := p.GetAllMoods(ctx)
	if err != nil {
		return fmt.Errorf("failed to read moods: %w", err)
	}
	if len(moods) == 0 {
		for _, m := range DefaultMoods(now) {
			if err := p.AddMood(ctx, &m); err != nil {
				return fmt.Errorf("failed to seed mood %s: %w", m.Name, err)
			}
		}
		logger.Info("Seeded default moods", "count", len(defaultMoods))
	}

	tags, err := p.GetAllTags(ctx)
	if err != nil {
		return fmt.Errorf("failed to read tags: %w", err)
	}
	if len(tags) == 0 {
		for _, t := range DefaultTags(now) {
			if err := p.AddTag(ctx, &t); err != nil {
				return fmt.Errorf("failed to seed tag %s: %w", t.Name, err)
			}
		}
		logger.Info("Seeded default tags", "count", len(defaultTags))
	}

	if _, err := p.GetSettings(ctx); err != nil {
		if err := p.SaveSettings(ctx, models.DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}
	return nil
}
