package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/moodatlas/internal/models"
	"github.com/julianstephens/moodatlas/internal/storage"
)

const moodColumns = "id, name, category, emoji, description, is_default, created_at, updated_at"

// moodOrder sorts moods by category in display order, then by name.
const moodOrder = `
	ORDER BY CASE category WHEN 'Positive' THEN 0 WHEN 'Neutral' THEN 1 ELSE 2 END, name`

func scanMood(row scanner) (models.Mood, error) {
	var m models.Mood
	var category, createdAt, updatedAt string
	var isDefault int
	err := row.Scan(&m.ID, &m.Name, &category, &m.Emoji, &m.Description, &isDefault, &createdAt, &updatedAt)
	if err != nil {
		return models.Mood{}, err
	}
	m.Category = models.MoodCategory(category)
	m.IsDefault = isDefault != 0

	if m.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.Mood{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if m.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return models.Mood{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return m, nil
}

func (s *Store) queryMoods(ctx context.Context, query string, args ...any) ([]models.Mood, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	moods := []models.Mood{}
	for rows.Next() {
		m, err := scanMood(rows)
		if err != nil {
			return nil, err
		}
		moods = append(moods, m)
	}
	return moods, rows.Err()
}

func (s *Store) AddMood(ctx context.Context, mood *models.Mood) error {
	if mood.ID == "" {
		mood.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if mood.CreatedAt.IsZero() {
		mood.CreatedAt = now
	}
	mood.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO moods (`+moodColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		mood.ID, mood.Name, string(mood.Category), mood.Emoji, mood.Description,
		boolToInt(mood.IsDefault), formatTime(mood.CreatedAt), formatTime(mood.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to add mood: %w", err)
	}
	return nil
}

func (s *Store) GetMood(ctx context.Context, id string) (models.Mood, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+moodColumns+" FROM moods WHERE id = ?", id)
	m, err := scanMood(row)
	return m, storage.NotFound(err)
}

func (s *Store) GetAllMoods(ctx context.Context) ([]models.Mood, error) {
	return s.queryMoods(ctx, "SELECT "+moodColumns+" FROM moods"+moodOrder)
}

func (s *Store) GetMoodsByCategory(ctx context.Context, category models.MoodCategory) ([]models.Mood, error) {
	return s.queryMoods(ctx, "SELECT "+moodColumns+" FROM moods WHERE category = ? ORDER BY name", string(category))
}

func (s *Store) GetDefaultMoods(ctx context.Context) ([]models.Mood, error) {
	return s.queryMoods(ctx, "SELECT "+moodColumns+" FROM moods WHERE is_default = 1"+moodOrder)
}

func (s *Store) UpdateMood(ctx context.Context, mood *models.Mood) error {
	mood.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE moods SET name = ?, category = ?, emoji = ?, description = ?, updated_at = ?
		WHERE id = ?`,
		mood.Name, string(mood.Category), mood.Emoji, mood.Description, formatTime(mood.UpdatedAt), mood.ID)
	if err != nil {
		return fmt.Errorf("failed to update mood: %w", err)
	}
	return requireAffected(res)
}

func (s *Store) DeleteMood(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM entry_moods WHERE mood_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete mood links: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM moods WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete mood: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return err
	}
	return tx.Commit()
}

// GetMoodsForEntry returns the entry's moods, primary first.
func (s *Store) GetMoodsForEntry(ctx context.Context, entryID string) ([]models.Mood, error) {
	return s.queryMoods(ctx, `
		SELECT m.id, m.name, m.category, m.emoji, m.description, m.is_default, m.created_at, m.updated_at
		FROM entry_moods em
		JOIN moods m ON m.id = em.mood_id
		WHERE em.entry_id = ?
		ORDER BY em.is_primary DESC, em.created_at`, entryID)
}

// AddMoodToEntry links a mood to an entry. Linking an already linked mood
// only updates its primary flag.
func (s *Store) AddMoodToEntry(ctx context.Context, entryID, moodID string, primary bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if primary {
		if _, err := tx.ExecContext(ctx, "UPDATE entry_moods SET is_primary = 0 WHERE entry_id = ?", entryID); err != nil {
			return fmt.Errorf("failed to clear primary mood: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO entry_moods (id, entry_id, mood_id, is_primary, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (entry_id, mood_id) DO UPDATE SET is_primary = excluded.is_primary`,
		uuid.NewString(), entryID, moodID, boolToInt(primary), formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("failed to link mood: %w", err)
	}
	return tx.Commit()
}

func (s *Store) RemoveMoodFromEntry(ctx context.Context, entryID, moodID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM entry_moods WHERE entry_id = ? AND mood_id = ?", entryID, moodID)
	if err != nil {
		return fmt.Errorf("failed to unlink mood: %w", err)
	}
	return requireAffected(res)
}

func (s *Store) SetPrimaryMood(ctx context.Context, entryID, moodID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "UPDATE entry_moods SET is_primary = 0 WHERE entry_id = ?", entryID); err != nil {
		return fmt.Errorf("failed to clear primary mood: %w", err)
	}
	res, err := tx.ExecContext(ctx,
		"UPDATE entry_moods SET is_primary = 1 WHERE entry_id = ? AND mood_id = ?", entryID, moodID)
	if err != nil {
		return fmt.Errorf("failed to set primary mood: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) GetEntryMoodLinks(ctx context.Context, entryIDs []string) ([]models.EntryMood, error) {
	links := []models.EntryMood{}
	for _, batch := range chunk(entryIDs) {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, entry_id, mood_id, is_primary, created_at
			FROM entry_moods
			WHERE entry_id IN (`+placeholders(len(batch))+`)
			ORDER BY created_at, id`, toArgs(batch)...)
		if err != nil {
			return nil, err
		}

		for rows.Next() {
			var l models.EntryMood
			var isPrimary int
			var createdAt string
			if err := rows.Scan(&l.ID, &l.EntryID, &l.MoodID, &isPrimary, &createdAt); err != nil {
				rows.Close()
				return nil, err
			}
			l.IsPrimary = isPrimary != 0
			if l.CreatedAt, err = parseTime(createdAt); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to parse created_at: %w", err)
			}
			links = append(links, l)
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, err
		}
	}
	return links, nil
}
