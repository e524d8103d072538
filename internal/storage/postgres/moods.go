package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	pq "github.com/lib/pq"

	"github.com/julianstephens/moodatlas/internal/models"
	"github.com/julianstephens/moodatlas/internal/storage"
)

const moodColumns = "id, name, category, emoji, description, is_default, created_at, updated_at"

const moodOrder = `
	ORDER BY CASE category WHEN 'Positive' THEN 0 WHEN 'Neutral' THEN 1 ELSE 2 END, name`

func scanMood(row scanner) (models.Mood, error) {
	var m models.Mood
	var category string
	err := row.Scan(&m.ID, &m.Name, &category, &m.Emoji, &m.Description, &m.IsDefault, &m.CreatedAt, &m.UpdatedAt)
	m.Category = models.MoodCategory(category)
	return m, err
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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		mood.ID, mood.Name, string(mood.Category), mood.Emoji, mood.Description,
		mood.IsDefault, mood.CreatedAt, mood.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to add mood: %w", err)
	}
	return nil
}

func (s *Store) GetMood(ctx context.Context, id string) (models.Mood, error) {
	m, err := scanMood(s.db.QueryRowContext(ctx, "SELECT "+moodColumns+" FROM moods WHERE id = $1", id))
	return m, storage.NotFound(err)
}

func (s *Store) GetAllMoods(ctx context.Context) ([]models.Mood, error) {
	return s.queryMoods(ctx, "SELECT "+moodColumns+" FROM moods"+moodOrder)
}

func (s *Store) GetMoodsByCategory(ctx context.Context, category models.MoodCategory) ([]models.Mood, error) {
	return s.queryMoods(ctx, "SELECT "+moodColumns+" FROM moods WHERE category = $1 ORDER BY name", string(category))
}

func (s *Store) GetDefaultMoods(ctx context.Context) ([]models.Mood, error) {
	return s.queryMoods(ctx, "SELECT "+moodColumns+" FROM moods WHERE is_default"+moodOrder)
}

func (s *Store) UpdateMood(ctx context.Context, mood *models.Mood) error {
	mood.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE moods SET name = $1, category = $2, emoji = $3, description = $4, updated_at = $5
		WHERE id = $6`,
		mood.Name, string(mood.Category), mood.Emoji, mood.Description, mood.UpdatedAt, mood.ID)
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

	if _, err := tx.ExecContext(ctx, "DELETE FROM entry_moods WHERE mood_id = $1", id); err != nil {
		return fmt.Errorf("failed to delete mood links: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM moods WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete mood: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) GetMoodsForEntry(ctx context.Context, entryID string) ([]models.Mood, error) {
	return s.queryMoods(ctx, `
		SELECT m.id, m.name, m.category, m.emoji, m.description, m.is_default, m.created_at, m.updated_at
		FROM entry_moods em
		JOIN moods m ON m.id = em.mood_id
		WHERE em.entry_id = $1
		ORDER BY em.is_primary DESC, em.created_at`, entryID)
}

func (s *Store) AddMoodToEntry(ctx context.Context, entryID, moodID string, primary bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if primary {
		if _, err := tx.ExecContext(ctx, "UPDATE entry_moods SET is_primary = FALSE WHERE entry_id = $1", entryID); err != nil {
			return fmt.Errorf("failed to clear primary mood: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO entry_moods (id, entry_id, mood_id, is_primary, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (entry_id, mood_id) DO UPDATE SET is_primary = EXCLUDED.is_primary`,
		uuid.NewString(), entryID, moodID, primary, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to link mood: %w", err)
	}
	return tx.Commit()
}

func (s *Store) RemoveMoodFromEntry(ctx context.Context, entryID, moodID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM entry_moods WHERE entry_id = $1 AND mood_id = $2", entryID, moodID)
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

	if _, err := tx.ExecContext(ctx, "UPDATE entry_moods SET is_primary = FALSE WHERE entry_id = $1", entryID); err != nil {
		return fmt.Errorf("failed to clear primary mood: %w", err)
	}
	res, err := tx.ExecContext(ctx,
		"UPDATE entry_moods SET is_primary = TRUE WHERE entry_id = $1 AND mood_id = $2", entryID, moodID)
	if err != nil {
		return fmt.Errorf("failed to set primary mood: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return err
	}
	return tx.Commit()
}

// GetEntryMoodLinks binds the whole ID set as one array parameter.
func (s *Store) GetEntryMoodLinks(ctx context.Context, entryIDs []string) ([]models.EntryMood, error) {
	links := []models.EntryMood{}
	if len(entryIDs) == 0 {
		return links, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, entry_id, mood_id, is_primary, created_at
		FROM entry_moods
		WHERE entry_id = ANY($1)
		ORDER BY created_at, id`, pq.Array(entryIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var l models.EntryMood
		if err := rows.Scan(&l.ID, &l.EntryID, &l.MoodID, &l.IsPrimary, &l.CreatedAt); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}
