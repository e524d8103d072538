package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/moodatlas/internal/models"
	"github.com/julianstephens/moodatlas/internal/storage"
)

const entryColumns = "id, user_id, category_id, title, content, entry_date, word_count, created_at, updated_at"

func scanEntry(row scanner) (models.Entry, error) {
	var e models.Entry
	var entryDate, createdAt, updatedAt string
	err := row.Scan(&e.ID, &e.UserID, &e.CategoryID, &e.Title, &e.Content,
		&entryDate, &e.WordCount, &createdAt, &updatedAt)
	if err != nil {
		return models.Entry{}, err
	}

	if e.EntryDate, err = parseDay(entryDate); err != nil {
		return models.Entry{}, fmt.Errorf("failed to parse entry_date: %w", err)
	}
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.Entry{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if e.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return models.Entry{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return e, nil
}

func collectEntries(rows *sql.Rows) ([]models.Entry, error) {
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) AddEntry(ctx context.Context, entry *models.Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	entry.CreatedAt, entry.UpdatedAt = now, now
	entry.WordCount = models.CountWords(entry.Content)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (`+entryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.UserID, entry.CategoryID, entry.Title, entry.Content,
		formatDay(entry.EntryDate), entry.WordCount,
		formatTime(entry.CreatedAt), formatTime(entry.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to add entry: %w", err)
	}
	return nil
}

func (s *Store) GetEntry(ctx context.Context, id string) (models.Entry, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+entryColumns+" FROM entries WHERE id = ?", id)
	e, err := scanEntry(row)
	return e, storage.NotFound(err)
}

func (s *Store) GetAllEntries(ctx context.Context) ([]models.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+entryColumns+" FROM entries ORDER BY entry_date DESC, created_at DESC")
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

func (s *Store) GetEntriesByUser(ctx context.Context, userID string) ([]models.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+entryColumns+` FROM entries
		WHERE user_id = ?
		ORDER BY entry_date DESC, created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

func (s *Store) GetEntriesByCategory(ctx context.Context, categoryID string) ([]models.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+entryColumns+` FROM entries
		WHERE category_id = ?
		ORDER BY entry_date DESC, created_at DESC`, categoryID)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

// GetEntryByUserAndDate returns the most recently created entry on day.
func (s *Store) GetEntryByUserAndDate(ctx context.Context, userID string, day time.Time) (models.Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+entryColumns+` FROM entries
		WHERE user_id = ? AND entry_date = ?
		ORDER BY created_at DESC LIMIT 1`, userID, formatDay(day))
	e, err := scanEntry(row)
	return e, storage.NotFound(err)
}

func (s *Store) GetEntriesByDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+entryColumns+` FROM entries
		WHERE user_id = ? AND entry_date >= ? AND entry_date <= ?
		ORDER BY entry_date DESC, created_at DESC`, userID, formatDay(start), formatDay(end))
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

func (s *Store) CountEntriesByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries WHERE user_id = ?", userID).Scan(&count)
	return count, err
}

func (s *Store) UpdateEntry(ctx context.Context, entry *models.Entry) error {
	entry.UpdatedAt = time.Now().UTC()
	entry.WordCount = models.CountWords(entry.Content)

	res, err := s.db.ExecContext(ctx, `
		UPDATE entries
		SET category_id = ?, title = ?, content = ?, entry_date = ?, word_count = ?, updated_at = ?
		WHERE id = ?`,
		entry.CategoryID, entry.Title, entry.Content, formatDay(entry.EntryDate),
		entry.WordCount, formatTime(entry.UpdatedAt), entry.ID)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	return requireAffected(res)
}

func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM entry_moods WHERE entry_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete entry moods: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM entry_tags WHERE entry_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete entry tags: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return err
	}
	return tx.Commit()
}
