package postgres

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

const entryOrder = " ORDER BY entry_date DESC, created_at DESC"

func scanEntry(row scanner) (models.Entry, error) {
	var e models.Entry
	err := row.Scan(&e.ID, &e.UserID, &e.CategoryID, &e.Title, &e.Content,
		&e.EntryDate, &e.WordCount, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return models.Entry{}, err
	}
	e.EntryDate = civil(e.EntryDate)
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

func (s *Store) queryEntries(ctx context.Context, query string, args ...any) ([]models.Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entry.ID, entry.UserID, entry.CategoryID, entry.Title, entry.Content,
		formatDay(entry.EntryDate), entry.WordCount, entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to add entry: %w", err)
	}
	return nil
}

func (s *Store) GetEntry(ctx context.Context, id string) (models.Entry, error) {
	e, err := scanEntry(s.db.QueryRowContext(ctx, "SELECT "+entryColumns+" FROM entries WHERE id = $1", id))
	return e, storage.NotFound(err)
}

func (s *Store) GetAllEntries(ctx context.Context) ([]models.Entry, error) {
	return s.queryEntries(ctx, "SELECT "+entryColumns+" FROM entries"+entryOrder)
}

func (s *Store) GetEntriesByUser(ctx context.Context, userID string) ([]models.Entry, error) {
	return s.queryEntries(ctx, "SELECT "+entryColumns+" FROM entries WHERE user_id = $1"+entryOrder, userID)
}

func (s *Store) GetEntriesByCategory(ctx context.Context, categoryID string) ([]models.Entry, error) {
	return s.queryEntries(ctx, "SELECT "+entryColumns+" FROM entries WHERE category_id = $1"+entryOrder, categoryID)
}

func (s *Store) GetEntryByUserAndDate(ctx context.Context, userID string, day time.Time) (models.Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+entryColumns+` FROM entries
		WHERE user_id = $1 AND entry_date = $2
		ORDER BY created_at DESC LIMIT 1`, userID, formatDay(day))
	e, err := scanEntry(row)
	return e, storage.NotFound(err)
}

func (s *Store) GetEntriesByDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.Entry, error) {
	return s.queryEntries(ctx, `
		SELECT `+entryColumns+` FROM entries
		WHERE user_id = $1 AND entry_date >= $2 AND entry_date <= $3`+entryOrder,
		userID, formatDay(start), formatDay(end))
}

func (s *Store) CountEntriesByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries WHERE user_id = $1", userID).Scan(&count)
	return count, err
}

func (s *Store) UpdateEntry(ctx context.Context, entry *models.Entry) error {
	entry.UpdatedAt = time.Now().UTC()
	entry.WordCount = models.CountWords(entry.Content)

	res, err := s.db.ExecContext(ctx, `
		UPDATE entries
		SET category_id = $1, title = $2, content = $3, entry_date = $4, word_count = $5, updated_at = $6
		WHERE id = $7`,
		entry.CategoryID, entry.Title, entry.Content, formatDay(entry.EntryDate),
		entry.WordCount, entry.UpdatedAt, entry.ID)
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

	if _, err := tx.ExecContext(ctx, "DELETE FROM entry_moods WHERE entry_id = $1", id); err != nil {
		return fmt.Errorf("failed to delete entry moods: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM entry_tags WHERE entry_id = $1", id); err != nil {
		return fmt.Errorf("failed to delete entry tags: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM entries WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return err
	}
	return tx.Commit()
}
