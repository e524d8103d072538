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

const tagColumns = "id, user_id, name, color, is_default, created_at, updated_at"

func scanTag(row scanner) (models.Tag, error) {
	var t models.Tag
	err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Color, &t.IsDefault, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (s *Store) queryTags(ctx context.Context, query string, args ...any) ([]models.Tag, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []models.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (s *Store) AddTag(ctx context.Context, tag *models.Tag) error {
	if tag.ID == "" {
		tag.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if tag.CreatedAt.IsZero() {
		tag.CreatedAt = now
	}
	tag.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (`+tagColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		tag.ID, tag.UserID, tag.Name, tag.Color, tag.IsDefault, tag.CreatedAt, tag.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to add tag: %w", err)
	}
	return nil
}

func (s *Store) GetTag(ctx context.Context, id string) (models.Tag, error) {
	t, err := scanTag(s.db.QueryRowContext(ctx, "SELECT "+tagColumns+" FROM tags WHERE id = $1", id))
	return t, storage.NotFound(err)
}

func (s *Store) GetAllTags(ctx context.Context) ([]models.Tag, error) {
	return s.queryTags(ctx, "SELECT "+tagColumns+" FROM tags ORDER BY name")
}

func (s *Store) GetDefaultTags(ctx context.Context) ([]models.Tag, error) {
	return s.queryTags(ctx, "SELECT "+tagColumns+" FROM tags WHERE is_default ORDER BY name")
}

func (s *Store) GetTagsByUser(ctx context.Context, userID string) ([]models.Tag, error) {
	return s.queryTags(ctx,
		"SELECT "+tagColumns+" FROM tags WHERE user_id = $1 OR is_default ORDER BY name", userID)
}

func (s *Store) UpdateTag(ctx context.Context, tag *models.Tag) error {
	tag.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE tags SET name = $1, color = $2, updated_at = $3
		WHERE id = $4`,
		tag.Name, tag.Color, tag.UpdatedAt, tag.ID)
	if err != nil {
		return fmt.Errorf("failed to update tag: %w", err)
	}
	return requireAffected(res)
}

func (s *Store) DeleteTag(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM entry_tags WHERE tag_id = $1", id); err != nil {
		return fmt.Errorf("failed to delete tag links: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM tags WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) GetTagsForEntry(ctx context.Context, entryID string) ([]models.Tag, error) {
	return s.queryTags(ctx, `
		SELECT t.id, t.user_id, t.name, t.color, t.is_default, t.created_at, t.updated_at
		FROM entry_tags et
		JOIN tags t ON t.id = et.tag_id
		WHERE et.entry_id = $1
		ORDER BY et.created_at, t.name`, entryID)
}

func (s *Store) AddTagToEntry(ctx context.Context, entryID, tagID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entry_tags (id, entry_id, tag_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (entry_id, tag_id) DO NOTHING`,
		uuid.NewString(), entryID, tagID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to link tag: %w", err)
	}
	return nil
}

func (s *Store) RemoveTagFromEntry(ctx context.Context, entryID, tagID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM entry_tags WHERE entry_id = $1 AND tag_id = $2", entryID, tagID)
	if err != nil {
		return fmt.Errorf("failed to unlink tag: %w", err)
	}
	return requireAffected(res)
}

func (s *Store) GetEntryTagLinks(ctx context.Context, entryIDs []string) ([]models.EntryTag, error) {
	links := []models.EntryTag{}
	if len(entryIDs) == 0 {
		return links, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, entry_id, tag_id, created_at
		FROM entry_tags
		WHERE entry_id = ANY($1)
		ORDER BY created_at, id`, pq.Array(entryIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var l models.EntryTag
		if err := rows.Scan(&l.ID, &l.EntryID, &l.TagID, &l.CreatedAt); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}
