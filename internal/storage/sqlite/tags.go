package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/moodatlas/internal/models"
	"github.com/julianstephens/moodatlas/internal/storage"
)

const tagColumns = "id, user_id, name, color, is_default, created_at, updated_at"

func scanTag(row scanner) (models.Tag, error) {
	var t models.Tag
	var createdAt, updatedAt string
	var isDefault int
	err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Color, &isDefault, &createdAt, &updatedAt)
	if err != nil {
		return models.Tag{}, err
	}
	t.IsDefault = isDefault != 0

	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.Tag{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return models.Tag{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return t, nil
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
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tag.ID, tag.UserID, tag.Name, tag.Color, boolToInt(tag.IsDefault),
		formatTime(tag.CreatedAt), formatTime(tag.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to add tag: %w", err)
	}
	return nil
}

func (s *Store) GetTag(ctx context.Context, id string) (models.Tag, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+tagColumns+" FROM tags WHERE id = ?", id)
	t, err := scanTag(row)
	return t, storage.NotFound(err)
}

func (s *Store) GetAllTags(ctx context.Context) ([]models.Tag, error) {
	return s.queryTags(ctx, "SELECT "+tagColumns+" FROM tags ORDER BY name")
}

func (s *Store) GetDefaultTags(ctx context.Context) ([]models.Tag, error) {
	return s.queryTags(ctx, "SELECT "+tagColumns+" FROM tags WHERE is_default = 1 ORDER BY name")
}

func (s *Store) GetTagsByUser(ctx context.Context, userID string) ([]models.Tag, error) {
	return s.queryTags(ctx,
		"SELECT "+tagColumns+" FROM tags WHERE user_id = ? OR is_default = 1 ORDER BY name", userID)
}

func (s *Store) UpdateTag(ctx context.Context, tag *models.Tag) error {
	tag.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE tags SET name = ?, color = ?, updated_at = ?
		WHERE id = ?`,
		tag.Name, tag.Color, formatTime(tag.UpdatedAt), tag.ID)
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

	if _, err := tx.ExecContext(ctx, "DELETE FROM entry_tags WHERE tag_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete tag links: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM tags WHERE id = ?", id)
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
		WHERE et.entry_id = ?
		ORDER BY et.created_at, t.name`, entryID)
}

// AddTagToEntry links a tag to an entry; linking twice is a no-op.
func (s *Store) AddTagToEntry(ctx context.Context, entryID, tagID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entry_tags (id, entry_id, tag_id, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (entry_id, tag_id) DO NOTHING`,
		uuid.NewString(), entryID, tagID, formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("failed to link tag: %w", err)
	}
	return nil
}

func (s *Store) RemoveTagFromEntry(ctx context.Context, entryID, tagID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM entry_tags WHERE entry_id = ? AND tag_id = ?", entryID, tagID)
	if err != nil {
		return fmt.Errorf("failed to unlink tag: %w", err)
	}
	return requireAffected(res)
}

func (s *Store) GetEntryTagLinks(ctx context.Context, entryIDs []string) ([]models.EntryTag, error) {
	links := []models.EntryTag{}
	for _, batch := range chunk(entryIDs) {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, entry_id, tag_id, created_at
			FROM entry_tags
			WHERE entry_id IN (`+placeholders(len(batch))+`)
			ORDER BY created_at, id`, toArgs(batch)...)
		if err != nil {
			return nil, err
		}

		for rows.Next() {
			var l models.EntryTag
			var createdAt string
			if err := rows.Scan(&l.ID, &l.EntryID, &l.TagID, &createdAt); err != nil {
				rows.Close()
				return nil, err
			}
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
