package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/moodatlas/internal/models"
	"github.com/julianstephens/moodatlas/internal/storage"
)

const categoryColumns = "id, user_id, name, color, icon, created_at, updated_at"

func scanCategory(row scanner) (models.Category, error) {
	var c models.Category
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &c.Icon, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (s *Store) AddCategory(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	category.CreatedAt, category.UpdatedAt = now, now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (`+categoryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		category.ID, category.UserID, category.Name, category.Color, category.Icon,
		category.CreatedAt, category.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to add category: %w", err)
	}
	return nil
}

func (s *Store) GetCategory(ctx context.Context, id string) (models.Category, error) {
	c, err := scanCategory(s.db.QueryRowContext(ctx, "SELECT "+categoryColumns+" FROM categories WHERE id = $1", id))
	return c, storage.NotFound(err)
}

func (s *Store) GetCategoriesByUser(ctx context.Context, userID string) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+categoryColumns+" FROM categories WHERE user_id = $1 ORDER BY name", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Store) UpdateCategory(ctx context.Context, category *models.Category) error {
	category.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE categories SET name = $1, color = $2, icon = $3, updated_at = $4
		WHERE id = $5`,
		category.Name, category.Color, category.Icon, category.UpdatedAt, category.ID)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return requireAffected(res)
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "UPDATE entries SET category_id = '' WHERE category_id = $1", id); err != nil {
		return fmt.Errorf("failed to detach entries: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return err
	}
	return tx.Commit()
}
