package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pizza-service/internal/domain/entity"
	"github.com/jhoicas/pizza-service/internal/domain/repository"
)

var _ repository.MenuRepository = (*MenuRepo)(nil)

// MenuRepo implements the MenuRepository port over PostgreSQL.
type MenuRepo struct {
	db Querier
}

// NewMenuRepository builds the persistence adapter for the menu.
func NewMenuRepository(db Querier) *MenuRepo {
	return &MenuRepo{db: db}
}

// List returns the menu ordered by id.
func (r *MenuRepo) List(ctx context.Context) ([]entity.MenuItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, title, description, image, price FROM menu_items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	defer rows.Close()
	var items []entity.MenuItem
	for rows.Next() {
		var it entity.MenuItem
		if err := rows.Scan(&it.ID, &it.Title, &it.Description, &it.Image, &it.Price); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Upsert inserts when ID is zero, updates otherwise.
func (r *MenuRepo) Upsert(ctx context.Context, item *entity.MenuItem) error {
	if item.ID == 0 {
		err := r.db.QueryRow(ctx, `
			INSERT INTO menu_items (title, description, image, price)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			item.Title, item.Description, item.Image, item.Price,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("insert menu item: %w", err)
		}
		return nil
	}
	_, err := r.db.Exec(ctx, `
		UPDATE menu_items SET title = $2, description = $3, image = $4, price = $5
		WHERE id = $1`,
		item.ID, item.Title, item.Description, item.Image, item.Price,
	)
	if err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}
	return nil
}
