package repository

import (
	"context"

	"github.com/jhoicas/pizza-service/internal/domain/entity"
)

// MenuRepository is the persistence port for the public menu.
type MenuRepository interface {
	List(ctx context.Context) ([]entity.MenuItem, error)
	// Upsert inserts the item when ID is zero and updates it otherwise,
	// assigning MenuItem.ID on insert.
	Upsert(ctx context.Context, item *entity.MenuItem) error
}
