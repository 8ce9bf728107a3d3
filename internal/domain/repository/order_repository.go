package repository

import (
	"context"

	"github.com/jhoicas/pizza-service/internal/domain/entity"
)

// OrderRepository is the persistence port for orders and their line items.
type OrderRepository interface {
	// Create persists the order header and items, assigning Order.ID and
	// each OrderItem.ID.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	// ListByDiner returns the diner's orders newest-first.
	ListByDiner(ctx context.Context, dinerID int64, limit, offset int) ([]*entity.Order, error)
}
