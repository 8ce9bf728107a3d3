package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pizza-service/internal/domain/entity"
	"github.com/jhoicas/pizza-service/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implements the OrderRepository port over PostgreSQL.
type OrderRepo struct {
	db Querier
}

// NewOrderRepository builds the persistence adapter for orders.
func NewOrderRepository(db Querier) *OrderRepo {
	return &OrderRepo{db: db}
}

// Create persists the order header and its items, assigning ids. Callers
// run this inside a transaction so a failed item insert rolls back the
// header.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO orders (diner_id, franchise_id, store_id, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		order.DinerID, order.FranchiseID, order.StoreID, order.Date,
	).Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err := r.db.QueryRow(ctx, `
			INSERT INTO order_items (order_id, menu_id, description, price)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			item.OrderID, item.MenuID, item.Description, item.Price,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID loads one order with its items, or (nil, nil).
func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	var o entity.Order
	err := r.db.QueryRow(ctx, `
		SELECT id, diner_id, franchise_id, store_id, date
		FROM orders WHERE id = $1`, id,
	).Scan(&o.ID, &o.DinerID, &o.FranchiseID, &o.StoreID, &o.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.loadItems(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// ListByDiner returns the diner's orders newest-first.
func (r *OrderRepo) ListByDiner(ctx context.Context, dinerID int64, limit, offset int) ([]*entity.Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, diner_id, franchise_id, store_id, date
		FROM orders
		WHERE diner_id = $1
		ORDER BY date DESC, id DESC
		LIMIT $2 OFFSET $3`, dinerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.DinerID, &o.FranchiseID, &o.StoreID, &o.Date); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range list {
		if err := r.loadItems(ctx, o); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *OrderRepo) loadItems(ctx context.Context, o *entity.Order) error {
	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, menu_id, description, price
		FROM order_items WHERE order_id = $1 ORDER BY id`, o.ID)
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MenuID, &it.Description, &it.Price); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	return rows.Err()
}
