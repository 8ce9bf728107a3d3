package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pizza-service/internal/domain/entity"
	"github.com/jhoicas/pizza-service/internal/domain/repository"
)

var _ repository.FranchiseRepository = (*FranchiseRepo)(nil)

// FranchiseRepo implements the FranchiseRepository port over PostgreSQL.
type FranchiseRepo struct {
	db Querier
}

// NewFranchiseRepository builds the persistence adapter for franchises.
func NewFranchiseRepository(db Querier) *FranchiseRepo {
	return &FranchiseRepo{db: db}
}

// Create persists the franchise, its admin rows and the scoped franchisee
// grants. Callers run this inside a transaction so a failed grant rolls the
// franchise back too.
func (r *FranchiseRepo) Create(ctx context.Context, franchise *entity.Franchise) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO franchises (name) VALUES ($1) RETURNING id`, franchise.Name,
	).Scan(&franchise.ID)
	if err != nil {
		return fmt.Errorf("insert franchise: %w", err)
	}
	for _, admin := range franchise.Admins {
		_, err = r.db.Exec(ctx, `
			INSERT INTO franchise_admins (franchise_id, user_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`,
			franchise.ID, admin.UserID,
		)
		if err != nil {
			return fmt.Errorf("insert franchise admin: %w", err)
		}
		_, err = r.db.Exec(ctx, `
			INSERT INTO user_roles (user_id, role, object_id)
			VALUES ($1, $2, $3)
			ON CONFLICT DO NOTHING`,
			admin.UserID, entity.RoleFranchisee, franchise.ID,
		)
		if err != nil {
			return fmt.Errorf("grant franchisee role: %w", err)
		}
	}
	return nil
}

// Delete removes the franchise with its admin rows and scoped grants.
// Stores cascade through the schema.
func (r *FranchiseRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM user_roles WHERE role = $1 AND object_id = $2`,
		entity.RoleFranchisee, id,
	)
	if err != nil {
		return fmt.Errorf("revoke franchisee roles: %w", err)
	}
	_, err = r.db.Exec(ctx, `DELETE FROM franchises WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete franchise: %w", err)
	}
	return nil
}

// GetByID loads one franchise with admins and stores, or (nil, nil).
func (r *FranchiseRepo) GetByID(ctx context.Context, id int64) (*entity.Franchise, error) {
	var f entity.Franchise
	err := r.db.QueryRow(ctx,
		`SELECT id, name FROM franchises WHERE id = $1`, id,
	).Scan(&f.ID, &f.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get franchise: %w", err)
	}
	if err := r.fill(ctx, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// List returns all franchises ordered by id, each with admins and stores.
func (r *FranchiseRepo) List(ctx context.Context) ([]*entity.Franchise, error) {
	return r.list(ctx, `SELECT id, name FROM franchises ORDER BY id`)
}

// ListByAdmin returns the franchises the user administers.
func (r *FranchiseRepo) ListByAdmin(ctx context.Context, userID int64) ([]*entity.Franchise, error) {
	return r.list(ctx, `
		SELECT f.id, f.name
		FROM franchises f
		JOIN franchise_admins fa ON fa.franchise_id = f.id
		WHERE fa.user_id = $1
		ORDER BY f.id`, userID)
}

// CreateStore persists a store, assigning the id.
func (r *FranchiseRepo) CreateStore(ctx context.Context, store *entity.Store) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO stores (franchise_id, name) VALUES ($1, $2) RETURNING id`,
		store.FranchiseID, store.Name,
	).Scan(&store.ID)
	if err != nil {
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

// DeleteStore removes a store scoped to its franchise.
func (r *FranchiseRepo) DeleteStore(ctx context.Context, franchiseID, storeID int64) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM stores WHERE id = $1 AND franchise_id = $2`, storeID, franchiseID)
	if err != nil {
		return fmt.Errorf("delete store: %w", err)
	}
	return nil
}

func (r *FranchiseRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Franchise, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list franchises: %w", err)
	}
	defer rows.Close()
	var list []*entity.Franchise
	for rows.Next() {
		var f entity.Franchise
		if err := rows.Scan(&f.ID, &f.Name); err != nil {
			return nil, fmt.Errorf("scan franchise: %w", err)
		}
		list = append(list, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, f := range list {
		if err := r.fill(ctx, f); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// fill loads the nested admins and stores for a franchise.
func (r *FranchiseRepo) fill(ctx context.Context, f *entity.Franchise) error {
	adminRows, err := r.db.Query(ctx, `
		SELECT u.id, u.name, u.email
		FROM franchise_admins fa
		JOIN users u ON u.id = fa.user_id
		WHERE fa.franchise_id = $1
		ORDER BY u.id`, f.ID)
	if err != nil {
		return fmt.Errorf("load franchise admins: %w", err)
	}
	defer adminRows.Close()
	for adminRows.Next() {
		var a entity.FranchiseAdmin
		if err := adminRows.Scan(&a.UserID, &a.Name, &a.Email); err != nil {
			return fmt.Errorf("scan franchise admin: %w", err)
		}
		f.Admins = append(f.Admins, a)
	}
	if err := adminRows.Err(); err != nil {
		return err
	}

	storeRows, err := r.db.Query(ctx, `
		SELECT id, franchise_id, name FROM stores WHERE franchise_id = $1 ORDER BY id`, f.ID)
	if err != nil {
		return fmt.Errorf("load stores: %w", err)
	}
	defer storeRows.Close()
	for storeRows.Next() {
		var s entity.Store
		if err := storeRows.Scan(&s.ID, &s.FranchiseID, &s.Name); err != nil {
			return fmt.Errorf("scan store: %w", err)
		}
		f.Stores = append(f.Stores, s)
	}
	return storeRows.Err()
}
