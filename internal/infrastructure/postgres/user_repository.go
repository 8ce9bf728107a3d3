package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pizza-service/internal/domain"
	"github.com/jhoicas/pizza-service/internal/domain/entity"
	"github.com/jhoicas/pizza-service/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implements the UserRepository port over PostgreSQL.
type UserRepo struct {
	db Querier
}

// NewUserRepository builds the persistence adapter for users.
func NewUserRepository(db Querier) *UserRepo {
	return &UserRepo{db: db}
}

// Create persists the user and its role grants, assigning the id.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.db.QueryRow(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	for _, role := range user.Roles {
		if err := r.grantRole(ctx, user.ID, role); err != nil {
			return err
		}
	}
	return nil
}

// GetByID loads a user with roles, or (nil, nil) when absent.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users WHERE id = $1`
	return r.scanUser(ctx, r.db.QueryRow(ctx, query, id))
}

// GetByEmail loads a user with roles, or (nil, nil) when absent.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users WHERE email = $1`
	return r.scanUser(ctx, r.db.QueryRow(ctx, query, email))
}

// Update rewrites the mutable profile fields. Role grants are not touched
// here; franchise operations own them.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET name = $2, email = $3, password_hash = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *UserRepo) scanUser(ctx context.Context, row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if err := r.loadRoles(ctx, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) loadRoles(ctx context.Context, u *entity.User) error {
	rows, err := r.db.Query(ctx,
		`SELECT role, object_id FROM user_roles WHERE user_id = $1 ORDER BY role, object_id`, u.ID)
	if err != nil {
		return fmt.Errorf("load roles: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var role entity.UserRole
		if err := rows.Scan(&role.Role, &role.ObjectID); err != nil {
			return fmt.Errorf("scan role: %w", err)
		}
		u.Roles = append(u.Roles, role)
	}
	return rows.Err()
}

func (r *UserRepo) grantRole(ctx context.Context, userID int64, role entity.UserRole) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO user_roles (user_id, role, object_id)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING`,
		userID, role.Role, role.ObjectID,
	)
	if err != nil {
		return fmt.Errorf("grant role: %w", err)
	}
	return nil
}
