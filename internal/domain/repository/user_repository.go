package repository

import (
	"context"

	"github.com/jhoicas/pizza-service/internal/domain/entity"
)

// UserRepository is the persistence port for users and their role grants.
// Lookups return (nil, nil) when no row matches.
type UserRepository interface {
	// Create persists the user and its roles, assigning User.ID.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// Update rewrites name, email and password hash. Roles are managed
	// through franchise operations and are left untouched.
	Update(ctx context.Context, user *entity.User) error
}
