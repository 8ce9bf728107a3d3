package repository

import (
	"context"

	"github.com/jhoicas/pizza-service/internal/domain/entity"
)

// FranchiseRepository is the persistence port for franchises and stores.
type FranchiseRepository interface {
	// Create persists the franchise, its admin rows and the scoped
	// franchisee role grants. Admins must carry resolved UserIDs.
	Create(ctx context.Context, franchise *entity.Franchise) error
	// Delete removes the franchise, its admin rows and scoped role
	// grants. Stores cascade at the schema level.
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*entity.Franchise, error)
	List(ctx context.Context) ([]*entity.Franchise, error)
	// ListByAdmin returns the franchises the user administers.
	ListByAdmin(ctx context.Context, userID int64) ([]*entity.Franchise, error)
	CreateStore(ctx context.Context, store *entity.Store) error
	DeleteStore(ctx context.Context, franchiseID, storeID int64) error
}
