package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/pizza-service/internal/application/dto"
	"github.com/jhoicas/pizza-service/internal/domain"
	"github.com/jhoicas/pizza-service/internal/domain/entity"
	"github.com/jhoicas/pizza-service/internal/domain/repository"
)

// FranchiseUseCase franchise and store operations.
type FranchiseUseCase struct {
	tx         FranchiseTxRunner
	franchises repository.FranchiseRepository
}

// NewFranchiseUseCase builds the use case.
func NewFranchiseUseCase(tx FranchiseTxRunner, franchises repository.FranchiseRepository) *FranchiseUseCase {
	return &FranchiseUseCase{tx: tx, franchises: franchises}
}

// Create persists a franchise and grants the franchisee role to its admins.
// Every admin email must resolve to a registered user; an unknown email
// aborts the whole transaction with ErrUserNotFound.
func (uc *FranchiseUseCase) Create(ctx context.Context, in dto.CreateFranchiseRequest) (*dto.FranchiseResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	var created *entity.Franchise
	err := uc.tx.Run(ctx, func(users repository.UserRepository, franchises repository.FranchiseRepository) error {
		f := &entity.Franchise{Name: in.Name}
		for _, ref := range in.Admins {
			u, err := users.GetByEmail(ctx, ref.Email)
			if err != nil {
				return err
			}
			if u == nil {
				return fmt.Errorf("franchise admin %q: %w", ref.Email, domain.ErrUserNotFound)
			}
			f.Admins = append(f.Admins, entity.FranchiseAdmin{UserID: u.ID, Name: u.Name, Email: u.Email})
		}
		if err := franchises.Create(ctx, f); err != nil {
			return err
		}
		created = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := toFranchiseResponse(created)
	return &out, nil
}

// Delete removes the franchise, its admin grants and (via the schema
// cascade) its stores.
func (uc *FranchiseUseCase) Delete(ctx context.Context, id int64) error {
	return uc.tx.Run(ctx, func(_ repository.UserRepository, franchises repository.FranchiseRepository) error {
		return franchises.Delete(ctx, id)
	})
}

// List returns all franchises with nested stores and admins.
func (uc *FranchiseUseCase) List(ctx context.Context) ([]dto.FranchiseResponse, error) {
	list, err := uc.franchises.List(ctx)
	if err != nil {
		return nil, err
	}
	return toFranchiseResponses(list), nil
}

// ListForUser returns the franchises the user administers.
func (uc *FranchiseUseCase) ListForUser(ctx context.Context, userID int64) ([]dto.FranchiseResponse, error) {
	list, err := uc.franchises.ListByAdmin(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toFranchiseResponses(list), nil
}

// CreateStore adds a store under the franchise. Allowed for global Admins
// and for that franchise's own admins; everyone else gets ErrForbidden.
func (uc *FranchiseUseCase) CreateStore(ctx context.Context, caller *entity.User, franchiseID int64, in dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	franchise, err := uc.franchises.GetByID(ctx, franchiseID)
	if err != nil {
		return nil, err
	}
	if franchise == nil {
		return nil, domain.ErrNotFound
	}
	if !caller.HasRole(entity.RoleAdmin) && !caller.IsFranchiseAdmin(franchiseID) {
		return nil, domain.ErrForbidden
	}
	store := &entity.Store{FranchiseID: franchiseID, Name: in.Name}
	if err := uc.franchises.CreateStore(ctx, store); err != nil {
		return nil, err
	}
	return &dto.StoreResponse{ID: store.ID, FranchiseID: store.FranchiseID, Name: store.Name}, nil
}

// DeleteStore removes a store. Same authorization rule as CreateStore.
func (uc *FranchiseUseCase) DeleteStore(ctx context.Context, caller *entity.User, franchiseID, storeID int64) error {
	franchise, err := uc.franchises.GetByID(ctx, franchiseID)
	if err != nil {
		return err
	}
	if franchise == nil {
		return domain.ErrNotFound
	}
	if !caller.HasRole(entity.RoleAdmin) && !caller.IsFranchiseAdmin(franchiseID) {
		return domain.ErrForbidden
	}
	return uc.franchises.DeleteStore(ctx, franchiseID, storeID)
}

func toFranchiseResponse(f *entity.Franchise) dto.FranchiseResponse {
	admins := make([]dto.FranchiseAdminResponse, 0, len(f.Admins))
	for _, a := range f.Admins {
		admins = append(admins, dto.FranchiseAdminResponse{ID: a.UserID, Name: a.Name, Email: a.Email})
	}
	stores := make([]dto.StoreResponse, 0, len(f.Stores))
	for _, s := range f.Stores {
		stores = append(stores, dto.StoreResponse{ID: s.ID, Name: s.Name})
	}
	return dto.FranchiseResponse{ID: f.ID, Name: f.Name, Admins: admins, Stores: stores}
}

func toFranchiseResponses(list []*entity.Franchise) []dto.FranchiseResponse {
	out := make([]dto.FranchiseResponse, 0, len(list))
	for _, f := range list {
		out = append(out, toFranchiseResponse(f))
	}
	return out
}
