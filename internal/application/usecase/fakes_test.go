package usecase_test

import (
	"context"

	"github.com/jhoicas/pizza-service/internal/domain/entity"
	"github.com/jhoicas/pizza-service/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory fakes shared by the use-case tests. Lookups return (nil, nil) on
// a miss, matching the persistence port contracts.
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	nextID int64
	byID   map[int64]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[int64]*entity.User{}}
}

func (r *fakeUserRepo) add(name, email string, roles ...entity.UserRole) *entity.User {
	r.nextID++
	u := &entity.User{ID: r.nextID, Name: name, Email: email, Roles: roles}
	r.byID[u.ID] = u
	return u
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.nextID++
	user.ID = r.nextID
	r.byID[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	return r.byID[id], nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.byID[user.ID] = user
	return nil
}

type fakeFranchiseRepo struct {
	nextID      int64
	nextStoreID int64
	byID        map[int64]*entity.Franchise
}

func newFakeFranchiseRepo() *fakeFranchiseRepo {
	return &fakeFranchiseRepo{byID: map[int64]*entity.Franchise{}}
}

func (r *fakeFranchiseRepo) Create(_ context.Context, franchise *entity.Franchise) error {
	r.nextID++
	franchise.ID = r.nextID
	r.byID[franchise.ID] = franchise
	return nil
}

func (r *fakeFranchiseRepo) Delete(_ context.Context, id int64) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeFranchiseRepo) GetByID(_ context.Context, id int64) (*entity.Franchise, error) {
	return r.byID[id], nil
}

func (r *fakeFranchiseRepo) List(_ context.Context) ([]*entity.Franchise, error) {
	out := make([]*entity.Franchise, 0, len(r.byID))
	for _, f := range r.byID {
		out = append(out, f)
	}
	return out, nil
}

func (r *fakeFranchiseRepo) ListByAdmin(_ context.Context, userID int64) ([]*entity.Franchise, error) {
	var out []*entity.Franchise
	for _, f := range r.byID {
		for _, a := range f.Admins {
			if a.UserID == userID {
				out = append(out, f)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeFranchiseRepo) CreateStore(_ context.Context, store *entity.Store) error {
	r.nextStoreID++
	store.ID = r.nextStoreID
	f := r.byID[store.FranchiseID]
	f.Stores = append(f.Stores, *store)
	return nil
}

func (r *fakeFranchiseRepo) DeleteStore(_ context.Context, franchiseID, storeID int64) error {
	f := r.byID[franchiseID]
	kept := f.Stores[:0]
	for _, s := range f.Stores {
		if s.ID != storeID {
			kept = append(kept, s)
		}
	}
	f.Stores = kept
	return nil
}

type fakeMenuRepo struct {
	nextID int64
	items  []entity.MenuItem
}

func (r *fakeMenuRepo) List(_ context.Context) ([]entity.MenuItem, error) {
	return append([]entity.MenuItem(nil), r.items...), nil
}

func (r *fakeMenuRepo) Upsert(_ context.Context, item *entity.MenuItem) error {
	if item.ID == 0 {
		r.nextID++
		item.ID = r.nextID
		r.items = append(r.items, *item)
		return nil
	}
	for i := range r.items {
		if r.items[i].ID == item.ID {
			r.items[i] = *item
		}
	}
	return nil
}

type fakeOrderRepo struct {
	nextID     int64
	nextItemID int64
	orders     []*entity.Order
}

func (r *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	r.nextID++
	order.ID = r.nextID
	for i := range order.Items {
		r.nextItemID++
		order.Items[i].ID = r.nextItemID
		order.Items[i].OrderID = order.ID
	}
	// Prepend: newest first, like the SQL ORDER BY date DESC.
	r.orders = append([]*entity.Order{order}, r.orders...)
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id int64) (*entity.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) ListByDiner(_ context.Context, dinerID int64, limit, offset int) ([]*entity.Order, error) {
	var mine []*entity.Order
	for _, o := range r.orders {
		if o.DinerID == dinerID {
			mine = append(mine, o)
		}
	}
	if offset >= len(mine) {
		return nil, nil
	}
	mine = mine[offset:]
	if limit < len(mine) {
		mine = mine[:limit]
	}
	return mine, nil
}

// fakeTxRunner passes the backing fakes straight through; there is no real
// transaction to roll back, which the abort tests account for.
type fakeTxRunner struct {
	users      *fakeUserRepo
	franchises *fakeFranchiseRepo
	orders     *fakeOrderRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(repository.UserRepository, repository.FranchiseRepository) error) error {
	return fn(r.users, r.franchises)
}

func (r *fakeTxRunner) RunOrders(ctx context.Context, fn func(repository.OrderRepository) error) error {
	return fn(r.orders)
}

// fakeReceiptGenerator records what it was asked to render.
type fakeReceiptGenerator struct {
	lastOrder     *entity.Order
	lastFranchise *entity.Franchise
	output        []byte
}

func (g *fakeReceiptGenerator) GenerateReceipt(_ context.Context, order *entity.Order, _ *entity.User, franchise *entity.Franchise) ([]byte, error) {
	g.lastOrder = order
	g.lastFranchise = franchise
	if g.output == nil {
		return []byte("%PDF-1.4 fake"), nil
	}
	return g.output, nil
}
