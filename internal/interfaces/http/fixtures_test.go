package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pizza-service/internal/application/auth"
	"github.com/jhoicas/pizza-service/internal/application/dto"
	"github.com/jhoicas/pizza-service/internal/application/usecase"
	"github.com/jhoicas/pizza-service/internal/domain/entity"
	"github.com/jhoicas/pizza-service/internal/domain/repository"
	apphttp "github.com/jhoicas/pizza-service/internal/interfaces/http"
	"github.com/jhoicas/pizza-service/internal/metrics"
)

// ──────────────────────────────────────────────────────────────────────────────
// Test server: the real router and use cases over in-memory repositories, so
// these tests exercise the full request path minus PostgreSQL.
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "pizza-service-test"
	testExpMin    = 60
)

type testServer struct {
	app        *fiber.App
	users      *fakeUserRepo
	franchises *fakeFranchiseRepo
	orders     *fakeOrderRepo
	registry   *metrics.Registry
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	users := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	franchises := newFakeFranchiseRepo()
	menu := &fakeMenuRepo{}
	orders := &fakeOrderRepo{}
	tx := &fakeTxRunner{users: users, franchises: franchises, orders: orders}

	authUC := auth.NewUseCase(users, tokens, auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: testExpMin,
		Issuer:     testIssuer,
	})
	franchiseUC := usecase.NewFranchiseUseCase(tx, franchises)
	orderUC := usecase.NewOrderUseCase(tx, menu, orders, franchises, &fakeReceiptGenerator{})
	registry := metrics.NewRegistry(nil)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      authUC,
		FranchiseUC: franchiseUC,
		OrderUC:     orderUC,
		Metrics:     registry,
	})

	return &testServer{app: app, users: users, franchises: franchises, orders: orders, registry: registry}
}

// do sends a JSON request; token may be empty for anonymous calls.
func (s *testServer) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// register creates a diner through the API and returns its auth response.
func (s *testServer) register(t *testing.T, name, email string) dto.AuthResponse {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/auth", "", dto.RegisterRequest{
		Name: name, Email: email, Password: "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[dto.AuthResponse](t, resp)
}

// registerAdmin registers a diner and promotes it; the already-issued token
// stays valid because roles are read from the store per request.
func (s *testServer) registerAdmin(t *testing.T, name, email string) dto.AuthResponse {
	t.Helper()
	out := s.register(t, name, email)
	u := s.users.byID[out.User.ID]
	u.Roles = append(u.Roles, entity.UserRole{Role: entity.RoleAdmin})
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// In-memory fakes (the persistence ports return (nil, nil) on a miss).
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	nextID int64
	byID   map[int64]*entity.User
}

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{byID: map[int64]*entity.User{}} }

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

type fakeTokenRepo struct {
	byHash map[string]int64
}

func newFakeTokenRepo() *fakeTokenRepo { return &fakeTokenRepo{byHash: map[string]int64{}} }

func (r *fakeTokenRepo) Store(_ context.Context, tokenHash string, userID int64) error {
	r.byHash[tokenHash] = userID
	return nil
}

func (r *fakeTokenRepo) Lookup(_ context.Context, tokenHash string) (int64, error) {
	return r.byHash[tokenHash], nil
}

func (r *fakeTokenRepo) Revoke(_ context.Context, tokenHash string) error {
	delete(r.byHash, tokenHash)
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

type fakeReceiptGenerator struct{}

func (g *fakeReceiptGenerator) GenerateReceipt(_ context.Context, _ *entity.Order, _ *entity.User, _ *entity.Franchise) ([]byte, error) {
	return []byte("%PDF-1.4 fake"), nil
}
