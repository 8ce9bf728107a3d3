package http_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pizza-service/internal/application/dto"
)

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/auth — register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_ReturnsUserAndToken(t *testing.T) {
	s := newTestServer(t)

	out := s.register(t, "Kai Chen", "d@jwt.com")

	assert.NotZero(t, out.User.ID)
	assert.Equal(t, "Kai Chen", out.User.Name)
	require.Len(t, out.User.Roles, 1)
	assert.Equal(t, "diner", out.User.Roles[0].Role)
	assert.Len(t, strings.Split(out.Token, "."), 3, "token must be a JWT")
}

func TestRegister_MissingFields(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodPost, "/api/auth", "", dto.RegisterRequest{Name: "Kai Chen"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "name, email, and password are required", body.Message)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "Kai Chen", "d@jwt.com")

	resp := s.do(t, http.MethodPost, "/api/auth", "", dto.RegisterRequest{
		Name: "Impostor", Email: "d@jwt.com", Password: "x",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// PUT /api/auth — login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_ReturnsFreshToken(t *testing.T) {
	s := newTestServer(t)
	registered := s.register(t, "Kai Chen", "d@jwt.com")

	resp := s.do(t, http.MethodPut, "/api/auth", "", dto.LoginRequest{
		Email: "d@jwt.com", Password: "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.AuthResponse](t, resp)
	assert.Equal(t, registered.User.ID, out.User.ID)
	assert.NotEqual(t, registered.Token, out.Token)
}

func TestLogin_BadCredentials(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "Kai Chen", "d@jwt.com")

	for _, in := range []dto.LoginRequest{
		{Email: "d@jwt.com", Password: "wrong"},
		{Email: "nobody@jwt.com", Password: "secret123"},
	} {
		resp := s.do(t, http.MethodPut, "/api/auth", "", in)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		body := decode[dto.ErrorResponse](t, resp)
		assert.Equal(t, "unauthorized", body.Message)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// DELETE /api/auth — logout
// ──────────────────────────────────────────────────────────────────────────────

func TestLogout_RevokesToken(t *testing.T) {
	s := newTestServer(t)
	out := s.register(t, "Kai Chen", "d@jwt.com")

	resp := s.do(t, http.MethodDelete, "/api/auth", out.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[dto.MessageResponse](t, resp)
	assert.Equal(t, "logout successful", body.Message)

	// The same token no longer authenticates.
	resp = s.do(t, http.MethodDelete, "/api/auth", out.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogout_WithoutToken(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodDelete, "/api/auth", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "unauthorized", body.Message)
}

func TestProtectedRoute_GarbageToken(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodDelete, "/api/auth", "not.a.token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// PUT /api/auth/:userId — update user
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateUser_Self(t *testing.T) {
	s := newTestServer(t)
	out := s.register(t, "Kai Chen", "d@jwt.com")

	resp := s.do(t, http.MethodPut, fmt.Sprintf("/api/auth/%d", out.User.ID), out.Token,
		dto.UpdateUserRequest{Email: "new@jwt.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[dto.UserResponse](t, resp)
	assert.Equal(t, "new@jwt.com", updated.Email)
	assert.Equal(t, "Kai Chen", updated.Name, "omitted fields keep their value")
}

func TestUpdateUser_OtherUserForbidden(t *testing.T) {
	s := newTestServer(t)
	a := s.register(t, "A", "a@jwt.com")
	b := s.register(t, "B", "b@jwt.com")

	resp := s.do(t, http.MethodPut, fmt.Sprintf("/api/auth/%d", b.User.ID), a.Token,
		dto.UpdateUserRequest{Name: "Hijacked"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "unauthorized", body.Message)
}

func TestUpdateUser_AdminUpdatesAnyone(t *testing.T) {
	s := newTestServer(t)
	admin := s.registerAdmin(t, "Admin", "a@jwt.com")
	target := s.register(t, "B", "b@jwt.com")

	resp := s.do(t, http.MethodPut, fmt.Sprintf("/api/auth/%d", target.User.ID), admin.Token,
		dto.UpdateUserRequest{Name: "Renamed"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[dto.UserResponse](t, resp)
	assert.Equal(t, "Renamed", updated.Name)
}
