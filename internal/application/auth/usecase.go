package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pizza-service/internal/application/dto"
	"github.com/jhoicas/pizza-service/internal/domain"
	"github.com/jhoicas/pizza-service/internal/domain/entity"
	"github.com/jhoicas/pizza-service/internal/domain/repository"
	"github.com/jhoicas/pizza-service/pkg/jwt"
)

// JWTConfig token generation settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase implements registration, login, logout, token authentication and
// profile updates. Issued tokens are JWTs whose SHA-256 digest is stored in
// the login-token table; logout deletes the row, which revokes the token
// even though its signature stays valid.
type UseCase struct {
	users  repository.UserRepository
	tokens repository.TokenRepository
	jwtCfg JWTConfig
}

// NewUseCase builds the auth use case.
func NewUseCase(users repository.UserRepository, tokens repository.TokenRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{users: users, tokens: tokens, jwtCfg: jwtCfg}
}

// Register creates a user with the default diner role, hashes the password
// with bcrypt and issues a token. Returns ErrEmailAlreadyExists on a
// duplicate email.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	existing, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &entity.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Roles:        []entity.UserRole{{Role: entity.RoleDiner}},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return uc.issueToken(ctx, user)
}

// Login verifies the credentials and issues a fresh token. Unknown email and
// wrong password both return ErrUnauthorized so callers cannot probe for
// registered addresses.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issueToken(ctx, user)
}

// Logout revokes the presented token. Revoking an already-revoked token is a
// no-op; the middleware rejects such requests before this runs.
func (uc *UseCase) Logout(ctx context.Context, token string) error {
	return uc.tokens.Revoke(ctx, hashToken(token))
}

// Authenticate resolves a bearer token to its user. The token must carry a
// valid signature, be unexpired, and still have a live row in the
// login-token table bound to an existing user.
func (uc *UseCase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	userID, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	boundID, err := uc.tokens.Lookup(ctx, hashToken(token))
	if err != nil {
		return nil, err
	}
	if boundID == 0 || boundID != userID {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// UpdateUser changes the target user's profile. Only the user themself or an
// Admin may do this; anyone else gets ErrForbidden. Empty fields keep their
// current values.
func (uc *UseCase) UpdateUser(ctx context.Context, caller *entity.User, targetID int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if caller.ID != targetID && !caller.HasRole(entity.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	user, err := uc.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Email != "" {
		user.Email = in.Email
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now().UTC()
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	out := toUserResponse(user)
	return &out, nil
}

func (uc *UseCase) issueToken(ctx context.Context, user *entity.User) (*dto.AuthResponse, error) {
	roles := make([]jwt.RoleClaim, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, jwt.RoleClaim{Role: r.Role, ObjectID: r.ObjectID})
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, roles, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	if err := uc.tokens.Store(ctx, hashToken(token), user.ID); err != nil {
		return nil, err
	}
	return &dto.AuthResponse{User: toUserResponse(user), Token: token}, nil
}

// hashToken returns the SHA-256 hex digest stored in the token table.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func toUserResponse(u *entity.User) dto.UserResponse {
	roles := make([]dto.UserRoleResponse, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, dto.UserRoleResponse{Role: r.Role, ObjectID: r.ObjectID})
	}
	return dto.UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Roles: roles}
}
