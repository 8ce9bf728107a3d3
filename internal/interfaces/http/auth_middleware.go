package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pizza-service/internal/application/dto"
	"github.com/jhoicas/pizza-service/internal/domain/entity"
)

// Locals keys set by AuthMiddleware.
const (
	localUserKey  = "auth_user"
	localTokenKey = "auth_token"
)

// Authenticator resolves a bearer token to its user. Implemented by
// *auth.UseCase, which checks the signature and the revocable token table.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

// AuthMiddleware validates the Authorization header and stashes the user
// and raw token in Locals. Missing, malformed, invalid and revoked tokens
// all get the same 401 "unauthorized".
func AuthMiddleware(authn Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := parseBearer(c.Get("Authorization"))
		if token == "" {
			return unauthorized(c)
		}
		user, err := authn.Authenticate(c.Context(), token)
		if err != nil {
			return unauthorized(c)
		}
		c.Locals(localUserKey, user)
		c.Locals(localTokenKey, token)
		return c.Next()
	}
}

// RequireRole authorizes the request against a single declarative role
// requirement. Must run after AuthMiddleware. The denial message is
// action-specific ("unable to create a franchise", ...).
func RequireRole(role, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return unauthorized(c)
		}
		if !user.HasRole(role) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: message,
			})
		}
		return c.Next()
	}
}

// CurrentUser returns the authenticated user placed by AuthMiddleware, or
// nil.
func CurrentUser(c *fiber.Ctx) *entity.User {
	user, _ := c.Locals(localUserKey).(*entity.User)
	return user
}

// BearerToken returns the raw token placed by AuthMiddleware.
func BearerToken(c *fiber.Ctx) string {
	token, _ := c.Locals(localTokenKey).(string)
	return token
}

func parseBearer(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Code:    "UNAUTHORIZED",
		Message: "unauthorized",
	})
}
