package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RoleClaim mirrors one role grant inside the token payload.
type RoleClaim struct {
	Role     string `json:"role"`
	ObjectID int64  `json:"objectId,omitempty"`
}

// Claims carries the standard JWT claims plus the application's user id and
// role grants. The token alone is not enough to authenticate: the middleware
// also requires a live row in the login-token table, which is what makes
// logout revoke it.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64       `json:"userId"`
	Roles  []RoleClaim `json:"roles,omitempty"`
}

// Generate signs an HS256 token for the user. Each token carries a random
// jti, so two logins in the same second still get distinct tokens and
// revoking one session never touches another.
func Generate(secret string, userID int64, roles []RoleClaim, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: empty secret")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID: userID,
		Roles:  roles,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse validates the signature and expiry and returns the user id.
func Parse(secret, tokenString string) (int64, error) {
	if secret == "" {
		return 0, fmt.Errorf("jwt: empty secret")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("invalid claims")
	}
	return claims.UserID, nil
}
