package repository

import "context"

// TokenRepository is the persistence port for the revocable login-token
// table. Tokens are stored as SHA-256 hex digests, never in the clear.
type TokenRepository interface {
	Store(ctx context.Context, tokenHash string, userID int64) error
	// Lookup returns the user id bound to the token hash, or 0 when the
	// token does not exist (issued never, or already revoked).
	Lookup(ctx context.Context, tokenHash string) (int64, error)
	Revoke(ctx context.Context, tokenHash string) error
}
