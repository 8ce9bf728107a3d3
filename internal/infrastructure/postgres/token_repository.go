package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pizza-service/internal/domain/repository"
)

var _ repository.TokenRepository = (*TokenRepo)(nil)

// TokenRepo implements the TokenRepository port over PostgreSQL. Rows exist
// only for live tokens; revocation deletes the row.
type TokenRepo struct {
	db Querier
}

// NewTokenRepository builds the persistence adapter for login tokens.
func NewTokenRepository(db Querier) *TokenRepo {
	return &TokenRepo{db: db}
}

// Store records a freshly issued token hash for the user.
func (r *TokenRepo) Store(ctx context.Context, tokenHash string, userID int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO auth_tokens (token_hash, user_id)
		VALUES ($1, $2)
		ON CONFLICT (token_hash) DO UPDATE SET user_id = EXCLUDED.user_id`,
		tokenHash, userID,
	)
	if err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// Lookup returns the bound user id, or 0 when the token is unknown or
// revoked.
func (r *TokenRepo) Lookup(ctx context.Context, tokenHash string) (int64, error) {
	var userID int64
	err := r.db.QueryRow(ctx,
		`SELECT user_id FROM auth_tokens WHERE token_hash = $1`, tokenHash,
	).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("lookup token: %w", err)
	}
	return userID, nil
}

// Revoke deletes the token row. Deleting an absent row is not an error.
func (r *TokenRepo) Revoke(ctx context.Context, tokenHash string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM auth_tokens WHERE token_hash = $1`, tokenHash)
	if err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}
