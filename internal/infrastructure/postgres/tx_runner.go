package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/pizza-service/internal/application/usecase"
	"github.com/jhoicas/pizza-service/internal/domain/repository"
)

// Ensure TxRunner implements the use-case transaction ports.
var _ usecase.FranchiseTxRunner = (*TxRunner)(nil)
var _ usecase.OrderTxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside a PostgreSQL transaction with
// repositories bound to it.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner on the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run starts a transaction, hands tx-bound user and franchise repositories
// to fn, and commits or rolls back.
func (r *TxRunner) Run(ctx context.Context, fn func(
	users repository.UserRepository,
	franchises repository.FranchiseRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewUserRepository(tx), NewFranchiseRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunOrders starts a transaction with a tx-bound order repository, for
// writes that span the order header and its items.
func (r *TxRunner) RunOrders(ctx context.Context, fn func(orders repository.OrderRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewOrderRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
