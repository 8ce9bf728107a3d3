package usecase

import (
	"context"

	"github.com/jhoicas/pizza-service/internal/domain/entity"
	"github.com/jhoicas/pizza-service/internal/domain/repository"
)

// FranchiseTxRunner runs the callback inside one database transaction with
// repositories bound to it. Implemented by postgres.TxRunner.
type FranchiseTxRunner interface {
	Run(ctx context.Context, fn func(users repository.UserRepository, franchises repository.FranchiseRepository) error) error
}

// OrderTxRunner runs the callback inside one database transaction with an
// order repository bound to it. Implemented by postgres.TxRunner.
type OrderTxRunner interface {
	RunOrders(ctx context.Context, fn func(orders repository.OrderRepository) error) error
}

// ReceiptGenerator renders an order receipt document. Franchise may be nil
// when the franchise has since been deleted.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, order *entity.Order, diner *entity.User, franchise *entity.Franchise) ([]byte, error)
}
