package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/pizza-service/internal/application/dto"
	"github.com/jhoicas/pizza-service/internal/domain"
	"github.com/jhoicas/pizza-service/internal/domain/entity"
	"github.com/jhoicas/pizza-service/internal/domain/repository"
)

// OrderUseCase menu reads, Admin menu edits, order placement and history.
type OrderUseCase struct {
	tx         OrderTxRunner
	menu       repository.MenuRepository
	orders     repository.OrderRepository
	franchises repository.FranchiseRepository
	receipts   ReceiptGenerator
}

// NewOrderUseCase builds the use case.
func NewOrderUseCase(tx OrderTxRunner, menu repository.MenuRepository, orders repository.OrderRepository, franchises repository.FranchiseRepository, receipts ReceiptGenerator) *OrderUseCase {
	return &OrderUseCase{tx: tx, menu: menu, orders: orders, franchises: franchises, receipts: receipts}
}

// Menu returns the public menu.
func (uc *OrderUseCase) Menu(ctx context.Context) ([]dto.MenuItemResponse, error) {
	items, err := uc.menu.List(ctx)
	if err != nil {
		return nil, err
	}
	return toMenuResponses(items), nil
}

// AddMenuItem upserts a menu item and returns the full updated menu.
func (uc *OrderUseCase) AddMenuItem(ctx context.Context, in dto.MenuItemRequest) ([]dto.MenuItemResponse, error) {
	if in.Title == "" || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	item := &entity.MenuItem{
		ID:          in.ID,
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
		Price:       in.Price,
	}
	if err := uc.menu.Upsert(ctx, item); err != nil {
		return nil, err
	}
	items, err := uc.menu.List(ctx)
	if err != nil {
		return nil, err
	}
	return toMenuResponses(items), nil
}

// Create places an order for the diner. The order header and all line items
// are written in one transaction; the stored order, including generated ids,
// comes back to the caller.
func (uc *OrderUseCase) Create(ctx context.Context, diner *entity.User, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	order := &entity.Order{
		DinerID:     diner.ID,
		FranchiseID: in.FranchiseID,
		StoreID:     in.StoreID,
		Date:        time.Now().UTC(),
	}
	for _, it := range in.Items {
		order.Items = append(order.Items, entity.OrderItem{
			MenuID:      it.MenuID,
			Description: it.Description,
			Price:       it.Price,
		})
	}
	err := uc.tx.RunOrders(ctx, func(orders repository.OrderRepository) error {
		return orders.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	out := toOrderResponse(order)
	return &out, nil
}

// List returns the diner's own orders, newest first.
func (uc *OrderUseCase) List(ctx context.Context, dinerID int64, page dto.PageRequest) (*dto.ListOrdersResponse, error) {
	page.DefaultPage()
	list, err := uc.orders.ListByDiner(ctx, dinerID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	orders := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		orders = append(orders, toOrderResponse(o))
	}
	return &dto.ListOrdersResponse{DinerID: dinerID, Orders: orders, Page: page.Page}, nil
}

// Receipt renders a PDF receipt for the order. Only the order's owner or an
// Admin may fetch it.
func (uc *OrderUseCase) Receipt(ctx context.Context, caller *entity.User, orderID int64) ([]byte, error) {
	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.DinerID != caller.ID && !caller.HasRole(entity.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	franchise, err := uc.franchises.GetByID(ctx, order.FranchiseID)
	if err != nil {
		return nil, err
	}
	return uc.receipts.GenerateReceipt(ctx, order, caller, franchise)
}

func toMenuResponses(items []entity.MenuItem) []dto.MenuItemResponse {
	out := make([]dto.MenuItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.MenuItemResponse{
			ID:          it.ID,
			Title:       it.Title,
			Description: it.Description,
			Image:       it.Image,
			Price:       it.Price,
		})
	}
	return out
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ID:          it.ID,
			MenuID:      it.MenuID,
			Description: it.Description,
			Price:       it.Price,
		})
	}
	return dto.OrderResponse{
		ID:          o.ID,
		FranchiseID: o.FranchiseID,
		StoreID:     o.StoreID,
		Date:        o.Date,
		Items:       items,
	}
}
