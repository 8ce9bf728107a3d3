package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItemRequest input for the Admin menu upsert. A zero ID appends a new
// item; a non-zero ID updates it.
type MenuItemRequest struct {
	ID          int64           `json:"id,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `json:"price"`
}

// MenuItemResponse one menu entry.
type MenuItemResponse struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `json:"price"`
}

// OrderItemRequest one requested line item.
type OrderItemRequest struct {
	MenuID      int64           `json:"menuId"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// CreateOrderRequest input for order placement.
type CreateOrderRequest struct {
	FranchiseID int64              `json:"franchiseId"`
	StoreID     int64              `json:"storeId"`
	Items       []OrderItemRequest `json:"items"`
}

// OrderItemResponse one stored line item.
type OrderItemResponse struct {
	ID          int64           `json:"id"`
	MenuID      int64           `json:"menuId"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// OrderResponse a stored order.
type OrderResponse struct {
	ID          int64               `json:"id"`
	FranchiseID int64               `json:"franchiseId"`
	StoreID     int64               `json:"storeId"`
	Date        time.Time           `json:"date"`
	Items       []OrderItemResponse `json:"items"`
}

// CreateOrderResponse order placement output.
type CreateOrderResponse struct {
	Order OrderResponse `json:"order"`
}

// ListOrdersResponse diner order history output.
type ListOrdersResponse struct {
	DinerID int64           `json:"dinerId"`
	Orders  []OrderResponse `json:"orders"`
	Page    int             `json:"page"`
}
