package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is an immutable purchase placed by a diner against a store.
type Order struct {
	ID          int64
	DinerID     int64
	FranchiseID int64
	StoreID     int64
	Date        time.Time
	Items       []OrderItem
}

// OrderItem is one line of an order. Description and Price are captured at
// order time so later menu edits do not rewrite history.
type OrderItem struct {
	ID          int64
	OrderID     int64
	MenuID      int64
	Description string
	Price       decimal.Decimal
}

// Total sums the line prices.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Price)
	}
	return total
}
