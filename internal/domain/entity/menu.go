package entity

import "github.com/shopspring/decimal"

// MenuItem is a pizza offered on the public menu.
type MenuItem struct {
	ID          int64
	Title       string
	Description string
	Image       string
	Price       decimal.Decimal
}
