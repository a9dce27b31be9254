package model

import "github.com/shopspring/decimal"

// Product is a read-only catalog entry. Carts copy it by value so later
// catalog changes never alter a line item already in a cart.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Rating      float64         `json:"rating"`
	InStock     bool            `json:"in_stock"`
}
