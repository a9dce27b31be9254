package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the confirmation produced when a cart is checked out.
type Order struct {
	ID               string          `json:"id"`
	Items            []LineItem      `json:"items"`
	ItemCount        int             `json:"item_count"`
	Total            decimal.Decimal `json:"total"`
	FreeShipping     bool            `json:"free_shipping"`
	PlacedAt         time.Time       `json:"placed_at"`
	EstimatedArrival time.Time       `json:"estimated_arrival"`
}
