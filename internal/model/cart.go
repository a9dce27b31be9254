package model

import "github.com/shopspring/decimal"

// LineItem is one product in the cart with its requested quantity.
type LineItem struct {
	Product
	Quantity int `json:"quantity"`
}

// Subtotal is price × quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// CartState is the ordered list of line items plus the derived total.
// Items keep the order in which each product was first added.
type CartState struct {
	Items []LineItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// EmptyCart returns a cart with no items and a zero total.
func EmptyCart() CartState {
	return CartState{Items: []LineItem{}, Total: decimal.Zero}
}

func (s CartState) IsEmpty() bool {
	return len(s.Items) == 0
}

// Index returns the position of the line item for productID, or -1.
func (s CartState) Index(productID int) int {
	for i := range s.Items {
		if s.Items[i].ID == productID {
			return i
		}
	}
	return -1
}

// Find returns the line item for productID.
func (s CartState) Find(productID int) (LineItem, bool) {
	if i := s.Index(productID); i >= 0 {
		return s.Items[i], true
	}
	return LineItem{}, false
}

// ItemCount is the number of units in the cart (the header badge count).
func (s CartState) ItemCount() int {
	n := 0
	for _, li := range s.Items {
		n += li.Quantity
	}
	return n
}

// Clone returns a copy that shares no backing array with s.
func (s CartState) Clone() CartState {
	items := make([]LineItem, len(s.Items))
	copy(items, s.Items)
	return CartState{Items: items, Total: s.Total}
}
