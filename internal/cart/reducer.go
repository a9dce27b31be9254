// Package cart holds the shopping cart state container: a pure reducer over
// model.CartState and a Store that serializes actions against one cart.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/storefront-core/server/internal/model"
)

// Reduce applies action to state and returns the next state. state is never
// modified. Actions on product ids that are not in the cart leave the items
// unchanged; an unknown action type is ignored.
func Reduce(state model.CartState, action model.Action) model.CartState {
	next := state.Clone()

	switch action.Type {
	case model.ActionAddItem:
		if action.Product == nil {
			break
		}
		if i := next.Index(action.Product.ID); i >= 0 {
			next.Items[i].Quantity++
		} else {
			next.Items = append(next.Items, model.LineItem{Product: *action.Product, Quantity: 1})
		}

	case model.ActionUpdateQuantity:
		i := next.Index(action.ProductID)
		if i < 0 {
			break
		}
		if action.Quantity <= 0 {
			next.Items = removeAt(next.Items, i)
		} else {
			next.Items[i].Quantity = action.Quantity
		}

	case model.ActionRemoveItem:
		if i := next.Index(action.ProductID); i >= 0 {
			next.Items = removeAt(next.Items, i)
		}

	case model.ActionClearCart:
		next.Items = []model.LineItem{}
	}

	next.Total = Total(next.Items)
	return next
}

// Replay folds actions over an empty cart.
func Replay(actions ...model.Action) model.CartState {
	state := model.EmptyCart()
	for _, a := range actions {
		state = Reduce(state, a)
	}
	return state
}

// Total sums price × quantity over items.
func Total(items []model.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, li := range items {
		total = total.Add(li.Subtotal())
	}
	return total
}

func removeAt(items []model.LineItem, i int) []model.LineItem {
	return append(items[:i], items[i+1:]...)
}
