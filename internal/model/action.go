package model

import "fmt"

// ActionType tags the variant held by an Action.
type ActionType string

const (
	ActionAddItem        ActionType = "ADD_ITEM"
	ActionUpdateQuantity ActionType = "UPDATE_QUANTITY"
	ActionRemoveItem     ActionType = "REMOVE_ITEM"
	ActionClearCart      ActionType = "CLEAR_CART"
)

// Action is a cart mutation. Which fields are meaningful depends on Type:
//
//	ADD_ITEM         Product
//	UPDATE_QUANTITY  ProductID, Quantity
//	REMOVE_ITEM      ProductID
//	CLEAR_CART       -
type Action struct {
	Type      ActionType `json:"type"`
	Product   *Product   `json:"product,omitempty"`
	ProductID int        `json:"product_id,omitempty"`
	Quantity  int        `json:"quantity,omitempty"`
}

func AddItem(p Product) Action {
	return Action{Type: ActionAddItem, Product: &p}
}

func UpdateQuantity(productID, quantity int) Action {
	return Action{Type: ActionUpdateQuantity, ProductID: productID, Quantity: quantity}
}

func RemoveItem(productID int) Action {
	return Action{Type: ActionRemoveItem, ProductID: productID}
}

func ClearCart() Action {
	return Action{Type: ActionClearCart}
}

// Validate checks that the fields required by Type are present.
func (a Action) Validate() error {
	switch a.Type {
	case ActionAddItem:
		if a.Product == nil {
			return fmt.Errorf("%s: product is required", a.Type)
		}
	case ActionUpdateQuantity, ActionRemoveItem, ActionClearCart:
	default:
		return fmt.Errorf("unknown cart action %q", a.Type)
	}
	return nil
}

func (a Action) String() string {
	switch a.Type {
	case ActionAddItem:
		if a.Product != nil {
			return fmt.Sprintf("%s(%d)", a.Type, a.Product.ID)
		}
	case ActionUpdateQuantity:
		return fmt.Sprintf("%s(%d, %d)", a.Type, a.ProductID, a.Quantity)
	case ActionRemoveItem:
		return fmt.Sprintf("%s(%d)", a.Type, a.ProductID)
	}
	return string(a.Type)
}
