package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/storefront-core/server/internal/catalog"
	"github.com/storefront-core/server/internal/model"
)

type CartLine struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

type CartView struct {
	Items     []CartLine `json:"items"`
	ItemCount int        `json:"item_count"`
	Total     string     `json:"total"`
}

// CartToolOutput is returned by every cart tool. Problems the shopper should
// hear about (out of stock, not in cart) are reported in Message rather than
// as tool errors, so the model can explain them.
type CartToolOutput struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Cart    CartView `json:"cart"`
}

type ViewCartInput struct{}

type AddToCartInput struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity,omitempty"`
}

type UpdateCartQuantityInput struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

type RemoveFromCartInput struct {
	ProductID int `json:"product_id"`
}

func newCartView(s model.CartState) CartView {
	v := CartView{Items: make([]CartLine, 0, len(s.Items)), ItemCount: s.ItemCount(), Total: s.Total.StringFixed(2)}
	for _, li := range s.Items {
		v.Items = append(v.Items, CartLine{
			ProductID: li.ID,
			Name:      li.Name,
			Price:     li.Price.StringFixed(2),
			Quantity:  li.Quantity,
			Subtotal:  li.Subtotal().StringFixed(2),
		})
	}
	return v
}

func sessionFor(ctx context.Context) (string, error) {
	id, ok := SessionIDFrom(ctx)
	if !ok {
		return "", fmt.Errorf("no shopping session bound to the request")
	}
	return id, nil
}

func productIDParam() *schema.ParameterInfo {
	return &schema.ParameterInfo{
		Type:     "integer",
		Desc:     "Product id from search_product or view_cart results.",
		Required: true,
	}
}

func createViewCartTool(carts CartService) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name:        ToolViewCart,
			Desc:        "Show the customer's cart: each line with quantity and subtotal, the number of items and the total.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
		},
		func(ctx context.Context, _ *ViewCartInput) (*CartToolOutput, error) {
			sessionID, err := sessionFor(ctx)
			if err != nil {
				return nil, err
			}
			state, err := carts.Cart(ctx, sessionID)
			if err != nil {
				return nil, err
			}
			return &CartToolOutput{Success: true, Cart: newCartView(state)}, nil
		},
	)
}

func createAddToCartTool(c *catalog.Catalog, carts CartService) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolAddToCart,
			Desc: "Add a product to the customer's cart. Adding a product already in the cart increases its quantity. Out-of-stock products cannot be added.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_id": productIDParam(),
				"quantity": {
					Type: "integer",
					Desc: "How many units to add (default 1, max 10).",
				},
			}),
		},
		func(ctx context.Context, in *AddToCartInput) (*CartToolOutput, error) {
			sessionID, err := sessionFor(ctx)
			if err != nil {
				return nil, err
			}
			p, err := c.Get(in.ProductID)
			if err != nil {
				return cartMessage(ctx, carts, sessionID, fmt.Sprintf("product %d does not exist", in.ProductID))
			}
			if !p.InStock {
				return cartMessage(ctx, carts, sessionID, fmt.Sprintf("%s is out of stock", p.Name))
			}

			qty := clampInt(in.Quantity, 1, maxAddQuantity)
			var state model.CartState
			for i := 0; i < qty; i++ {
				res, err := carts.Dispatch(ctx, sessionID, model.AddItem(p))
				if err != nil {
					return nil, err
				}
				state = res.State
			}
			return &CartToolOutput{
				Success: true,
				Message: fmt.Sprintf("added %d x %s", qty, p.Name),
				Cart:    newCartView(state),
			}, nil
		},
	)
}

func createUpdateCartQuantityTool(carts CartService) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolUpdateCartQuantity,
			Desc: "Set the quantity of a product already in the cart. A quantity of 0 removes it.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_id": productIDParam(),
				"quantity": {
					Type:     "integer",
					Desc:     "New quantity; 0 removes the product.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *UpdateCartQuantityInput) (*CartToolOutput, error) {
			sessionID, err := sessionFor(ctx)
			if err != nil {
				return nil, err
			}
			res, err := carts.Dispatch(ctx, sessionID, model.UpdateQuantity(in.ProductID, in.Quantity))
			if err != nil {
				return nil, err
			}
			return mutationOutput(res.Changed, in.ProductID, res.State), nil
		},
	)
}

func createRemoveFromCartTool(carts CartService) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolRemoveFromCart,
			Desc: "Remove a product from the customer's cart entirely.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_id": productIDParam(),
			}),
		},
		func(ctx context.Context, in *RemoveFromCartInput) (*CartToolOutput, error) {
			sessionID, err := sessionFor(ctx)
			if err != nil {
				return nil, err
			}
			res, err := carts.Dispatch(ctx, sessionID, model.RemoveItem(in.ProductID))
			if err != nil {
				return nil, err
			}
			return mutationOutput(res.Changed, in.ProductID, res.State), nil
		},
	)
}

func mutationOutput(changed bool, productID int, state model.CartState) *CartToolOutput {
	out := &CartToolOutput{Success: changed, Cart: newCartView(state)}
	if !changed {
		out.Message = fmt.Sprintf("product %d is not in the cart", productID)
	}
	return out
}

func cartMessage(ctx context.Context, carts CartService, sessionID, msg string) (*CartToolOutput, error) {
	state, err := carts.Cart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &CartToolOutput{Success: false, Message: msg, Cart: newCartView(state)}, nil
}
