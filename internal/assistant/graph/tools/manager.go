package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/storefront-core/server/internal/cart"
	"github.com/storefront-core/server/internal/catalog"
	"github.com/storefront-core/server/internal/model"
)

const (
	ToolSearchProduct      = "search_product"
	ToolGetProductDetails  = "get_product_details"
	ToolViewCart           = "view_cart"
	ToolAddToCart          = "add_to_cart"
	ToolUpdateCartQuantity = "update_cart_quantity"
	ToolRemoveFromCart     = "remove_from_cart"
)

const (
	defaultMaxResults = 10
	maxMaxResults     = 20
	maxAddQuantity    = 10
)

// CartService is the part of the session manager the cart tools need.
type CartService interface {
	Cart(ctx context.Context, sessionID string) (model.CartState, error)
	Dispatch(ctx context.Context, sessionID string, action model.Action) (cart.Result, error)
}

type sessionKey struct{}

// WithSessionID binds the shopper's session to ctx so cart tools act on it.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey{}, sessionID)
}

func SessionIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionKey{}).(string)
	return id, ok && id != ""
}

// GetQueryTools returns every tool the assistant may call.
func GetQueryTools(c *catalog.Catalog, carts CartService) []tool.BaseTool {
	return []tool.BaseTool{
		createSearchProductTool(c),
		createGetProductDetailsTool(c),
		createViewCartTool(carts),
		createAddToCartTool(c, carts),
		createUpdateCartQuantityTool(carts),
		createRemoveFromCartTool(carts),
	}
}

func GetToolInfos(ctx context.Context, tools []tool.BaseTool) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(tools))
	for _, t := range tools {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("tool info: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// SanitizeArguments normalises model-produced tool arguments: trims strings,
// coerces numeric strings and clamps limits. Arguments that are not a JSON
// object are returned unchanged; the tool reports its own decode error.
func SanitizeArguments(name, arguments string) string {
	var m map[string]any
	if err := json.Unmarshal([]byte(arguments), &m); err != nil {
		return arguments
	}

	switch name {
	case ToolSearchProduct:
		if v, ok := m["query"]; ok {
			m["query"] = strings.TrimSpace(fmt.Sprint(v))
		}
		if v, ok := m["category"]; ok {
			if s, isString := v.(string); isString {
				m["category"] = strings.TrimSpace(s)
			} else {
				delete(m, "category")
			}
		}
		for _, k := range []string{"min_price", "max_price", "min_rating"} {
			if v, ok := m[k]; ok {
				if f, ok := toFloat(v); ok && f >= 0 {
					m[k] = f
				} else {
					delete(m, k)
				}
			}
		}
		if v, ok := m["max_results"]; ok {
			if n, ok := toInt(v); ok {
				m["max_results"] = clampInt(n, 1, maxMaxResults)
			} else {
				delete(m, "max_results")
			}
		}
	case ToolGetProductDetails, ToolAddToCart, ToolUpdateCartQuantity, ToolRemoveFromCart:
		if v, ok := m["product_id"]; ok {
			if n, ok := toInt(v); ok {
				m["product_id"] = n
			} else {
				delete(m, "product_id")
			}
		}
		if v, ok := m["quantity"]; ok {
			if n, ok := toInt(v); ok {
				if name == ToolAddToCart {
					n = clampInt(n, 1, maxAddQuantity)
				}
				m["quantity"] = n
			} else {
				delete(m, "quantity")
			}
		}
	}

	b, err := json.Marshal(m)
	if err != nil {
		return arguments
	}
	return string(b)
}

func toInt(v any) (int, bool) {
	switch vv := v.(type) {
	case float64:
		return int(vv), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(vv))
		return n, err == nil
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch vv := v.(type) {
	case float64:
		return vv, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(vv), "$")), 64)
		return f, err == nil
	}
	return 0, false
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
