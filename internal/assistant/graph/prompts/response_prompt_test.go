package prompts

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront-core/server/internal/cart"
	"github.com/storefront-core/server/internal/model"
)

func TestRenderResponseSystem(t *testing.T) {
	headphones := model.Product{ID: 1, Name: "Wireless Headphones", Price: decimal.RequireFromString("199.99"), InStock: true}
	state := cart.Replay(model.AddItem(headphones), model.AddItem(headphones))

	out, err := RenderResponseSystem(context.Background(), model.ResponsePromptConfig{
		BusinessType: "electronics store",
		BusinessName: "TechHub",
	}, ResponseData{
		Categories: []string{"All", "Electronics"},
		Cart:       state,
	})
	require.NoError(t, err)

	assert.Contains(t, out, "TechHub")
	assert.Contains(t, out, "All, Electronics")
	assert.Contains(t, out, "add_to_cart")
	assert.Contains(t, out, "- #1 Wireless Headphones x2 = $399.98")
	assert.Contains(t, out, "Total: $399.98 (2 items)")
}

func TestRenderResponseSystemEmptyCart(t *testing.T) {
	out, err := RenderResponseSystem(context.Background(), model.ResponsePromptConfig{}, ResponseData{Cart: model.EmptyCart()})
	require.NoError(t, err)
	assert.NotContains(t, out, "Current cart")
}

func TestCartSummaryEmpty(t *testing.T) {
	assert.Empty(t, CartSummary(model.EmptyCart()))
}
