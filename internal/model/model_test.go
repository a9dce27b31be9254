package model

import (
	"encoding/json"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineItemSubtotal(t *testing.T) {
	li := LineItem{Product: Product{ID: 1, Price: decimal.RequireFromString("199.99")}, Quantity: 3}
	assert.Equal(t, "599.97", li.Subtotal().StringFixed(2))
}

func TestCartStateClone(t *testing.T) {
	s := CartState{Items: []LineItem{{Product: Product{ID: 1}, Quantity: 1}}, Total: decimal.Zero}
	c := s.Clone()
	c.Items[0].Quantity = 9
	assert.Equal(t, 1, s.Items[0].Quantity)
}

func TestCartStateLookups(t *testing.T) {
	s := CartState{Items: []LineItem{
		{Product: Product{ID: 4}, Quantity: 2},
		{Product: Product{ID: 7}, Quantity: 3},
	}}
	assert.Equal(t, 1, s.Index(7))
	assert.Equal(t, -1, s.Index(9))
	li, ok := s.Find(4)
	require.True(t, ok)
	assert.Equal(t, 2, li.Quantity)
	assert.Equal(t, 5, s.ItemCount())
	assert.True(t, EmptyCart().IsEmpty())
}

func TestActionJSON(t *testing.T) {
	in := AddItem(Product{ID: 2, Name: "Smartphone Pro", Price: decimal.RequireFromString("899.99")})
	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"type":"ADD_ITEM"`)

	var out Action
	require.NoError(t, json.Unmarshal(b, &out))
	require.NotNil(t, out.Product)
	assert.Equal(t, 2, out.Product.ID)
	assert.True(t, out.Product.Price.Equal(in.Product.Price))
}

func TestActionValidate(t *testing.T) {
	assert.NoError(t, AddItem(Product{ID: 1}).Validate())
	assert.NoError(t, UpdateQuantity(1, 0).Validate())
	assert.NoError(t, ClearCart().Validate())
	assert.Error(t, Action{Type: ActionAddItem}.Validate())
	assert.Error(t, Action{Type: "CHECKOUT"}.Validate())
	assert.Equal(t, "UPDATE_QUANTITY(3, 5)", UpdateQuantity(3, 5).String())
}

func TestComputeCost(t *testing.T) {
	c := ComputeCost("gemini-2.5-flash", &schema.TokenUsage{PromptTokens: 1_000_000, CompletionTokens: 1_000_000, TotalTokens: 2_000_000})
	assert.InDelta(t, 0.30, c.InputCost, 1e-9)
	assert.InDelta(t, 2.80, c.TotalCost, 1e-9)

	assert.Zero(t, ComputeCost("unknown", &schema.TokenUsage{PromptTokens: 10}).TotalCost)
	assert.Zero(t, ComputeCost("gemini-2.5-flash", nil).TotalTokens)
}
