package catalog

import (
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errx "github.com/storefront-core/server/internal/core/error"
	"github.com/storefront-core/server/internal/model"
)

func ids(ps []model.Product) []int {
	out := make([]int, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func price(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func TestNewRejectsInvalidProducts(t *testing.T) {
	_, err := New([]model.Product{{ID: 1}, {ID: 1}})
	assert.ErrorContains(t, err, "duplicate product id 1")

	_, err = New([]model.Product{{ID: 1, Price: decimal.RequireFromString("-1")}})
	assert.ErrorContains(t, err, "negative price")

	_, err = New([]model.Product{{ID: 1, Rating: 5.1}})
	assert.ErrorContains(t, err, "rating")
}

func TestGet(t *testing.T) {
	c := Sample()

	p, err := c.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "Smartphone Pro", p.Name)

	_, err = c.Get(99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProductNotFound))
	assert.Equal(t, http.StatusNotFound, errx.StatusOf(err))
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"All", "Audio", "Phones", "Gaming", "Accessories"}, Sample().Categories())
}

func TestListIsACopy(t *testing.T) {
	c := Sample()
	list := c.List()
	list[0].Name = "changed"
	p, err := c.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Wireless Headphones", p.Name)
	assert.Equal(t, 6, c.Len())
}

func TestSearch(t *testing.T) {
	c := Sample()

	tests := []struct {
		name   string
		filter Filter
		want   []int
	}{
		{name: "no filter", filter: Filter{}, want: []int{1, 2, 3, 4, 5, 6}},
		{name: "all categories", filter: Filter{Category: AllCategories}, want: []int{1, 2, 3, 4, 5, 6}},
		{name: "category", filter: Filter{Category: "Audio"}, want: []int{1, 4}},
		{name: "query on name", filter: Filter{Query: "WIRELESS"}, want: []int{1, 5}},
		{name: "query on category", filter: Filter{Query: "gaming"}, want: []int{3}},
		{name: "query on description", filter: Filter{Query: "waterproof"}, want: []int{4}},
		{name: "blank query", filter: Filter{Query: "   "}, want: []int{1, 2, 3, 4, 5, 6}},
		{name: "price range inclusive", filter: Filter{MinPrice: price("59.99"), MaxPrice: price("199.99")}, want: []int{1, 4, 6}},
		{name: "max price", filter: Filter{MaxPrice: price("50")}, want: []int{5}},
		{name: "min rating", filter: Filter{MinRating: 4.7}, want: []int{1, 2, 3}},
		{name: "combined", filter: Filter{Query: "wireless", Category: "Accessories", MinRating: 4}, want: []int{5}},
		{name: "no match", filter: Filter{Query: "toaster"}, want: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(c.Search(tt.filter)))
		})
	}
}

func TestLoad(t *testing.T) {
	c, err := Load("testdata/catalog.yaml")
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())

	p, err := c.Get(4)
	require.NoError(t, err)
	assert.Equal(t, "4K Webcam", p.Name)
	assert.Equal(t, "129.99", p.Price.StringFixed(2))
	assert.False(t, p.InStock)
	assert.Equal(t, []string{"All", "Audio", "Gaming", "Accessories"}, c.Categories())
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("products:\n  - id: 1\n    price: abc\n"))
	assert.ErrorContains(t, err, `price "abc"`)

	_, err = Parse([]byte("products: [\n"))
	assert.ErrorContains(t, err, "decode catalog")

	_, err = Load("testdata/missing.yaml")
	assert.Error(t, err)
}
