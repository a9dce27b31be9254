package cart

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront-core/server/internal/model"
)

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func product(id int, price string) model.Product {
	return model.Product{
		ID:       id,
		Name:     "product",
		Price:    decimal.RequireFromString(price),
		Category: "Audio",
		Rating:   4.5,
		InStock:  true,
	}
}

func checkConsistent(s model.CartState) error {
	seen := map[int]bool{}
	sum := decimal.Zero
	for _, li := range s.Items {
		if seen[li.ID] {
			return fmt.Errorf("duplicate product id %d", li.ID)
		}
		seen[li.ID] = true
		if li.Quantity < 1 {
			return fmt.Errorf("product %d has quantity %d", li.ID, li.Quantity)
		}
		sum = sum.Add(li.Price.Mul(decimal.NewFromInt(int64(li.Quantity))))
	}
	if !sum.Equal(s.Total) {
		return fmt.Errorf("total %s != sum %s", s.Total, sum)
	}
	return nil
}

func requireConsistent(t *testing.T, s model.CartState) {
	t.Helper()
	require.NoError(t, checkConsistent(s))
}

func TestReduceScenario(t *testing.T) {
	p1 := product(1, "199.99")

	s := model.EmptyCart()
	s = Reduce(s, model.AddItem(p1))
	require.Len(t, s.Items, 1)
	assert.Equal(t, 1, s.Items[0].Quantity)
	assert.Equal(t, "199.99", s.Total.StringFixed(2))

	s = Reduce(s, model.AddItem(p1))
	require.Len(t, s.Items, 1)
	assert.Equal(t, 2, s.Items[0].Quantity)
	assert.Equal(t, "399.98", s.Total.StringFixed(2))

	s = Reduce(s, model.UpdateQuantity(1, 5))
	assert.Equal(t, "999.95", s.Total.StringFixed(2))

	s = Reduce(s, model.RemoveItem(1))
	assert.Empty(t, s.Items)
	assert.Equal(t, "0.00", s.Total.StringFixed(2))
}

func TestReduceMergesRepeatedAdds(t *testing.T) {
	for n := 1; n <= 25; n++ {
		actions := make([]model.Action, n)
		for i := range actions {
			actions[i] = model.AddItem(product(3, "49.99"))
		}
		s := Replay(actions...)
		require.Len(t, s.Items, 1)
		assert.Equal(t, n, s.Items[0].Quantity)
		requireConsistent(t, s)
	}
}

func TestReduceKeepsInsertionOrder(t *testing.T) {
	s := Replay(
		model.AddItem(product(5, "49.99")),
		model.AddItem(product(2, "899.99")),
		model.AddItem(product(5, "49.99")),
		model.AddItem(product(4, "79.99")),
	)
	ids := []int{}
	for _, li := range s.Items {
		ids = append(ids, li.ID)
	}
	assert.Equal(t, []int{5, 2, 4}, ids)
}

func TestReducePreservesPriceAtTimeOfAdd(t *testing.T) {
	s := Replay(model.AddItem(product(1, "10.00")))
	// A later add carries a new price; the existing line item keeps the old one.
	s = Reduce(s, model.AddItem(product(1, "12.00")))
	assert.Equal(t, "10.00", s.Items[0].Price.StringFixed(2))
	assert.Equal(t, "20.00", s.Total.StringFixed(2))
}

func TestReduceAcceptsOutOfStockProducts(t *testing.T) {
	p := product(3, "499.99")
	p.InStock = false
	s := Replay(model.AddItem(p))
	require.Len(t, s.Items, 1)
	assert.False(t, s.Items[0].InStock)
}

func TestUpdateQuantityToZeroEqualsRemove(t *testing.T) {
	base := Replay(
		model.AddItem(product(1, "199.99")),
		model.AddItem(product(2, "899.99")),
		model.AddItem(product(2, "899.99")),
	)
	for _, qty := range []int{0, -1, -100} {
		updated := Reduce(base, model.UpdateQuantity(2, qty))
		removed := Reduce(base, model.RemoveItem(2))
		if diff := cmp.Diff(removed, updated, decimalEqual); diff != "" {
			t.Errorf("UpdateQuantity(2, %d) differs from RemoveItem(2) (-want +got):\n%s", qty, diff)
		}
	}
}

func TestUnknownIDIsNoOp(t *testing.T) {
	base := Replay(model.AddItem(product(1, "199.99")))
	for _, a := range []model.Action{
		model.UpdateQuantity(42, 3),
		model.UpdateQuantity(42, 0),
		model.RemoveItem(42),
		{Type: "UNKNOWN"},
		{Type: model.ActionAddItem},
	} {
		if diff := cmp.Diff(base, Reduce(base, a), decimalEqual); diff != "" {
			t.Errorf("%s changed the cart (-want +got):\n%s", a, diff)
		}
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	base := Replay(model.AddItem(product(1, "199.99")), model.AddItem(product(2, "59.99")))
	once := Reduce(base, model.RemoveItem(1))
	twice := Reduce(once, model.RemoveItem(1))
	if diff := cmp.Diff(once, twice, decimalEqual); diff != "" {
		t.Errorf("second remove changed the cart (-want +got):\n%s", diff)
	}
}

func TestClearAlwaysEmpties(t *testing.T) {
	states := []model.CartState{
		model.EmptyCart(),
		Replay(model.AddItem(product(1, "199.99"))),
		Replay(model.AddItem(product(1, "199.99")), model.AddItem(product(2, "0.01")), model.UpdateQuantity(2, 1000)),
	}
	for _, s := range states {
		c := Reduce(s, model.ClearCart())
		assert.Empty(t, c.Items)
		assert.True(t, c.Total.IsZero())
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	base := Replay(model.AddItem(product(1, "199.99")), model.AddItem(product(2, "59.99")))
	snapshot := base.Clone()

	Reduce(base, model.UpdateQuantity(1, 7))
	Reduce(base, model.RemoveItem(1))
	Reduce(base, model.ClearCart())

	if diff := cmp.Diff(snapshot, base, decimalEqual); diff != "" {
		t.Errorf("input state mutated (-want +got):\n%s", diff)
	}
}

func TestTotalStaysConsistent(t *testing.T) {
	actions := []model.Action{
		model.AddItem(product(1, "199.99")),
		model.AddItem(product(2, "0.10")),
		model.AddItem(product(2, "0.10")),
		model.AddItem(product(3, "0.20")),
		model.UpdateQuantity(3, 3),
		model.RemoveItem(1),
		model.UpdateQuantity(2, 0),
		model.AddItem(product(1, "199.99")),
		model.UpdateQuantity(99, 4),
		model.ClearCart(),
		model.AddItem(product(4, "79.99")),
	}
	s := model.EmptyCart()
	for _, a := range actions {
		s = Reduce(s, a)
		requireConsistent(t, s)
	}
	// 0.10 + 0.20 is exact with decimals.
	s = Replay(model.AddItem(product(2, "0.10")), model.AddItem(product(3, "0.20")))
	assert.True(t, s.Total.Equal(decimal.RequireFromString("0.30")))
}
