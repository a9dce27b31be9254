package features

import (
	"context"
	"fmt"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/storefront-core/server/internal/cart"
	"github.com/storefront-core/server/internal/model"
)

type cartTestContext struct {
	store    *cart.Store
	products map[int]model.Product
	last     cart.Result
}

func (c *cartTestContext) reset() {
	c.store = cart.NewStore()
	c.products = map[int]model.Product{}
	c.last = cart.Result{}
}

func (c *cartTestContext) anEmptyCart() error {
	if !c.store.State().IsEmpty() {
		return fmt.Errorf("expected a new cart to be empty")
	}
	return nil
}

func (c *cartTestContext) aProductPriced(id int, name, price string) error {
	d, err := decimal.NewFromString(price)
	if err != nil {
		return err
	}
	c.products[id] = model.Product{ID: id, Name: name, Price: d, InStock: true}
	return nil
}

func (c *cartTestContext) iAddProduct(id int) error {
	p, ok := c.products[id]
	if !ok {
		return fmt.Errorf("product %d was not declared", id)
	}
	c.last = c.store.AddItem(p)
	return nil
}

func (c *cartTestContext) iSetQuantity(id, qty int) error {
	c.last = c.store.UpdateQuantity(id, qty)
	return nil
}

func (c *cartTestContext) iRemoveProduct(id int) error {
	c.last = c.store.RemoveItem(id)
	return nil
}

func (c *cartTestContext) iClearTheCart() error {
	c.last = c.store.ClearCart()
	return nil
}

func (c *cartTestContext) theCartHasLineItems(n int) error {
	if got := len(c.store.State().Items); got != n {
		return fmt.Errorf("expected %d line items, got %d", n, got)
	}
	return nil
}

func (c *cartTestContext) theCartIsEmpty() error {
	return c.theCartHasLineItems(0)
}

func (c *cartTestContext) productHasQuantity(id, qty int) error {
	li, ok := c.store.State().Find(id)
	if !ok {
		return fmt.Errorf("product %d is not in the cart", id)
	}
	if li.Quantity != qty {
		return fmt.Errorf("expected quantity %d for product %d, got %d", qty, id, li.Quantity)
	}
	return nil
}

func (c *cartTestContext) theCartTotalIs(want string) error {
	if got := c.store.State().Total.StringFixed(2); got != want {
		return fmt.Errorf("expected total %s, got %s", want, got)
	}
	return nil
}

func (c *cartTestContext) theLastActionChangedNothing() error {
	if c.last.Changed {
		return fmt.Errorf("expected the last action to be a no-op")
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &cartTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^an empty cart$`, tc.anEmptyCart)
	ctx.Step(`^a product (\d+) "([^"]*)" priced "([^"]*)"$`, tc.aProductPriced)

	ctx.Step(`^I add product (\d+) to the cart$`, tc.iAddProduct)
	ctx.Step(`^I set the quantity of product (\d+) to (-?\d+)$`, tc.iSetQuantity)
	ctx.Step(`^I remove product (\d+)$`, tc.iRemoveProduct)
	ctx.Step(`^I clear the cart$`, tc.iClearTheCart)

	ctx.Step(`^the cart has (\d+) line items?$`, tc.theCartHasLineItems)
	ctx.Step(`^the cart is empty$`, tc.theCartIsEmpty)
	ctx.Step(`^product (\d+) has quantity (\d+)$`, tc.productHasQuantity)
	ctx.Step(`^the cart total is "([^"]*)"$`, tc.theCartTotalIs)
	ctx.Step(`^the last action changed nothing$`, tc.theLastActionChangedNothing)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"cart.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
