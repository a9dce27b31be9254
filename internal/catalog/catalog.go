// Package catalog serves the read-only product list the storefront sells.
package catalog

import (
	"errors"
	"fmt"

	errx "github.com/storefront-core/server/internal/core/error"
	"github.com/storefront-core/server/internal/model"
)

// AllCategories is the category value that disables category filtering.
const AllCategories = "All"

var ErrProductNotFound = errors.New("product not found")

type Catalog struct {
	products []model.Product
	byID     map[int]int
}

// New validates products and builds a catalog that keeps their order.
func New(products []model.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]model.Product, 0, len(products)),
		byID:     make(map[int]int, len(products)),
	}
	for _, p := range products {
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d", p.ID)
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("product %d: negative price %s", p.ID, p.Price)
		}
		if p.Rating < 0 || p.Rating > 5 {
			return nil, fmt.Errorf("product %d: rating %.1f outside 0-5", p.ID, p.Rating)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

// List returns every product in catalog order.
func (c *Catalog) List() []model.Product {
	out := make([]model.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Get(id int) (model.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return model.Product{}, errx.NotFound(fmt.Errorf("%w: %d", ErrProductNotFound, id), "product not found")
	}
	return c.products[i], nil
}

// Categories lists AllCategories followed by each category in the order it
// first appears in the catalog.
func (c *Catalog) Categories() []string {
	seen := map[string]bool{}
	out := []string{AllCategories}
	for _, p := range c.products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.products)
}
