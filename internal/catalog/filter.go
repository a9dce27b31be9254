package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/storefront-core/server/internal/model"
)

// Filter narrows a product listing. Zero values disable each criterion.
type Filter struct {
	// Query matches name, category or description, case-insensitively.
	Query string
	// Category "" or AllCategories matches every category.
	Category  string
	MinPrice  decimal.NullDecimal
	MaxPrice  decimal.NullDecimal
	MinRating float64
}

// Match reports whether p passes every criterion. Price bounds are inclusive.
func (f Filter) Match(p model.Product) bool {
	if f.Category != "" && f.Category != AllCategories && p.Category != f.Category {
		return false
	}
	if f.MinPrice.Valid && p.Price.LessThan(f.MinPrice.Decimal) {
		return false
	}
	if f.MaxPrice.Valid && p.Price.GreaterThan(f.MaxPrice.Decimal) {
		return false
	}
	if p.Rating < f.MinRating {
		return false
	}

	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Category), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}

// Search returns the matching products in catalog order.
func (c *Catalog) Search(f Filter) []model.Product {
	out := []model.Product{}
	for _, p := range c.products {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}
