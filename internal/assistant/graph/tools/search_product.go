package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
	"github.com/shopspring/decimal"

	"github.com/storefront-core/server/internal/catalog"
	"github.com/storefront-core/server/internal/model"
)

type SearchProductInput struct {
	Query      string   `json:"query"`
	Category   string   `json:"category,omitempty"`
	MinPrice   *float64 `json:"min_price,omitempty"`
	MaxPrice   *float64 `json:"max_price,omitempty"`
	MinRating  float64  `json:"min_rating,omitempty"`
	MaxResults int      `json:"max_results,omitempty"`
}

type SearchProductOutput struct {
	Products []model.Product `json:"products"`
	Total    int             `json:"total"`
}

func createSearchProductTool(c *catalog.Catalog) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolSearchProduct,
			Desc: "Search the store catalog. Matches the query against product name, category and description. Returns id, name, price, rating and stock status for each match. Use it whenever the customer mentions a product or a kind of product.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query": {
					Type: "string",
					Desc: "Keywords such as headphones, phone, wireless. Empty returns the whole catalog.",
				},
				"category": {
					Type: "string",
					Desc: fmt.Sprintf("Optional category filter. One of: %v", c.Categories()),
				},
				"min_price": {
					Type: "number",
					Desc: "Optional lowest price in dollars (inclusive).",
				},
				"max_price": {
					Type: "number",
					Desc: "Optional highest price in dollars (inclusive).",
				},
				"min_rating": {
					Type: "number",
					Desc: "Optional minimum rating from 0 to 5.",
				},
				"max_results": {
					Type: "number",
					Desc: "Maximum number of products to return (default: 10, max: 20)",
				},
			}),
		},
		func(ctx context.Context, in *SearchProductInput) (*SearchProductOutput, error) {
			if in.MaxResults <= 0 {
				in.MaxResults = defaultMaxResults
			}
			f := catalog.Filter{
				Query:     in.Query,
				Category:  in.Category,
				MinRating: in.MinRating,
			}
			if in.MinPrice != nil {
				f.MinPrice = decimal.NewNullDecimal(decimal.NewFromFloat(*in.MinPrice))
			}
			if in.MaxPrice != nil {
				f.MaxPrice = decimal.NewNullDecimal(decimal.NewFromFloat(*in.MaxPrice))
			}

			matched := c.Search(f)
			if len(matched) > in.MaxResults {
				matched = matched[:in.MaxResults]
			}
			return &SearchProductOutput{Products: matched, Total: len(matched)}, nil
		},
	)
}
