package tools

import (
	"context"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/storefront-core/server/internal/catalog"
	"github.com/storefront-core/server/internal/model"
)

type GetProductDetailsInput struct {
	ProductID int `json:"product_id"`
}

type GetProductDetailsOutput struct {
	Found   bool           `json:"found"`
	Product *model.Product `json:"product,omitempty"`
	Message string         `json:"message,omitempty"`
}

func createGetProductDetailsTool(c *catalog.Catalog) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolGetProductDetails,
			Desc: "Get the full record of one product: description, price, category, rating and whether it is in stock. Use it before recommending or adding a product the customer asked about.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_id": {
					Type:     "integer",
					Desc:     "Product id from search_product results.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *GetProductDetailsInput) (*GetProductDetailsOutput, error) {
			p, err := c.Get(in.ProductID)
			if err != nil {
				return &GetProductDetailsOutput{Found: false, Message: err.Error()}, nil
			}
			return &GetProductDetailsOutput{Found: true, Product: &p}, nil
		},
	)
}
