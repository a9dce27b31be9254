package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/storefront-core/server/internal/assistant/graph/tools"
	"github.com/storefront-core/server/internal/model"
)

//go:embed template/response_prompt.txt
var coreSystemPrompt string

// ResponseData is the per-query input of the system prompt.
type ResponseData struct {
	Categories []string
	Cart       model.CartState
}

// RenderResponseSystem renders the system prompt through the eino prompt
// component so prompt callbacks fire.
func RenderResponseSystem(ctx context.Context, config model.ResponsePromptConfig, data ResponseData) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(coreSystemPrompt),
	)
	vars := map[string]any{
		"BusinessType": config.BusinessType,
		"BusinessName": config.BusinessName,
		"Categories":   strings.Join(data.Categories, ", "),
		"CartSummary":  CartSummary(data.Cart),
		"SearchTool":   tools.ToolSearchProduct,
		"DetailsTool":  tools.ToolGetProductDetails,
		"ViewCartTool": tools.ToolViewCart,
		"AddTool":      tools.ToolAddToCart,
		"UpdateTool":   tools.ToolUpdateCartQuantity,
		"RemoveTool":   tools.ToolRemoveFromCart,
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("response prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("response prompt render: empty result")
	}
	return msgs[0].Content, nil
}

// CartSummary renders one line per cart item and a total line. An empty cart
// renders as "".
func CartSummary(s model.CartState) string {
	if s.IsEmpty() {
		return ""
	}
	var b strings.Builder
	for _, li := range s.Items {
		fmt.Fprintf(&b, "- #%d %s x%d = $%s\n", li.ID, li.Name, li.Quantity, li.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(&b, "Total: $%s (%d items)", s.Total.StringFixed(2), s.ItemCount())
	return b.String()
}
