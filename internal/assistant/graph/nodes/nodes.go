package nodes

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/storefront-core/server/internal/assistant/graph/conversations"
	"github.com/storefront-core/server/internal/assistant/graph/prompts"
	"github.com/storefront-core/server/internal/assistant/graph/tools"
	"github.com/storefront-core/server/internal/catalog"
	"github.com/storefront-core/server/internal/model"
	logx "github.com/storefront-core/server/pkg/logger"
)

// NewInputConverterPreHandler binds the session and resets per-query counters.
func NewInputConverterPreHandler() func(context.Context, model.QueryInput, *model.AppState) (model.QueryInput, error) {
	return func(ctx context.Context, in model.QueryInput, s *model.AppState) (model.QueryInput, error) {
		s.SessionID = in.SessionID
		s.History = nil
		s.ToolCallCount = 0
		s.ToolCallLimitReached = false
		s.ToolCallIDSeq = 0
		s.TotalCostUSD = 0
		return in, nil
	}
}

// NewInputConverterNode stores the query and assembles the model context:
// system prompt (with a snapshot of the cart) plus recent history.
func NewInputConverterNode(
	mm *conversations.MessagesManager,
	c *catalog.Catalog,
	carts tools.CartService,
	promptCfg *model.ResponsePromptConfig,
) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, input model.QueryInput) ([]*schema.Message, error) {
		if err := mm.SaveQuery(ctx, input.SessionID, input.Query); err != nil {
			return nil, fmt.Errorf("save query: %w", err)
		}

		state, err := carts.Cart(ctx, input.SessionID)
		if err != nil {
			return nil, fmt.Errorf("load cart: %w", err)
		}

		sysPrompt, err := prompts.RenderResponseSystem(ctx, *promptCfg, prompts.ResponseData{
			Categories: c.Categories(),
			Cart:       state,
		})
		if err != nil {
			return nil, fmt.Errorf("render response prompt: %w", err)
		}

		messages, err := mm.BuildResponseContext(ctx, input.SessionID, sysPrompt)
		if err != nil {
			return nil, fmt.Errorf("build response context: %w", err)
		}
		return messages, nil
	})
}

// NewResponseChatModelPreHandler accumulates the conversation of this query
// in state and appends a wrap-up notice once the tool limit is hit.
func NewResponseChatModelPreHandler(maxToolCalls int) func(context.Context, []*schema.Message, *model.AppState) ([]*schema.Message, error) {
	return func(ctx context.Context, in []*schema.Message, state *model.AppState) ([]*schema.Message, error) {
		for _, m := range in {
			fillToolResultID(state.History, m)
		}
		state.History = append(state.History, in...)

		if checkAndMarkToolLimit(state, maxToolCalls) {
			state.History = append(state.History, toolLimitNotice(maxToolCalls))
		}

		logx.Debug().Str("session_id", state.SessionID).Int("messages", len(state.History)).Msg("Calling response model")
		return state.History, nil
	}
}

// NewResponseChatModelPostHandler records usage cost, normalises tool call
// ids and saves final answers to the conversation history.
func NewResponseChatModelPostHandler(
	mm *conversations.MessagesManager,
	modelName string,
) func(context.Context, *schema.Message, *model.AppState) (*schema.Message, error) {
	return func(ctx context.Context, out *schema.Message, state *model.AppState) (*schema.Message, error) {
		if out == nil {
			return nil, fmt.Errorf("response model returned no message")
		}

		if out.ResponseMeta != nil && out.ResponseMeta.Usage != nil {
			cost := model.ComputeCost(modelName, out.ResponseMeta.Usage)
			state.TotalCostUSD += cost.TotalCost
			if out.Extra == nil {
				out.Extra = map[string]any{}
			}
			out.Extra["usage_cost"] = cost
			out.Extra["usage_cost_total_usd"] = state.TotalCostUSD

			logx.Debug().
				Str("session_id", state.SessionID).
				Str("node", NodeResponseChatModel).
				Str("model", modelName).
				Int("prompt_tokens", cost.PromptTokens).
				Int("completion_tokens", cost.CompletionTokens).
				Float64("total_cost_usd", cost.TotalCost).
				Msg("LLM usage")
		}

		fillToolCallIDs(state, out)
		state.History = append(state.History, out)

		if len(out.ToolCalls) > 0 && !state.ToolCallLimitReached {
			logx.Debug().Int("tool_count", len(out.ToolCalls)).Msg("Calling tools")
			return out, nil
		}

		if out.Role == schema.Assistant && strings.TrimSpace(out.Content) != "" {
			if err := mm.SaveResponse(ctx, state.SessionID, out.Content); err != nil {
				logx.Error().Err(err).Str("session_id", state.SessionID).Msg("Error saving assistant response")
			}
		}
		return out, nil
	}
}

// NewToolExecutorCondition routes to the tools node while the model asks for
// tools and the limit has not been reached.
func NewToolExecutorCondition() func(context.Context, *schema.Message) (string, error) {
	return func(ctx context.Context, input *schema.Message) (string, error) {
		var limitReached bool
		err := compose.ProcessState(ctx, func(_ context.Context, state *model.AppState) error {
			limitReached = state.ToolCallLimitReached
			return nil
		})
		if err != nil {
			return "", err
		}

		if limitReached {
			logx.Debug().Msg("Tool limit reached - routing to end")
			return compose.END, nil
		}
		if input != nil && len(input.ToolCalls) > 0 {
			return NodeToolExecutor, nil
		}
		return compose.END, nil
	}
}

// NewToolExecutorPreHandler counts tool rounds.
func NewToolExecutorPreHandler(maxToolCalls int) func(context.Context, *schema.Message, *model.AppState) (*schema.Message, error) {
	return func(ctx context.Context, in *schema.Message, state *model.AppState) (*schema.Message, error) {
		if incrementToolCallAndCheck(state, maxToolCalls) {
			logx.Warn().
				Int("tool_call_count", state.ToolCallCount).
				Int("max_tool_calls", normalizeMaxToolCalls(maxToolCalls)).
				Str("session_id", state.SessionID).
				Msg("Tool call limit exceeded")
		}
		return in, nil
	}
}
