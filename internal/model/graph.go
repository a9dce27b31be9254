package model

import (
	"github.com/cloudwego/eino/schema"
)

// AppState is the per-query local state of the assistant graph.
// It is registered with compose.WithGenLocalState and must only be touched
// inside state handlers or compose.ProcessState, which serialize access.
type AppState struct {
	SessionID            string
	History              []*schema.Message
	ToolCallCount        int
	ToolCallLimitReached bool
	ToolCallIDSeq        int // synthesizes tool_call_id when the provider omits one

	TotalCostUSD float64
}

// QueryInput is one shopper message addressed to the assistant.
type QueryInput struct {
	SessionID string `json:"session_id"`
	Query     string `json:"query"`
}

// Reply is what the assistant returns for a query.
type Reply struct {
	Content      string  `json:"content"`
	TotalCostUSD float64 `json:"total_cost_usd,omitempty"`
}
