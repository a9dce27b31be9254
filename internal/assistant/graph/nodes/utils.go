package nodes

import (
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/storefront-core/server/internal/model"
)

const DefaultMaxToolCalls = 10

// normalizeMaxToolCalls returns the default for non-positive limits.
func normalizeMaxToolCalls(n int) int {
	if n <= 0 {
		return DefaultMaxToolCalls
	}
	return n
}

// checkAndMarkToolLimit marks the state once the count has reached max.
// Returns true only on the call that marks it.
func checkAndMarkToolLimit(state *model.AppState, max int) bool {
	max = normalizeMaxToolCalls(max)
	if !state.ToolCallLimitReached && state.ToolCallCount >= max {
		state.ToolCallLimitReached = true
		return true
	}
	return false
}

// incrementToolCallAndCheck counts one tool round and reports whether the
// limit is now exceeded.
func incrementToolCallAndCheck(state *model.AppState, max int) bool {
	max = normalizeMaxToolCalls(max)
	state.ToolCallCount++
	if state.ToolCallCount > max {
		state.ToolCallLimitReached = true
		return true
	}
	return false
}

// fillToolCallIDs assigns call_N ids to tool calls the provider left blank.
func fillToolCallIDs(state *model.AppState, msg *schema.Message) {
	if msg == nil {
		return
	}
	for i := range msg.ToolCalls {
		if strings.TrimSpace(msg.ToolCalls[i].ID) == "" {
			state.ToolCallIDSeq++
			msg.ToolCalls[i].ID = fmt.Sprintf("call_%d", state.ToolCallIDSeq)
		}
	}
}

// fillToolResultID gives a tool result without tool_call_id the id of the
// latest assistant tool call in history.
func fillToolResultID(history []*schema.Message, msg *schema.Message) {
	if msg == nil || msg.Role != schema.Tool || strings.TrimSpace(msg.ToolCallID) != "" {
		return
	}
	for i := len(history) - 1; i >= 0; i-- {
		h := history[i]
		if h == nil || h.Role != schema.Assistant || len(h.ToolCalls) == 0 {
			continue
		}
		msg.ToolCallID = h.ToolCalls[0].ID
		return
	}
}

func toolLimitNotice(max int) *schema.Message {
	return schema.SystemMessage(fmt.Sprintf(
		"SYSTEM NOTICE: You have reached the maximum tool call limit (%d). "+
			"Answer with the information you already have and tell the customer if something could not be completed.",
		normalizeMaxToolCalls(max),
	))
}
