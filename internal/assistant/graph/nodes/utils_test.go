package nodes

import (
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"

	"github.com/storefront-core/server/internal/model"
)

func TestToolLimit(t *testing.T) {
	s := &model.AppState{}

	assert.False(t, incrementToolCallAndCheck(s, 2))
	assert.False(t, checkAndMarkToolLimit(s, 2))
	assert.False(t, incrementToolCallAndCheck(s, 2))
	assert.True(t, checkAndMarkToolLimit(s, 2))
	assert.False(t, checkAndMarkToolLimit(s, 2), "marks only once")
	assert.True(t, s.ToolCallLimitReached)
}

func TestNormalizeMaxToolCalls(t *testing.T) {
	assert.Equal(t, DefaultMaxToolCalls, normalizeMaxToolCalls(0))
	assert.Equal(t, DefaultMaxToolCalls, normalizeMaxToolCalls(-3))
	assert.Equal(t, 4, normalizeMaxToolCalls(4))
}

func TestFillToolCallIDs(t *testing.T) {
	s := &model.AppState{}
	msg := schema.AssistantMessage("", []schema.ToolCall{
		{Function: schema.FunctionCall{Name: "view_cart"}},
		{ID: "given", Function: schema.FunctionCall{Name: "add_to_cart"}},
		{ID: "  ", Function: schema.FunctionCall{Name: "view_cart"}},
	})

	fillToolCallIDs(s, msg)

	assert.Equal(t, "call_1", msg.ToolCalls[0].ID)
	assert.Equal(t, "given", msg.ToolCalls[1].ID)
	assert.Equal(t, "call_2", msg.ToolCalls[2].ID)
}

func TestFillToolResultID(t *testing.T) {
	history := []*schema.Message{
		schema.UserMessage("add headphones"),
		schema.AssistantMessage("", []schema.ToolCall{{ID: "call_7"}}),
	}

	missing := schema.ToolMessage("{}", "")
	fillToolResultID(history, missing)
	assert.Equal(t, "call_7", missing.ToolCallID)

	given := schema.ToolMessage("{}", "x")
	fillToolResultID(history, given)
	assert.Equal(t, "x", given.ToolCallID)
}
