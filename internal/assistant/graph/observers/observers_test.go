package observers

import (
	"bytes"
	"context"
	"errors"
	"testing"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/tool"
	"github.com/stretchr/testify/assert"

	"github.com/storefront-core/server/internal/core"
	logx "github.com/storefront-core/server/pkg/logger"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logx.Init(logx.LoggerOpts{Environment: core.Production, Output: &buf})
	t.Cleanup(func() { logx.Init() })
	return &buf
}

func TestToolCallbacksLogArguments(t *testing.T) {
	buf := captureLogs(t)
	h := NewAllCallbacks()
	info := &einocb.RunInfo{Name: "add_to_cart", Component: components.ComponentOfTool}

	h.OnStart(context.Background(), info, &tool.CallbackInput{ArgumentsInJSON: `{"product_id":1}`})
	assert.Contains(t, buf.String(), `"arguments":{"product_id":1}`)
	assert.Contains(t, buf.String(), `"tool":"add_to_cart"`)

	buf.Reset()
	h.OnStart(context.Background(), info, &tool.CallbackInput{ArgumentsInJSON: `not json`})
	assert.Contains(t, buf.String(), `"arguments":"not json"`)
}

func TestToolCallbacksLogErrors(t *testing.T) {
	buf := captureLogs(t)
	h := NewAllCallbacks()
	info := &einocb.RunInfo{Name: "view_cart", Component: components.ComponentOfTool}

	h.OnError(context.Background(), info, errors.New("session not found"))
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), "session not found")
}
