package observers

import (
	"context"
	"encoding/json"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/tool"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"

	logx "github.com/storefront-core/server/pkg/logger"
)

func newToolHandler() *callbackHelper.ToolCallbackHandler {
	return &callbackHelper.ToolCallbackHandler{
		OnStart: func(ctx context.Context, info *einocb.RunInfo, input *tool.CallbackInput) context.Context {
			if input != nil {
				ev := logx.Info().Str("tool", info.Name)
				if json.Valid([]byte(input.ArgumentsInJSON)) {
					ev = ev.RawJSON("arguments", []byte(input.ArgumentsInJSON))
				} else {
					ev = ev.Str("arguments", input.ArgumentsInJSON)
				}
				ev.Msg("tool start")
			}
			return ctx
		},
		OnEnd: func(ctx context.Context, info *einocb.RunInfo, output *tool.CallbackOutput) context.Context {
			if output != nil {
				logx.Debug().Str("tool", info.Name).Str("response", output.Response).Msg("tool end")
			}
			return ctx
		},
		OnError: func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			logx.Error().Err(err).Str("tool", info.Name).Msg("tool failed")
			return ctx
		},
	}
}
