package nodes

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/storefront-core/server/internal/model"
	logx "github.com/storefront-core/server/pkg/logger"
)

// ChatModelConfig holds the configuration for chat model creation
type ChatModelConfig struct {
	APIKey     string
	BaseURL    string
	RespConfig *model.ResponseModelConfig
}

// ChatModels holds the model that answers shoppers and drives tool calls.
type ChatModels struct {
	Response          einomodel.ChatModel
	ResponseModelName string
}

// NewChatModels creates the Gemini response model.
func NewChatModels(ctx context.Context, config ChatModelConfig) (*ChatModels, error) {
	if config.RespConfig == nil {
		return nil, fmt.Errorf("response model config is nil")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	chatModelResponse, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.RespConfig.Model,
		Temperature: &config.RespConfig.Temperature,
		MaxTokens:   &config.RespConfig.MaxTokens,
		ThinkingConfig: &genai.ThinkingConfig{
			IncludeThoughts: false,
			ThinkingBudget:  genai.Ptr(int32(1024)),
		},
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Response model")
		return nil, fmt.Errorf("error creating Response model: %w", err)
	}

	return &ChatModels{
		Response:          chatModelResponse,
		ResponseModelName: config.RespConfig.Model,
	}, nil
}

// BindToolsToResponseModel binds tools to the response chat model
func (cm *ChatModels) BindToolsToResponseModel(ctx context.Context, tools []*schema.ToolInfo) error {
	if err := cm.Response.BindTools(tools); err != nil {
		logx.Error().Err(err).Msg("Failed to bind tools")
		return fmt.Errorf("failed to bind tools: %w", err)
	}

	logx.Debug().Int("tool_count", len(tools)).Msg("Bound tools to response model")
	return nil
}
