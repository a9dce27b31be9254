package graph

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/storefront-core/server/internal/assistant/graph/conversations"
	"github.com/storefront-core/server/internal/assistant/graph/nodes"
	"github.com/storefront-core/server/internal/assistant/graph/observers"
	"github.com/storefront-core/server/internal/assistant/graph/tools"
	"github.com/storefront-core/server/internal/catalog"
	"github.com/storefront-core/server/internal/model"
	logx "github.com/storefront-core/server/pkg/logger"
)

// Runner answers one shopper query within their session.
type Runner interface {
	Invoke(ctx context.Context, in model.QueryInput) (model.Reply, error)
}

// Config holds everything needed to build the assistant end-to-end.
type Config struct {
	APIKey           string
	BaseURL          string
	ResponseModel    model.ResponseModelConfig
	ResponsePrompt   model.ResponsePromptConfig
	Conversation     model.ConversationConfig
	ConversationRepo model.ConversationRepository
	Catalog          *catalog.Catalog
	Carts            tools.CartService
}

// GraphConfig holds all configuration needed to build the graph
type GraphConfig struct {
	ChatModels           *nodes.ChatModels
	MessagesManager      *conversations.MessagesManager
	Catalog              *catalog.Catalog
	Carts                tools.CartService
	ResponsePromptConfig *model.ResponsePromptConfig
	ToolMaxCalls         int
}

// GraphBuilder handles the construction of the assistant graph
type GraphBuilder struct {
	config *GraphConfig
	graph  *compose.Graph[model.QueryInput, *schema.Message]
}

type graphRunner struct {
	runnable compose.Runnable[model.QueryInput, *schema.Message]
	carts    tools.CartService
}

func (r *graphRunner) Invoke(ctx context.Context, in model.QueryInput) (model.Reply, error) {
	// Resolve the session first so an unknown id surfaces as not-found
	// instead of a graph error.
	if _, err := r.carts.Cart(ctx, in.SessionID); err != nil {
		return model.Reply{}, err
	}

	ctx = tools.WithSessionID(ctx, in.SessionID)
	out, err := r.runnable.Invoke(ctx, in, compose.WithCallbacks(observers.NewAllCallbacks()))
	if err != nil {
		return model.Reply{}, err
	}
	if out == nil {
		return model.Reply{}, nil
	}

	reply := model.Reply{Content: out.Content}
	if total, ok := out.Extra["usage_cost_total_usd"].(float64); ok {
		reply.TotalCostUSD = total
	}
	return reply, nil
}

// BuildResponseGraph creates the chat model and messages manager, builds the
// graph and returns a Runner.
func BuildResponseGraph(ctx context.Context, cfg Config) (Runner, error) {
	cms, err := nodes.NewChatModels(ctx, nodes.ChatModelConfig{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		RespConfig: &cfg.ResponseModel,
	})
	if err != nil {
		return nil, err
	}
	return NewRunner(ctx, cms, cfg)
}

// NewRunner builds the graph around already constructed chat models.
func NewRunner(ctx context.Context, cms *nodes.ChatModels, cfg Config) (Runner, error) {
	if cfg.ConversationRepo == nil {
		return nil, fmt.Errorf("conversation repo is nil")
	}
	if cfg.Carts == nil {
		return nil, fmt.Errorf("cart service is nil")
	}

	mm := conversations.NewMessagesManager(cfg.ConversationRepo, cfg.Conversation)

	runnable, err := BuildGraph(ctx, &GraphConfig{
		ChatModels:           cms,
		MessagesManager:      mm,
		Catalog:              cfg.Catalog,
		Carts:                cfg.Carts,
		ResponsePromptConfig: &cfg.ResponsePrompt,
		ToolMaxCalls:         cfg.Conversation.Tools.MaxCalls,
	})
	if err != nil {
		return nil, err
	}

	logx.Debug().Msg("Assistant graph built successfully")
	return &graphRunner{runnable: runnable, carts: cfg.Carts}, nil
}

// BuildGraph constructs and returns the compiled assistant graph
func BuildGraph(ctx context.Context, config *GraphConfig) (compose.Runnable[model.QueryInput, *schema.Message], error) {
	if config == nil {
		return nil, fmt.Errorf("graph config is nil")
	}
	if config.ChatModels == nil || config.ChatModels.Response == nil {
		return nil, fmt.Errorf("chat models are not properly initialized")
	}
	if config.MessagesManager == nil {
		return nil, fmt.Errorf("messages manager is nil")
	}
	if config.Catalog == nil || config.Carts == nil {
		return nil, fmt.Errorf("catalog and cart service are required")
	}
	if config.ResponsePromptConfig == nil {
		return nil, fmt.Errorf("response prompt config is nil")
	}

	builder := &GraphBuilder{
		config: config,
		graph: compose.NewGraph[model.QueryInput, *schema.Message](
			compose.WithGenLocalState(func(ctx context.Context) *model.AppState {
				return &model.AppState{}
			}),
		),
	}

	if err := builder.setupTools(ctx); err != nil {
		return nil, err
	}
	if err := builder.addNodes(); err != nil {
		return nil, err
	}
	if err := builder.addEdges(); err != nil {
		return nil, err
	}
	if err := builder.addBranches(); err != nil {
		return nil, err
	}

	return builder.compile(ctx)
}

// setupTools binds the catalog and cart tools to the response model and adds
// the tools node.
func (b *GraphBuilder) setupTools(ctx context.Context) error {
	businessTools := tools.GetQueryTools(b.config.Catalog, b.config.Carts)
	toolInfos, err := tools.GetToolInfos(ctx, businessTools)
	if err != nil {
		logx.Error().Err(err).Msg("Failed to get tool infos")
		return fmt.Errorf("failed to get tool infos: %w", err)
	}

	if err := b.config.ChatModels.BindToolsToResponseModel(ctx, toolInfos); err != nil {
		return fmt.Errorf("failed to bind tools to response model: %w", err)
	}

	toolsNode, err := compose.NewToolNode(ctx, &compose.ToolsNodeConfig{
		Tools:               businessTools,
		ExecuteSequentially: true,
		UnknownToolsHandler: func(ctx context.Context, name, input string) (string, error) {
			logx.Warn().
				Str("tool_name", name).
				Str("arguments", input).
				Msg("Unknown or invalid tool call; returning fallback result")
			return fmt.Sprintf("{\"error\":\"unknown_tool\",\"name\":%q,\"note\":\"ignored\"}", name), nil
		},
		ToolArgumentsHandler: func(ctx context.Context, name, arguments string) (string, error) {
			return tools.SanitizeArguments(name, arguments), nil
		},
	})
	if err != nil {
		logx.Error().Err(err).Msg("Failed to create tools node")
		return fmt.Errorf("failed to create tools node: %w", err)
	}

	return b.graph.AddToolsNode(nodes.NodeToolExecutor, toolsNode,
		compose.WithStatePreHandler(nodes.NewToolExecutorPreHandler(b.config.ToolMaxCalls)),
	)
}

func (b *GraphBuilder) addNodes() error {
	if err := b.graph.AddLambdaNode(nodes.NodeInputConverter,
		nodes.NewInputConverterNode(b.config.MessagesManager, b.config.Catalog, b.config.Carts, b.config.ResponsePromptConfig),
		compose.WithStatePreHandler(nodes.NewInputConverterPreHandler()),
	); err != nil {
		return fmt.Errorf("add input converter: %w", err)
	}

	if err := b.graph.AddChatModelNode(nodes.NodeResponseChatModel,
		b.config.ChatModels.Response,
		compose.WithStatePreHandler(nodes.NewResponseChatModelPreHandler(b.config.ToolMaxCalls)),
		compose.WithStatePostHandler(nodes.NewResponseChatModelPostHandler(b.config.MessagesManager, b.config.ChatModels.ResponseModelName)),
	); err != nil {
		return fmt.Errorf("add response model: %w", err)
	}
	return nil
}

func (b *GraphBuilder) addEdges() error {
	edges := [][2]string{
		{compose.START, nodes.NodeInputConverter},
		{nodes.NodeInputConverter, nodes.NodeResponseChatModel},
		{nodes.NodeToolExecutor, nodes.NodeResponseChatModel},
	}

	for _, edge := range edges {
		if err := b.graph.AddEdge(edge[0], edge[1]); err != nil {
			return fmt.Errorf("add edge %s -> %s: %w", edge[0], edge[1], err)
		}
	}
	return nil
}

func (b *GraphBuilder) addBranches() error {
	decisionBranch := compose.NewGraphBranch(
		nodes.NewToolExecutorCondition(),
		map[string]bool{
			nodes.NodeToolExecutor: true,
			compose.END:            true,
		},
	)
	if err := b.graph.AddBranch(nodes.NodeResponseChatModel, decisionBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding decision branch")
		return fmt.Errorf("error adding decision branch: %w", err)
	}
	return nil
}

func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[model.QueryInput, *schema.Message], error) {
	// Bound the model/tool loop even if the limit handlers misbehave.
	maxSteps := 10 + b.config.ToolMaxCalls*2
	if maxSteps < 20 {
		maxSteps = 20
	}

	runnable, err := b.graph.Compile(ctx, compose.WithMaxRunSteps(maxSteps))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}
	return runnable, nil
}
