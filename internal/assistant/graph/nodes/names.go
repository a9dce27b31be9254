package nodes

// Graph node keys.
const (
	NodeInputConverter    = "InputConverter"
	NodeResponseChatModel = "ResponseChatModel"
	NodeToolExecutor      = "ToolExecutor"
)
