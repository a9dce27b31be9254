package model

// ================ Config ================
type HTTPConfig struct {
	Addr         string `envconfig:"HTTP_ADDR" default:":8080"`
	ReadTimeout  string `envconfig:"HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout string `envconfig:"HTTP_WRITE_TIMEOUT" default:"30s"`
}

type SessionConfig struct {
	TTL           string `envconfig:"SESSION_TTL" default:"30m"`
	SweepInterval string `envconfig:"SESSION_SWEEP_INTERVAL" default:"1m"`
}

type CatalogConfig struct {
	// Path to a YAML catalog; the built-in sample catalog is used when empty.
	Path string `envconfig:"CATALOG_PATH"`
}

type CheckoutConfig struct {
	DeliveryDays          int    `envconfig:"CHECKOUT_DELIVERY_DAYS" default:"5"`
	FreeShippingThreshold string `envconfig:"CHECKOUT_FREE_SHIPPING_THRESHOLD" default:"100"`
}

type ConversationConfig struct {
	TTL      string `envconfig:"CONVERSATION_TTL" default:"15m"`
	MaxTurns int    `envconfig:"CONVERSATION_MAX_TURNS" default:"20"`
	Tools    struct {
		MaxCalls int `envconfig:"CONVERSATION_TOOL_MAX_CALLS" default:"10"`
	}
}

type ResponseModelConfig struct {
	Model       string  `envconfig:"RESPONSE_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"RESPONSE_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"RESPONSE_TEMPERATURE" default:"0.4"`
}

type ResponsePromptConfig struct {
	BusinessType string `envconfig:"PROMPT_BUSINESS_TYPE" default:"electronics store"`
	BusinessName string `envconfig:"PROMPT_BUSINESS_NAME" default:"TechHub"`
}
