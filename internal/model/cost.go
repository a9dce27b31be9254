package model

import (
	"github.com/cloudwego/eino/schema"
)

// Pricing is USD cost per 1M text tokens.
type Pricing struct {
	InputPerM  float64
	OutputPerM float64
}

var defaultPricing = map[string]Pricing{
	"gemini-2.5-flash":      {InputPerM: 0.30, OutputPerM: 2.50},
	"gemini-2.5-flash-lite": {InputPerM: 0.10, OutputPerM: 0.40},
	"gemini-2.5-pro":        {InputPerM: 1.25, OutputPerM: 10.00},
}

// ResolvePricing returns the pricing for a model; unknown models cost nothing.
func ResolvePricing(model string) Pricing {
	return defaultPricing[model]
}

// UsageCost is the cost breakdown of one model call.
type UsageCost struct {
	Model            string  `json:"model"`
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TotalTokens      int     `json:"total_tokens"`
	InputCost        float64 `json:"input_cost"`
	OutputCost       float64 `json:"output_cost"`
	TotalCost        float64 `json:"total_cost"`
}

// ComputeCost converts token usage into a UsageCost; nil usage costs nothing.
func ComputeCost(model string, usage *schema.TokenUsage) UsageCost {
	c := UsageCost{Model: model}
	if usage == nil {
		return c
	}
	p := ResolvePricing(model)
	c.PromptTokens = usage.PromptTokens
	c.CompletionTokens = usage.CompletionTokens
	c.TotalTokens = usage.TotalTokens
	c.InputCost = p.InputPerM * float64(usage.PromptTokens) / 1_000_000.0
	c.OutputCost = p.OutputPerM * float64(usage.CompletionTokens) / 1_000_000.0
	c.TotalCost = c.InputCost + c.OutputCost
	return c
}
