// Package provider defines the generation backend contract and the concrete
// LLM adapters (OpenAI, OpenRouter, vLLM, Friendli, Google AI, Ollama).
//
// Every adapter issues a single blocking HTTP round-trip per Generate call.
// There is no retry or backoff at this layer; callers that need bounded
// latency pass a context with a deadline.
package provider

import "context"

// GenerateRequest carries one generation request. Zero values mean
// "provider default": MaxTokens 0 and Temperature nil are omitted from the
// wire request.
type GenerateRequest struct {
	Prompt       string
	SystemPrompt string
	MaxTokens    int
	Temperature  *float64
	// JSONOutput asks the backend for a structured JSON response where the
	// API supports it. Backends without a JSON mode ignore it.
	JSONOutput bool
}

// Provider is a generation backend. Implementations must be safe for
// sequential reuse; errors are returned unmodified apart from a prefix
// naming the provider.
type Provider interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
	Name() string
}
