package provider

import "time"

const defaultOpenRouterModel = "meta-llama/llama-3.1-8b-instruct:free"

// NewOpenRouter creates a provider backed by the OpenRouter API. An empty
// baseURL selects the public endpoint.
func NewOpenRouter(apiKey, baseURL, model string) Provider {
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	if model == "" {
		model = defaultOpenRouterModel
	}
	return newChatClient("OpenRouter", baseURL, apiKey, model, true, 120*time.Second)
}
