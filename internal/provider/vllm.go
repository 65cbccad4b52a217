package provider

import (
	"strings"
	"time"
)

// NewVLLM creates a provider backed by a self-hosted vLLM server, which
// exposes an OpenAI-compatible API under /v1. The API key is optional;
// vLLM accepts the placeholder "EMPTY" when authentication is disabled.
func NewVLLM(baseURL, model, apiKey string) Provider {
	baseURL = strings.TrimRight(baseURL, "/")
	if apiKey == "" {
		apiKey = "EMPTY"
	}
	return newChatClient("vLLM", baseURL+"/v1", apiKey, model, false, 120*time.Second)
}
