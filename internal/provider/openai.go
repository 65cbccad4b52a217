package provider

import "time"

const defaultOpenAIModel = "gpt-4o-mini"

// NewOpenAI creates a provider backed by the OpenAI chat-completions API.
func NewOpenAI(apiKey, model string) Provider {
	if model == "" {
		model = defaultOpenAIModel
	}
	return newChatClient("OpenAI", "https://api.openai.com/v1", apiKey, model, true, 120*time.Second)
}
