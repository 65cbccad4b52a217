package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// chatClient talks to any OpenAI-compatible chat-completions endpoint.
// OpenAI, OpenRouter, vLLM and Friendli all share this wire format.
type chatClient struct {
	label    string
	baseURL  string
	apiKey   string
	model    string
	jsonMode bool
	client   *http.Client
}

func (c *chatClient) Name() string {
	return fmt.Sprintf("%s (%s)", c.label, c.model)
}

func (c *chatClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	messages := make([]map[string]string, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, map[string]string{"role": "system", "content": req.SystemPrompt})
	}
	messages = append(messages, map[string]string{"role": "user", "content": req.Prompt})

	payload := map[string]interface{}{
		"model":    c.model,
		"messages": messages,
	}
	if req.MaxTokens > 0 {
		payload["max_tokens"] = req.MaxTokens
	}
	if req.Temperature != nil {
		payload["temperature"] = *req.Temperature
	}
	if req.JSONOutput && c.jsonMode {
		payload["response_format"] = map[string]string{"type": "json_object"}
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%s generation failed: marshal request: %w", c.label, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/chat/completions", c.baseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("%s generation failed: create request: %w", c.label, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%s generation failed: %w", c.label, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%s generation failed: status %d: %s", c.label, resp.StatusCode, string(body))
	}

	var chatResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("%s generation failed: decode response: %w", c.label, err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("%s generation failed: no choices returned", c.label)
	}

	return chatResp.Choices[0].Message.Content, nil
}

func newChatClient(label, baseURL, apiKey, model string, jsonMode bool, timeout time.Duration) *chatClient {
	return &chatClient{
		label:    label,
		baseURL:  baseURL,
		apiKey:   apiKey,
		model:    model,
		jsonMode: jsonMode,
		client:   &http.Client{Timeout: timeout},
	}
}
