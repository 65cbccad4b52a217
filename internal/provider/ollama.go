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

const defaultOllamaModel = "llama3.2"

// Ollama generates text through a local Ollama server.
type Ollama struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllama creates a provider backed by an Ollama instance. An empty
// baseURL selects the local default.
func NewOllama(baseURL, model string) *Ollama {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = defaultOllamaModel
	}
	return &Ollama{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (o *Ollama) Name() string {
	return fmt.Sprintf("Ollama (%s)", o.model)
}

func (o *Ollama) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	payload := map[string]interface{}{
		"model":  o.model,
		"prompt": req.Prompt,
		"stream": false,
	}
	if req.SystemPrompt != "" {
		payload["system"] = req.SystemPrompt
	}
	if req.JSONOutput {
		payload["format"] = "json"
	}
	options := map[string]interface{}{}
	if req.MaxTokens > 0 {
		options["num_predict"] = req.MaxTokens
	}
	if req.Temperature != nil {
		options["temperature"] = *req.Temperature
	}
	if len(options) > 0 {
		payload["options"] = options
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("Ollama generation failed: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/api/generate", o.baseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("Ollama generation failed: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("Ollama generation failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("Ollama generation failed: status %d: %s", resp.StatusCode, string(body))
	}

	var ollamaResp struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ollamaResp); err != nil {
		return "", fmt.Errorf("Ollama generation failed: decode response: %w", err)
	}

	return ollamaResp.Response, nil
}
