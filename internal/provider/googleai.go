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

const defaultGoogleAIModel = "gemini-1.5-flash"

// GoogleAI generates text through the Gemini generateContent REST API.
type GoogleAI struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGoogleAI creates a provider backed by the Google AI (Gemini) API.
func NewGoogleAI(apiKey, model string) *GoogleAI {
	if model == "" {
		model = defaultGoogleAIModel
	}
	return &GoogleAI{
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (g *GoogleAI) Name() string {
	return fmt.Sprintf("Google AI (%s)", g.model)
}

func (g *GoogleAI) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role":  "user",
				"parts": []map[string]string{{"text": req.Prompt}},
			},
		},
	}
	if req.SystemPrompt != "" {
		payload["system_instruction"] = map[string]interface{}{
			"parts": []map[string]string{{"text": req.SystemPrompt}},
		}
	}

	genConfig := map[string]interface{}{}
	if req.MaxTokens > 0 {
		genConfig["maxOutputTokens"] = req.MaxTokens
	}
	if req.Temperature != nil {
		genConfig["temperature"] = *req.Temperature
	}
	if req.JSONOutput {
		genConfig["responseMimeType"] = "application/json"
	}
	if len(genConfig) > 0 {
		payload["generationConfig"] = genConfig
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("Google AI generation failed: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("Google AI generation failed: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("Google AI generation failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("Google AI generation failed: status %d: %s", resp.StatusCode, string(body))
	}

	var genResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("Google AI generation failed: decode response: %w", err)
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("Google AI generation failed: no candidates returned")
	}

	return genResp.Candidates[0].Content.Parts[0].Text, nil
}
