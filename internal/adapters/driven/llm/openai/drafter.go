// Package openai provides a drafting adapter using the OpenAI API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/crucible-labs/forge-cli/internal/core/domain"
	"github.com/crucible-labs/forge-cli/internal/core/ports/driven"
)

// Ensure Drafter implements the interface.
var _ driven.Drafter = (*Drafter)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 120 * time.Second

	// DefaultRequestsPerSecond paces drafting calls well below typical
	// account limits; drafting is sequential so there is no burst demand.
	DefaultRequestsPerSecond = 2.0
	DefaultBurst             = 1
)

// systemPrompt instructs the model to answer with a single draft object.
const systemPrompt = `You are a careful extractor. Produce a single JSON object with fields:
- "chunk_id": the provided chunk id
- "title": short title or "" if unclear
- "summary": brief summary or "" if unclear
- "keywords": array of short keywords or [] if unclear
- "confidence": always 0.0
Do not add fields. Do not explain. Return JSON only.`

// DrafterConfig holds configuration for the OpenAI drafter.
type DrafterConfig struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.openai.com/v1).
	// Can be changed for Azure OpenAI or compatible APIs.
	BaseURL string

	// Model is the model to draft with (default: gpt-4o-mini).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration

	// RequestsPerSecond throttles drafting calls (default: 2/s).
	RequestsPerSecond float64

	// Burst is the throttle burst size (default: 1).
	Burst int
}

// Drafter asks the OpenAI chat completions API for one draft per chunk.
type Drafter struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
	limiter *rate.Limiter
}

// chatCompletionRequest is the /chat/completions request format.
type chatCompletionRequest struct {
	Model          string              `json:"model"`
	Messages       []chatCompletionMsg `json:"messages"`
	Temperature    float64             `json:"temperature"`
	ResponseFormat *responseFormat     `json:"response_format,omitempty"`
}

// chatCompletionMsg is the chat message format.
type chatCompletionMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// responseFormat constrains the model output shape.
type responseFormat struct {
	Type string `json:"type"`
}

// chatCompletionResponse is the /chat/completions response format.
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewDrafter creates a new OpenAI drafter. A missing API key is a
// configuration error, raised here so the stage fails before any
// network call.
func NewDrafter(cfg DrafterConfig) (*Drafter, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY is not set", domain.ErrConfiguration)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultBurst
	}

	return &Drafter{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}, nil
}

// ModelName returns the configured model.
func (d *Drafter) ModelName() string {
	return d.model
}

// Draft returns the raw model content for one chunk. Calls are paced by
// the rate limiter but never reordered.
func (d *Drafter) Draft(ctx context.Context, chunk domain.Chunk) (string, error) {
	if err := d.limiter.Wait(ctx); err != nil {
		return "", err
	}

	reqBody := chatCompletionRequest{
		Model: d.model,
		Messages: []chatCompletionMsg{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf("Chunk ID: %s\n\nText:\n%s", chunk.ID, chunk.Text)},
		},
		Temperature:    0,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("openai: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+d.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("openai: read response: %w", err)
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("openai: decode response (status %d): %w", resp.StatusCode, err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("openai: API error (%s): %s", parsed.Error.Type, parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai: unexpected status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai: response contained no choices")
	}

	content := parsed.Choices[0].Message.Content
	if content == "" {
		content = "{}"
	}
	return content, nil
}
