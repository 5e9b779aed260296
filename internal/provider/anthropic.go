package provider

import (
	"context"
	"net/http"
	"time"

	"doclens-api/internal/config"

	"go.uber.org/zap"
)

const (
	anthropicName    = "anthropic"
	anthropicVersion = "2023-06-01"
)

// AnthropicAdapter implements the Adapter interface for the Anthropic
// messages API
type AnthropicAdapter struct {
	config     config.GenerationConfig
	logger     *zap.Logger
	httpClient *http.Client
}

// anthropicRequest represents the request structure for the messages API
type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature,omitempty"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// anthropicResponse represents the response from the messages API
type anthropicResponse struct {
	Content    []anthropicContent `json:"content"`
	StopReason string             `json:"stop_reason"`
	Error      *anthropicError    `json:"error,omitempty"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewAnthropicAdapter creates a new AnthropicAdapter instance
func NewAnthropicAdapter(config config.GenerationConfig, logger *zap.Logger) *AnthropicAdapter {
	return &AnthropicAdapter{
		config: config,
		logger: logger,
		httpClient: &http.Client{
			Timeout: time.Duration(config.Timeout) * time.Second,
		},
	}
}

// Name implements the Adapter interface
func (a *AnthropicAdapter) Name() string { return anthropicName }

// Capability implements the Adapter interface
func (a *AnthropicAdapter) Capability() Capability { return CapabilityTextGeneration }

// Invoke implements the Adapter interface
func (a *AnthropicAdapter) Invoke(ctx context.Context, req Request) (*Result, error) {
	if a.config.APIKey == "" {
		return nil, NewConfigurationError(anthropicName, "api_key", "API key is required")
	}

	payload := anthropicRequest{
		Model:       a.config.Model,
		MaxTokens:   a.config.MaxTokens,
		Temperature: a.config.Temperature,
		System:      req.System,
		Messages: []anthropicMessage{
			{Role: "user", Content: req.Prompt},
		},
	}

	headers := map[string]string{
		"x-api-key":         a.config.APIKey,
		"anthropic-version": anthropicVersion,
	}

	body, err := postJSON(ctx, a.httpClient, anthropicName, a.config.APIEndpoint, headers, payload)
	if err != nil {
		return nil, err
	}

	var resp anthropicResponse
	if err := decodeJSON(anthropicName, body, &resp); err != nil {
		return nil, err
	}

	if resp.Error != nil {
		return nil, NewAPIError(anthropicName, http.StatusOK, resp.Error.Message)
	}
	if len(resp.Content) == 0 {
		return nil, NewMalformedResponseError(anthropicName, "content", "response contained no content blocks")
	}
	if resp.Content[0].Text == "" {
		return nil, NewMalformedResponseError(anthropicName, "content[0].text", "first content block contained no text")
	}

	return &Result{Provider: anthropicName, Text: resp.Content[0].Text}, nil
}
