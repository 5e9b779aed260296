package provider

import (
	"context"
	"net/http"
	"time"

	"doclens-api/internal/config"

	"go.uber.org/zap"
)

const openAIName = "openai"

// OpenAIAdapter implements the Adapter interface for the OpenAI
// chat-completions API
type OpenAIAdapter struct {
	config     config.GenerationConfig
	logger     *zap.Logger
	httpClient *http.Client
}

// Chat-completions wire envelope, shared with the OpenAI-compatible DeepSeek
// endpoint.

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []chatChoice   `json:"choices"`
	Error   *chatAPIError  `json:"error,omitempty"`
	Usage   *chatUsageInfo `json:"usage,omitempty"`
}

type chatChoice struct {
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type chatAPIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

type chatUsageInfo struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// NewOpenAIAdapter creates a new OpenAIAdapter instance
func NewOpenAIAdapter(config config.GenerationConfig, logger *zap.Logger) *OpenAIAdapter {
	return &OpenAIAdapter{
		config: config,
		logger: logger,
		httpClient: &http.Client{
			Timeout: time.Duration(config.Timeout) * time.Second,
		},
	}
}

// Name implements the Adapter interface
func (a *OpenAIAdapter) Name() string { return openAIName }

// Capability implements the Adapter interface
func (a *OpenAIAdapter) Capability() Capability { return CapabilityTextGeneration }

// Invoke implements the Adapter interface
func (a *OpenAIAdapter) Invoke(ctx context.Context, req Request) (*Result, error) {
	if a.config.APIKey == "" {
		return nil, NewConfigurationError(openAIName, "api_key", "API key is required")
	}

	headers := map[string]string{
		"Authorization": "Bearer " + a.config.APIKey,
	}
	return invokeChatCompletions(ctx, a.httpClient, openAIName, a.config, headers, req)
}

// invokeChatCompletions sends a chat-completions request and normalizes the
// first generated message. Used by every adapter speaking the OpenAI wire
// format.
func invokeChatCompletions(ctx context.Context, client *http.Client, name string, cfg config.GenerationConfig, headers map[string]string, req Request) (*Result, error) {
	messages := make([]chatMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	payload := chatRequest{
		Model:       cfg.Model,
		Messages:    messages,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}

	body, err := postJSON(ctx, client, name, cfg.APIEndpoint, headers, payload)
	if err != nil {
		return nil, err
	}

	var resp chatResponse
	if err := decodeJSON(name, body, &resp); err != nil {
		return nil, err
	}

	if resp.Error != nil {
		return nil, NewAPIError(name, http.StatusOK, resp.Error.Message)
	}
	if len(resp.Choices) == 0 {
		return nil, NewMalformedResponseError(name, "choices", "response contained no choices")
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return nil, NewMalformedResponseError(name, "choices[0].message.content", "first choice contained no text")
	}

	return &Result{Provider: name, Text: content}, nil
}
