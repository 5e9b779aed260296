package provider

import (
	"context"
	"net/http"
	"time"

	"doclens-api/internal/config"

	"go.uber.org/zap"
)

const deepSeekName = "deepseek"

// DeepSeekAdapter implements the Adapter interface for the DeepSeek API,
// which speaks the OpenAI chat-completions wire format at its own endpoint
type DeepSeekAdapter struct {
	config     config.GenerationConfig
	logger     *zap.Logger
	httpClient *http.Client
}

// NewDeepSeekAdapter creates a new DeepSeekAdapter instance
func NewDeepSeekAdapter(config config.GenerationConfig, logger *zap.Logger) *DeepSeekAdapter {
	return &DeepSeekAdapter{
		config: config,
		logger: logger,
		httpClient: &http.Client{
			Timeout: time.Duration(config.Timeout) * time.Second,
		},
	}
}

// Name implements the Adapter interface
func (a *DeepSeekAdapter) Name() string { return deepSeekName }

// Capability implements the Adapter interface
func (a *DeepSeekAdapter) Capability() Capability { return CapabilityTextGeneration }

// Invoke implements the Adapter interface
func (a *DeepSeekAdapter) Invoke(ctx context.Context, req Request) (*Result, error) {
	if a.config.APIKey == "" {
		return nil, NewConfigurationError(deepSeekName, "api_key", "API key is required")
	}

	headers := map[string]string{
		"Authorization": "Bearer " + a.config.APIKey,
	}
	return invokeChatCompletions(ctx, a.httpClient, deepSeekName, a.config, headers, req)
}
