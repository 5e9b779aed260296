package provider

import (
	"context"
	"net/http"
	"time"

	"doclens-api/internal/config"

	"go.uber.org/zap"
)

const geminiName = "gemini"

// GeminiAdapter implements the Adapter interface for the Google Gemini
// generateContent API
type GeminiAdapter struct {
	config     config.GenerationConfig
	logger     *zap.Logger
	httpClient *http.Client
}

// geminiRequest represents the request structure for the generateContent API
type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig,omitempty"`
}

// geminiContent represents content in the request
type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

// geminiPart represents a part of the content
type geminiPart struct {
	Text string `json:"text"`
}

// geminiGenerationConfig represents generation configuration
type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

// geminiResponse represents the response from the generateContent API
type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
	Error      *geminiError      `json:"error,omitempty"`
}

// geminiCandidate represents a candidate response
type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason"`
}

// geminiError represents an error from the API
type geminiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// NewGeminiAdapter creates a new GeminiAdapter instance
func NewGeminiAdapter(config config.GenerationConfig, logger *zap.Logger) *GeminiAdapter {
	return &GeminiAdapter{
		config: config,
		logger: logger,
		httpClient: &http.Client{
			Timeout: time.Duration(config.Timeout) * time.Second,
		},
	}
}

// Name implements the Adapter interface
func (a *GeminiAdapter) Name() string { return geminiName }

// Capability implements the Adapter interface
func (a *GeminiAdapter) Capability() Capability { return CapabilityTextGeneration }

// Invoke implements the Adapter interface
func (a *GeminiAdapter) Invoke(ctx context.Context, req Request) (*Result, error) {
	if a.config.APIKey == "" {
		return nil, NewConfigurationError(geminiName, "api_key", "API key is required")
	}

	// Gemini has no separate system slot at this API version; prepend it to
	// the user turn instead.
	prompt := req.Prompt
	if req.System != "" {
		prompt = req.System + "\n\n" + prompt
	}

	payload := geminiRequest{
		Contents: []geminiContent{
			{
				Parts: []geminiPart{{Text: prompt}},
				Role:  "user",
			},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     a.config.Temperature,
			MaxOutputTokens: a.config.MaxTokens,
		},
	}

	headers := map[string]string{
		"x-goog-api-key": a.config.APIKey,
	}

	body, err := postJSON(ctx, a.httpClient, geminiName, a.config.APIEndpoint, headers, payload)
	if err != nil {
		return nil, err
	}

	var resp geminiResponse
	if err := decodeJSON(geminiName, body, &resp); err != nil {
		return nil, err
	}

	if resp.Error != nil {
		return nil, NewAPIError(geminiName, http.StatusOK, resp.Error.Message)
	}
	if len(resp.Candidates) == 0 {
		return nil, NewMalformedResponseError(geminiName, "candidates", "response contained no candidates")
	}
	candidate := resp.Candidates[0]
	if len(candidate.Content.Parts) == 0 {
		return nil, NewMalformedResponseError(geminiName, "candidates[0].content.parts", "first candidate contained no parts")
	}
	text := candidate.Content.Parts[0].Text
	if text == "" {
		return nil, NewMalformedResponseError(geminiName, "candidates[0].content.parts[0].text", "first part contained no text")
	}

	return &Result{Provider: geminiName, Text: text}, nil
}
