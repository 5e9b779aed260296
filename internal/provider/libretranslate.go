package provider

import (
	"context"
	"net/http"
	"time"

	"doclens-api/internal/config"

	"go.uber.org/zap"
)

const libreTranslateName = "libretranslate"

// LibreTranslateAdapter implements the Adapter interface for a LibreTranslate
// instance. Self-hosted instances run without an API key, so availability is
// keyed on the endpoint.
type LibreTranslateAdapter struct {
	config     config.TranslationConfig
	logger     *zap.Logger
	httpClient *http.Client
}

// libreTranslateRequest represents the request structure for the translate
// endpoint
type libreTranslateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

// libreTranslateResponse represents the response from the translate endpoint
type libreTranslateResponse struct {
	TranslatedText string              `json:"translatedText"`
	Error          string              `json:"error,omitempty"`
}

// NewLibreTranslateAdapter creates a new LibreTranslateAdapter instance
func NewLibreTranslateAdapter(config config.TranslationConfig, logger *zap.Logger) *LibreTranslateAdapter {
	return &LibreTranslateAdapter{
		config: config,
		logger: logger,
		httpClient: &http.Client{
			Timeout: time.Duration(config.Timeout) * time.Second,
		},
	}
}

// Name implements the Adapter interface
func (a *LibreTranslateAdapter) Name() string { return libreTranslateName }

// Capability implements the Adapter interface
func (a *LibreTranslateAdapter) Capability() Capability { return CapabilityTranslation }

// Invoke implements the Adapter interface
func (a *LibreTranslateAdapter) Invoke(ctx context.Context, req Request) (*Result, error) {
	if a.config.APIEndpoint == "" {
		return nil, NewConfigurationError(libreTranslateName, "api_endpoint", "endpoint is required")
	}
	if req.TargetLang == "" {
		return nil, NewConfigurationError(libreTranslateName, "target_lang", "target language is required")
	}

	source := req.SourceLang
	if source == "" {
		source = "auto"
	}

	payload := libreTranslateRequest{
		Q:      req.Text,
		Source: source,
		Target: req.TargetLang,
		Format: "text",
		APIKey: a.config.APIKey,
	}

	body, err := postJSON(ctx, a.httpClient, libreTranslateName, a.config.APIEndpoint, nil, payload)
	if err != nil {
		return nil, err
	}

	var resp libreTranslateResponse
	if err := decodeJSON(libreTranslateName, body, &resp); err != nil {
		return nil, err
	}

	if resp.Error != "" {
		return nil, NewAPIError(libreTranslateName, http.StatusOK, resp.Error)
	}
	if resp.TranslatedText == "" {
		return nil, NewMalformedResponseError(libreTranslateName, "translatedText", "response contained no translated text")
	}

	return &Result{Provider: libreTranslateName, Text: resp.TranslatedText}, nil
}
