package provider

import (
	"context"
	"net/http"
	"strings"
	"time"

	"doclens-api/internal/config"

	"go.uber.org/zap"
)

const deepLName = "deepl"

// DeepLAdapter implements the Adapter interface for the DeepL translation API
type DeepLAdapter struct {
	config     config.TranslationConfig
	logger     *zap.Logger
	httpClient *http.Client
}

// deepLRequest represents the request structure for the translate endpoint
type deepLRequest struct {
	Text       []string `json:"text"`
	SourceLang string   `json:"source_lang,omitempty"`
	TargetLang string   `json:"target_lang"`
}

// deepLResponse represents the response from the translate endpoint
type deepLResponse struct {
	Translations []deepLTranslation `json:"translations"`
	Message      string             `json:"message,omitempty"`
}

type deepLTranslation struct {
	DetectedSourceLanguage string `json:"detected_source_language"`
	Text                   string `json:"text"`
}

// NewDeepLAdapter creates a new DeepLAdapter instance
func NewDeepLAdapter(config config.TranslationConfig, logger *zap.Logger) *DeepLAdapter {
	return &DeepLAdapter{
		config: config,
		logger: logger,
		httpClient: &http.Client{
			Timeout: time.Duration(config.Timeout) * time.Second,
		},
	}
}

// Name implements the Adapter interface
func (a *DeepLAdapter) Name() string { return deepLName }

// Capability implements the Adapter interface
func (a *DeepLAdapter) Capability() Capability { return CapabilityTranslation }

// Invoke implements the Adapter interface
func (a *DeepLAdapter) Invoke(ctx context.Context, req Request) (*Result, error) {
	if a.config.APIKey == "" {
		return nil, NewConfigurationError(deepLName, "api_key", "API key is required")
	}
	if req.TargetLang == "" {
		return nil, NewConfigurationError(deepLName, "target_lang", "target language is required")
	}

	payload := deepLRequest{
		Text:       []string{req.Text},
		SourceLang: strings.ToUpper(req.SourceLang),
		TargetLang: strings.ToUpper(req.TargetLang),
	}

	headers := map[string]string{
		"Authorization": "DeepL-Auth-Key " + a.config.APIKey,
	}

	body, err := postJSON(ctx, a.httpClient, deepLName, a.config.APIEndpoint, headers, payload)
	if err != nil {
		return nil, err
	}

	var resp deepLResponse
	if err := decodeJSON(deepLName, body, &resp); err != nil {
		return nil, err
	}

	if len(resp.Translations) == 0 {
		return nil, NewMalformedResponseError(deepLName, "translations", "response contained no translations")
	}
	if resp.Translations[0].Text == "" {
		return nil, NewMalformedResponseError(deepLName, "translations[0].text", "first translation contained no text")
	}

	return &Result{Provider: deepLName, Text: resp.Translations[0].Text}, nil
}
