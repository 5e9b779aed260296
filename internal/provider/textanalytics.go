package provider

import (
	"context"
	"net/http"
	"strings"
	"time"

	"doclens-api/internal/config"

	"go.uber.org/zap"
)

const (
	textAnalyticsName          = "textanalytics"
	textAnalyticsEntitiesPath  = "/text/analytics/v3.1/entities/recognition/general"
	textAnalyticsSentimentPath = "/text/analytics/v3.1/sentiment"
)

// TextAnalyticsAdapter implements the Adapter interface for an Azure Text
// Analytics style document-analysis API. One Invoke performs entity
// recognition and, best-effort, sentiment analysis; a sentiment failure does
// not fail the invocation.
type TextAnalyticsAdapter struct {
	config     config.ExtractionConfig
	logger     *zap.Logger
	httpClient *http.Client
}

// Document envelope shared by both analysis endpoints.

type textAnalyticsRequest struct {
	Documents []textAnalyticsDocument `json:"documents"`
}

type textAnalyticsDocument struct {
	ID       string `json:"id"`
	Language string `json:"language,omitempty"`
	Text     string `json:"text"`
}

type textAnalyticsEntitiesResponse struct {
	Documents []struct {
		ID       string                `json:"id"`
		Entities []textAnalyticsEntity `json:"entities"`
	} `json:"documents"`
	Errors []textAnalyticsDocError `json:"errors"`
}

type textAnalyticsEntity struct {
	Text            string  `json:"text"`
	Category        string  `json:"category"`
	ConfidenceScore float64 `json:"confidenceScore"`
}

type textAnalyticsSentimentResponse struct {
	Documents []struct {
		ID        string `json:"id"`
		Sentiment string `json:"sentiment"`
	} `json:"documents"`
	Errors []textAnalyticsDocError `json:"errors"`
}

type textAnalyticsDocError struct {
	ID    string `json:"id"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewTextAnalyticsAdapter creates a new TextAnalyticsAdapter instance
func NewTextAnalyticsAdapter(config config.ExtractionConfig, logger *zap.Logger) *TextAnalyticsAdapter {
	return &TextAnalyticsAdapter{
		config: config,
		logger: logger,
		httpClient: &http.Client{
			Timeout: time.Duration(config.Timeout) * time.Second,
		},
	}
}

// Name implements the Adapter interface
func (a *TextAnalyticsAdapter) Name() string { return textAnalyticsName }

// Capability implements the Adapter interface
func (a *TextAnalyticsAdapter) Capability() Capability { return CapabilityEntityExtraction }

// Invoke implements the Adapter interface
func (a *TextAnalyticsAdapter) Invoke(ctx context.Context, req Request) (*Result, error) {
	if a.config.APIKey == "" {
		return nil, NewConfigurationError(textAnalyticsName, "api_key", "API key is required")
	}
	if a.config.APIEndpoint == "" {
		return nil, NewConfigurationError(textAnalyticsName, "api_endpoint", "endpoint is required")
	}

	language := req.SourceLang
	if language == "" {
		language = "en"
	}
	payload := textAnalyticsRequest{
		Documents: []textAnalyticsDocument{
			{ID: "1", Language: language, Text: req.Text},
		},
	}

	headers := map[string]string{
		"Ocp-Apim-Subscription-Key": a.config.APIKey,
	}

	entities, err := a.recognizeEntities(ctx, headers, payload)
	if err != nil {
		return nil, err
	}

	result := &Result{Provider: textAnalyticsName, Entities: entities}

	// Sentiment is best-effort: entities alone are a valid result.
	sentiment, err := a.analyzeSentiment(ctx, headers, payload)
	if err != nil {
		a.logger.Warn("Sentiment analysis failed, returning entities only",
			zap.Error(err))
		return result, nil
	}
	result.Sentiment = sentiment

	return result, nil
}

func (a *TextAnalyticsAdapter) recognizeEntities(ctx context.Context, headers map[string]string, payload textAnalyticsRequest) ([]Entity, error) {
	body, err := postJSON(ctx, a.httpClient, textAnalyticsName, a.endpointFor(textAnalyticsEntitiesPath), headers, payload)
	if err != nil {
		return nil, err
	}

	var resp textAnalyticsEntitiesResponse
	if err := decodeJSON(textAnalyticsName, body, &resp); err != nil {
		return nil, err
	}

	if len(resp.Errors) > 0 {
		return nil, NewAPIError(textAnalyticsName, http.StatusOK, resp.Errors[0].Error.Message)
	}
	if len(resp.Documents) == 0 {
		return nil, NewMalformedResponseError(textAnalyticsName, "documents", "response contained no documents")
	}

	entities := make([]Entity, 0, len(resp.Documents[0].Entities))
	for _, e := range resp.Documents[0].Entities {
		entities = append(entities, Entity{
			Name:     e.Text,
			Type:     e.Category,
			Salience: e.ConfidenceScore,
		})
	}
	return entities, nil
}

func (a *TextAnalyticsAdapter) analyzeSentiment(ctx context.Context, headers map[string]string, payload textAnalyticsRequest) (string, error) {
	body, err := postJSON(ctx, a.httpClient, textAnalyticsName, a.endpointFor(textAnalyticsSentimentPath), headers, payload)
	if err != nil {
		return "", err
	}

	var resp textAnalyticsSentimentResponse
	if err := decodeJSON(textAnalyticsName, body, &resp); err != nil {
		return "", err
	}

	if len(resp.Errors) > 0 {
		return "", NewAPIError(textAnalyticsName, http.StatusOK, resp.Errors[0].Error.Message)
	}
	if len(resp.Documents) == 0 {
		return "", NewMalformedResponseError(textAnalyticsName, "documents", "response contained no documents")
	}
	return resp.Documents[0].Sentiment, nil
}

func (a *TextAnalyticsAdapter) endpointFor(path string) string {
	endpoint := strings.TrimSuffix(a.config.APIEndpoint, "/") + path
	if a.config.Model != "" && a.config.Model != "latest" {
		endpoint += "?model-version=" + a.config.Model
	}
	return endpoint
}
