package orchestrator

import (
	"context"
	"strings"
	"testing"

	"doclens-api/internal/events"
	"doclens-api/internal/mocks"
	"doclens-api/internal/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func longDocument() string {
	return strings.Repeat("Acme Corp reported strong quarterly results in Berlin. ", 10)
}

func extractionResult(entityCount int, sentiment string) *provider.Result {
	entities := make([]provider.Entity, 0, entityCount)
	for i := 0; i < entityCount; i++ {
		entities = append(entities, provider.Entity{
			Name:     "Entity " + string(rune('A'+i)),
			Type:     "Organization",
			Salience: 0.9,
		})
	}
	return &provider.Result{Provider: "textanalytics", Entities: entities, Sentiment: sentiment}
}

func TestEnricher_AttachesEntitiesAndSentiment(t *testing.T) {
	logger := zaptest.NewLogger(t)
	eventBus := events.NewMockEventBus()

	extractor := mocks.NewMockAdapter("textanalytics", provider.CapabilityEntityExtraction)
	extractor.SetResult(extractionResult(2, "positive"))

	registry := provider.NewStaticRegistry(logger, extractor)
	enricher := NewEnricher(registry, eventBus, logger, 50, 10)

	req := TaskRequest{Type: TaskSummarize, Text: longDocument()}
	enriched := enricher.Enrich(context.Background(), req)

	assert.True(t, enriched.Enriched)
	assert.Len(t, enriched.Entities, 2)
	assert.Equal(t, "positive", enriched.Sentiment)
	assert.Equal(t, 1, extractor.InvocationCount())

	// The digest lands in the generation prompt as additional context.
	preq := buildProviderRequest(enriched)
	assert.Contains(t, preq.Prompt, "Key entities:")
	assert.Contains(t, preq.Prompt, "positive")

	assert.Len(t, eventBus.GetPublishedEvents(events.TopicEnrichmentApplied), 1)
}

func TestEnricher_CapsEntityCount(t *testing.T) {
	logger := zaptest.NewLogger(t)

	extractor := mocks.NewMockAdapter("textanalytics", provider.CapabilityEntityExtraction)
	extractor.SetResult(extractionResult(15, "neutral"))

	registry := provider.NewStaticRegistry(logger, extractor)
	enricher := NewEnricher(registry, events.NewMockEventBus(), logger, 50, 10)

	enriched := enricher.Enrich(context.Background(), TaskRequest{Type: TaskSummarize, Text: longDocument()})

	assert.Len(t, enriched.Entities, 10)
}

func TestEnricher_SkipsShortPayloads(t *testing.T) {
	logger := zaptest.NewLogger(t)

	extractor := mocks.NewMockAdapter("textanalytics", provider.CapabilityEntityExtraction)
	registry := provider.NewStaticRegistry(logger, extractor)
	enricher := NewEnricher(registry, events.NewMockEventBus(), logger, 280, 10)

	enriched := enricher.Enrich(context.Background(), TaskRequest{Type: TaskSummarize, Text: "short text"})

	assert.False(t, enriched.Enriched)
	assert.Equal(t, 0, extractor.InvocationCount())
}

func TestEnricher_SkipsNonGenerationTasks(t *testing.T) {
	logger := zaptest.NewLogger(t)

	extractor := mocks.NewMockAdapter("textanalytics", provider.CapabilityEntityExtraction)
	registry := provider.NewStaticRegistry(logger, extractor)
	enricher := NewEnricher(registry, events.NewMockEventBus(), logger, 50, 10)

	for _, taskType := range []TaskType{TaskTranslate, TaskExtractEntities} {
		enriched := enricher.Enrich(context.Background(), TaskRequest{Type: taskType, Text: longDocument()})
		assert.False(t, enriched.Enriched, taskType.String())
	}
	assert.Equal(t, 0, extractor.InvocationCount())
}

func TestEnricher_SkipsWhenNoExtractorAvailable(t *testing.T) {
	logger := zaptest.NewLogger(t)

	registry := provider.NewStaticRegistry(logger)
	enricher := NewEnricher(registry, events.NewMockEventBus(), logger, 50, 10)

	enriched := enricher.Enrich(context.Background(), TaskRequest{Type: TaskSummarize, Text: longDocument()})

	assert.False(t, enriched.Enriched)
}

func TestEnricher_FailureReturnsOriginalRequest(t *testing.T) {
	logger := zaptest.NewLogger(t)

	extractor := mocks.NewFailingMockAdapter("textanalytics", provider.CapabilityEntityExtraction,
		provider.NewTransportError("textanalytics", "http_request", context.DeadlineExceeded))
	registry := provider.NewStaticRegistry(logger, extractor)
	enricher := NewEnricher(registry, events.NewMockEventBus(), logger, 50, 10)

	req := TaskRequest{Type: TaskAnswerQuestion, Text: longDocument(), Options: TaskOptions{Question: "What happened?"}}
	enriched := enricher.Enrich(context.Background(), req)

	require.Equal(t, 1, extractor.InvocationCount())
	assert.False(t, enriched.Enriched)
	assert.Equal(t, req, enriched.TaskRequest)
	assert.Empty(t, enriched.Entities)
}
