package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"doclens-api/internal/events"
	"doclens-api/internal/provider"

	"go.uber.org/zap"
)

// Enricher augments generation requests with auxiliary entity and sentiment
// signals before the primary call. Enrichment is best-effort and never
// blocking: on any error the original request is returned unmodified.
type Enricher struct {
	registry    *provider.Registry
	eventBus    events.EventBus
	logger      *zap.Logger
	minLength   int
	maxEntities int
}

// NewEnricher creates a new Enricher instance
func NewEnricher(registry *provider.Registry, eventBus events.EventBus, logger *zap.Logger, minLength, maxEntities int) *Enricher {
	return &Enricher{
		registry:    registry,
		eventBus:    eventBus,
		logger:      logger,
		minLength:   minLength,
		maxEntities: maxEntities,
	}
}

// Enrich attaches extracted entities and coarse sentiment to a request when
// an entity-extraction provider is available and the payload is long enough
// to be worth the extra call
func (e *Enricher) Enrich(ctx context.Context, req TaskRequest) EnrichedRequest {
	enriched := EnrichedRequest{TaskRequest: req}

	if capabilityFor(req.Type) != provider.CapabilityTextGeneration {
		return enriched
	}
	if len(req.Text) < e.minLength {
		return enriched
	}

	extractors := e.registry.Available(provider.CapabilityEntityExtraction)
	if len(extractors) == 0 {
		return enriched
	}
	extractor := extractors[0]

	result, err := extractor.Invoke(ctx, provider.Request{Text: req.Text})
	if err != nil {
		e.logger.Warn("Enrichment failed, continuing with original request",
			zap.String("task_type", req.Type.String()),
			zap.String("provider", extractor.Name()),
			zap.Error(err))
		return enriched
	}

	entities := result.Entities
	if len(entities) > e.maxEntities {
		entities = entities[:e.maxEntities]
	}
	if len(entities) == 0 && result.Sentiment == "" {
		return enriched
	}

	enriched.Entities = entities
	enriched.Sentiment = result.Sentiment
	enriched.Enriched = true

	if publishErr := e.eventBus.Publish(events.TopicEnrichmentApplied, events.EnrichmentApplied{
		Event:       events.NewEvent(),
		TaskType:    req.Type.String(),
		Provider:    extractor.Name(),
		EntityCount: len(entities),
		Sentiment:   result.Sentiment,
	}); publishErr != nil {
		e.logger.Error("Failed to publish EnrichmentApplied event", zap.Error(publishErr))
	}

	return enriched
}

// digest renders the derived signals as a compact note appended to the
// context passed to the generation adapter
func (r EnrichedRequest) digest() string {
	if !r.Enriched {
		return ""
	}

	var parts []string
	if len(r.Entities) > 0 {
		names := make([]string, 0, len(r.Entities))
		for _, entity := range r.Entities {
			names = append(names, entity.Name)
		}
		parts = append(parts, "Key entities: "+strings.Join(names, ", ")+".")
	}
	if r.Sentiment != "" {
		parts = append(parts, fmt.Sprintf("Overall document sentiment: %s.", r.Sentiment))
	}
	return strings.Join(parts, " ")
}
