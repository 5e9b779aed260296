package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"doclens-api/internal/common"
	"doclens-api/internal/config"
	"doclens-api/internal/events"
	"doclens-api/internal/provider"

	"go.uber.org/zap"
)

// OrchestratorService defines the interface for task orchestration
type OrchestratorService interface {
	// PerformTask routes a task to the best available provider chain and
	// returns a normalized result. "No provider" and "all providers failed"
	// conditions resolve to a degraded result, never an error; only request
	// validation failures are surfaced.
	PerformTask(ctx context.Context, req TaskRequest) (*TaskResult, error)
}

// orchestratorService implements the OrchestratorService interface
type orchestratorService struct {
	registry    *provider.Registry
	router      *Router
	enricher    *Enricher
	executor    *Executor
	eventBus    events.EventBus
	logger      *zap.Logger
	taskTimeout time.Duration
}

// NewOrchestratorService creates a new instance of OrchestratorService
func NewOrchestratorService(eventBus events.EventBus, logger *zap.Logger, registry *provider.Registry, cfg config.OrchestratorConfig) OrchestratorService {
	service := &orchestratorService{
		registry:    registry,
		router:      NewRouter(registry, cfg.Preferences, logger),
		enricher:    NewEnricher(registry, eventBus, logger, cfg.EnrichmentMinLength, cfg.MaxEntities),
		executor:    NewExecutor(eventBus, logger),
		eventBus:    eventBus,
		logger:      logger,
		taskTimeout: time.Duration(cfg.TaskTimeout) * time.Second,
	}

	service.setupEventSubscriptions()

	return service
}

// setupEventSubscriptions sets up event subscriptions for the orchestrator
func (s *orchestratorService) setupEventSubscriptions() {
	err := s.eventBus.Subscribe(events.TopicConfigUpdated, s.handleConfigUpdated)
	if err != nil {
		s.logger.Error("Failed to subscribe to ConfigUpdated events", zap.Error(err))
	}
}

// handleConfigUpdated logs credential updates; the registry snapshot itself
// is swapped by the component that loaded the new configuration
func (s *orchestratorService) handleConfigUpdated(event events.ConfigUpdated) {
	s.logger.Info("Provider configuration updated",
		zap.String("correlationID", event.CorrelationID),
		zap.Strings("providers", event.UpdatedProviders))
}

// PerformTask implements the OrchestratorService interface
func (s *orchestratorService) PerformTask(ctx context.Context, req TaskRequest) (*TaskResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	correlationID := common.NewID().String()
	started := time.Now()

	s.logger.Info("Performing task",
		zap.String("correlationID", correlationID),
		zap.String("task_type", req.Type.String()),
		zap.Int("text_length", len(req.Text)))

	if s.taskTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.taskTimeout)
		defer cancel()
	}

	adapters, err := s.router.Route(req.Type)
	if err != nil {
		if errors.Is(err, ErrNoProviderAvailable) {
			return s.degrade(req, correlationID, "no provider configured"), nil
		}
		return nil, err
	}

	enriched := s.enricher.Enrich(ctx, req)

	result, err := s.executor.Execute(ctx, req.Type, adapters, buildProviderRequest(enriched))
	if err != nil {
		// ErrAllProvidersFailed (and the empty-chain sentinel) resolve to
		// degradation; they are normal signals, not caller errors.
		return s.degrade(req, correlationID, err.Error()), nil
	}

	taskResult := newTaskResult(req, result, correlationID)

	if publishErr := s.eventBus.Publish(events.TopicTaskCompleted, events.TaskCompleted{
		Event:    events.NewEvent(),
		TaskType: req.Type.String(),
		Provider: taskResult.Provider,
		Duration: time.Since(started).Milliseconds(),
	}); publishErr != nil {
		s.logger.Error("Failed to publish TaskCompleted event", zap.Error(publishErr))
	}

	return taskResult, nil
}

// degrade substitutes the degradation placeholder and publishes the
// corresponding event
func (s *orchestratorService) degrade(req TaskRequest, correlationID, reason string) *TaskResult {
	s.logger.Warn("Task degraded",
		zap.String("correlationID", correlationID),
		zap.String("task_type", req.Type.String()),
		zap.String("reason", reason))

	if publishErr := s.eventBus.Publish(events.TopicTaskDegraded, events.TaskDegraded{
		Event:    events.NewEvent(),
		TaskType: req.Type.String(),
		Reason:   reason,
	}); publishErr != nil {
		s.logger.Error("Failed to publish TaskDegraded event", zap.Error(publishErr))
	}

	return placeholderFor(req, correlationID)
}

// newTaskResult maps a normalized provider result onto the task-shaped
// caller-visible result
func newTaskResult(req TaskRequest, result *provider.Result, correlationID string) *TaskResult {
	taskResult := &TaskResult{
		Type:          req.Type,
		Output:        result.Text,
		Provider:      result.Provider,
		Degraded:      false,
		CorrelationID: correlationID,
	}

	if req.Type == TaskExtractEntities {
		taskResult.Entities = result.Entities
		taskResult.Sentiment = result.Sentiment
		if taskResult.Output == "" {
			taskResult.Output = renderEntities(result)
		}
	}

	return taskResult
}

// renderEntities produces a readable output line for entity results so that
// every task type carries a non-empty Output
func renderEntities(result *provider.Result) string {
	if len(result.Entities) == 0 {
		return "No named entities were found in the document."
	}
	names := make([]string, 0, len(result.Entities))
	for _, entity := range result.Entities {
		names = append(names, entity.Name)
	}
	out := fmt.Sprintf("Found %d entities: %s.", len(names), strings.Join(names, ", "))
	if result.Sentiment != "" {
		out += " Overall sentiment: " + result.Sentiment + "."
	}
	return out
}

// validateRequest rejects programmer errors immediately, without fallback
func validateRequest(req TaskRequest) error {
	if !req.Type.IsValid() {
		return NewValidationError("type", fmt.Sprintf("unknown task type %q", string(req.Type)))
	}
	if strings.TrimSpace(req.Text) == "" {
		return NewValidationError("text", "text payload is required")
	}

	switch req.Type {
	case TaskTranslate:
		if req.Options.TargetLang == "" {
			return NewValidationError("options.target_lang", "target language is required for translation")
		}
	case TaskAnswerQuestion:
		if strings.TrimSpace(req.Options.Question) == "" {
			return NewValidationError("options.question", "question is required for question answering")
		}
	case TaskSearch:
		if strings.TrimSpace(req.Options.Query) == "" {
			return NewValidationError("options.query", "query is required for search")
		}
	}

	return nil
}
