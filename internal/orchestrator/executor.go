package orchestrator

import (
	"context"

	"doclens-api/internal/events"
	"doclens-api/internal/provider"

	"go.uber.org/zap"
)

// Executor invokes adapters strictly sequentially in priority order, catching
// failures, until one succeeds or the chain is exhausted. For a fixed
// registry snapshot and task type the attempted sequence is deterministic.
type Executor struct {
	eventBus events.EventBus
	logger   *zap.Logger
}

// NewExecutor creates a new Executor instance
func NewExecutor(eventBus events.EventBus, logger *zap.Logger) *Executor {
	return &Executor{
		eventBus: eventBus,
		logger:   logger,
	}
}

// Execute tries each adapter once in order and returns the first success.
// Every failure (transport error, non-2xx, malformed payload, timeout) is
// classified, logged, published, and skipped; the same provider is never
// retried. Exhaustion returns ErrAllProvidersFailed, a normal signal consumed
// by the degradation path.
func (e *Executor) Execute(ctx context.Context, taskType TaskType, adapters []provider.Adapter, req provider.Request) (*provider.Result, error) {
	if len(adapters) == 0 {
		return nil, ErrNoProviderAvailable
	}

	for _, adapter := range adapters {
		result, err := adapter.Invoke(ctx, req)
		if err == nil {
			e.logger.Info("Provider succeeded",
				zap.String("task_type", taskType.String()),
				zap.String("provider", adapter.Name()))
			return result, nil
		}

		classification := provider.Classify(err)
		e.logger.Warn("Provider failed, advancing to next in chain",
			zap.String("task_type", taskType.String()),
			zap.String("provider", adapter.Name()),
			zap.String("classification", string(classification)),
			zap.Error(err))

		if publishErr := e.eventBus.Publish(events.TopicProviderFailed, events.ProviderFailed{
			Event:          events.NewEvent(),
			TaskType:       taskType.String(),
			Provider:       adapter.Name(),
			Classification: string(classification),
			Message:        err.Error(),
		}); publishErr != nil {
			e.logger.Error("Failed to publish ProviderFailed event", zap.Error(publishErr))
		}
	}

	return nil, ErrAllProvidersFailed
}
