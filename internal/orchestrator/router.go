package orchestrator

import (
	"doclens-api/internal/provider"

	"go.uber.org/zap"
)

// defaultPreferences is the static per-task preference order over provider
// names. It is data, not control flow: the tie-break rule whenever more than
// one provider satisfies a capability. Entries can be overridden per task
// type through orchestrator.preferences in the configuration.
var defaultPreferences = map[TaskType][]string{
	TaskSummarize:       {"openai", "anthropic", "gemini", "deepseek"},
	TaskAnswerQuestion:  {"anthropic", "openai", "gemini", "deepseek"},
	TaskSearch:          {"openai", "gemini", "anthropic", "deepseek"},
	TaskTranslate:       {"deepl", "libretranslate"},
	TaskExtractEntities: {"textanalytics"},
}

// capabilityFor maps a task type to the capability class that serves it.
// Search has no dedicated provider class and rides on text generation.
func capabilityFor(taskType TaskType) provider.Capability {
	switch taskType {
	case TaskTranslate:
		return provider.CapabilityTranslation
	case TaskExtractEntities:
		return provider.CapabilityEntityExtraction
	default:
		return provider.CapabilityTextGeneration
	}
}

// Router maps a task type to a preference-ordered list of capable, available
// adapters
type Router struct {
	registry    *provider.Registry
	preferences map[TaskType][]string
	logger      *zap.Logger
}

// NewRouter creates a router over the given registry. overrides replaces the
// default preference order for any task type it names.
func NewRouter(registry *provider.Registry, overrides map[string][]string, logger *zap.Logger) *Router {
	preferences := make(map[TaskType][]string, len(defaultPreferences))
	for taskType, order := range defaultPreferences {
		preferences[taskType] = order
	}
	for key, order := range overrides {
		taskType := TaskType(key)
		if !taskType.IsValid() {
			logger.Warn("Ignoring preference override for unknown task type",
				zap.String("task_type", key))
			continue
		}
		preferences[taskType] = order
	}

	return &Router{
		registry:    registry,
		preferences: preferences,
		logger:      logger,
	}
}

// Route returns the ordered adapter chain for a task type: preferred
// providers first (available ones only), then any remaining available
// provider of the capability in registry order. Returns
// ErrNoProviderAvailable when the chain is empty; the caller resolves that
// through degradation, never as a raised error.
func (r *Router) Route(taskType TaskType) ([]provider.Adapter, error) {
	capability := capabilityFor(taskType)
	available := r.registry.Available(capability)

	ordered := make([]provider.Adapter, 0, len(available))
	seen := make(map[string]bool, len(available))

	for _, name := range r.preferences[taskType] {
		adapter, ok := r.registry.Lookup(name)
		if !ok || adapter.Capability() != capability {
			continue
		}
		ordered = append(ordered, adapter)
		seen[name] = true
	}

	// Fall through to any remaining available provider in registry order.
	for _, adapter := range available {
		if !seen[adapter.Name()] {
			ordered = append(ordered, adapter)
		}
	}

	if len(ordered) == 0 {
		return nil, ErrNoProviderAvailable
	}
	return ordered, nil
}
