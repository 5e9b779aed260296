package provider

import (
	"sync/atomic"

	"doclens-api/internal/config"

	"go.uber.org/zap"
)

// Registry tracks which adapters are currently usable per capability.
// Availability is a pure function of configuration state: a provider is
// registered iff its credential predicate holds. The registry performs no
// network calls.
//
// Snapshot semantics: readers load an immutable snapshot through an atomic
// pointer and never lock; Reload builds a complete replacement snapshot and
// swaps it in, so an in-flight task sees either the old or the new
// configuration in full, never a partial mix.
type Registry struct {
	logger   *zap.Logger
	snapshot atomic.Pointer[registrySnapshot]
}

type registrySnapshot struct {
	byCapability map[Capability][]Adapter
	byName       map[string]Adapter
	descriptors  []Descriptor
}

// NewRegistry creates a registry from a configuration snapshot
func NewRegistry(cfg config.ProvidersConfig, logger *zap.Logger) *Registry {
	r := &Registry{logger: logger}
	r.Reload(cfg)
	return r
}

// Reload rebuilds the registry atomically from a new configuration snapshot
func (r *Registry) Reload(cfg config.ProvidersConfig) {
	snap := buildSnapshot(cfg, r.logger)
	r.snapshot.Store(snap)

	available := make([]string, 0, len(snap.byName))
	for name := range snap.byName {
		available = append(available, name)
	}
	r.logger.Info("Provider registry rebuilt",
		zap.Int("available_count", len(available)),
		zap.Strings("available", available))
}

// Available returns the usable adapters for a capability in registration
// order. The returned slice belongs to an immutable snapshot and must not be
// modified.
func (r *Registry) Available(capability Capability) []Adapter {
	return r.snapshot.Load().byCapability[capability]
}

// Lookup returns the available adapter with the given name
func (r *Registry) Lookup(name string) (Adapter, bool) {
	adapter, ok := r.snapshot.Load().byName[name]
	return adapter, ok
}

// Descriptors returns descriptors for every known provider, available or not,
// in registration order
func (r *Registry) Descriptors() []Descriptor {
	return r.snapshot.Load().descriptors
}

// NewStaticRegistry creates a registry over a fixed adapter set, all taken
// as available. Used by tests and custom wiring.
func NewStaticRegistry(logger *zap.Logger, adapters ...Adapter) *Registry {
	snap := &registrySnapshot{
		byCapability: make(map[Capability][]Adapter),
		byName:       make(map[string]Adapter),
	}
	for _, adapter := range adapters {
		snap.byCapability[adapter.Capability()] = append(snap.byCapability[adapter.Capability()], adapter)
		snap.byName[adapter.Name()] = adapter
		snap.descriptors = append(snap.descriptors, Descriptor{
			Name:       adapter.Name(),
			Capability: adapter.Capability(),
			Available:  true,
		})
	}

	r := &Registry{logger: logger}
	r.snapshot.Store(snap)
	return r
}

func buildSnapshot(cfg config.ProvidersConfig, logger *zap.Logger) *registrySnapshot {
	snap := &registrySnapshot{
		byCapability: make(map[Capability][]Adapter),
		byName:       make(map[string]Adapter),
	}

	register := func(adapter Adapter, desc Descriptor) {
		snap.descriptors = append(snap.descriptors, desc)
		if !desc.Available {
			return
		}
		snap.byCapability[adapter.Capability()] = append(snap.byCapability[adapter.Capability()], adapter)
		snap.byName[adapter.Name()] = adapter
	}

	// Registration order is the registry-order tie break the router falls
	// through to when a task's preferred providers are unavailable.
	register(NewOpenAIAdapter(cfg.OpenAI, logger), generationDescriptor(openAIName, cfg.OpenAI))
	register(NewAnthropicAdapter(cfg.Anthropic, logger), generationDescriptor(anthropicName, cfg.Anthropic))
	register(NewGeminiAdapter(cfg.Gemini, logger), generationDescriptor(geminiName, cfg.Gemini))
	register(NewDeepSeekAdapter(cfg.DeepSeek, logger), generationDescriptor(deepSeekName, cfg.DeepSeek))

	register(NewDeepLAdapter(cfg.DeepL, logger), Descriptor{
		Name:       deepLName,
		Capability: CapabilityTranslation,
		Endpoint:   cfg.DeepL.APIEndpoint,
		Available:  cfg.DeepL.APIKey != "",
	})
	// LibreTranslate instances can be keyless; the endpoint is the predicate.
	register(NewLibreTranslateAdapter(cfg.LibreTranslate, logger), Descriptor{
		Name:       libreTranslateName,
		Capability: CapabilityTranslation,
		Endpoint:   cfg.LibreTranslate.APIEndpoint,
		Available:  cfg.LibreTranslate.APIEndpoint != "",
	})

	register(NewTextAnalyticsAdapter(cfg.TextAnalytics, logger), Descriptor{
		Name:       textAnalyticsName,
		Capability: CapabilityEntityExtraction,
		Endpoint:   cfg.TextAnalytics.APIEndpoint,
		Model:      cfg.TextAnalytics.Model,
		Available:  cfg.TextAnalytics.APIKey != "" && cfg.TextAnalytics.APIEndpoint != "",
	})

	return snap
}

func generationDescriptor(name string, cfg config.GenerationConfig) Descriptor {
	return Descriptor{
		Name:        name,
		Capability:  CapabilityTextGeneration,
		Endpoint:    cfg.APIEndpoint,
		Model:       cfg.Model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		Available:   cfg.APIKey != "",
	}
}
