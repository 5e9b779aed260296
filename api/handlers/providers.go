package handlers

import (
	"net/http"
	"sync"

	"doclens-api/internal/config"
	"doclens-api/internal/events"
	"doclens-api/internal/provider"
	"doclens-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ProvidersHandler exposes provider availability and accepts credential
// updates. Updates replace the registry snapshot wholesale: an in-flight task
// sees either the old or the new configuration in full.
type ProvidersHandler struct {
	registry *provider.Registry
	eventBus events.EventBus
	logger   *logger.Logger

	mu        sync.Mutex
	providers config.ProvidersConfig
}

// NewProvidersHandler creates a new ProvidersHandler instance
func NewProvidersHandler(registry *provider.Registry, providers config.ProvidersConfig, eventBus events.EventBus, logger *logger.Logger) *ProvidersHandler {
	return &ProvidersHandler{
		registry:  registry,
		eventBus:  eventBus,
		logger:    logger,
		providers: providers,
	}
}

// List returns the descriptors of every known provider with their current
// availability
func (h *ProvidersHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"providers": h.registry.Descriptors(),
	})
}

// credentialUpdate is the wire shape of one provider's credential change
type credentialUpdate struct {
	APIKey      *string `json:"api_key,omitempty"`
	APIEndpoint *string `json:"api_endpoint,omitempty"`
	Model       *string `json:"model,omitempty"`
}

// UpdateCredentials applies a wholesale credential update and rebuilds the
// registry snapshot atomically
func (h *ProvidersHandler) UpdateCredentials(c *gin.Context) {
	var updates map[string]credentialUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	updated := make([]string, 0, len(updates))
	for name, update := range updates {
		if !h.applyUpdate(name, update) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown provider: " + name})
			return
		}
		updated = append(updated, name)
	}

	h.registry.Reload(h.providers)

	if err := h.eventBus.Publish(events.TopicConfigUpdated, events.ConfigUpdated{
		Event:            events.NewEvent(),
		UpdatedProviders: updated,
	}); err != nil {
		h.logger.Error("Failed to publish ConfigUpdated event", "error", err)
	}

	h.logger.Info("Provider credentials updated", "providers", updated)

	c.JSON(http.StatusOK, gin.H{
		"updated":   updated,
		"providers": h.registry.Descriptors(),
	})
}

func (h *ProvidersHandler) applyUpdate(name string, update credentialUpdate) bool {
	applyGeneration := func(cfg *config.GenerationConfig) {
		if update.APIKey != nil {
			cfg.APIKey = *update.APIKey
		}
		if update.APIEndpoint != nil {
			cfg.APIEndpoint = *update.APIEndpoint
		}
		if update.Model != nil {
			cfg.Model = *update.Model
		}
	}

	switch name {
	case "openai":
		applyGeneration(&h.providers.OpenAI)
	case "anthropic":
		applyGeneration(&h.providers.Anthropic)
	case "gemini":
		applyGeneration(&h.providers.Gemini)
	case "deepseek":
		applyGeneration(&h.providers.DeepSeek)
	case "deepl":
		if update.APIKey != nil {
			h.providers.DeepL.APIKey = *update.APIKey
		}
		if update.APIEndpoint != nil {
			h.providers.DeepL.APIEndpoint = *update.APIEndpoint
		}
	case "libretranslate":
		if update.APIKey != nil {
			h.providers.LibreTranslate.APIKey = *update.APIKey
		}
		if update.APIEndpoint != nil {
			h.providers.LibreTranslate.APIEndpoint = *update.APIEndpoint
		}
	case "textanalytics":
		if update.APIKey != nil {
			h.providers.TextAnalytics.APIKey = *update.APIKey
		}
		if update.APIEndpoint != nil {
			h.providers.TextAnalytics.APIEndpoint = *update.APIEndpoint
		}
		if update.Model != nil {
			h.providers.TextAnalytics.Model = *update.Model
		}
	default:
		return false
	}
	return true
}
