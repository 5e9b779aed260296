package handlers

import (
	"net/http"
	"time"

	"doclens-api/internal/provider"
	"doclens-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	registry *provider.Registry
	prober   *provider.Prober
	logger   *logger.Logger
}

func NewHealthHandler(registry *provider.Registry, prober *provider.Prober, logger *logger.Logger) *HealthHandler {
	return &HealthHandler{
		registry: registry,
		prober:   prober,
		logger:   logger,
	}
}

// Check reports service health. The service is healthy even with zero
// providers configured (tasks degrade instead of failing); the response
// includes the availability count so operators can tell the two states apart.
// With ?deep=1 and a provider name in ?provider=, the named adapter is probed
// over the network.
func (h *HealthHandler) Check(c *gin.Context) {
	available := 0
	for _, desc := range h.registry.Descriptors() {
		if desc.Available {
			available++
		}
	}

	response := gin.H{
		"status":              "ok",
		"service":             "doclens-api",
		"available_providers": available,
		"timestamp":           time.Now().UTC().Format(time.RFC3339),
	}

	if c.Query("deep") == "1" {
		name := c.Query("provider")
		adapter, ok := h.registry.Lookup(name)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown or unavailable provider: " + name})
			return
		}
		if err := h.prober.Probe(c.Request.Context(), adapter); err != nil {
			h.logger.Error("Deep health probe failed", "provider", name, "error", err)
			response["status"] = "error"
			response["probe_error"] = err.Error()
			c.JSON(http.StatusServiceUnavailable, response)
			return
		}
		response["probed"] = name
	}

	c.JSON(http.StatusOK, response)
}
