package routes

import (
	"doclens-api/api/handlers"
	"doclens-api/api/middleware"
	"doclens-api/internal/config"
	"doclens-api/internal/events"
	"doclens-api/internal/orchestrator"
	"doclens-api/internal/provider"
	"doclens-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, registry *provider.Registry, providers config.ProvidersConfig, orchestratorService orchestrator.OrchestratorService, eventBus events.EventBus, logger *logger.Logger) {
	// Add middleware
	router.Use(middleware.RequestLogging(logger))
	router.Use(gin.Recovery())

	// Initialize handlers
	prober := provider.NewProber(logger.Desugar())
	healthHandler := handlers.NewHealthHandler(registry, prober, logger)
	taskHandler := handlers.NewTaskHandler(orchestratorService, logger)
	providersHandler := handlers.NewProvidersHandler(registry, providers, eventBus, logger)

	// Setup routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthHandler.Check)

		v1.POST("/tasks", taskHandler.PerformTask)

		v1.GET("/providers", providersHandler.List)
		v1.PUT("/providers/credentials", providersHandler.UpdateCredentials)
	}

	// Root health check
	router.GET("/health", healthHandler.Check)
}
