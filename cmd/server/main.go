package main

import (
	_ "github.com/joho/godotenv/autoload" // Load .env file automatically

	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"doclens-api/api/routes"
	"doclens-api/internal/config"
	"doclens-api/internal/events"
	"doclens-api/internal/orchestrator"
	"doclens-api/internal/provider"
	"doclens-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize logger
	logger := logger.New()
	defer logger.Sync()

	// Get the underlying zap logger for services
	zapLogger := logger.SugaredLogger.Desugar()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize event bus
	eventBus := events.NewEventBus(zapLogger)

	// Build the provider registry from the configuration snapshot
	registry := provider.NewRegistry(cfg.Providers, zapLogger)

	// Optionally probe configured providers before accepting traffic
	if cfg.Orchestrator.ValidateOnStart {
		prober := provider.NewProber(zapLogger)
		probeCtx, probeCancel := context.WithTimeout(context.Background(), 60*time.Second)
		for _, desc := range registry.Descriptors() {
			if !desc.Available {
				continue
			}
			adapter, ok := registry.Lookup(desc.Name)
			if !ok {
				continue
			}
			if err := prober.Probe(probeCtx, adapter); err != nil {
				logger.Warn("Provider failed startup probe; it remains in the registry and will be skipped by fallback on failure",
					"provider", desc.Name, "error", err)
			}
		}
		probeCancel()
	}

	// Initialize orchestrator
	orchestratorService := orchestrator.NewOrchestratorService(eventBus, zapLogger, registry, cfg.Orchestrator)

	logger.Info("Services initialized",
		"providers_known", len(registry.Descriptors()),
		"orchestrator", orchestratorService != nil)

	// Setup Gin router
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	routes.SetupRoutes(router, registry, cfg.Providers, orchestratorService, eventBus, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Close event bus with timeout
	eventBusCtx, eventBusCancel := context.WithTimeout(context.Background(), time.Duration(cfg.Events.ShutdownTimeout)*time.Second)
	defer eventBusCancel()

	done := make(chan struct{})
	go func() {
		if err := eventBus.Close(); err != nil {
			logger.Error("Failed to close event bus", "error", err)
		}
		close(done)
	}()

	select {
	case <-eventBusCtx.Done():
		logger.Warn("Event bus shutdown timed out")
	case <-done:
		logger.Info("Event bus closed successfully")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
