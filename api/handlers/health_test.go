package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"doclens-api/internal/config"
	"doclens-api/internal/mocks"
	"doclens-api/internal/provider"
	"doclens-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupHealthTest(registry *provider.Registry) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHealthHandler(registry, provider.NewProber(zap.NewNop()), logger.New())
	router := gin.New()
	router.GET("/health", handler.Check)
	return router
}

func TestHealthHandler_Check_HealthyWithZeroProviders(t *testing.T) {
	registry := provider.NewRegistry(config.ProvidersConfig{}, zap.NewNop())
	router := setupHealthTest(registry)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ok", response["status"])
	assert.Equal(t, "doclens-api", response["service"])
	assert.Equal(t, float64(0), response["available_providers"])
	assert.NotNil(t, response["timestamp"])
}

func TestHealthHandler_Check_CountsAvailableProviders(t *testing.T) {
	registry := provider.NewRegistry(config.ProvidersConfig{
		OpenAI:    config.GenerationConfig{APIKey: "sk-a"},
		Anthropic: config.GenerationConfig{APIKey: "sk-b"},
	}, zap.NewNop())
	router := setupHealthTest(registry)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(2), response["available_providers"])
}

func TestHealthHandler_Check_DeepProbeSuccess(t *testing.T) {
	registry := provider.NewStaticRegistry(zap.NewNop(),
		mocks.NewMockAdapter("openai", provider.CapabilityTextGeneration))
	router := setupHealthTest(registry)

	req := httptest.NewRequest(http.MethodGet, "/health?deep=1&provider=openai", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "openai", response["probed"])
}

func TestHealthHandler_Check_DeepProbeFailure(t *testing.T) {
	// A configuration failure is permanent, so the probe gives up immediately.
	failing := mocks.NewFailingMockAdapter("openai", provider.CapabilityTextGeneration,
		provider.NewConfigurationError("openai", "api_key", "missing"))
	registry := provider.NewStaticRegistry(zap.NewNop(), failing)
	router := setupHealthTest(registry)

	req := httptest.NewRequest(http.MethodGet, "/health?deep=1&provider=openai", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "error", response["status"])
	assert.NotEmpty(t, response["probe_error"])
}

func TestHealthHandler_Check_DeepProbeUnknownProvider(t *testing.T) {
	registry := provider.NewRegistry(config.ProvidersConfig{}, zap.NewNop())
	router := setupHealthTest(registry)

	req := httptest.NewRequest(http.MethodGet, "/health?deep=1&provider=watson", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
