package orchestrator

import (
	"context"
	"testing"

	"doclens-api/internal/events"
	"doclens-api/internal/mocks"
	"doclens-api/internal/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestExecutor_StopsAtFirstSuccess(t *testing.T) {
	logger := zaptest.NewLogger(t)
	eventBus := events.NewMockEventBus()
	executor := NewExecutor(eventBus, logger)

	first := mocks.NewMockAdapter("openai", provider.CapabilityTextGeneration)
	second := mocks.NewMockAdapter("anthropic", provider.CapabilityTextGeneration)

	result, err := executor.Execute(context.Background(), TaskSummarize,
		[]provider.Adapter{first, second}, provider.Request{Prompt: "summarize"})

	require.NoError(t, err)
	assert.Equal(t, "openai", result.Provider)
	assert.Equal(t, 1, first.InvocationCount())
	assert.Equal(t, 0, second.InvocationCount())
}

func TestExecutor_AdvancesPastFailureWithoutRetry(t *testing.T) {
	logger := zaptest.NewLogger(t)
	eventBus := events.NewMockEventBus()
	executor := NewExecutor(eventBus, logger)

	first := mocks.NewFailingMockAdapter("openai", provider.CapabilityTextGeneration,
		provider.NewTransportError("openai", "http_request", context.DeadlineExceeded))
	second := mocks.NewMockAdapter("anthropic", provider.CapabilityTextGeneration)
	third := mocks.NewMockAdapter("gemini", provider.CapabilityTextGeneration)

	result, err := executor.Execute(context.Background(), TaskSummarize,
		[]provider.Adapter{first, second, third}, provider.Request{Prompt: "summarize"})

	require.NoError(t, err)
	assert.Equal(t, "anthropic", result.Provider)

	// Exactly two invocations: the failed provider is not retried and the
	// lower-preference provider is never reached.
	assert.Equal(t, 1, first.InvocationCount())
	assert.Equal(t, 1, second.InvocationCount())
	assert.Equal(t, 0, third.InvocationCount())
}

func TestExecutor_MalformedResponseTreatedLikeTransportFailure(t *testing.T) {
	logger := zaptest.NewLogger(t)
	eventBus := events.NewMockEventBus()
	executor := NewExecutor(eventBus, logger)

	first := mocks.NewFailingMockAdapter("openai", provider.CapabilityTextGeneration,
		provider.NewMalformedResponseError("openai", "choices", "response contained no choices"))
	second := mocks.NewMockAdapter("anthropic", provider.CapabilityTextGeneration)

	result, err := executor.Execute(context.Background(), TaskSummarize,
		[]provider.Adapter{first, second}, provider.Request{Prompt: "summarize"})

	require.NoError(t, err)
	assert.Equal(t, "anthropic", result.Provider)

	published := eventBus.GetPublishedEvents(events.TopicProviderFailed)
	require.Len(t, published, 1)
	failure, ok := published[0].(events.ProviderFailed)
	require.True(t, ok)
	assert.Equal(t, "openai", failure.Provider)
	assert.Equal(t, string(provider.FailureMalformedResponse), failure.Classification)
}

func TestExecutor_ExhaustionReturnsSentinel(t *testing.T) {
	logger := zaptest.NewLogger(t)
	eventBus := events.NewMockEventBus()
	executor := NewExecutor(eventBus, logger)

	adapters := []provider.Adapter{
		mocks.NewFailingMockAdapter("openai", provider.CapabilityTextGeneration,
			provider.NewAPIError("openai", 503, "overloaded")),
		mocks.NewFailingMockAdapter("anthropic", provider.CapabilityTextGeneration,
			provider.NewTransportError("anthropic", "http_request", context.DeadlineExceeded)),
	}

	result, err := executor.Execute(context.Background(), TaskSummarize, adapters, provider.Request{Prompt: "x"})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrAllProvidersFailed)
	assert.Len(t, eventBus.GetPublishedEvents(events.TopicProviderFailed), 2)
}

func TestExecutor_EmptyChain(t *testing.T) {
	logger := zaptest.NewLogger(t)
	executor := NewExecutor(events.NewMockEventBus(), logger)

	result, err := executor.Execute(context.Background(), TaskSummarize, nil, provider.Request{Prompt: "x"})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrNoProviderAvailable)
}
