package provider

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected FailureClass
	}{
		{
			name:     "transport error",
			err:      NewTransportError("openai", "http_request", errors.New("connection refused")),
			expected: FailureTransport,
		},
		{
			name:     "API error counts as transport",
			err:      NewAPIError("gemini", 503, "overloaded"),
			expected: FailureTransport,
		},
		{
			name:     "malformed response",
			err:      NewMalformedResponseError("anthropic", "content", "empty"),
			expected: FailureMalformedResponse,
		},
		{
			name:     "configuration error",
			err:      NewConfigurationError("deepl", "api_key", "missing"),
			expected: FailureConfiguration,
		},
		{
			name:     "wrapped provider error",
			err:      fmt.Errorf("invoke: %w", NewAPIError("openai", 500, "boom")),
			expected: FailureTransport,
		},
		{
			name:     "plain error",
			err:      errors.New("something else"),
			expected: FailureUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.err))
		})
	}
}

func TestTransportError_Unwrap(t *testing.T) {
	inner := errors.New("dial tcp: timeout")
	err := NewTransportError("openai", "http_request", inner)

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "openai")
	assert.Contains(t, err.Error(), "http_request")
}
