package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"doclens-api/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestGeminiAdapter_InvokeSuccess(t *testing.T) {
	var captured geminiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(geminiResponse{
			Candidates: []geminiCandidate{
				{
					Content:      geminiContent{Parts: []geminiPart{{Text: "Answer from the document."}}, Role: "model"},
					FinishReason: "STOP",
				},
			},
		})
	}))
	defer server.Close()

	adapter := NewGeminiAdapter(config.GenerationConfig{
		APIEndpoint: server.URL,
		APIKey:      "test-key",
		Model:       "gemini-1.5-flash",
		MaxTokens:   512,
		Temperature: 0.2,
		Timeout:     5,
	}, zaptest.NewLogger(t))

	result, err := adapter.Invoke(context.Background(), Request{
		System: "Use only the document.",
		Prompt: "What is the invoice total?",
	})

	require.NoError(t, err)
	assert.Equal(t, "gemini", result.Provider)
	assert.Equal(t, "Answer from the document.", result.Text)

	// System text is folded into the single user turn.
	require.Len(t, captured.Contents, 1)
	require.Len(t, captured.Contents[0].Parts, 1)
	assert.Contains(t, captured.Contents[0].Parts[0].Text, "Use only the document.")
	assert.Contains(t, captured.Contents[0].Parts[0].Text, "What is the invoice total?")
	assert.Equal(t, 512, captured.GenerationConfig.MaxOutputTokens)
}

func TestGeminiAdapter_MalformedPayloads(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no candidates", body: `{"candidates":[]}`},
		{name: "candidate without parts", body: `{"candidates":[{"content":{"parts":[]},"finishReason":"STOP"}]}`},
		{name: "part without text", body: `{"candidates":[{"content":{"parts":[{}]}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			adapter := NewGeminiAdapter(config.GenerationConfig{
				APIEndpoint: server.URL,
				APIKey:      "test-key",
				Timeout:     5,
			}, zaptest.NewLogger(t))

			_, err := adapter.Invoke(context.Background(), Request{Prompt: "test"})

			require.Error(t, err)
			assert.Equal(t, FailureMalformedResponse, Classify(err))
		})
	}
}
