package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"doclens-api/internal/common"
)

// postJSON sends a JSON payload to a provider endpoint and returns the raw
// response body. Non-2xx responses become APIErrors, network problems become
// TransportErrors; both are recovered by the fallback executor.
func postJSON(ctx context.Context, client *http.Client, provider, endpoint string, headers map[string]string, payload interface{}) ([]byte, error) {
	requestBody, err := json.Marshal(payload)
	if err != nil {
		return nil, NewConfigurationError(provider, "payload", err.Error())
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(requestBody))
	if err != nil {
		return nil, NewTransportError(provider, "create_request", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		httpReq.Header.Set(key, value)
	}

	httpResp, err := client.Do(httpReq)
	if err != nil {
		return nil, NewTransportError(provider, "http_request", err)
	}
	defer httpResp.Body.Close()

	responseBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, NewTransportError(provider, "read_response", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, NewAPIError(provider, httpResp.StatusCode, common.Snippet(string(responseBody), 200))
	}

	return responseBody, nil
}

// decodeJSON unmarshals a provider response body, reporting invalid JSON as a
// malformed response rather than a crash
func decodeJSON(provider string, body []byte, v interface{}) error {
	if err := json.Unmarshal(body, v); err != nil {
		return NewMalformedResponseError(provider, "body", err.Error())
	}
	return nil
}
