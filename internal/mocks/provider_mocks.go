package mocks

import (
	"context"
	"sync"

	"doclens-api/internal/provider"
)

// MockAdapter provides a mock implementation of the provider.Adapter
// interface with scripted results and call recording
type MockAdapter struct {
	name       string
	capability provider.Capability

	mu          sync.Mutex
	result      *provider.Result
	err         error
	invocations []provider.Request
}

// NewMockAdapter creates a new mock adapter that succeeds with a canned
// result attributed to itself
func NewMockAdapter(name string, capability provider.Capability) *MockAdapter {
	return &MockAdapter{
		name:       name,
		capability: capability,
		result: &provider.Result{
			Provider: name,
			Text:     "mock result from " + name,
		},
	}
}

// NewFailingMockAdapter creates a mock adapter that always fails with the
// given error
func NewFailingMockAdapter(name string, capability provider.Capability, err error) *MockAdapter {
	adapter := NewMockAdapter(name, capability)
	adapter.err = err
	return adapter
}

// Name implements the provider.Adapter interface
func (m *MockAdapter) Name() string { return m.name }

// Capability implements the provider.Adapter interface
func (m *MockAdapter) Capability() provider.Capability { return m.capability }

// Invoke implements the provider.Adapter interface
func (m *MockAdapter) Invoke(_ context.Context, req provider.Request) (*provider.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.invocations = append(m.invocations, req)

	if m.err != nil {
		return nil, m.err
	}
	result := *m.result
	return &result, nil
}

// Test helper methods

// SetResult sets the result returned by Invoke
func (m *MockAdapter) SetResult(result *provider.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.result = result
}

// SetError makes Invoke fail with the given error; nil restores success
func (m *MockAdapter) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// InvocationCount returns how many times Invoke was called
func (m *MockAdapter) InvocationCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.invocations)
}

// Invocations returns a copy of all recorded requests
func (m *MockAdapter) Invocations() []provider.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	requests := make([]provider.Request, len(m.invocations))
	copy(requests, m.invocations)
	return requests
}
