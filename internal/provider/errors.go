package provider

import (
	"errors"
	"fmt"
)

// FailureClass categorizes adapter failures for logging and events. The
// fallback executor treats every class the same way: log, advance to the next
// provider. Classes only differ in how they are reported.
type FailureClass string

const (
	FailureTransport         FailureClass = "transport"
	FailureMalformedResponse FailureClass = "malformed_response"
	FailureConfiguration     FailureClass = "configuration"
	FailureUnknown           FailureClass = "unknown"
)

// ProviderError defines the interface for provider-specific errors
type ProviderError interface {
	error
	Class() FailureClass // Failure classification for the fallback executor
	ProviderName() string
}

// TransportError represents connection failures, timeouts and other
// network-level problems reaching a provider
type TransportError struct {
	Provider  string `json:"provider"`
	Operation string `json:"operation"`
	Wrapped   error  `json:"-"`
}

func (e *TransportError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: transport error during %s: %v", e.Provider, e.Operation, e.Wrapped)
	}
	return fmt.Sprintf("%s: transport error during %s", e.Provider, e.Operation)
}

func (e *TransportError) Class() FailureClass { return FailureTransport }

func (e *TransportError) ProviderName() string { return e.Provider }

func (e *TransportError) Unwrap() error { return e.Wrapped }

// APIError represents a non-2xx response from a provider. It is handled
// exactly like a transport failure: the executor advances to the next
// provider in the chain.
type APIError struct {
	Provider   string `json:"provider"`
	HTTPStatus int    `json:"http_status"`
	Body       string `json:"body"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: API error (HTTP %d): %s", e.Provider, e.HTTPStatus, e.Body)
}

func (e *APIError) Class() FailureClass { return FailureTransport }

func (e *APIError) ProviderName() string { return e.Provider }

// MalformedResponseError represents a 2xx payload that does not match the
// provider's documented envelope (missing fields, wrong shape, invalid JSON)
type MalformedResponseError struct {
	Provider string `json:"provider"`
	Field    string `json:"field"`
	Detail   string `json:"detail"`
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: malformed response, missing or invalid %s: %s", e.Provider, e.Field, e.Detail)
}

func (e *MalformedResponseError) Class() FailureClass { return FailureMalformedResponse }

func (e *MalformedResponseError) ProviderName() string { return e.Provider }

// ConfigurationError represents an adapter invoked without usable
// configuration. The registry filters unconfigured providers out, so this
// surfaces only when an adapter is constructed and called directly.
type ConfigurationError struct {
	Provider string `json:"provider"`
	Field    string `json:"field"`
	Msg      string `json:"message"`
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: configuration error for field '%s': %s", e.Provider, e.Field, e.Msg)
}

func (e *ConfigurationError) Class() FailureClass { return FailureConfiguration }

func (e *ConfigurationError) ProviderName() string { return e.Provider }

// Error creation helpers

// NewTransportError creates a new transport error
func NewTransportError(provider, operation string, wrapped error) *TransportError {
	return &TransportError{Provider: provider, Operation: operation, Wrapped: wrapped}
}

// NewAPIError creates a new API error
func NewAPIError(provider string, httpStatus int, body string) *APIError {
	return &APIError{Provider: provider, HTTPStatus: httpStatus, Body: body}
}

// NewMalformedResponseError creates a new malformed response error
func NewMalformedResponseError(provider, field, detail string) *MalformedResponseError {
	return &MalformedResponseError{Provider: provider, Field: field, Detail: detail}
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(provider, field, msg string) *ConfigurationError {
	return &ConfigurationError{Provider: provider, Field: field, Msg: msg}
}

// Classify returns the failure class of an adapter error
func Classify(err error) FailureClass {
	var perr ProviderError
	if errors.As(err, &perr) {
		return perr.Class()
	}
	return FailureUnknown
}
