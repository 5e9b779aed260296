package provider

import (
	"context"
)

// Adapter wraps one external AI/NLP service behind a uniform invocation
// contract. Implementations parse their provider's wire envelope defensively
// and return a normalized Result; any unexpected payload shape is reported as
// a MalformedResponseError rather than propagated as a crash.
type Adapter interface {
	// Invoke sends one request to the provider and returns the normalized result
	// ctx: context for timeout and cancellation control
	Invoke(ctx context.Context, req Request) (*Result, error)

	// Name returns the provider's identifier (e.g. "openai")
	Name() string

	// Capability returns the function class this adapter satisfies
	Capability() Capability
}

// Request is the capability-agnostic input handed to an adapter. Generation
// adapters read Prompt and System; translation adapters read Text, SourceLang
// and TargetLang; extraction adapters read Text.
type Request struct {
	Prompt     string `json:"prompt,omitempty"`
	System     string `json:"system,omitempty"`
	Text       string `json:"text,omitempty"`
	SourceLang string `json:"source_lang,omitempty"`
	TargetLang string `json:"target_lang,omitempty"`
}

// Entity is one named entity extracted from a document
type Entity struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Salience float64 `json:"salience"`
}

// Result is the normalized provider response. Every adapter of a given
// capability fills the same fields so callers never branch on which provider
// answered.
type Result struct {
	Provider  string   `json:"provider"`
	Text      string   `json:"text,omitempty"`
	Entities  []Entity `json:"entities,omitempty"`
	Sentiment string   `json:"sentiment,omitempty"`
}

// Descriptor identifies one concrete adapter as seen by the registry and the
// availability listing. Immutable for the lifetime of a registry snapshot.
type Descriptor struct {
	Name        string     `json:"name"`
	Capability  Capability `json:"capability"`
	Endpoint    string     `json:"endpoint"`
	Model       string     `json:"model,omitempty"`
	MaxTokens   int        `json:"max_tokens,omitempty"`
	Temperature float64    `json:"temperature,omitempty"`
	Available   bool       `json:"available"`
}
