package orchestrator

import (
	"doclens-api/internal/provider"
)

// TaskType identifies one document-analysis operation
type TaskType string

const (
	TaskSummarize       TaskType = "summarize"
	TaskAnswerQuestion  TaskType = "answer-question"
	TaskTranslate       TaskType = "translate"
	TaskSearch          TaskType = "search"
	TaskExtractEntities TaskType = "extract-entities"
)

// IsValid checks if the task type is a known task type
func (t TaskType) IsValid() bool {
	switch t {
	case TaskSummarize, TaskAnswerQuestion, TaskTranslate, TaskSearch, TaskExtractEntities:
		return true
	}
	return false
}

// String returns the string representation of the task type
func (t TaskType) String() string {
	return string(t)
}

// TaskOptions carries task-specific options supplied by the caller
type TaskOptions struct {
	Style      string `json:"style,omitempty"`       // summarize: "bullets" or "paragraph"
	Length     string `json:"length,omitempty"`      // summarize: "short", "medium" or "long"
	SourceLang string `json:"source_lang,omitempty"` // translate
	TargetLang string `json:"target_lang,omitempty"` // translate
	Question   string `json:"question,omitempty"`    // answer-question
	Query      string `json:"query,omitempty"`       // search
	Scope      string `json:"scope,omitempty"`       // search: restrict matching, e.g. "headings"
}

// TaskRequest is the unit of work submitted by a caller. It is never mutated
// after creation and has no identity beyond the call itself.
type TaskRequest struct {
	Type    TaskType    `json:"type" validate:"required"`
	Text    string      `json:"text" validate:"required"`
	Context string      `json:"context,omitempty"`
	Options TaskOptions `json:"options,omitempty"`
}

// EnrichedRequest is a TaskRequest plus derived signals attached by the
// enrichment pipeline. It is owned exclusively by the orchestration call that
// created it and discarded when the call completes.
type EnrichedRequest struct {
	TaskRequest
	Entities  []provider.Entity
	Sentiment string
	Enriched  bool
}

// PlaceholderProvider is the provider attribution sentinel carried by
// degraded results
const PlaceholderProvider = "none"

// TaskResult is the caller-visible output. Its shape is identical for every
// provider and for the degradation placeholder; callers distinguish the two
// only through the Degraded flag.
type TaskResult struct {
	Type          TaskType          `json:"type"`
	Output        string            `json:"output"`
	Entities      []provider.Entity `json:"entities,omitempty"`
	Sentiment     string            `json:"sentiment,omitempty"`
	Provider      string            `json:"provider"`
	Degraded      bool              `json:"degraded"`
	CorrelationID string            `json:"correlation_id"`
}
