package events

import (
	"time"

	"github.com/google/uuid"
)

// Event represents the base event structure with common fields
type Event struct {
	CorrelationID string    `json:"correlation_id" validate:"required"`
	Timestamp     time.Time `json:"timestamp" validate:"required"`
}

// NewEvent creates a new base event with generated correlation ID
func NewEvent() Event {
	return Event{
		CorrelationID: uuid.New().String(),
		Timestamp:     time.Now(),
	}
}

// TaskCompleted is published when a task produced a genuine provider result
type TaskCompleted struct {
	Event
	TaskType string `json:"task_type" validate:"required"`
	Provider string `json:"provider" validate:"required"`
	Duration int64  `json:"duration_ms"`
}

// TaskDegraded is published when every provider failed or none was configured
// and the caller received a placeholder result
type TaskDegraded struct {
	Event
	TaskType string `json:"task_type" validate:"required"`
	Reason   string `json:"reason"`
}

// ProviderFailed is published for each individual adapter failure inside a
// fallback chain
type ProviderFailed struct {
	Event
	TaskType       string `json:"task_type" validate:"required"`
	Provider       string `json:"provider" validate:"required"`
	Classification string `json:"classification" validate:"required"`
	Message        string `json:"message"`
}

// EnrichmentApplied is published when auxiliary analysis was attached to a
// request before generation
type EnrichmentApplied struct {
	Event
	TaskType    string `json:"task_type" validate:"required"`
	Provider    string `json:"provider" validate:"required"`
	EntityCount int    `json:"entity_count"`
	Sentiment   string `json:"sentiment"`
}

// ConfigUpdated is published after provider credentials were replaced; the
// orchestrator rebuilds its registry snapshot in response
type ConfigUpdated struct {
	Event
	UpdatedProviders []string `json:"updated_providers"`
}

// Event topics constants
const (
	TopicTaskCompleted     = "task.completed"
	TopicTaskDegraded      = "task.degraded"
	TopicProviderFailed    = "provider.failed"
	TopicEnrichmentApplied = "enrichment.applied"
	TopicConfigUpdated     = "config.updated"
)
