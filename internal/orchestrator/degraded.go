package orchestrator

import (
	"fmt"

	"doclens-api/internal/common"
)

// placeholderFor returns a statically templated, task-type-specific result
// used when no provider could produce a genuine answer. The placeholder is
// explicit about being non-authoritative: it never presents fabricated
// content as genuine, and callers can assert Degraded == true.
func placeholderFor(req TaskRequest, correlationID string) *TaskResult {
	return &TaskResult{
		Type:          req.Type,
		Output:        placeholderText(req),
		Provider:      PlaceholderProvider,
		Degraded:      true,
		CorrelationID: correlationID,
	}
}

func placeholderText(req TaskRequest) string {
	switch req.Type {
	case TaskSummarize:
		return "No summary could be generated: no text-generation provider is configured or reachable. " +
			"Configure a provider API key to enable summarization. " +
			"Document opening: " + common.Snippet(req.Text, 160)

	case TaskAnswerQuestion:
		return fmt.Sprintf("The question %q was not answered: no text-generation provider is configured or reachable. "+
			"Configure a provider API key to enable question answering.", req.Options.Question)

	case TaskTranslate:
		return fmt.Sprintf("Translation did not occur: no translation provider is configured or reachable. "+
			"The text was NOT translated to %q. Configure a translation provider to enable this task. "+
			"Original text: %s", req.Options.TargetLang, common.Snippet(req.Text, 160))

	case TaskSearch:
		return fmt.Sprintf("No search was performed for query %q: no provider is configured or reachable. "+
			"Configure a provider API key to enable semantic search.", req.Options.Query)

	case TaskExtractEntities:
		return "No entities were extracted: no entity-extraction provider is configured or reachable. " +
			"Configure an extraction provider to enable this task."

	default:
		return "The task could not be performed: no provider is configured or reachable."
	}
}
