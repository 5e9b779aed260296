package orchestrator

import (
	"fmt"
	"strings"

	"doclens-api/internal/provider"
)

const generationSystemPrompt = "You are a document analysis assistant. Work only from the document provided. " +
	"If the document does not contain the information needed, say so explicitly instead of guessing."

// buildProviderRequest maps an enriched task request onto the
// capability-agnostic adapter request. Generation tasks get a task-specific
// prompt; translation and extraction pass the payload through.
func buildProviderRequest(req EnrichedRequest) provider.Request {
	switch capabilityFor(req.Type) {
	case provider.CapabilityTranslation:
		return provider.Request{
			Text:       req.Text,
			SourceLang: req.Options.SourceLang,
			TargetLang: req.Options.TargetLang,
		}
	case provider.CapabilityEntityExtraction:
		return provider.Request{
			Text:       req.Text,
			SourceLang: req.Options.SourceLang,
		}
	default:
		return provider.Request{
			System: generationSystemPrompt,
			Prompt: buildGenerationPrompt(req),
		}
	}
}

// buildGenerationPrompt creates the task-specific prompt for generation
// providers
func buildGenerationPrompt(req EnrichedRequest) string {
	var b strings.Builder

	switch req.Type {
	case TaskSummarize:
		length := req.Options.Length
		if length == "" {
			length = "medium"
		}
		if req.Options.Style == "bullets" {
			fmt.Fprintf(&b, "Write a %s summary of the following document as a bulleted list.\n\n", length)
		} else {
			fmt.Fprintf(&b, "Write a %s summary of the following document in plain prose.\n\n", length)
		}

	case TaskAnswerQuestion:
		fmt.Fprintf(&b, "Answer the question using only the document below.\n\nQuestion: %s\n\n", req.Options.Question)

	case TaskSearch:
		fmt.Fprintf(&b, "Find the passages of the document below that are most relevant to the query, and quote them verbatim with a one-line note on why each matches.\n\nQuery: %s\n", req.Options.Query)
		if req.Options.Scope != "" {
			fmt.Fprintf(&b, "Restrict matching to: %s\n", req.Options.Scope)
		}
		b.WriteString("\n")
	}

	b.WriteString("Document:\n")
	b.WriteString(req.Text)

	context := req.Context
	if note := req.digest(); note != "" {
		if context != "" {
			context += "\n" + note
		} else {
			context = note
		}
	}
	if context != "" {
		b.WriteString("\n\nAdditional context:\n")
		b.WriteString(context)
	}

	return b.String()
}
