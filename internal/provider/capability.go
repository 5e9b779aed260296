package provider

// Capability represents an abstract function class that one or more external
// providers can satisfy. Tasks are routed by capability, never by a concrete
// provider name.
type Capability string

const (
	// CapabilityTextGeneration covers summarization, question answering and
	// semantic search prompts
	CapabilityTextGeneration Capability = "text-generation"

	// CapabilityTranslation covers source-to-target language translation
	CapabilityTranslation Capability = "translation"

	// CapabilityEntityExtraction covers named entity and sentiment analysis
	CapabilityEntityExtraction Capability = "entity-extraction"
)

// IsValid checks if the capability is a known capability
func (c Capability) IsValid() bool {
	switch c {
	case CapabilityTextGeneration, CapabilityTranslation, CapabilityEntityExtraction:
		return true
	}
	return false
}

// String returns the string representation of the capability
func (c Capability) String() string {
	return string(c)
}
