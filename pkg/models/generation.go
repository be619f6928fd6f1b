package models

// GenerationSource records which strategy produced a result.
const (
	SourceReused    = "reused"
	SourceAdapted   = "adapted"
	SourceGenerated = "generated"
)

// GenerationRequest describes what the user asked the generator to build.
// It is transient - used to compose the knowledge search query and the
// generation/adaptation prompts, never persisted.
type GenerationRequest struct {
	Type          string `json:"type"`
	ComponentName string `json:"component_name,omitempty"`
	Description   string `json:"description"`
	Stack         string `json:"stack,omitempty"`
	Category      string `json:"category,omitempty"`

	// Provider is the user's preferred backend. When empty or without an
	// available credential, the configured fallback order is tried.
	Provider string `json:"provider,omitempty"`
}

// GeneratedFile is one file recovered from a backend response.
type GeneratedFile struct {
	Path     string `json:"path"`
	Content  string `json:"content"`
	Language string `json:"language"`
}

// GenerationResult is the outcome of one generation request.
type GenerationResult struct {
	Files      []GeneratedFile `json:"files"`
	Source     string          `json:"source"`
	Provider   string          `json:"provider"`
	TokensUsed int             `json:"tokens_used"`
}
