package llm

import (
	"context"
)

// MockBackend is a configurable mock for testing generation flows.
// Set CompleteFunc to control behavior; calls and prompts are recorded.
type MockBackend struct {
	// CompleteFunc is called when Complete is invoked.
	// If nil, returns an empty result and nil error.
	CompleteFunc func(ctx context.Context, prompt string, opts CompletionOptions) (*CompletionResult, error)

	// Name is returned by Provider. Defaults to ProviderOpenAI.
	Name Provider

	// Call tracking for verification
	CompleteCalls int
	Prompts       []string
}

// NewMockBackend creates a new mock backend.
func NewMockBackend(name Provider) *MockBackend {
	return &MockBackend{Name: name}
}

// Complete implements TextGenerationBackend.
func (m *MockBackend) Complete(ctx context.Context, prompt string, opts CompletionOptions) (*CompletionResult, error) {
	m.CompleteCalls++
	m.Prompts = append(m.Prompts, prompt)
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt, opts)
	}
	return &CompletionResult{}, nil
}

// Provider implements TextGenerationBackend.
func (m *MockBackend) Provider() Provider {
	if m.Name == "" {
		return ProviderOpenAI
	}
	return m.Name
}

// Ensure MockBackend implements TextGenerationBackend at compile time.
var _ TextGenerationBackend = (*MockBackend)(nil)
