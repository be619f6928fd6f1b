// Package llm provides the text-generation backend abstraction and its
// provider implementations. The orchestration layer depends only on
// TextGenerationBackend; providers differ in wire format and auth, never
// in behavior.
package llm

import (
	"context"
)

// Provider identifies one of the supported text-generation providers.
type Provider string

const (
	ProviderOpenAI     Provider = "openai"
	ProviderClaude     Provider = "claude"
	ProviderGemini     Provider = "gemini"
	ProviderDeepSeek   Provider = "deepseek"
	ProviderOpenRouter Provider = "openrouter"
)

// AllProviders is the closed set of supported providers.
var AllProviders = []Provider{
	ProviderOpenAI,
	ProviderClaude,
	ProviderGemini,
	ProviderDeepSeek,
	ProviderOpenRouter,
}

// ParseProvider maps a provider name to its Provider value.
func ParseProvider(name string) (Provider, bool) {
	for _, p := range AllProviders {
		if string(p) == name {
			return p, true
		}
	}
	return "", false
}

// CompletionOptions tune a single completion call. An empty Model uses the
// backend's configured default.
type CompletionOptions struct {
	Model       string
	MaxTokens   int
	Temperature float32
}

// CompletionResult is a backend's response text plus usage accounting.
type CompletionResult struct {
	Text       string
	TokensUsed int
}

// TextGenerationBackend is the single capability every provider implements.
// Use this interface for dependency injection to enable mocking in tests.
type TextGenerationBackend interface {
	// Complete sends a prompt and returns the generated text.
	Complete(ctx context.Context, prompt string, opts CompletionOptions) (*CompletionResult, error)

	// Provider returns the provider name for telemetry and bookkeeping.
	Provider() Provider
}
