package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/arpitariyan/website-builder-backend/pkg/config"
)

// BackendFactory creates text-generation backends from a provider name and
// a resolved credential. Use this interface for dependency injection and
// testing.
type BackendFactory interface {
	Create(ctx context.Context, provider Provider, apiKey string) (TextGenerationBackend, error)
}

// backendFactory builds backends with model names from configuration.
type backendFactory struct {
	providers *config.ProvidersConfig
	logger    *zap.Logger
}

// NewBackendFactory creates a new factory.
func NewBackendFactory(providers *config.ProvidersConfig, logger *zap.Logger) BackendFactory {
	return &backendFactory{
		providers: providers,
		logger:    logger,
	}
}

var _ BackendFactory = (*backendFactory)(nil)

// Create builds the backend for a provider. The provider set is closed;
// an unknown provider is a programming error surfaced as an error value.
func (f *backendFactory) Create(ctx context.Context, provider Provider, apiKey string) (TextGenerationBackend, error) {
	model := f.providers.Model(string(provider))

	switch provider {
	case ProviderOpenAI:
		return NewOpenAIBackend(apiKey, model, f.logger)
	case ProviderClaude:
		return NewClaudeBackend(apiKey, model, f.logger)
	case ProviderGemini:
		return NewGeminiBackend(ctx, apiKey, model, f.logger)
	case ProviderDeepSeek:
		return NewDeepSeekBackend(apiKey, model, f.logger)
	case ProviderOpenRouter:
		return NewOpenRouterBackend(apiKey, model, f.logger)
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
