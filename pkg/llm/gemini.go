package llm

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// geminiBackend talks to the Google Gemini API via the genai SDK.
type geminiBackend struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewGeminiBackend creates a backend for the Gemini API.
func NewGeminiBackend(ctx context.Context, apiKey, model string, logger *zap.Logger) (TextGenerationBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("gemini: model is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &geminiBackend{
		client: client,
		model:  model,
		logger: logger.Named("gemini"),
	}, nil
}

// Complete implements TextGenerationBackend.
func (b *geminiBackend) Complete(ctx context.Context, prompt string, opts CompletionOptions) (*CompletionResult, error) {
	model := opts.Model
	if model == "" {
		model = b.model
	}

	b.logger.Debug("completion request",
		zap.String("model", model),
		zap.Int("prompt_len", len(prompt)),
		zap.Int("max_tokens", opts.MaxTokens))

	start := time.Now()

	temperature := opts.Temperature
	resp, err := b.client.Models.GenerateContent(ctx, model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			MaxOutputTokens: int32(opts.MaxTokens),
			Temperature:     &temperature,
		},
	)
	if err != nil {
		b.logger.Warn("completion failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, WrapError(ProviderGemini, err)
	}

	text := resp.Text()
	if text == "" {
		return nil, WrapError(ProviderGemini, fmt.Errorf("no text content in response"))
	}

	tokensUsed := 0
	if resp.UsageMetadata != nil {
		tokensUsed = int(resp.UsageMetadata.TotalTokenCount)
	}

	b.logger.Info("completion finished",
		zap.Int("total_tokens", tokensUsed),
		zap.Duration("elapsed", time.Since(start)))

	return &CompletionResult{
		Text:       text,
		TokensUsed: tokensUsed,
	}, nil
}

// Provider implements TextGenerationBackend.
func (b *geminiBackend) Provider() Provider {
	return ProviderGemini
}
