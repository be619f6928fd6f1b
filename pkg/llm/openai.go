package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Base URLs for the OpenAI-compatible providers.
const (
	deepseekBaseURL   = "https://api.deepseek.com/v1"
	openrouterBaseURL = "https://openrouter.ai/api/v1"
)

// openAIBackend serves every OpenAI-compatible provider (OpenAI itself,
// DeepSeek, OpenRouter). They share the chat-completions wire format and
// differ only in base URL, default model and the provider tag reported
// back for telemetry.
type openAIBackend struct {
	client   *openai.Client
	provider Provider
	model    string
	logger   *zap.Logger
}

// NewOpenAIBackend creates a backend for the OpenAI API.
func NewOpenAIBackend(apiKey, model string, logger *zap.Logger) (TextGenerationBackend, error) {
	return newOpenAICompatible(ProviderOpenAI, apiKey, "", model, logger)
}

// NewDeepSeekBackend creates a backend for the DeepSeek API.
func NewDeepSeekBackend(apiKey, model string, logger *zap.Logger) (TextGenerationBackend, error) {
	return newOpenAICompatible(ProviderDeepSeek, apiKey, deepseekBaseURL, model, logger)
}

// NewOpenRouterBackend creates a backend for the OpenRouter API.
func NewOpenRouterBackend(apiKey, model string, logger *zap.Logger) (TextGenerationBackend, error) {
	return newOpenAICompatible(ProviderOpenRouter, apiKey, openrouterBaseURL, model, logger)
}

func newOpenAICompatible(provider Provider, apiKey, baseURL, model string, logger *zap.Logger) (TextGenerationBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%s: api key is required", provider)
	}
	if model == "" {
		return nil, fmt.Errorf("%s: model is required", provider)
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = strings.TrimSuffix(baseURL, "/")
	}

	return &openAIBackend{
		client:   openai.NewClientWithConfig(clientConfig),
		provider: provider,
		model:    model,
		logger:   logger.Named(string(provider)),
	}, nil
}

// Complete implements TextGenerationBackend.
func (b *openAIBackend) Complete(ctx context.Context, prompt string, opts CompletionOptions) (*CompletionResult, error) {
	model := opts.Model
	if model == "" {
		model = b.model
	}

	b.logger.Debug("completion request",
		zap.String("model", model),
		zap.Int("prompt_len", len(prompt)),
		zap.Int("max_tokens", opts.MaxTokens))

	start := time.Now()

	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	})
	if err != nil {
		b.logger.Warn("completion failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, WrapError(b.provider, err)
	}

	if len(resp.Choices) == 0 {
		return nil, WrapError(b.provider, fmt.Errorf("no choices in response"))
	}

	b.logger.Info("completion finished",
		zap.Int("total_tokens", resp.Usage.TotalTokens),
		zap.Duration("elapsed", time.Since(start)))

	return &CompletionResult{
		Text:       resp.Choices[0].Message.Content,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}

// Provider implements TextGenerationBackend.
func (b *openAIBackend) Provider() Provider {
	return b.provider
}
