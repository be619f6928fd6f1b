package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"
)

// claudeBackend talks to the Anthropic Messages API.
type claudeBackend struct {
	client *anthropic.Client
	model  string
	logger *zap.Logger
}

// NewClaudeBackend creates a backend for the Anthropic API.
func NewClaudeBackend(apiKey, model string, logger *zap.Logger) (TextGenerationBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("claude: api key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("claude: model is required")
	}

	return &claudeBackend{
		client: anthropic.NewClient(apiKey),
		model:  model,
		logger: logger.Named("claude"),
	}, nil
}

// Complete implements TextGenerationBackend.
func (b *claudeBackend) Complete(ctx context.Context, prompt string, opts CompletionOptions) (*CompletionResult, error) {
	model := opts.Model
	if model == "" {
		model = b.model
	}

	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4000 // Messages API requires max_tokens
	}

	b.logger.Debug("completion request",
		zap.String("model", model),
		zap.Int("prompt_len", len(prompt)),
		zap.Int("max_tokens", maxTokens))

	start := time.Now()

	temperature := opts.Temperature
	resp, err := b.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:       anthropic.Model(model),
		MaxTokens:   maxTokens,
		Temperature: &temperature,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(prompt),
		},
	})
	if err != nil {
		b.logger.Warn("completion failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, WrapError(ProviderClaude, err)
	}

	text := ""
	for _, block := range resp.Content {
		if block.Type == anthropic.MessagesContentTypeText && block.Text != nil {
			text = *block.Text
			break
		}
	}
	if text == "" {
		return nil, WrapError(ProviderClaude, fmt.Errorf("no text content in response"))
	}

	tokensUsed := resp.Usage.InputTokens + resp.Usage.OutputTokens

	b.logger.Info("completion finished",
		zap.Int("total_tokens", tokensUsed),
		zap.Duration("elapsed", time.Since(start)))

	return &CompletionResult{
		Text:       text,
		TokensUsed: tokensUsed,
	}, nil
}

// Provider implements TextGenerationBackend.
func (b *claudeBackend) Provider() Provider {
	return ProviderClaude
}
