package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arpitariyan/website-builder-backend/pkg/apperrors"
	"github.com/arpitariyan/website-builder-backend/pkg/config"
	"github.com/arpitariyan/website-builder-backend/pkg/credentials"
	"github.com/arpitariyan/website-builder-backend/pkg/llm"
	"github.com/arpitariyan/website-builder-backend/pkg/models"
	"github.com/arpitariyan/website-builder-backend/pkg/prompts"
	"github.com/arpitariyan/website-builder-backend/pkg/retry"
)

// GenerationService orchestrates code generation: search the knowledge
// base, adapt a close match or generate fresh code through an LLM backend,
// and persist the produced files for future reuse.
type GenerationService interface {
	GenerateCode(ctx context.Context, userID uuid.UUID, project *models.ProjectContext, req *models.GenerationRequest) (*models.GenerationResult, error)
}

type generationService struct {
	knowledge   KnowledgeService
	credentials credentials.Provider
	backends    llm.BackendFactory
	cfg         *config.GenerationConfig
	retryCfg    *retry.Config
	logger      *zap.Logger
}

// NewGenerationService creates a new GenerationService.
func NewGenerationService(
	knowledge KnowledgeService,
	creds credentials.Provider,
	backends llm.BackendFactory,
	cfg *config.GenerationConfig,
	logger *zap.Logger,
) GenerationService {
	return &generationService{
		knowledge:   knowledge,
		credentials: creds,
		backends:    backends,
		cfg:         cfg,
		retryCfg:    retry.DefaultConfig(),
		logger:      logger.Named("generation"),
	}
}

var _ GenerationService = (*generationService)(nil)

func (s *generationService) GenerateCode(ctx context.Context, userID uuid.UUID, project *models.ProjectContext, req *models.GenerationRequest) (*models.GenerationResult, error) {
	logger := s.logger.With(
		zap.String("user_id", userID.String()),
		zap.String("project_id", project.ID.String()),
		zap.String("request_type", req.Type))

	matches := s.searchKnowledge(ctx, userID, project, req, logger)

	// A close enough top match is adapted instead of generating from
	// scratch. Adaptation failure falls back to generation.
	if len(matches) > 0 && matches[0].Similarity >= s.cfg.AdaptThreshold {
		result, err := s.adapt(ctx, userID, project, req, matches[0], logger)
		if err == nil {
			s.persist(ctx, userID, project, req, result, logger)
			return result, nil
		}
		logger.Warn("adaptation failed, generating instead",
			zap.Float64("similarity", matches[0].Similarity),
			zap.Error(err))
	}

	result, err := s.generate(ctx, userID, project, req, matches, logger)
	if err != nil {
		return nil, err
	}

	s.persist(ctx, userID, project, req, result, logger)
	return result, nil
}

// searchKnowledge queries the knowledge base. The knowledge base is an
// optimization, so lookup failures degrade to generating without context
// rather than failing the request.
func (s *generationService) searchKnowledge(ctx context.Context, userID uuid.UUID, project *models.ProjectContext, req *models.GenerationRequest, logger *zap.Logger) []models.KnowledgeMatch {
	query := composeQuery(project, req)
	filters := models.KnowledgeFilters{
		UserID:   userID,
		CodeType: req.Type,
		Stack:    firstNonEmpty(req.Stack, project.Stack),
		Category: firstNonEmpty(req.Category, project.Category),
	}

	matches, err := s.knowledge.Search(ctx, query, filters)
	if err != nil {
		logger.Warn("knowledge search failed", zap.Error(err))
		return nil
	}
	return matches
}

func (s *generationService) adapt(ctx context.Context, userID uuid.UUID, project *models.ProjectContext, req *models.GenerationRequest, match models.KnowledgeMatch, logger *zap.Logger) (*models.GenerationResult, error) {
	backend, err := s.selectBackend(ctx, userID, req.Provider, logger)
	if err != nil {
		return nil, err
	}

	prompt := prompts.BuildAdaptationPrompt(project, req, match.Entry)

	completion, err := s.callBackend(ctx, backend, prompt)
	if err != nil {
		return nil, err
	}

	// The adapted entry proved reusable; its metrics record the success.
	if err := s.knowledge.RecordReuse(ctx, match.Entry.ID, true); err != nil {
		logger.Warn("failed to record reuse", zap.Error(err))
	}

	logger.Info("code adapted",
		zap.String("provider", string(backend.Provider())),
		zap.Float64("similarity", match.Similarity),
		zap.Int("tokens", completion.TokensUsed))

	return &models.GenerationResult{
		Files:      ParseCodeResponse(completion.Text, req.Type),
		Source:     models.SourceAdapted,
		Provider:   string(backend.Provider()),
		TokensUsed: completion.TokensUsed,
	}, nil
}

func (s *generationService) generate(ctx context.Context, userID uuid.UUID, project *models.ProjectContext, req *models.GenerationRequest, references []models.KnowledgeMatch, logger *zap.Logger) (*models.GenerationResult, error) {
	backend, err := s.selectBackend(ctx, userID, req.Provider, logger)
	if err != nil {
		return nil, err
	}

	prompt := prompts.BuildGenerationPrompt(project, req, references, s.cfg.MaxReferenceSnippets)

	completion, err := s.callBackend(ctx, backend, prompt)
	if err != nil {
		return nil, err
	}

	logger.Info("code generated",
		zap.String("provider", string(backend.Provider())),
		zap.Int("tokens", completion.TokensUsed))

	return &models.GenerationResult{
		Files:      ParseCodeResponse(completion.Text, req.Type),
		Source:     models.SourceGenerated,
		Provider:   string(backend.Provider()),
		TokensUsed: completion.TokensUsed,
	}, nil
}

// selectBackend resolves the first provider with an available credential:
// the request's preferred provider first, then the configured fallback
// order. No credential anywhere is terminal.
func (s *generationService) selectBackend(ctx context.Context, userID uuid.UUID, preferred string, logger *zap.Logger) (llm.TextGenerationBackend, error) {
	candidates := make([]string, 0, len(s.cfg.FallbackOrder)+1)
	if preferred != "" {
		candidates = append(candidates, preferred)
	}
	for _, name := range s.cfg.FallbackOrder {
		if name != preferred {
			candidates = append(candidates, name)
		}
	}

	for _, name := range candidates {
		provider, ok := llm.ParseProvider(name)
		if !ok {
			logger.Warn("skipping unknown provider in fallback order", zap.String("provider", name))
			continue
		}

		apiKey, err := s.credentials.GetCredential(ctx, userID, name)
		if err != nil {
			logger.Warn("credential lookup failed",
				zap.String("provider", name), zap.Error(err))
			continue
		}
		if apiKey == "" {
			continue
		}

		backend, err := s.backends.Create(ctx, provider, apiKey)
		if err != nil {
			logger.Warn("backend construction failed",
				zap.String("provider", name), zap.Error(err))
			continue
		}

		return backend, nil
	}

	return nil, apperrors.ErrNoCredential
}

// callBackend runs one completion with the configured timeout and retry
// policy. Non-retryable provider errors stop immediately.
func (s *generationService) callBackend(ctx context.Context, backend llm.TextGenerationBackend, prompt string) (*llm.CompletionResult, error) {
	callCtx := ctx
	if s.cfg.RequestTimeoutSeconds > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, time.Duration(s.cfg.RequestTimeoutSeconds)*time.Second)
		defer cancel()
	}

	return retry.DoWithResult(callCtx, s.retryCfg, func() (*llm.CompletionResult, error) {
		return backend.Complete(callCtx, prompt, llm.CompletionOptions{
			MaxTokens:   s.cfg.MaxTokens,
			Temperature: float32(s.cfg.Temperature),
		})
	})
}

// persist stores each produced file as a knowledge entry. Storage failures
// are logged and skipped: the result is already complete and the knowledge
// base only loses a future reuse opportunity.
func (s *generationService) persist(ctx context.Context, userID uuid.UUID, project *models.ProjectContext, req *models.GenerationRequest, result *models.GenerationResult, logger *zap.Logger) {
	for _, file := range result.Files {
		description := fmt.Sprintf("%s %s", req.Type, file.Path)
		if req.Description != "" {
			description = fmt.Sprintf("%s - %s", description, req.Description)
		}

		_, err := s.knowledge.Store(ctx, StoreParams{
			ProjectID:   project.ID,
			UserID:      userID,
			CodeType:    req.Type,
			Description: description,
			Code:        file.Content,
			Metadata: models.JSONBMap{
				"stack":    firstNonEmpty(req.Stack, project.Stack),
				"category": firstNonEmpty(req.Category, project.Category),
				"language": file.Language,
				"source":   result.Source,
			},
		})
		if err != nil {
			logger.Warn("failed to persist generated file",
				zap.String("path", file.Path), zap.Error(err))
		}
	}
}

// composeQuery joins the request and project descriptors into the
// similarity search text.
func composeQuery(project *models.ProjectContext, req *models.GenerationRequest) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{req.Description, req.Type, project.Category, project.Stack} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
