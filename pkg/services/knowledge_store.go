// Package services contains the business logic for the website-builder
// backend: the knowledge store, the generation orchestrator and the
// backend response parser.
package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arpitariyan/website-builder-backend/pkg/config"
	"github.com/arpitariyan/website-builder-backend/pkg/embedding"
	"github.com/arpitariyan/website-builder-backend/pkg/models"
	"github.com/arpitariyan/website-builder-backend/pkg/repositories"
)

// StoreParams are the caller-supplied fields for a new knowledge entry.
// The service derives everything else (id, embedding, metrics, timestamp).
type StoreParams struct {
	ProjectID   uuid.UUID
	UserID      uuid.UUID
	CodeType    string
	Description string
	Code        string
	Metadata    models.JSONBMap
}

// KnowledgeService stores generated code and retrieves it by similarity.
// Use this interface for dependency injection and testing.
type KnowledgeService interface {
	// Store embeds and persists a new entry, returning it with all derived
	// fields populated.
	Store(ctx context.Context, p StoreParams) (*models.KnowledgeEntry, error)

	// Search returns entries matching the filters, ranked by similarity to
	// the query text, best first. Results below the similarity floor are
	// dropped.
	Search(ctx context.Context, query string, filters models.KnowledgeFilters) ([]models.KnowledgeMatch, error)

	// RecordReuse folds one reuse outcome into an entry's running success
	// rate. A missing entry is logged, not an error: metrics are advisory
	// and must never fail a generation that already succeeded.
	RecordReuse(ctx context.Context, id uuid.UUID, wasSuccessful bool) error

	// Stats summarizes a user's knowledge base grouped by code type.
	Stats(ctx context.Context, userID uuid.UUID) (*models.KnowledgeStats, error)
}

type knowledgeService struct {
	repo   repositories.KnowledgeRepository
	cfg    *config.GenerationConfig
	logger *zap.Logger
}

// NewKnowledgeService creates a new KnowledgeService.
func NewKnowledgeService(repo repositories.KnowledgeRepository, cfg *config.GenerationConfig, logger *zap.Logger) KnowledgeService {
	return &knowledgeService{
		repo:   repo,
		cfg:    cfg,
		logger: logger.Named("knowledge"),
	}
}

var _ KnowledgeService = (*knowledgeService)(nil)

func (s *knowledgeService) Store(ctx context.Context, p StoreParams) (*models.KnowledgeEntry, error) {
	if p.Description == "" && p.Code == "" {
		return nil, fmt.Errorf("knowledge entry needs a description or code")
	}

	entry := &models.KnowledgeEntry{
		ID:          uuid.New(),
		ProjectID:   p.ProjectID,
		UserID:      p.UserID,
		CodeType:    p.CodeType,
		Description: p.Description,
		Code:        p.Code,
		Metadata:    p.Metadata,
		// The embedding covers both the description and the code so a
		// search phrased either way can find the entry.
		Embedding:    embedding.Embed(p.Description + " " + p.Code),
		ReusageCount: 0,
		SuccessRate:  1.0, // Optimistic prior until reuse evidence arrives
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Debug("knowledge entry stored",
		zap.String("id", entry.ID.String()),
		zap.String("code_type", entry.CodeType),
		zap.String("project_id", entry.ProjectID.String()))

	return entry, nil
}

func (s *knowledgeService) Search(ctx context.Context, query string, filters models.KnowledgeFilters) ([]models.KnowledgeMatch, error) {
	queryVec := embedding.Embed(query)

	entries, err := s.repo.ListByFilters(ctx, filters, s.cfg.ScanLimit)
	if err != nil {
		return nil, err
	}

	matches := make([]models.KnowledgeMatch, 0, len(entries))
	for _, entry := range entries {
		similarity := embedding.Cosine(queryVec, entry.Embedding)
		if similarity < s.cfg.MinSimilarity {
			continue
		}
		matches = append(matches, models.KnowledgeMatch{
			Entry:      entry,
			Similarity: similarity,
		})
	}

	// Stable sort keeps insertion order among equal scores, so repeated
	// searches rank ties the same way.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if len(matches) > s.cfg.MaxResults {
		matches = matches[:s.cfg.MaxResults]
	}

	s.logger.Debug("knowledge search",
		zap.Int("scanned", len(entries)),
		zap.Int("matched", len(matches)))

	return matches, nil
}

func (s *knowledgeService) RecordReuse(ctx context.Context, id uuid.UUID, wasSuccessful bool) error {
	found, err := s.repo.UpdateMetrics(ctx, id, wasSuccessful)
	if err != nil {
		return err
	}
	if !found {
		s.logger.Warn("reuse recorded for missing knowledge entry",
			zap.String("id", id.String()))
	}
	return nil
}

func (s *knowledgeService) Stats(ctx context.Context, userID uuid.UUID) (*models.KnowledgeStats, error) {
	return s.repo.StatsByUser(ctx, userID)
}
