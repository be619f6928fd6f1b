// Package repositories provides data access for the website-builder backend.
package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/arpitariyan/website-builder-backend/pkg/database"
	"github.com/arpitariyan/website-builder-backend/pkg/models"
)

// KnowledgeRepository provides data access for stored code snippets.
type KnowledgeRepository interface {
	// Insert persists a new entry. ID and CreatedAt must already be set.
	Insert(ctx context.Context, entry *models.KnowledgeEntry) error

	// ListByFilters returns entries matching the exact-match filters, oldest
	// first, capped at limit. Zero-valued filters are skipped.
	ListByFilters(ctx context.Context, filters models.KnowledgeFilters, limit int) ([]*models.KnowledgeEntry, error)

	// UpdateMetrics applies one reuse observation as a single atomic UPDATE:
	// the running success-rate average and the reuse counter move together.
	// Returns false if no entry has the given id.
	UpdateMetrics(ctx context.Context, id uuid.UUID, wasSuccessful bool) (bool, error)

	// StatsByUser aggregates a user's entries grouped by code type.
	StatsByUser(ctx context.Context, userID uuid.UUID) (*models.KnowledgeStats, error)
}

type knowledgeRepository struct {
	db *database.DB
}

// NewKnowledgeRepository creates a new KnowledgeRepository.
func NewKnowledgeRepository(db *database.DB) KnowledgeRepository {
	return &knowledgeRepository{db: db}
}

var _ KnowledgeRepository = (*knowledgeRepository)(nil)

func (r *knowledgeRepository) Insert(ctx context.Context, entry *models.KnowledgeEntry) error {
	query := `
		INSERT INTO knowledge_entries (
			id, project_id, user_id, code_type, description, code,
			metadata, embedding, reusage_count, success_rate, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(ctx, query,
		entry.ID, entry.ProjectID, entry.UserID, entry.CodeType,
		entry.Description, entry.Code, entry.Metadata, entry.Embedding,
		entry.ReusageCount, entry.SuccessRate, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert knowledge entry: %w", err)
	}

	return nil
}

func (r *knowledgeRepository) ListByFilters(ctx context.Context, filters models.KnowledgeFilters, limit int) ([]*models.KnowledgeEntry, error) {
	// Empty filter values disable that clause. Insertion order (created_at)
	// keeps similarity ties deterministic for the caller's stable sort.
	query := `
		SELECT id, project_id, user_id, code_type, description, code,
		       metadata, embedding, reusage_count, success_rate, created_at
		FROM knowledge_entries
		WHERE user_id = $1
		  AND ($2 = '' OR code_type = $2)
		  AND ($3 = '' OR metadata->>'stack' = $3)
		  AND ($4 = '' OR metadata->>'category' = $4)
		ORDER BY created_at ASC
		LIMIT $5`

	rows, err := r.db.Query(ctx, query,
		filters.UserID, filters.CodeType, filters.Stack, filters.Category, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list knowledge entries: %w", err)
	}
	defer rows.Close()

	entries := make([]*models.KnowledgeEntry, 0)
	for rows.Next() {
		e, err := scanKnowledgeEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating knowledge entries: %w", err)
	}

	return entries, nil
}

func (r *knowledgeRepository) UpdateMetrics(ctx context.Context, id uuid.UUID, wasSuccessful bool) (bool, error) {
	outcome := 0.0
	if wasSuccessful {
		outcome = 1.0
	}

	// success_rate' = (success_rate * n + outcome) / (n + 1) where n is the
	// pre-update reusage count. One statement, so concurrent updates cannot
	// lose each other's observation.
	query := `
		UPDATE knowledge_entries
		SET reusage_count = reusage_count + 1,
		    success_rate = (success_rate * reusage_count + $2) / (reusage_count + 1)
		WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, outcome)
	if err != nil {
		return false, fmt.Errorf("failed to update knowledge metrics: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *knowledgeRepository) StatsByUser(ctx context.Context, userID uuid.UUID) (*models.KnowledgeStats, error) {
	query := `
		SELECT code_type, COUNT(*),
		       COALESCE(AVG(success_rate), 0),
		       COALESCE(SUM(reusage_count), 0)
		FROM knowledge_entries
		WHERE user_id = $1
		GROUP BY code_type
		ORDER BY code_type`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query knowledge stats: %w", err)
	}
	defer rows.Close()

	stats := &models.KnowledgeStats{ByType: make([]models.KnowledgeTypeStats, 0)}
	for rows.Next() {
		var ts models.KnowledgeTypeStats
		if err := rows.Scan(&ts.CodeType, &ts.Entries, &ts.AvgSuccessRate, &ts.TotalReuse); err != nil {
			return nil, fmt.Errorf("failed to scan knowledge stats: %w", err)
		}
		stats.TotalEntries += ts.Entries
		stats.ByType = append(stats.ByType, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating knowledge stats: %w", err)
	}

	return stats, nil
}

func scanKnowledgeEntry(rows pgx.Rows) (*models.KnowledgeEntry, error) {
	var e models.KnowledgeEntry

	err := rows.Scan(
		&e.ID, &e.ProjectID, &e.UserID, &e.CodeType, &e.Description, &e.Code,
		&e.Metadata, &e.Embedding, &e.ReusageCount, &e.SuccessRate, &e.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan knowledge entry: %w", err)
	}

	return &e, nil
}
