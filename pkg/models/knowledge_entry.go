// Package models contains domain types for the website-builder backend.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Code type tags used to categorize stored snippets. Stored as free-form
// strings; these constants cover the types the generator produces.
const (
	CodeTypeComponent   = "component"
	CodeTypeService     = "service"
	CodeTypeRoute       = "route"
	CodeTypeFullProject = "full-project"
	CodeTypeAdaptation  = "code_adaptation"
)

// KnowledgeEntry is a stored code sample with its similarity embedding.
// Embedding is derived from description + code at store time and never
// recomputed. ReusageCount and SuccessRate are the only mutable fields.
type KnowledgeEntry struct {
	ID           uuid.UUID `json:"id"`
	ProjectID    uuid.UUID `json:"project_id"`
	UserID       uuid.UUID `json:"user_id"`
	CodeType     string    `json:"code_type"`
	Description  string    `json:"description"`
	Code         string    `json:"code"`
	Metadata     JSONBMap  `json:"metadata"`
	Embedding    []float32 `json:"embedding"`
	ReusageCount int       `json:"reusage_count"`
	SuccessRate  float64   `json:"success_rate"`
	CreatedAt    time.Time `json:"created_at"`
}

// KnowledgeFilters are the exact-match filters applied before similarity
// ranking. Zero values mean "no filter" for that field.
type KnowledgeFilters struct {
	UserID   uuid.UUID
	CodeType string
	Stack    string
	Category string
}

// KnowledgeMatch pairs an entry with its similarity to a search query.
type KnowledgeMatch struct {
	Entry      *KnowledgeEntry `json:"entry"`
	Similarity float64         `json:"similarity"`
}

// KnowledgeTypeStats aggregates entries of one code type.
type KnowledgeTypeStats struct {
	CodeType       string  `json:"code_type"`
	Entries        int     `json:"entries"`
	AvgSuccessRate float64 `json:"avg_success_rate"`
	TotalReuse     int     `json:"total_reuse"`
}

// KnowledgeStats summarizes a user's knowledge base.
type KnowledgeStats struct {
	TotalEntries int                  `json:"total_entries"`
	ByType       []KnowledgeTypeStats `json:"by_type"`
}
