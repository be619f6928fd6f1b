package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arpitariyan/website-builder-backend/pkg/models"
	"github.com/arpitariyan/website-builder-backend/pkg/services"
)

// mockKnowledgeService implements services.KnowledgeService.
type mockKnowledgeService struct {
	StatsFunc func(ctx context.Context, userID uuid.UUID) (*models.KnowledgeStats, error)
}

func (m *mockKnowledgeService) Store(_ context.Context, _ services.StoreParams) (*models.KnowledgeEntry, error) {
	return nil, nil
}

func (m *mockKnowledgeService) Search(_ context.Context, _ string, _ models.KnowledgeFilters) ([]models.KnowledgeMatch, error) {
	return nil, nil
}

func (m *mockKnowledgeService) RecordReuse(_ context.Context, _ uuid.UUID, _ bool) error {
	return nil
}

func (m *mockKnowledgeService) Stats(ctx context.Context, userID uuid.UUID) (*models.KnowledgeStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx, userID)
	}
	return &models.KnowledgeStats{}, nil
}

func TestKnowledgeStats_Success(t *testing.T) {
	svc := &mockKnowledgeService{
		StatsFunc: func(_ context.Context, _ uuid.UUID) (*models.KnowledgeStats, error) {
			return &models.KnowledgeStats{
				TotalEntries: 3,
				ByType: []models.KnowledgeTypeStats{
					{CodeType: "component", Entries: 3, AvgSuccessRate: 0.9, TotalReuse: 5},
				},
			}, nil
		},
	}
	handler := NewKnowledgeHandler(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/knowledge/stats", nil)
	req.Header.Set("X-User-ID", uuid.New().String())
	rec := httptest.NewRecorder()
	handler.Stats(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool                  `json:"success"`
		Data    models.KnowledgeStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.Data.TotalEntries)
}

func TestKnowledgeStats_MissingUser(t *testing.T) {
	handler := NewKnowledgeHandler(&mockKnowledgeService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/knowledge/stats", nil)
	rec := httptest.NewRecorder()
	handler.Stats(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestKnowledgeStats_ServiceFailure(t *testing.T) {
	svc := &mockKnowledgeService{
		StatsFunc: func(_ context.Context, _ uuid.UUID) (*models.KnowledgeStats, error) {
			return nil, errors.New("db down")
		},
	}
	handler := NewKnowledgeHandler(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/knowledge/stats", nil)
	req.Header.Set("X-User-ID", uuid.New().String())
	rec := httptest.NewRecorder()
	handler.Stats(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
