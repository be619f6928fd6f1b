package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/arpitariyan/website-builder-backend/pkg/services"
)

// KnowledgeHandler exposes read-only knowledge base statistics.
type KnowledgeHandler struct {
	knowledge services.KnowledgeService
	logger    *zap.Logger
}

// NewKnowledgeHandler creates a new knowledge handler.
func NewKnowledgeHandler(knowledge services.KnowledgeService, logger *zap.Logger) *KnowledgeHandler {
	return &KnowledgeHandler{
		knowledge: knowledge,
		logger:    logger,
	}
}

// RegisterRoutes registers the knowledge handler's routes on the given mux.
func (h *KnowledgeHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/knowledge/stats", h.Stats)
}

// Stats handles GET /api/knowledge/stats.
// Summarizes the caller's knowledge base grouped by code type.
func (h *KnowledgeHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := ParseUserID(w, r, h.logger)
	if !ok {
		return
	}

	stats, err := h.knowledge.Stats(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to load knowledge stats",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "internal_error", "Failed to load knowledge stats")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: stats}); err != nil {
		h.logger.Error("Failed to write stats response", zap.Error(err))
	}
}
