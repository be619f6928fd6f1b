package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/arpitariyan/website-builder-backend/pkg/apperrors"
	"github.com/arpitariyan/website-builder-backend/pkg/llm"
	"github.com/arpitariyan/website-builder-backend/pkg/models"
	"github.com/arpitariyan/website-builder-backend/pkg/services"
)

// GenerateRequest is the body for POST /api/projects/{pid}/generate. The
// project context travels in the request because project documents live in
// the upstream application layer, not this service.
type GenerateRequest struct {
	Project struct {
		Name            string `json:"name"`
		Description     string `json:"description"`
		Category        string `json:"category"`
		Stack           string `json:"stack"`
		BackendRequired bool   `json:"backend_required"`
	} `json:"project"`
	Request models.GenerationRequest `json:"request"`
}

// GenerateHandler handles code generation HTTP requests.
type GenerateHandler struct {
	generation services.GenerationService
	logger     *zap.Logger
}

// NewGenerateHandler creates a new generation handler.
func NewGenerateHandler(generation services.GenerationService, logger *zap.Logger) *GenerateHandler {
	return &GenerateHandler{
		generation: generation,
		logger:     logger,
	}
}

// RegisterRoutes registers the generation handler's routes on the given mux.
func (h *GenerateHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/projects/{pid}/generate", h.Generate)
}

// Generate handles POST /api/projects/{pid}/generate.
// Runs the full pipeline and returns the generated files.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := ParseUserID(w, r, h.logger)
	if !ok {
		return
	}
	projectID, ok := ParsePathUUID(w, r, "pid", h.logger)
	if !ok {
		return
	}

	var body GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid_body", "Request body must be valid JSON")
		return
	}
	if body.Request.Type == "" || body.Request.Description == "" {
		writeError(w, h.logger, http.StatusBadRequest, "missing_fields", "request.type and request.description are required")
		return
	}

	project := &models.ProjectContext{
		ID:              projectID,
		Name:            body.Project.Name,
		Description:     body.Project.Description,
		Category:        body.Project.Category,
		Stack:           body.Project.Stack,
		BackendRequired: body.Project.BackendRequired,
	}

	result, err := h.generation.GenerateCode(r.Context(), userID, project, &body.Request)
	if err != nil {
		h.writeGenerationError(w, projectID.String(), err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: result}); err != nil {
		h.logger.Error("Failed to write generation response", zap.Error(err))
	}
}

// writeGenerationError maps pipeline failures to status codes: missing
// credentials are the client's problem to fix (422), provider failures are
// upstream trouble (502).
func (h *GenerateHandler) writeGenerationError(w http.ResponseWriter, projectID string, err error) {
	h.logger.Error("Generation failed",
		zap.String("project_id", projectID),
		zap.Error(err))

	if errors.Is(err, apperrors.ErrNoCredential) {
		writeError(w, h.logger, http.StatusUnprocessableEntity, "no_credential",
			"No provider credential is available; add an API key for at least one provider")
		return
	}

	var backendErr *llm.BackendError
	if errors.As(err, &backendErr) {
		writeError(w, h.logger, http.StatusBadGateway, "backend_error",
			"The "+string(backendErr.Provider)+" provider rejected the generation request")
		return
	}

	writeError(w, h.logger, http.StatusInternalServerError, "internal_error", "Generation failed")
}
