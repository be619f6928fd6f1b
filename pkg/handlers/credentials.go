package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/arpitariyan/website-builder-backend/pkg/credentials"
	"github.com/arpitariyan/website-builder-backend/pkg/llm"
)

// SetCredentialRequest is the body for PUT /api/credentials/{provider}.
type SetCredentialRequest struct {
	APIKey string `json:"api_key"`
}

// CredentialsHandler manages per-user provider API keys.
type CredentialsHandler struct {
	credentials credentials.Provider
	logger      *zap.Logger
}

// NewCredentialsHandler creates a new credentials handler.
func NewCredentialsHandler(creds credentials.Provider, logger *zap.Logger) *CredentialsHandler {
	return &CredentialsHandler{
		credentials: creds,
		logger:      logger,
	}
}

// RegisterRoutes registers the credentials handler's routes on the given mux.
func (h *CredentialsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("PUT /api/credentials/{provider}", h.Set)
	mux.HandleFunc("DELETE /api/credentials/{provider}", h.Delete)
}

// Set handles PUT /api/credentials/{provider}.
// Stores the caller's API key for a provider, replacing any existing one.
func (h *CredentialsHandler) Set(w http.ResponseWriter, r *http.Request) {
	userID, ok := ParseUserID(w, r, h.logger)
	if !ok {
		return
	}
	provider, ok := h.parseProvider(w, r)
	if !ok {
		return
	}

	var body SetCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid_body", "Request body must be valid JSON")
		return
	}
	if body.APIKey == "" {
		writeError(w, h.logger, http.StatusBadRequest, "missing_fields", "api_key is required")
		return
	}

	if err := h.credentials.SetCredential(r.Context(), userID, provider, body.APIKey); err != nil {
		h.logger.Error("Failed to store credential",
			zap.String("provider", provider),
			zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "internal_error", "Failed to store credential")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true}); err != nil {
		h.logger.Error("Failed to write credential response", zap.Error(err))
	}
}

// Delete handles DELETE /api/credentials/{provider}.
func (h *CredentialsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := ParseUserID(w, r, h.logger)
	if !ok {
		return
	}
	provider, ok := h.parseProvider(w, r)
	if !ok {
		return
	}

	if err := h.credentials.DeleteCredential(r.Context(), userID, provider); err != nil {
		h.logger.Error("Failed to delete credential",
			zap.String("provider", provider),
			zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "internal_error", "Failed to delete credential")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true}); err != nil {
		h.logger.Error("Failed to write credential response", zap.Error(err))
	}
}

func (h *CredentialsHandler) parseProvider(w http.ResponseWriter, r *http.Request) (string, bool) {
	name := r.PathValue("provider")
	if _, ok := llm.ParseProvider(name); !ok {
		writeError(w, h.logger, http.StatusBadRequest, "invalid_provider",
			"provider must be one of: openai, claude, gemini, deepseek, openrouter")
		return "", false
	}
	return name, true
}
