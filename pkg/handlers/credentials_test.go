package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/arpitariyan/website-builder-backend/pkg/credentials"
)

func newCredentialRequest(method, provider, body string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, "/api/credentials/"+provider, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, "/api/credentials/"+provider, nil)
	}
	req.SetPathValue("provider", provider)
	req.Header.Set("X-User-ID", uuid.New().String())
	return req
}

func TestSetCredential_Success(t *testing.T) {
	creds := &credentials.MockProvider{}
	handler := NewCredentialsHandler(creds, zap.NewNop())

	rec := httptest.NewRecorder()
	handler.Set(rec, newCredentialRequest(http.MethodPut, "openai", `{"api_key":"sk-test"}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, creds.SetCredentialCalls)
}

func TestSetCredential_UnknownProvider(t *testing.T) {
	creds := &credentials.MockProvider{}
	handler := NewCredentialsHandler(creds, zap.NewNop())

	rec := httptest.NewRecorder()
	handler.Set(rec, newCredentialRequest(http.MethodPut, "frontier-llm", `{"api_key":"sk-test"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, creds.SetCredentialCalls)
}

func TestSetCredential_MissingKey(t *testing.T) {
	creds := &credentials.MockProvider{}
	handler := NewCredentialsHandler(creds, zap.NewNop())

	rec := httptest.NewRecorder()
	handler.Set(rec, newCredentialRequest(http.MethodPut, "openai", `{}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, creds.SetCredentialCalls)
}

func TestDeleteCredential_Success(t *testing.T) {
	creds := &credentials.MockProvider{}
	handler := NewCredentialsHandler(creds, zap.NewNop())

	rec := httptest.NewRecorder()
	handler.Delete(rec, newCredentialRequest(http.MethodDelete, "gemini", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, creds.DeleteCredentialCalls)
}
