package credentials

import (
	"context"

	"github.com/google/uuid"
)

// MockProvider is a configurable mock for testing code that resolves
// credentials. Set the Func fields to control behavior; calls are counted.
type MockProvider struct {
	GetCredentialFunc    func(ctx context.Context, userID uuid.UUID, provider string) (string, error)
	SetCredentialFunc    func(ctx context.Context, userID uuid.UUID, provider, apiKey string) error
	DeleteCredentialFunc func(ctx context.Context, userID uuid.UUID, provider string) error

	// Call tracking for verification
	GetCredentialCalls    int
	SetCredentialCalls    int
	DeleteCredentialCalls int
}

// GetCredential implements Provider.
func (m *MockProvider) GetCredential(ctx context.Context, userID uuid.UUID, provider string) (string, error) {
	m.GetCredentialCalls++
	if m.GetCredentialFunc != nil {
		return m.GetCredentialFunc(ctx, userID, provider)
	}
	return "", nil
}

// SetCredential implements Provider.
func (m *MockProvider) SetCredential(ctx context.Context, userID uuid.UUID, provider, apiKey string) error {
	m.SetCredentialCalls++
	if m.SetCredentialFunc != nil {
		return m.SetCredentialFunc(ctx, userID, provider, apiKey)
	}
	return nil
}

// DeleteCredential implements Provider.
func (m *MockProvider) DeleteCredential(ctx context.Context, userID uuid.UUID, provider string) error {
	m.DeleteCredentialCalls++
	if m.DeleteCredentialFunc != nil {
		return m.DeleteCredentialFunc(ctx, userID, provider)
	}
	return nil
}

// Ensure MockProvider implements Provider at compile time.
var _ Provider = (*MockProvider)(nil)
