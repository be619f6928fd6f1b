package models

import (
	"time"

	"github.com/google/uuid"
)

// ProviderCredential is a user's stored API key for one LLM provider.
// The key is encrypted at rest; decryption happens in the credentials package.
type ProviderCredential struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Provider        string    `json:"provider"`
	APIKeyEncrypted string    `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
