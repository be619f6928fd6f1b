// Package credentials resolves the API key to use for a given user and
// text-generation provider. User-stored keys are encrypted at rest and
// take precedence over the process-wide default keys from configuration.
package credentials

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arpitariyan/website-builder-backend/pkg/apperrors"
	"github.com/arpitariyan/website-builder-backend/pkg/config"
	"github.com/arpitariyan/website-builder-backend/pkg/crypto"
	"github.com/arpitariyan/website-builder-backend/pkg/models"
	"github.com/arpitariyan/website-builder-backend/pkg/repositories"
)

// Provider resolves and manages per-user provider API keys.
// Use this interface for dependency injection and testing.
type Provider interface {
	// GetCredential returns the plaintext API key for a user and provider.
	// An empty string means no credential is available from any source.
	GetCredential(ctx context.Context, userID uuid.UUID, provider string) (string, error)

	// SetCredential encrypts and stores a user's API key for a provider,
	// replacing any existing one.
	SetCredential(ctx context.Context, userID uuid.UUID, provider, apiKey string) error

	// DeleteCredential removes a user's stored key for a provider.
	DeleteCredential(ctx context.Context, userID uuid.UUID, provider string) error
}

type credentialProvider struct {
	repo      repositories.CredentialRepository
	encryptor *crypto.CredentialEncryptor
	defaults  *config.ProvidersConfig
	logger    *zap.Logger
}

// NewProvider creates a credential provider backed by the credentials table,
// falling back to the process-wide default keys in defaults.
func NewProvider(
	repo repositories.CredentialRepository,
	encryptor *crypto.CredentialEncryptor,
	defaults *config.ProvidersConfig,
	logger *zap.Logger,
) Provider {
	return &credentialProvider{
		repo:      repo,
		encryptor: encryptor,
		defaults:  defaults,
		logger:    logger.Named("credentials"),
	}
}

var _ Provider = (*credentialProvider)(nil)

func (p *credentialProvider) GetCredential(ctx context.Context, userID uuid.UUID, provider string) (string, error) {
	cred, err := p.repo.GetByUserAndProvider(ctx, userID, provider)
	if err != nil {
		return "", fmt.Errorf("failed to look up credential: %w", err)
	}

	if cred != nil {
		apiKey, err := p.encryptor.Decrypt(cred.APIKeyEncrypted)
		if err != nil {
			// A stored key that no longer decrypts must not silently fall
			// back to the shared default.
			if errors.Is(err, crypto.ErrDecryptionFailed) {
				return "", fmt.Errorf("%s: %w", provider, apperrors.ErrCredentialsKeyMismatch)
			}
			return "", fmt.Errorf("failed to decrypt stored credential for %s: %w", provider, err)
		}
		if apiKey != "" {
			return apiKey, nil
		}
	}

	if key := p.defaults.DefaultKey(provider); key != "" {
		p.logger.Debug("using process default key",
			zap.String("provider", provider),
			zap.String("user_id", userID.String()))
		return key, nil
	}

	return "", nil
}

func (p *credentialProvider) SetCredential(ctx context.Context, userID uuid.UUID, provider, apiKey string) error {
	encrypted, err := p.encryptor.Encrypt(apiKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt credential: %w", err)
	}

	cred := &models.ProviderCredential{
		UserID:          userID,
		Provider:        provider,
		APIKeyEncrypted: encrypted,
	}
	if err := p.repo.Upsert(ctx, cred); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}

	p.logger.Info("credential stored",
		zap.String("provider", provider),
		zap.String("user_id", userID.String()))

	return nil
}

func (p *credentialProvider) DeleteCredential(ctx context.Context, userID uuid.UUID, provider string) error {
	if err := p.repo.Delete(ctx, userID, provider); err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}

	p.logger.Info("credential deleted",
		zap.String("provider", provider),
		zap.String("user_id", userID.String()))

	return nil
}
