package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/arpitariyan/website-builder-backend/pkg/database"
	"github.com/arpitariyan/website-builder-backend/pkg/models"
)

// CredentialRepository provides data access for stored provider API keys.
// Keys are stored encrypted; this layer never sees plaintext.
type CredentialRepository interface {
	Upsert(ctx context.Context, cred *models.ProviderCredential) error
	GetByUserAndProvider(ctx context.Context, userID uuid.UUID, provider string) (*models.ProviderCredential, error)
	Delete(ctx context.Context, userID uuid.UUID, provider string) error
}

type credentialRepository struct {
	db *database.DB
}

// NewCredentialRepository creates a new CredentialRepository.
func NewCredentialRepository(db *database.DB) CredentialRepository {
	return &credentialRepository{db: db}
}

var _ CredentialRepository = (*credentialRepository)(nil)

func (r *credentialRepository) Upsert(ctx context.Context, cred *models.ProviderCredential) error {
	now := time.Now()
	cred.UpdatedAt = now
	if cred.ID == uuid.Nil {
		cred.ID = uuid.New()
		cred.CreatedAt = now
	}

	query := `
		INSERT INTO provider_credentials (
			id, user_id, provider, api_key_encrypted, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, provider)
		DO UPDATE SET
			api_key_encrypted = EXCLUDED.api_key_encrypted,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		cred.ID, cred.UserID, cred.Provider, cred.APIKeyEncrypted,
		cred.CreatedAt, cred.UpdatedAt,
	).Scan(&cred.ID, &cred.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert provider credential: %w", err)
	}

	return nil
}

func (r *credentialRepository) GetByUserAndProvider(ctx context.Context, userID uuid.UUID, provider string) (*models.ProviderCredential, error) {
	query := `
		SELECT id, user_id, provider, api_key_encrypted, created_at, updated_at
		FROM provider_credentials
		WHERE user_id = $1 AND provider = $2`

	var c models.ProviderCredential
	err := r.db.QueryRow(ctx, query, userID, provider).Scan(
		&c.ID, &c.UserID, &c.Provider, &c.APIKeyEncrypted, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to get provider credential: %w", err)
	}

	return &c, nil
}

func (r *credentialRepository) Delete(ctx context.Context, userID uuid.UUID, provider string) error {
	query := `DELETE FROM provider_credentials WHERE user_id = $1 AND provider = $2`

	if _, err := r.db.Exec(ctx, query, userID, provider); err != nil {
		return fmt.Errorf("failed to delete provider credential: %w", err)
	}

	return nil
}
