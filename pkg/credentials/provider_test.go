package credentials

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arpitariyan/website-builder-backend/pkg/apperrors"
	"github.com/arpitariyan/website-builder-backend/pkg/config"
	"github.com/arpitariyan/website-builder-backend/pkg/crypto"
	"github.com/arpitariyan/website-builder-backend/pkg/models"
)

// fakeCredentialRepo is an in-memory CredentialRepository keyed by
// user ID + provider.
type fakeCredentialRepo struct {
	creds   map[string]*models.ProviderCredential
	getErr  error
	upserts int
	deletes int
}

func newFakeCredentialRepo() *fakeCredentialRepo {
	return &fakeCredentialRepo{creds: make(map[string]*models.ProviderCredential)}
}

func (f *fakeCredentialRepo) key(userID uuid.UUID, provider string) string {
	return userID.String() + "/" + provider
}

func (f *fakeCredentialRepo) Upsert(_ context.Context, cred *models.ProviderCredential) error {
	f.upserts++
	if cred.ID == uuid.Nil {
		cred.ID = uuid.New()
	}
	f.creds[f.key(cred.UserID, cred.Provider)] = cred
	return nil
}

func (f *fakeCredentialRepo) GetByUserAndProvider(_ context.Context, userID uuid.UUID, provider string) (*models.ProviderCredential, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.creds[f.key(userID, provider)], nil
}

func (f *fakeCredentialRepo) Delete(_ context.Context, userID uuid.UUID, provider string) error {
	f.deletes++
	delete(f.creds, f.key(userID, provider))
	return nil
}

func newTestProvider(t *testing.T, repo *fakeCredentialRepo, defaults *config.ProvidersConfig) Provider {
	t.Helper()
	encryptor, err := crypto.NewCredentialEncryptor("test-passphrase")
	if err != nil {
		t.Fatalf("NewCredentialEncryptor: %v", err)
	}
	if defaults == nil {
		defaults = &config.ProvidersConfig{}
	}
	return NewProvider(repo, encryptor, defaults, zap.NewNop())
}

func TestGetCredential_StoredKeyWins(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCredentialRepo()
	defaults := &config.ProvidersConfig{OpenAIKey: "sk-process-default"}
	provider := newTestProvider(t, repo, defaults)
	userID := uuid.New()

	if err := provider.SetCredential(ctx, userID, "openai", "sk-user-key"); err != nil {
		t.Fatalf("SetCredential: %v", err)
	}

	got, err := provider.GetCredential(ctx, userID, "openai")
	if err != nil {
		t.Fatalf("GetCredential: %v", err)
	}
	if got != "sk-user-key" {
		t.Errorf("got %q, want stored user key", got)
	}
}

func TestGetCredential_FallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCredentialRepo()
	defaults := &config.ProvidersConfig{ClaudeKey: "sk-ant-default"}
	provider := newTestProvider(t, repo, defaults)

	got, err := provider.GetCredential(ctx, uuid.New(), "claude")
	if err != nil {
		t.Fatalf("GetCredential: %v", err)
	}
	if got != "sk-ant-default" {
		t.Errorf("got %q, want process default", got)
	}
}

func TestGetCredential_NoSourceReturnsEmpty(t *testing.T) {
	ctx := context.Background()
	provider := newTestProvider(t, newFakeCredentialRepo(), nil)

	got, err := provider.GetCredential(ctx, uuid.New(), "gemini")
	if err != nil {
		t.Fatalf("GetCredential: %v", err)
	}
	if got != "" {
		t.Errorf("got %q, want empty for missing credential", got)
	}
}

func TestGetCredential_StoredValueIsEncrypted(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCredentialRepo()
	provider := newTestProvider(t, repo, nil)
	userID := uuid.New()

	if err := provider.SetCredential(ctx, userID, "deepseek", "sk-plain"); err != nil {
		t.Fatalf("SetCredential: %v", err)
	}

	stored := repo.creds[repo.key(userID, "deepseek")]
	if stored == nil {
		t.Fatal("credential was not stored")
	}
	if stored.APIKeyEncrypted == "sk-plain" {
		t.Error("API key was stored in plaintext")
	}
}

func TestGetCredential_DecryptFailureDoesNotFallBack(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCredentialRepo()
	userID := uuid.New()
	repo.creds[repo.key(userID, "openai")] = &models.ProviderCredential{
		UserID:          userID,
		Provider:        "openai",
		APIKeyEncrypted: "not-valid-ciphertext",
	}
	defaults := &config.ProvidersConfig{OpenAIKey: "sk-process-default"}
	provider := newTestProvider(t, repo, defaults)

	_, err := provider.GetCredential(ctx, userID, "openai")
	if !errors.Is(err, apperrors.ErrCredentialsKeyMismatch) {
		t.Fatalf("err = %v, want ErrCredentialsKeyMismatch", err)
	}
}

func TestGetCredential_RepositoryError(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCredentialRepo()
	repo.getErr = errors.New("connection refused")
	provider := newTestProvider(t, repo, nil)

	_, err := provider.GetCredential(ctx, uuid.New(), "openai")
	if err == nil {
		t.Fatal("expected repository error to propagate")
	}
}

func TestDeleteCredential(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCredentialRepo()
	provider := newTestProvider(t, repo, nil)
	userID := uuid.New()

	if err := provider.SetCredential(ctx, userID, "openrouter", "sk-or"); err != nil {
		t.Fatalf("SetCredential: %v", err)
	}
	if err := provider.DeleteCredential(ctx, userID, "openrouter"); err != nil {
		t.Fatalf("DeleteCredential: %v", err)
	}

	got, err := provider.GetCredential(ctx, userID, "openrouter")
	if err != nil {
		t.Fatalf("GetCredential: %v", err)
	}
	if got != "" {
		t.Errorf("got %q after delete, want empty", got)
	}
}
