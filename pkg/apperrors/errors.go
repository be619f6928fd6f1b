// Package apperrors defines the sentinel errors callers branch on.
package apperrors

import "errors"

var (
	// ErrNoCredential means no provider had an available API key for the
	// user, from either stored credentials or process defaults.
	ErrNoCredential = errors.New("no provider credential available")

	// ErrCredentialsKeyMismatch means a stored credential no longer
	// decrypts, typically after an encryption key rotation.
	ErrCredentialsKeyMismatch = errors.New("credential was encrypted with a different key")
)
