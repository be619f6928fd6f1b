package llm

import (
	"errors"
	"fmt"
	"strings"
)

// BackendError wraps a provider call failure with its origin and
// retryability classification.
type BackendError struct {
	Provider  Provider
	Retryable bool
	Cause     error
}

// Error implements the error interface.
func (e *BackendError) Error() string {
	return fmt.Sprintf("%s backend: %v", e.Provider, e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *BackendError) Unwrap() error {
	return e.Cause
}

// IsRetryable implements the retry.RetryableError interface so the retry
// package can check retryability without importing llm.
func (e *BackendError) IsRetryable() bool {
	return e.Retryable
}

// WrapError classifies a provider SDK error into a BackendError.
// Authentication failures, unknown models and bad requests are permanent;
// timeouts, rate limits and server errors are transient.
func WrapError(provider Provider, err error) *BackendError {
	if err == nil {
		return nil
	}

	var backendErr *BackendError
	if errors.As(err, &backendErr) {
		return backendErr
	}

	return &BackendError{
		Provider:  provider,
		Retryable: isTransient(err),
		Cause:     err,
	}
}

func isTransient(err error) bool {
	lower := strings.ToLower(err.Error())

	// Permanent failures first - these also tend to contain status codes
	// that would otherwise match the transient patterns.
	permanent := []string{
		"401", "unauthorized", "invalid api key", "invalid x-api-key",
		"403", "permission",
		"404", "not found", "does not exist",
		"400", "invalid request",
	}
	for _, p := range permanent {
		if strings.Contains(lower, p) {
			return false
		}
	}

	transient := []string{
		"429", "rate limit", "too many requests",
		"500", "502", "503", "504",
		"timeout", "timed out", "deadline exceeded",
		"connection refused", "connection reset", "no such host",
		"overloaded", "service unavailable",
	}
	for _, t := range transient {
		if strings.Contains(lower, t) {
			return true
		}
	}

	return false
}
