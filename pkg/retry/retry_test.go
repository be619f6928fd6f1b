package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastConfig() *Config {
	return &Config{
		MaxRetries:   3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

type taggedError struct {
	retryable bool
}

func (e *taggedError) Error() string     { return "tagged" }
func (e *taggedError) IsRetryable() bool { return e.retryable }

func TestDoWithResult_SucceedsFirstTry(t *testing.T) {
	calls := 0
	result, err := DoWithResult(context.Background(), fastConfig(), func() (string, error) {
		calls++
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "ok" || calls != 1 {
		t.Errorf("result=%q calls=%d, want ok/1", result, calls)
	}
}

func TestDoWithResult_RetriesTransientErrors(t *testing.T) {
	calls := 0
	result, err := DoWithResult(context.Background(), fastConfig(), func() (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("503 service unavailable")
		}
		return 42, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != 42 || calls != 3 {
		t.Errorf("result=%d calls=%d, want 42/3", result, calls)
	}
}

func TestDoWithResult_StopsOnPermanentError(t *testing.T) {
	calls := 0
	permanent := &taggedError{retryable: false}
	_, err := DoWithResult(context.Background(), fastConfig(), func() (int, error) {
		calls++
		return 0, permanent
	})
	if !errors.Is(err, permanent) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("calls=%d, want 1 (no retries on permanent error)", calls)
	}
}

func TestDoWithResult_ExhaustsRetries(t *testing.T) {
	calls := 0
	transient := &taggedError{retryable: true}
	_, err := DoWithResult(context.Background(), fastConfig(), func() (int, error) {
		calls++
		return 0, transient
	})
	if !errors.Is(err, transient) {
		t.Fatalf("expected transient error, got %v", err)
	}
	if calls != 4 {
		t.Errorf("calls=%d, want 4 (initial + 3 retries)", calls)
	}
}

func TestDoWithResult_RespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := &Config{
		MaxRetries:   5,
		InitialDelay: time.Hour, // force a long wait so cancel wins
		MaxDelay:     time.Hour,
		Multiplier:   2.0,
	}

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := DoWithResult(ctx, cfg, func() (int, error) {
		return 0, errors.New("timeout")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("429 too many requests"), true},
		{errors.New("connection refused"), true},
		{errors.New("request timed out"), true},
		{errors.New("invalid api key"), false},
		{errors.New("model not found"), false},
		{&taggedError{retryable: true}, true},
		{&taggedError{retryable: false}, false},
	}

	for _, tt := range tests {
		if got := IsRetryable(tt.err); got != tt.want {
			t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
