package ai

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestProviderError_Error(t *testing.T) {
	err := NewProviderErrorWithCause(ErrTypeNetwork, "request failed", "huggingface", errors.New("connection refused"))
	err.StatusCode = 502

	msg := err.Error()
	for _, want := range []string{"provider=huggingface", "type=network", "status=502", "request failed", "cause=connection refused"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Expected %q in %q", want, msg)
		}
	}

	if err.Detail() != "request failed: connection refused" {
		t.Errorf("Unexpected detail: %s", err.Detail())
	}
}

func TestProviderError_Is(t *testing.T) {
	err := fmt.Errorf("classify: %w", NewProviderError(ErrTypeTimeout, "deadline exceeded", "huggingface"))

	if !errors.Is(err, &ProviderError{Type: ErrTypeTimeout}) {
		t.Error("Expected wrapped provider error to match by type")
	}
	if errors.Is(err, &ProviderError{Type: ErrTypeAuthentication}) {
		t.Error("Expected type mismatch not to match")
	}
}

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		validation bool
		config     bool
		remote     bool
		retryable  bool
	}{
		{
			name:       "empty input",
			err:        NewEmptyInputError("   "),
			validation: true,
		},
		{
			name:   "missing credential",
			err:    NewCredentialMissingError("huggingface"),
			config: true,
		},
		{
			name:      "network failure",
			err:       NewProviderError(ErrTypeNetwork, "timeout", "huggingface"),
			remote:    true,
			retryable: true,
		},
		{
			name:   "authentication failure",
			err:    NewProviderError(ErrTypeAuthentication, "invalid token", "huggingface"),
			remote: true,
		},
		{
			name:   "plain error",
			err:    errors.New("timeout"),
			remote: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidationError(tt.err); got != tt.validation {
				t.Errorf("IsValidationError() = %v, want %v", got, tt.validation)
			}
			if got := IsConfigurationError(tt.err); got != tt.config {
				t.Errorf("IsConfigurationError() = %v, want %v", got, tt.config)
			}
			if got := IsRemoteError(tt.err); got != tt.remote {
				t.Errorf("IsRemoteError() = %v, want %v", got, tt.remote)
			}
			if got := IsRetryableError(tt.err); got != tt.retryable {
				t.Errorf("IsRetryableError() = %v, want %v", got, tt.retryable)
			}
		})
	}
}

func TestLocalErrorMessages(t *testing.T) {
	if NewEmptyInputError("").Error() != "Please enter some text to analyze" {
		t.Errorf("Unexpected empty input message: %s", NewEmptyInputError("").Error())
	}
	if NewCredentialMissingError("huggingface").Error() != "API key not configured. Please check your environment variables." {
		t.Errorf("Unexpected credential message: %s", NewCredentialMissingError("huggingface").Error())
	}
	if IsRemoteError(nil) {
		t.Error("nil is not a remote error")
	}
}
