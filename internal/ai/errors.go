package ai

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the type of classification error
type ErrorType string

const (
	// ErrTypeProvider indicates the provider rejected the request
	ErrTypeProvider ErrorType = "provider"

	// ErrTypeConfiguration indicates configuration errors
	ErrTypeConfiguration ErrorType = "configuration"

	// ErrTypeAuthentication indicates the credential was rejected
	ErrTypeAuthentication ErrorType = "authentication"

	// ErrTypeRateLimit indicates rate limiting errors
	ErrTypeRateLimit ErrorType = "rate_limit"

	// ErrTypeNetwork indicates network-related errors
	ErrTypeNetwork ErrorType = "network"

	// ErrTypeTimeout indicates timeout errors
	ErrTypeTimeout ErrorType = "timeout"

	// ErrTypeModelUnavailable indicates the model is still loading or offline
	ErrTypeModelUnavailable ErrorType = "model_unavailable"

	// ErrTypeMalformed indicates a response that could not be decoded
	ErrTypeMalformed ErrorType = "malformed"

	// ErrTypeInternal indicates internal system errors
	ErrTypeInternal ErrorType = "internal"
)

// Messages shown to the user for the two local failure kinds.
const (
	EmptyInputMessage        = "Please enter some text to analyze"
	CredentialMissingMessage = "API key not configured. Please check your environment variables."
)

// ProviderError is returned for every failure of the remote inference call.
type ProviderError struct {
	// Type categorizes the error
	Type ErrorType `json:"type"`

	// Message provides human-readable error description
	Message string `json:"message"`

	// Provider indicates which provider caused the error
	Provider string `json:"provider,omitempty"`

	// StatusCode for HTTP-related errors
	StatusCode int `json:"status_code,omitempty"`

	// Underlying error that caused this error
	Cause error `json:"-"`

	// Retryable reports whether a manual retry is likely to help
	Retryable bool `json:"retryable"`

	// RetryAfter is the provider's estimate in seconds, if it sent one
	RetryAfter int `json:"retry_after,omitempty"`
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	var parts []string

	if e.Provider != "" {
		parts = append(parts, fmt.Sprintf("provider=%s", e.Provider))
	}

	parts = append(parts, fmt.Sprintf("type=%s", e.Type))

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	parts = append(parts, e.Message)

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error type
func (e *ProviderError) Is(target error) bool {
	if pe, ok := target.(*ProviderError); ok {
		return e.Type == pe.Type
	}
	return false
}

// IsRetryable returns whether the error is retryable
func (e *ProviderError) IsRetryable() bool {
	return e.Retryable
}

// Detail returns the message a user should see, without the type/provider prefix.
func (e *ProviderError) Detail() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Provider string `json:"provider"`
	Field    string `json:"field"`
	Message  string `json:"message"`
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	return e.Message
}

// Error constructors for common error types

// NewProviderError creates a new provider error
func NewProviderError(errType ErrorType, message, provider string) *ProviderError {
	return &ProviderError{
		Type:      errType,
		Message:   message,
		Provider:  provider,
		Retryable: isRetryableError(errType),
	}
}

// NewProviderErrorWithCause creates a provider error with an underlying cause
func NewProviderErrorWithCause(errType ErrorType, message, provider string, cause error) *ProviderError {
	return &ProviderError{
		Type:      errType,
		Message:   message,
		Provider:  provider,
		Cause:     cause,
		Retryable: isRetryableError(errType),
	}
}

// NewValidationError creates a validation error
func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// NewEmptyInputError reports text that is empty once trimmed
func NewEmptyInputError(value string) *ValidationError {
	return NewValidationError("text", value, EmptyInputMessage)
}

// NewConfigurationError creates a configuration error
func NewConfigurationError(provider, field, message string) *ConfigurationError {
	return &ConfigurationError{
		Provider: provider,
		Field:    field,
		Message:  message,
	}
}

// NewCredentialMissingError reports an unset API key
func NewCredentialMissingError(provider string) *ConfigurationError {
	return NewConfigurationError(provider, "api_key", CredentialMissingMessage)
}

// isRetryableError determines if an error type is retryable
func isRetryableError(errType ErrorType) bool {
	switch errType {
	case ErrTypeRateLimit, ErrTypeTimeout, ErrTypeNetwork, ErrTypeModelUnavailable:
		return true
	default:
		return false
	}
}

// IsRetryableError checks if an error is retryable
func IsRetryableError(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.IsRetryable()
	}
	return false
}

// IsConfigurationError checks if an error is a configuration error
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	if errors.As(err, &ce) {
		return true
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Type == ErrTypeConfiguration
	}
	return false
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsRemoteError reports whether err came from the inference call itself
// rather than from local validation or configuration.
func IsRemoteError(err error) bool {
	return err != nil && !IsValidationError(err) && !IsConfigurationError(err)
}
