package huggingface

import (
	"fmt"
	"net/url"
	"time"

	"github.com/yildizm/sentimoji/internal/ai"
)

const (
	ProviderName   = "huggingface"
	DefaultBaseURL = "https://router.huggingface.co"
	DefaultModel   = "nlptown/bert-base-multilingual-uncased-sentiment"
	DefaultRoute   = "hf-inference"
)

// Config holds Hugging Face Inference configuration
type Config struct {
	// APIKey is the bearer token; an empty key fails every request locally
	APIKey string `json:"-"`

	// BaseURL is the inference router endpoint
	BaseURL string `json:"base_url"`

	// Model is the text-classification model identifier
	Model string `json:"model"`

	// Route is the inference provider routing hint
	Route string `json:"route"`

	// Timeout for HTTP requests; zero keeps the transport default
	Timeout time.Duration `json:"timeout"`
}

// DefaultConfig returns a configuration pointing at the public router
func DefaultConfig() *Config {
	return &Config{
		BaseURL: DefaultBaseURL,
		Model:   DefaultModel,
		Route:   DefaultRoute,
	}
}

// Validate checks everything except the credential, so a provider can be
// built before a key is available.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ai.NewConfigurationError(ProviderName, "base_url", "base URL is required")
	}

	if _, err := url.Parse(c.BaseURL); err != nil {
		return ai.NewConfigurationError(ProviderName, "base_url", fmt.Sprintf("invalid base URL: %v", err))
	}

	if c.Model == "" {
		return ai.NewConfigurationError(ProviderName, "model", "model is required")
	}

	if c.Route == "" {
		return ai.NewConfigurationError(ProviderName, "route", "route is required")
	}

	if c.Timeout < 0 {
		return ai.NewConfigurationError(ProviderName, "timeout", "timeout must be non-negative")
	}

	return nil
}

// ValidateCredential reports a missing API key
func (c *Config) ValidateCredential() error {
	if c.APIKey == "" {
		return ai.NewCredentialMissingError(ProviderName)
	}
	return nil
}

// ToProviderConfig converts to the generic provider config
func (c *Config) ToProviderConfig() *ai.ProviderConfig {
	return &ai.ProviderConfig{
		Name:    ProviderName,
		APIKey:  c.APIKey,
		BaseURL: c.BaseURL,
		Model:   c.Model,
		Route:   c.Route,
		Timeout: c.Timeout,
	}
}

// FromProviderConfig fills unset fields with defaults
func FromProviderConfig(pc *ai.ProviderConfig) *Config {
	config := DefaultConfig()
	if pc == nil {
		return config
	}

	config.APIKey = pc.APIKey

	if pc.BaseURL != "" {
		config.BaseURL = pc.BaseURL
	}
	if pc.Model != "" {
		config.Model = pc.Model
	}
	if pc.Route != "" {
		config.Route = pc.Route
	}
	if pc.Timeout > 0 {
		config.Timeout = pc.Timeout
	}

	return config
}
