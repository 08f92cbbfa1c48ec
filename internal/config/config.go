package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/yildizm/sentimoji/internal/ai"
)

// Config holds the complete application configuration
type Config struct {
	Version string       `yaml:"version" json:"version"`
	AI      AIConfig     `yaml:"ai" json:"ai"`
	Server  ServerConfig `yaml:"server" json:"server"`
	Output  OutputConfig `yaml:"output" json:"output"`
	UI      UIConfig     `yaml:"ui" json:"ui"`
}

// AIConfig configures the inference provider
type AIConfig struct {
	Provider string        `yaml:"provider" json:"provider"` // huggingface
	Model    string        `yaml:"model" json:"model"`       // model identifier on the provider
	Route    string        `yaml:"route" json:"route"`       // provider routing hint
	Endpoint string        `yaml:"endpoint" json:"endpoint"` // API base URL
	APIKey   string        `yaml:"api_key" json:"api_key"`   // bearer token, usually from the environment
	Timeout  time.Duration `yaml:"timeout" json:"timeout"`   // 0 keeps the transport default
}

// ServerConfig configures the web form
type ServerConfig struct {
	Addr           string   `yaml:"addr" json:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins"`
	SSLRedirect    bool     `yaml:"ssl_redirect" json:"ssl_redirect"`
	SSLHost        string   `yaml:"ssl_host" json:"ssl_host"`
	Debug          bool     `yaml:"debug" json:"debug"`
}

// OutputConfig configures CLI output
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`
	NoEmoji       bool   `yaml:"no_emoji" json:"no_emoji"`
	ShowAll       bool   `yaml:"show_all" json:"show_all"` // list every candidate label
}

// UIConfig configures the terminal UI
type UIConfig struct {
	Theme string `yaml:"theme" json:"theme"` // default|high-contrast|minimal
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		AI: AIConfig{
			Provider: "huggingface",
			Model:    "nlptown/bert-base-multilingual-uncased-sentiment",
			Route:    "hf-inference",
			Endpoint: "https://router.huggingface.co",
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
		},
		UI: UIConfig{
			Theme: "default",
		},
	}
}

// ProviderConfig builds the provider configuration. The credential is
// passed along explicitly; nothing downstream reads the environment.
func (c *AIConfig) ProviderConfig() *ai.ProviderConfig {
	return &ai.ProviderConfig{
		Name:    c.Provider,
		APIKey:  c.APIKey,
		BaseURL: c.Endpoint,
		Model:   c.Model,
		Route:   c.Route,
		Timeout: c.Timeout,
	}
}

// HasAPIKey reports whether a credential is configured
func (c *AIConfig) HasAPIKey() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// Redacted returns a copy safe to print
func (c *Config) Redacted() *Config {
	out := *c
	out.Server.AllowedOrigins = append([]string(nil), c.Server.AllowedOrigins...)
	if out.AI.APIKey != "" {
		out.AI.APIKey = "********"
	}
	return &out
}

// Validate validates the configuration. A missing API key is not an error:
// it surfaces on each analysis attempt instead.
func (c *Config) Validate() error {
	if err := c.validateAIConfig(); err != nil {
		return err
	}
	if err := c.validateServerConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	return c.validateUIConfig()
}

func (c *Config) validateAIConfig() error {
	if c.AI.Provider != "" && c.AI.Provider != "huggingface" {
		return fmt.Errorf("invalid AI provider: %s (must be one of: huggingface)", c.AI.Provider)
	}
	if c.AI.Endpoint != "" {
		u, err := url.Parse(c.AI.Endpoint)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid AI endpoint: %s", c.AI.Endpoint)
		}
	}
	if c.AI.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}
	return nil
}

func (c *Config) validateServerConfig() error {
	if c.Server.SSLRedirect && c.Server.SSLHost == "" {
		return fmt.Errorf("ssl_host is required when ssl_redirect is enabled")
	}
	return nil
}

func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"json": true,
			"text": true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: json, text)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	return nil
}

func (c *Config) validateUIConfig() error {
	switch c.UI.Theme {
	case "", "default", "high-contrast", "minimal":
		return nil
	default:
		return fmt.Errorf("invalid theme: %s (must be one of: default, high-contrast, minimal)", c.UI.Theme)
	}
}

// SampleConfig returns a documented configuration file
func SampleConfig() string {
	return `# sentimoji configuration
version: "1.0"

ai:
  provider: huggingface
  model: nlptown/bert-base-multilingual-uncased-sentiment
  route: hf-inference
  endpoint: https://router.huggingface.co
  # Prefer SENTIMOJI_HF_TOKEN (or HF_TOKEN) in the environment or .env
  api_key: ""
  # 0 keeps the HTTP transport default
  timeout: 0s

server:
  addr: ":8080"
  allowed_origins:
    - http://localhost:3000
  ssl_redirect: false
  ssl_host: ""
  debug: false

output:
  default_format: text   # text|json
  color_mode: auto       # auto|always|never
  verbose: false
  no_emoji: false
  show_all: false

ui:
  theme: default         # default|high-contrast|minimal
`
}

// MinimalSampleConfig returns a configuration with only the essential settings
func MinimalSampleConfig() string {
	return `version: "1.0"
ai:
  provider: huggingface
server:
  addr: ":8080"
output:
  default_format: text
`
}
