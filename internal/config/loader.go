package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.sentimoji.yaml",               // Project-specific config (highest priority)
	"~/.config/sentimoji/config.yaml", // User config
	"/etc/sentimoji/config.yaml",      // System config (lowest priority)
}

// EnvFiles are dotenv files loaded before environment overrides are applied.
// Variables already present in the process environment win.
var EnvFiles = []string{".env"}

// Credential environment variables, highest priority first
const (
	EnvToken         = "SENTIMOJI_HF_TOKEN"
	EnvTokenFallback = "HF_TOKEN"
)

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
	envFiles    []string
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
		envFiles:    EnvFiles,
	}
}

// NewLoaderWithPaths creates a loader that searches only the given paths
func NewLoaderWithPaths(configPaths, envFiles []string) *Loader {
	return &Loader{
		configPaths: configPaths,
		envFiles:    envFiles,
	}
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables (including .env files)
// 3. ./.sentimoji.yaml
// 4. ~/.config/sentimoji/config.yaml
// 5. /etc/sentimoji/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// Lowest priority first so later files win
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			expandedPath := expandPath(l.configPaths[i])
			if fileExists(expandedPath) {
				if err := l.loadFromFile(config, expandedPath); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", expandedPath, err)
				}
			}
		}
	}

	if err := l.loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile loads configuration from a YAML file and merges it with existing config
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() or comes from ConfigPaths
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var fileConfig Config
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	mergeConfigs(config, &fileConfig)

	return nil
}

// loadEnvFiles loads the dotenv files that exist. godotenv never overrides
// variables that are already set.
func (l *Loader) loadEnvFiles() error {
	var existing []string
	for _, f := range l.envFiles {
		if fileExists(f) {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		// AI Config
		"SENTIMOJI_AI_PROVIDER": func(v string) error { config.AI.Provider = v; return nil },
		"SENTIMOJI_AI_MODEL":    func(v string) error { config.AI.Model = v; return nil },
		"SENTIMOJI_AI_ROUTE":    func(v string) error { config.AI.Route = v; return nil },
		"SENTIMOJI_AI_ENDPOINT": func(v string) error { config.AI.Endpoint = v; return nil },
		"SENTIMOJI_AI_TIMEOUT":  func(v string) error { return parseDuration(v, &config.AI.Timeout) },

		// Server Config
		"SENTIMOJI_SERVER_ADDR":         func(v string) error { config.Server.Addr = v; return nil },
		"SENTIMOJI_SERVER_SSL_REDIRECT": func(v string) error { return parseBool(v, &config.Server.SSLRedirect) },
		"SENTIMOJI_SERVER_SSL_HOST":     func(v string) error { config.Server.SSLHost = v; return nil },
		"SENTIMOJI_SERVER_DEBUG":        func(v string) error { return parseBool(v, &config.Server.Debug) },

		// Output Config
		"SENTIMOJI_OUTPUT_DEFAULT_FORMAT": func(v string) error { config.Output.DefaultFormat = v; return nil },
		"SENTIMOJI_OUTPUT_COLOR_MODE":     func(v string) error { config.Output.ColorMode = v; return nil },
		"SENTIMOJI_OUTPUT_VERBOSE":        func(v string) error { return parseBool(v, &config.Output.Verbose) },
		"SENTIMOJI_OUTPUT_NO_EMOJI":       func(v string) error { return parseBool(v, &config.Output.NoEmoji) },
		"SENTIMOJI_OUTPUT_SHOW_ALL":       func(v string) error { return parseBool(v, &config.Output.ShowAll) },

		// UI Config
		"SENTIMOJI_UI_THEME": func(v string) error { config.UI.Theme = v; return nil },
	}

	for envVar, setter := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	if origins := os.Getenv("SENTIMOJI_SERVER_ALLOWED_ORIGINS"); origins != "" {
		config.Server.AllowedOrigins = splitList(origins)
	}

	// Credential: the sentimoji variable beats the generic one
	if token := os.Getenv(EnvToken); token != "" {
		config.AI.APIKey = token
	} else if token := os.Getenv(EnvTokenFallback); token != "" {
		config.AI.APIKey = token
	}

	return nil
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expandedPath := expandPath(path)
		if fileExists(expandedPath) {
			return expandedPath, true
		}
	}
	return "", false
}

// Helper functions

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if strings.HasPrefix(absPath, "/etc/passwd") ||
		strings.HasPrefix(absPath, "/etc/shadow") ||
		strings.HasPrefix(absPath, "/proc/") ||
		strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// mergeConfigs merges source config into destination config.
// Only non-zero values from source overwrite destination.
func mergeConfigs(dst, src *Config) {
	if src.Version != "" {
		dst.Version = src.Version
	}

	mergeAIConfig(&dst.AI, &src.AI)
	mergeServerConfig(&dst.Server, &src.Server)
	mergeOutputConfig(&dst.Output, &src.Output)
	if src.UI.Theme != "" {
		dst.UI.Theme = src.UI.Theme
	}
}

// mergeAIConfig merges AI configuration
func mergeAIConfig(dst, src *AIConfig) {
	if src.Provider != "" {
		dst.Provider = src.Provider
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.Route != "" {
		dst.Route = src.Route
	}
	if src.Endpoint != "" {
		dst.Endpoint = src.Endpoint
	}
	if src.APIKey != "" {
		dst.APIKey = src.APIKey
	}
	if src.Timeout != 0 {
		dst.Timeout = src.Timeout
	}
}

// mergeServerConfig merges server configuration
func mergeServerConfig(dst, src *ServerConfig) {
	if src.Addr != "" {
		dst.Addr = src.Addr
	}
	if len(src.AllowedOrigins) > 0 {
		dst.AllowedOrigins = src.AllowedOrigins
	}
	if src.SSLHost != "" {
		dst.SSLHost = src.SSLHost
	}
	mergeIfSet(&dst.SSLRedirect, src.SSLRedirect)
	mergeIfSet(&dst.Debug, src.Debug)
}

// mergeOutputConfig merges output configuration
func mergeOutputConfig(dst, src *OutputConfig) {
	if src.DefaultFormat != "" {
		dst.DefaultFormat = src.DefaultFormat
	}
	if src.ColorMode != "" {
		dst.ColorMode = src.ColorMode
	}
	mergeIfSet(&dst.Verbose, src.Verbose)
	mergeIfSet(&dst.NoEmoji, src.NoEmoji)
	mergeIfSet(&dst.ShowAll, src.ShowAll)
}

// mergeIfSet only turns booleans on; a zero value in a file cannot be told
// apart from an absent key.
func mergeIfSet(dst *bool, src bool) {
	if src {
		*dst = true
	}
}

// Type conversion helpers

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
