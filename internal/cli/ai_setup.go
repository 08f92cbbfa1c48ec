package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/yildizm/sentimoji/internal/ai"
	"github.com/yildizm/sentimoji/internal/ai/providers/huggingface"
	"github.com/yildizm/sentimoji/internal/config"
	"github.com/yildizm/sentimoji/internal/logger"
	"github.com/yildizm/sentimoji/internal/sentiment"
)

// createClassifier creates the classifier named by the configuration.
// A missing credential is not an error here; it is reported per analysis.
func createClassifier(aiConfig *config.AIConfig) (ai.Classifier, error) {
	switch strings.ToLower(aiConfig.Provider) {
	case "", huggingface.ProviderName:
		return huggingface.New(huggingface.FromProviderConfig(aiConfig.ProviderConfig()))
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", aiConfig.Provider)
	}
}

// newLogger returns the process logger; debug and info lines need --verbose
func newLogger() *logger.Logger {
	return logger.NewWithCallback("sentimoji", isVerbose).WithWriter(os.Stderr)
}

// newClient wires the configured classifier into a sentiment client
func newClient(log *logger.Logger) (*sentiment.Client, error) {
	cfg := GetGlobalConfig()

	classifier, err := createClassifier(&cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI provider: %w", err)
	}

	if !cfg.AI.HasAPIKey() {
		log.Warn("no API key configured", logger.F("env", config.EnvToken))
	}

	return sentiment.NewClient(classifier, log), nil
}
