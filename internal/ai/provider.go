package ai

import (
	"context"
)

// Classifier is the gateway to a remote text-classification model
type Classifier interface {
	// Name returns the provider name (e.g., "huggingface")
	Name() string

	// Model returns the model identifier requests are sent to
	Model() string

	// Classify sends one request and returns the ranked labels.
	// Implementations make exactly one outbound call and never retry.
	Classify(ctx context.Context, req *AnalysisRequest) (Classifications, error)

	// ValidateConfig reports configuration problems without any network I/O
	ValidateConfig() error

	// Close cleans up provider resources
	Close() error
}
