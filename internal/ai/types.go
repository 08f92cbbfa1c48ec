package ai

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// AnalysisRequest is one user-initiated classification
type AnalysisRequest struct {
	// ID correlates log lines and API responses for this request
	ID string `json:"id"`

	// Text is the input to classify
	Text string `json:"text"`

	// CreatedAt timestamp
	CreatedAt time.Time `json:"created_at"`
}

// NewAnalysisRequest creates a request with a fresh ID
func NewAnalysisRequest(text string) *AnalysisRequest {
	return &AnalysisRequest{
		ID:        uuid.NewString(),
		Text:      text,
		CreatedAt: time.Now(),
	}
}

// Classification is a single label returned by the model
type Classification struct {
	// Label is the provider-defined category, e.g. "4 stars"
	Label string `json:"label"`

	// Score is the model confidence in [0, 1]
	Score float64 `json:"score"`
}

// Classifications is the canonical, ranked result of a request.
// Index 0 is always the highest-scoring label.
type Classifications []Classification

// Rank sorts candidates by descending score, keeping provider order on ties.
func (c Classifications) Rank() Classifications {
	ranked := make(Classifications, len(c))
	copy(ranked, c)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// Top returns the highest-ranked candidate
func (c Classifications) Top() (Classification, bool) {
	if len(c) == 0 {
		return Classification{}, false
	}
	return c[0], true
}

// ProviderConfig contains configuration for a provider
type ProviderConfig struct {
	// Name is the provider identifier
	Name string `json:"name"`

	// APIKey for authentication
	APIKey string `json:"-"`

	// BaseURL for the API endpoint
	BaseURL string `json:"base_url,omitempty"`

	// Model is the model identifier on the provider
	Model string `json:"model,omitempty"`

	// Route is the provider routing hint, e.g. "hf-inference"
	Route string `json:"route,omitempty"`

	// Timeout for requests; zero leaves the transport default in place
	Timeout time.Duration `json:"timeout,omitempty"`
}
