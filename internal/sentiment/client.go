package sentiment

import (
	"context"
	"errors"
	"time"

	"github.com/yildizm/sentimoji/internal/ai"
	"github.com/yildizm/sentimoji/internal/logger"
)

// Outcome is the result of one successful analysis
type Outcome struct {
	Request    *ai.AnalysisRequest
	Candidates ai.Classifications
	Top        ai.Classification
	Tier       Tier
	Model      string
	Duration   time.Duration
}

// Recorder observes finished analyses. failure is empty on success and
// otherwise names the failure kind.
type Recorder interface {
	Observe(stars int, failure string, elapsed time.Duration)
}

// Client ties validation, the classifier and tier mapping together
type Client struct {
	classifier ai.Classifier
	log        *logger.Logger
	recorder   Recorder
}

// NewClient creates a client around classifier
func NewClient(classifier ai.Classifier, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		classifier: classifier,
		log:        log.WithComponent("sentiment"),
	}
}

// WithRecorder attaches r to the client and returns the client
func (c *Client) WithRecorder(r Recorder) *Client {
	c.recorder = r
	return c
}

// Check runs every local precondition of Analyze: input validation first,
// then the classifier's configuration. It never touches the network.
func (c *Client) Check(text string) error {
	if _, err := ValidateInput(text); err != nil {
		return err
	}
	return c.classifier.ValidateConfig()
}

// Analyze classifies text and maps the top label to a tier
func (c *Client) Analyze(ctx context.Context, text string) (*Outcome, error) {
	if err := c.Check(text); err != nil {
		c.observe(0, err, 0)
		return nil, err
	}

	req := ai.NewAnalysisRequest(text)
	start := time.Now()

	c.log.Debug("classifying", logger.RequestID(req.ID), logger.F("model", c.classifier.Model()), logger.F("chars", len(text)))

	candidates, err := c.classifier.Classify(ctx, req)
	elapsed := time.Since(start)
	if err != nil {
		c.log.Warn("classification failed", logger.RequestID(req.ID), logger.Duration(elapsed), logger.Error(err))
		c.observe(0, err, elapsed)
		return nil, err
	}

	top, ok := candidates.Top()
	if !ok {
		err := ai.NewProviderError(ai.ErrTypeMalformed, "no labels in response", c.classifier.Name())
		c.log.Warn("classification failed", logger.RequestID(req.ID), logger.Error(err))
		c.observe(0, err, elapsed)
		return nil, err
	}

	outcome := &Outcome{
		Request:    req,
		Candidates: candidates,
		Top:        top,
		Tier:       MapLabel(top.Label),
		Model:      c.classifier.Model(),
		Duration:   elapsed,
	}

	c.log.Info("classified",
		logger.RequestID(req.ID),
		logger.F("label", top.Label),
		logger.F("score", top.Score),
		logger.F("tier", outcome.Tier.Stars()),
		logger.Duration(elapsed))

	c.observe(outcome.Tier.Stars(), nil, elapsed)
	return outcome, nil
}

func (c *Client) observe(stars int, err error, elapsed time.Duration) {
	if c.recorder == nil {
		return
	}
	c.recorder.Observe(stars, FailureKind(err), elapsed)
}

// FailureKind names the category of err for counting; empty for nil.
func FailureKind(err error) string {
	var pe *ai.ProviderError
	switch {
	case err == nil:
		return ""
	case ai.IsValidationError(err):
		return "validation"
	case ai.IsConfigurationError(err):
		return "configuration"
	case errors.As(err, &pe):
		return string(pe.Type)
	default:
		return string(ai.ErrTypeInternal)
	}
}

// Provider returns the classifier name
func (c *Client) Provider() string {
	return c.classifier.Name()
}

// Model returns the model identifier
func (c *Client) Model() string {
	return c.classifier.Model()
}

// Ready reports the classifier's configuration problem, if any
func (c *Client) Ready() error {
	return c.classifier.ValidateConfig()
}

// Close releases the classifier
func (c *Client) Close() error {
	return c.classifier.Close()
}
