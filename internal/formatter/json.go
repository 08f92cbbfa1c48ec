package formatter

import (
	"encoding/json"

	"github.com/yildizm/sentimoji/internal/sentiment"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(outcome *sentiment.Outcome) ([]byte, error) {
	return json.MarshalIndent(NewAnalysisOutput(outcome), "", "  ")
}

// AnalysisOutput is the JSON shape of an outcome, shared by the CLI and the web API
type AnalysisOutput struct {
	ID         string             `json:"id"`
	Label      string             `json:"label"`
	Score      float64            `json:"score"`
	Emoji      string             `json:"emoji"`
	Tier       string             `json:"tier"`
	Stars      int                `json:"stars"`
	Model      string             `json:"model,omitempty"`
	DurationMS int64              `json:"duration_ms"`
	Candidates []*CandidateOutput `json:"candidates"`
}

// CandidateOutput is one ranked label returned by the model
type CandidateOutput struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
	Emoji string  `json:"emoji"`
	Stars int     `json:"stars"`
}

// TierOutput is one row of the rating scale
type TierOutput struct {
	Stars int    `json:"stars"`
	Label string `json:"label"`
	Emoji string `json:"emoji"`
}

// NewAnalysisOutput converts an outcome. Emoji are always the real glyphs:
// JSON consumers do their own rendering.
func NewAnalysisOutput(outcome *sentiment.Outcome) *AnalysisOutput {
	if outcome == nil {
		return nil
	}

	out := &AnalysisOutput{
		Label:      outcome.Top.Label,
		Score:      outcome.Top.Score,
		Emoji:      outcome.Tier.Glyph(),
		Tier:       outcome.Tier.Label(),
		Stars:      outcome.Tier.Stars(),
		Model:      outcome.Model,
		DurationMS: outcome.Duration.Milliseconds(),
		Candidates: createCandidateOutputs(outcome),
	}
	if outcome.Request != nil {
		out.ID = outcome.Request.ID
	}
	return out
}

// LegendOutput returns the rating scale from worst to best
func LegendOutput() []*TierOutput {
	tiers := sentiment.Legend()
	outputs := make([]*TierOutput, 0, len(tiers))
	for _, t := range tiers {
		outputs = append(outputs, &TierOutput{
			Stars: t.Stars(),
			Label: t.Label(),
			Emoji: t.Glyph(),
		})
	}
	return outputs
}

func createCandidateOutputs(outcome *sentiment.Outcome) []*CandidateOutput {
	outputs := make([]*CandidateOutput, 0, len(outcome.Candidates))
	for _, c := range outcome.Candidates {
		tier := sentiment.MapLabel(c.Label)
		outputs = append(outputs, &CandidateOutput{
			Label: c.Label,
			Score: c.Score,
			Emoji: tier.Glyph(),
			Stars: tier.Stars(),
		})
	}
	return outputs
}
