package huggingface

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/yildizm/sentimoji/internal/ai"
)

// ClassificationRequest is the text-classification request body
type ClassificationRequest struct {
	Inputs string `json:"inputs"`
}

// ClassificationLabel is one entry of the response
type ClassificationLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ErrorResponse is the body sent with non-2xx responses
type ErrorResponse struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time,omitempty"`
}

// decodeClassifications accepts every shape the endpoint is known to return:
// a nested array (one list per input), a flat array, or a single object.
func decodeClassifications(body []byte) (ai.Classifications, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, fmt.Errorf("empty response body")
	}

	var labels []ClassificationLabel

	switch body[0] {
	case '[':
		var nested [][]ClassificationLabel
		if err := json.Unmarshal(body, &nested); err == nil {
			if len(nested) > 0 {
				labels = nested[0]
			}
			break
		}
		if err := json.Unmarshal(body, &labels); err != nil {
			return nil, fmt.Errorf("decode label list: %w", err)
		}
	case '{':
		var single struct {
			ClassificationLabel
			Error string `json:"error"`
		}
		if err := json.Unmarshal(body, &single); err != nil {
			return nil, fmt.Errorf("decode label: %w", err)
		}
		if single.Error != "" {
			return nil, fmt.Errorf("%s", single.Error)
		}
		labels = []ClassificationLabel{single.ClassificationLabel}
	default:
		return nil, fmt.Errorf("unexpected payload starting with %q", body[0])
	}

	result := make(ai.Classifications, 0, len(labels))
	for _, l := range labels {
		if l.Label == "" {
			continue
		}
		result = append(result, ai.Classification{Label: l.Label, Score: l.Score})
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("no labels in response")
	}

	return result.Rank(), nil
}
