package sentiment

import (
	"strings"

	"github.com/yildizm/sentimoji/internal/ai"
)

// ValidateInput rejects text that is empty once trimmed. Valid text is
// returned unchanged.
func ValidateInput(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ai.NewEmptyInputError(text)
	}
	return text, nil
}
