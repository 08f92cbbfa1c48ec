package formatter

import (
	"fmt"

	"github.com/yildizm/sentimoji/internal/sentiment"
)

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(outcome *sentiment.Outcome) ([]byte, error)
}

// Options controls the output of New
type Options struct {
	Color   bool
	ShowAll bool // list every candidate label, not just the top one
}

// New returns the formatter for format ("text" or "json")
func New(format string, opts Options) (Formatter, error) {
	switch format {
	case "", "text":
		return NewTerminal(opts), nil
	case "json":
		return NewJSON(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (must be one of: json, text)", format)
	}
}
