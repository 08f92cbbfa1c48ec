package formatter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yildizm/go-termfmt"
	"github.com/yildizm/sentimoji/internal/emoji"
	"github.com/yildizm/sentimoji/internal/sentiment"
)

// formatPercent renders a 0-1 score as a percentage
func formatPercent(score float64) string {
	return fmt.Sprintf("%.1f%%", score*100)
}

// writeHeader writes a box-drawn title
func writeHeader(b *strings.Builder, header string) {
	headerLen := len(header)

	b.WriteString("╔" + strings.Repeat("═", headerLen+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", headerLen+2) + "╝\n\n")
}

// FormatLegend renders the five-tier rating scale
func FormatLegend(format string, color bool) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(LegendOutput(), "", "  ")
	case "", "text":
	default:
		return nil, fmt.Errorf("unsupported output format: %s (must be one of: json, text)", format)
	}

	opts := termOptions(color)
	tiers := sentiment.Legend()

	var b strings.Builder
	b.WriteString(emoji.GetEmoji("scale") + " Sentiment Rating Scale:\n")

	items := make([]termfmt.TreeItem, 0, len(tiers))
	for i, t := range tiers {
		items = append(items, termfmt.TreeItem{
			Label: fmt.Sprintf("%s %d", t.Emoji(), t.Stars()),
			Value: t.Label(),
			Last:  i == len(tiers)-1,
		})
	}
	b.WriteString(termfmt.TreeViewWithOptions(items, opts) + "\n")

	return []byte(b.String()), nil
}
