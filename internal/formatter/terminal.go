package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/go-termfmt"
	"github.com/yildizm/sentimoji/internal/emoji"
	"github.com/yildizm/sentimoji/internal/sentiment"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts    *termfmt.TerminalOptions
	showAll bool
}

// NewTerminal creates a new terminal formatter
func NewTerminal(o Options) Formatter {
	return &terminalFormatter{opts: termOptions(o.Color), showAll: o.ShowAll}
}

func termOptions(color bool) *termfmt.TerminalOptions {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = !emoji.IsEmojiDisabled()
	return opts
}

func (f *terminalFormatter) Format(outcome *sentiment.Outcome) ([]byte, error) {
	if outcome == nil {
		return nil, fmt.Errorf("nothing to format")
	}

	var b strings.Builder

	writeHeader(&b, "Sentiment Analysis")
	f.writeResult(&b, outcome)

	if f.showAll && len(outcome.Candidates) > 1 {
		f.writeCandidates(&b, outcome)
	}

	return []byte(b.String()), nil
}

// writeResult writes the top label as a tree
func (f *terminalFormatter) writeResult(b *strings.Builder, outcome *sentiment.Outcome) {
	fmt.Fprintf(b, "%s %s\n", outcome.Tier.Emoji(), outcome.Tier.Label())

	items := []termfmt.TreeItem{
		{Label: "Label", Value: outcome.Top.Label},
		{Label: "Confidence", Value: termfmt.CreateConfidenceBar(outcome.Top.Score, f.opts) + " " + formatPercent(outcome.Top.Score)},
	}
	if outcome.Model != "" {
		items = append(items, termfmt.TreeItem{Label: "Model", Value: outcome.Model})
	}
	items = append(items, termfmt.TreeItem{Label: "Duration", Value: outcome.Duration.Round(time.Millisecond).String(), Last: true})

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

// writeCandidates writes every label the model returned, highest score first
func (f *terminalFormatter) writeCandidates(b *strings.Builder, outcome *sentiment.Outcome) {
	b.WriteString(emoji.GetEmoji("brain") + " Candidates\n")

	ranked := outcome.Candidates.Rank()
	items := make([]termfmt.TreeItem, 0, len(ranked))
	for i, c := range ranked {
		tier := sentiment.MapLabel(c.Label)
		items = append(items, termfmt.TreeItem{
			Label: fmt.Sprintf("%s %s", tier.Emoji(), c.Label),
			Value: termfmt.CreateConfidenceBar(c.Score, f.opts) + " " + formatPercent(c.Score),
			Last:  i == len(ranked)-1,
		})
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}
