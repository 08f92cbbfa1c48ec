package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/sentimoji/internal/sentiment"
)

// analysisDoneMsg carries the result of one classification back to Update
type analysisDoneMsg struct {
	outcome *sentiment.Outcome
	err     error
}

// tickMsg drives the loading spinner
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// CreateAnalysisCommand runs the classification for a request already
// started with Session.Begin. The session is completed in Update.
func CreateAnalysisCommand(ctx context.Context, session *sentiment.Session, text string) tea.Cmd {
	return func() tea.Msg {
		outcome, err := session.Analyze(ctx, text)
		return analysisDoneMsg{outcome: outcome, err: err}
	}
}
