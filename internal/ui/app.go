package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/sentimoji/internal/emoji"
	"github.com/yildizm/sentimoji/internal/sentiment"
)

var spinnerChars = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Model is the single-page analyzer form as a bubbletea model.
// All phase state lives in the session; the model only owns the text buffer.
type Model struct {
	ctx     context.Context
	session *sentiment.Session
	styles  *Styles

	input    []rune
	width    int
	height   int
	quitting bool

	spinnerFrame int
}

// NewModel creates a form bound to session
func NewModel(ctx context.Context, session *sentiment.Session) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Model{
		ctx:     ctx,
		session: session,
		styles:  GetStyles(),
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tickMsg:
		if !m.session.State().Loading() {
			return m, nil
		}
		m.spinnerFrame = (m.spinnerFrame + 1) % len(spinnerChars)
		return m, tick()

	case analysisDoneMsg:
		m.session.Complete(msg.outcome, msg.err)
	}

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		m.session.Close()
		return m, tea.Quit
	case tea.KeyEnter:
		return m, m.submit()
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeyCtrlU:
		m.input = nil
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
	}
	return m, nil
}

// submit starts an analysis. Enter while loading is ignored, and local
// failures are already recorded in the session by Begin.
func (m *Model) submit() tea.Cmd {
	text := string(m.input)
	if err := m.session.Begin(text); err != nil {
		return nil
	}
	m.spinnerFrame = 0
	return tea.Batch(CreateAnalysisCommand(m.ctx, m.session, text), tick())
}

// Input returns the current text buffer
func (m *Model) Input() string {
	return string(m.input)
}

// View renders the form
func (m *Model) View() string {
	if m.quitting {
		return "Bye " + emoji.GetEmoji("wave") + "\n"
	}

	state := m.session.State()
	s := m.styles

	sections := []string{
		s.Title.Render("Sentiment Analyzer" + emoji.GetEmoji("wave")),
		"",
		s.Input.Render(m.Input() + "█"),
		m.renderButton(state),
	}

	switch state.Phase {
	case sentiment.PhaseSuccess:
		sections = append(sections, "", m.renderBubble(state.Outcome))
	case sentiment.PhaseError:
		sections = append(sections, "", s.Error.Render(state.Error))
	}

	sections = append(sections, "", m.renderLegend(), "",
		s.Muted.Render("enter analyze • ctrl+u clear • esc quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderButton(state sentiment.State) string {
	if state.Loading() {
		spinner := m.styles.Spinner.Render(spinnerChars[m.spinnerFrame])
		return spinner + " " + m.styles.Busy.Render("Analyzing...")
	}
	return m.styles.Button.Render("Analyze")
}

func (m *Model) renderBubble(outcome *sentiment.Outcome) string {
	if outcome == nil {
		return ""
	}
	tierStyle := lipgloss.NewStyle().Foreground(m.styles.Theme.TierColor(outcome.Tier)).Bold(true)
	body := fmt.Sprintf("%s  %s\n%s",
		outcome.Tier.Emoji(),
		tierStyle.Render(outcome.Tier.Label()),
		m.styles.Muted.Render(fmt.Sprintf("%s · %.0f%%", outcome.Top.Label, outcome.Top.Score*100)))
	return m.styles.Bubble.Render(body)
}

func (m *Model) renderLegend() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render(emoji.GetEmoji("scale")+" Sentiment Rating Scale:") + "\n")

	cells := make([]string, 0, 5)
	for _, t := range sentiment.Legend() {
		style := lipgloss.NewStyle().Foreground(m.styles.Theme.TierColor(t))
		cells = append(cells, fmt.Sprintf("%s %s", t.Emoji(), style.Render(t.Label())))
	}
	b.WriteString(strings.Join(cells, "   "))

	return m.styles.Legend.Render(b.String())
}

// Run runs the TUI until the user quits
func Run(ctx context.Context, session *sentiment.Session) error {
	model := NewModel(ctx, session)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
