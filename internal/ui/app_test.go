package ui

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/sentimoji/internal/ai"
	"github.com/yildizm/sentimoji/internal/sentiment"
)

type stubClassifier struct {
	result     ai.Classifications
	err        error
	missingKey bool
	calls      int32
}

func (s *stubClassifier) Name() string  { return "stub" }
func (s *stubClassifier) Model() string { return "stub/model" }
func (s *stubClassifier) Close() error  { return nil }

func (s *stubClassifier) ValidateConfig() error {
	if s.missingKey {
		return ai.NewCredentialMissingError("stub")
	}
	return nil
}

func (s *stubClassifier) Classify(ctx context.Context, req *ai.AnalysisRequest) (ai.Classifications, error) {
	atomic.AddInt32(&s.calls, 1)
	return s.result, s.err
}

func newTestModel(c *stubClassifier) (*Model, *sentiment.Session) {
	session := sentiment.NewSession(sentiment.NewClient(c, nil))
	return NewModel(context.Background(), session), session
}

func typeText(m *Model, text string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func pressEnter(m *Model) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

// findDone runs a batched command and returns the analysis result message
func findDone(t *testing.T, cmd tea.Cmd) analysisDoneMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("Expected a command")
	}
	msg := cmd()
	if done, ok := msg.(analysisDoneMsg); ok {
		return done
	}
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		t.Fatalf("Unexpected message %T", msg)
	}
	for _, c := range batch {
		if c == nil {
			continue
		}
		if done, ok := c().(analysisDoneMsg); ok {
			return done
		}
	}
	t.Fatal("No analysis command in batch")
	return analysisDoneMsg{}
}

func TestTyping(t *testing.T) {
	m, _ := newTestModel(&stubClassifier{})

	typeText(m, "hello")
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	typeText(m, "wor")
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	if m.Input() != "hello wo" {
		t.Errorf("Expected 'hello wo', got %q", m.Input())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	if m.Input() != "" {
		t.Errorf("Expected cleared input, got %q", m.Input())
	}
}

func TestSubmitEmptyInput(t *testing.T) {
	stub := &stubClassifier{}
	m, session := newTestModel(stub)

	typeText(m, "   ")
	if cmd := pressEnter(m); cmd != nil {
		t.Error("Expected no command for empty input")
	}

	state := session.State()
	if state.Phase != sentiment.PhaseError || state.Error != ai.EmptyInputMessage {
		t.Errorf("Unexpected state %+v", state)
	}
	if stub.calls != 0 {
		t.Error("Classifier must not be called")
	}
	if !strings.Contains(m.View(), ai.EmptyInputMessage) {
		t.Error("Expected error message in view")
	}
}

func TestSubmitMissingCredential(t *testing.T) {
	stub := &stubClassifier{missingKey: true}
	m, session := newTestModel(stub)

	typeText(m, "good")
	if cmd := pressEnter(m); cmd != nil {
		t.Error("Expected no command without credential")
	}
	if session.State().Error != ai.CredentialMissingMessage {
		t.Errorf("Unexpected error %q", session.State().Error)
	}
}

func TestSubmitSuccess(t *testing.T) {
	stub := &stubClassifier{result: ai.Classifications{{Label: "4 stars", Score: 0.7}, {Label: "5 stars", Score: 0.2}}}
	m, session := newTestModel(stub)

	typeText(m, "pretty good")
	cmd := pressEnter(m)

	if !session.State().Loading() {
		t.Fatal("Expected loading after submit")
	}
	if !strings.Contains(m.View(), "Analyzing...") {
		t.Error("Expected busy button while loading")
	}
	if pressEnter(m) != nil {
		t.Error("Enter while loading must be ignored")
	}

	m.Update(findDone(t, cmd))

	state := session.State()
	if state.Phase != sentiment.PhaseSuccess {
		t.Fatalf("Expected success, got %s", state.Phase)
	}
	if state.Outcome.Tier != sentiment.TierGood {
		t.Errorf("Expected Good, got %s", state.Outcome.Tier)
	}
	if stub.calls != 1 {
		t.Errorf("Expected exactly one call, got %d", stub.calls)
	}

	view := m.View()
	if !strings.Contains(view, "Good") || !strings.Contains(view, "4 stars") {
		t.Errorf("Expected result in view:\n%s", view)
	}
}

func TestSubmitRemoteError(t *testing.T) {
	stub := &stubClassifier{err: ai.NewProviderError(ai.ErrTypeModelUnavailable, "Model is loading", "stub")}
	m, session := newTestModel(stub)

	typeText(m, "anything")
	m.Update(findDone(t, pressEnter(m)))

	state := session.State()
	if state.Phase != sentiment.PhaseError {
		t.Fatalf("Expected error, got %s", state.Phase)
	}
	if state.Error != "Please Refresh: Model is loading" {
		t.Errorf("Unexpected error %q", state.Error)
	}
}

func TestViewBeforeResult(t *testing.T) {
	m, _ := newTestModel(&stubClassifier{})
	view := m.View()

	if !strings.Contains(view, "Sentiment Analyzer") {
		t.Error("Missing title")
	}
	if !strings.Contains(view, "Sentiment Rating Scale:") {
		t.Error("Missing legend")
	}
	if strings.Contains(view, "Analyzing...") {
		t.Error("Button should be idle")
	}
}

func TestQuitClosesSession(t *testing.T) {
	m, session := newTestModel(&stubClassifier{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if err := session.Begin("text"); err != sentiment.ErrClosed {
		t.Errorf("Expected ErrClosed, got %v", err)
	}
}

func TestSetThemeByName(t *testing.T) {
	defer SetTheme(&DefaultTheme)

	for _, name := range GetAvailableThemes() {
		if !SetThemeByName(name) {
			t.Errorf("Theme %s should exist", name)
		}
		if GetTheme().Name != name {
			t.Errorf("Expected theme %s, got %s", name, GetTheme().Name)
		}
	}
	if SetThemeByName("neon") {
		t.Error("Unknown theme should be rejected")
	}
}

func TestTierColor(t *testing.T) {
	theme := DefaultTheme
	if theme.TierColor(sentiment.TierUnknown) != theme.Muted {
		t.Error("Unknown tier should be muted")
	}
	if theme.TierColor(sentiment.TierBest) != theme.Tiers[4] {
		t.Error("Best tier should use the last tier color")
	}
}

func TestStylesUseThemeColors(t *testing.T) {
	defer SetTheme(&DefaultTheme)

	for _, name := range GetAvailableThemes() {
		SetThemeByName(name)
		theme := GetTheme()
		s := GetStyles()

		if s.Header.GetForeground() != lipgloss.TerminalColor(theme.Secondary) {
			t.Errorf("%s: header should use the secondary color", name)
		}
		if s.Spinner.GetForeground() != lipgloss.TerminalColor(theme.Progress) {
			t.Errorf("%s: spinner should use the progress color", name)
		}
		if s.Legend.GetBorderTopForeground() != lipgloss.TerminalColor(theme.Border) {
			t.Errorf("%s: legend should use the border color", name)
		}
		if s.Busy.GetBackground() != lipgloss.TerminalColor(theme.Border) {
			t.Errorf("%s: busy button should use the border color", name)
		}
	}
}
