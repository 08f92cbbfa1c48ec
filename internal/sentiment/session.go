package sentiment

import (
	"context"
	"errors"
	"sync"

	"github.com/yildizm/sentimoji/internal/ai"
)

// RetryPrefix is prepended to remote failures shown to the user
const RetryPrefix = "Please Refresh: "

var (
	// ErrInFlight is returned by Begin while a request is outstanding
	ErrInFlight = errors.New("analysis already in progress")

	// ErrClosed is returned once the session has been torn down
	ErrClosed = errors.New("session closed")
)

// Phase is the display phase of a session
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// State is a snapshot of what the user sees. Outcome is set only in
// PhaseSuccess and Error only in PhaseError.
type State struct {
	Phase   Phase
	Input   string
	Outcome *Outcome
	Error   string
}

// Loading reports whether the submit control should be disabled
func (s State) Loading() bool {
	return s.Phase == PhaseLoading
}

// Session is the idle/loading/success/error state machine of one form.
// The lock guards transitions only and is never held across the network call.
type Session struct {
	mu     sync.Mutex
	client *Client
	state  State
	closed bool
}

// NewSession starts a session in PhaseIdle
func NewSession(client *Client) *Session {
	return &Session{client: client}
}

// State returns the current snapshot
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Begin moves to PhaseLoading. While loading it returns ErrInFlight and
// changes nothing. Local failures (empty input, missing credential) move
// straight to PhaseError and are returned.
func (s *Session) Begin(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.state.Phase == PhaseLoading {
		return ErrInFlight
	}

	if err := s.client.Check(text); err != nil {
		s.client.observe(0, err, 0)
		s.state = State{Phase: PhaseError, Input: text, Error: Message(err)}
		return err
	}

	s.state = State{Phase: PhaseLoading, Input: text}
	return nil
}

// Complete finishes the outstanding request. It reports false, and does
// nothing, when no request is outstanding or the session is closed.
func (s *Session) Complete(outcome *Outcome, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state.Phase != PhaseLoading {
		return false
	}

	if err == nil && outcome == nil {
		err = ai.NewProviderError(ai.ErrTypeMalformed, "no result", "")
	}

	if err != nil {
		s.state = State{Phase: PhaseError, Input: s.state.Input, Error: Message(err)}
		return true
	}

	s.state = State{Phase: PhaseSuccess, Input: s.state.Input, Outcome: outcome}
	return true
}

// Submit runs Begin, the analysis and Complete on the calling goroutine
func (s *Session) Submit(ctx context.Context, text string) (State, error) {
	if err := s.Begin(text); err != nil {
		return s.State(), err
	}

	outcome, err := s.client.Analyze(ctx, text)
	s.Complete(outcome, err)
	return s.State(), err
}

// Analyze runs the client call for a request already started with Begin.
// Callers that drive the session asynchronously pass its result to Complete.
func (s *Session) Analyze(ctx context.Context, text string) (*Outcome, error) {
	return s.client.Analyze(ctx, text)
}

// Close tears the session down; late completions are dropped
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// Message converts an analysis error into the text shown to the user.
// Local errors are shown as-is, remote ones behind RetryPrefix.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if !ai.IsRemoteError(err) {
		return err.Error()
	}

	var pe *ai.ProviderError
	if errors.As(err, &pe) {
		return RetryPrefix + pe.Detail()
	}
	return RetryPrefix + err.Error()
}
