// grchub/session/session.go
package session

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"grchub/grchub/knowledge"
	"grchub/grchub/utils/types"
)

type State int

const (
	StateIdle State = iota
	StateSubmitting // request sent, no delta yet
	StateStreaming  // deltas arriving
)

// Transport issues one chat request and streams the reply. Deltas
// arrive on the first channel in order; the second carries at most one
// error. Both close when the request is over.
type Transport interface {
	Stream(ctx context.Context, payload types.ChatPayload) (<-chan string, <-chan error)
}

// Session is the client-side conversation state machine. One request
// may be in flight at a time; every visible change triggers the
// OnChange callback so a view can re-render.
//
// A generation counter guards against stale streams: Reset bumps it,
// so deltas from a request started before the reset are discarded
// instead of landing in the cleared conversation.
type Session struct {
	mu        sync.Mutex
	transport Transport
	category  knowledge.Category // "" = all categories

	msgs   []types.Message
	state  State
	err    error
	gen    int
	cancel context.CancelFunc

	onChange func()
}

func New(transport Transport) *Session {
	return &Session{transport: transport}
}

// OnChange registers the view callback. It is invoked outside the
// session lock, so the callback may call back into the session.
func (s *Session) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *Session) notify() {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (s *Session) SetCategory(c knowledge.Category) {
	s.mu.Lock()
	s.category = c
	s.mu.Unlock()
	s.notify()
}

func (s *Session) Category() knowledge.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.category
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) IsBusy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state != StateIdle
}

// Loading reports whether the spinner should show: a request is out
// but no assistant text has arrived yet.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateSubmitting
}

// Messages returns a snapshot of the conversation. Parts are copied
// too, so the snapshot stays stable while a reply is still streaming.
func (s *Session) Messages() []types.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.Message, len(s.msgs))
	for i, m := range s.msgs {
		parts := make([]types.Part, len(m.Parts))
		copy(parts, m.Parts)
		m.Parts = parts
		out[i] = m
	}
	return out
}

// Submit appends a user message and starts the request. Returns false
// without touching the conversation when text is blank or a request is
// already in flight.
func (s *Session) Submit(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return false
	}
	s.msgs = append(s.msgs, types.TextMessage(uuid.New().String(), types.RoleUser, text))
	s.state = StateSubmitting
	s.err = nil
	s.gen++
	gen := s.gen

	payload := types.ChatPayload{
		Messages: make([]types.Message, len(s.msgs)),
		Category: string(s.category),
	}
	copy(payload.Messages, s.msgs)

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.mu.Unlock()
	s.notify()

	go func() {
		ch, errCh := s.transport.Stream(ctx, payload)
		s.consume(gen, ch, errCh)
	}()
	return true
}

func (s *Session) consume(gen int, ch <-chan string, errCh <-chan error) {
	for delta := range ch {
		s.applyDelta(gen, delta)
	}
	// drained; surface the terminal condition and go idle
	err := <-errCh
	s.finish(gen, err)
}

func (s *Session) applyDelta(gen int, delta string) {
	s.mu.Lock()
	if gen != s.gen {
		// stale stream, session was reset underneath it
		s.mu.Unlock()
		return
	}
	switch s.state {
	case StateSubmitting:
		s.msgs = append(s.msgs, types.TextMessage(uuid.New().String(), types.RoleAssistant, delta))
		s.state = StateStreaming
	case StateStreaming:
		last := &s.msgs[len(s.msgs)-1]
		last.Parts[len(last.Parts)-1].Text += delta
	default:
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	s.notify()
}

func (s *Session) finish(gen int, err error) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	// on error or abort the conversation stays as-is: the user message
	// remains, any partial assistant text remains
	s.state = StateIdle
	s.err = err
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()
	s.notify()
}

// Err reports the failure of the most recent request, nil after a
// clean completion or reset.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Reset clears the conversation from any state. An in-flight request
// is cancelled and its remaining deltas are discarded.
func (s *Session) Reset() {
	s.mu.Lock()
	s.gen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.msgs = nil
	s.state = StateIdle
	s.err = nil
	s.mu.Unlock()
	s.notify()
}
