package session

import (
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/studiowebux/openapi-tui/internal/catalog"
	"github.com/studiowebux/openapi-tui/internal/logging"
	"github.com/studiowebux/openapi-tui/internal/request"
)

// ErrUnknownOperation is returned when a call names no known operation
var ErrUnknownOperation = errors.New("unknown operation")

// View is the per-session pane state restored on resume
type View struct {
	ParamTab     int
	ParamRow     int
	ResponseLine int
}

// Session is the editable state of one call
type Session struct {
	Key         string
	Entry       catalog.Entry
	Draft       *request.Draft
	FocusedPane int
	Fullscreen  int
	View        View
	Filter      string
}

// New creates a session around a fresh draft
func New(entry catalog.Entry, draft *request.Draft) *Session {
	return &Session{
		Key:        entry.Key(),
		Entry:      entry,
		Draft:      draft,
		Fullscreen: -1,
	}
}

// Factory builds a fresh session for key
type Factory func(key string) (*Session, error)

// Manager owns the active call stack and the suspended-call history
type Manager struct {
	active   []*Session
	history  *lru.Cache[string, *Session]
	resuming string
	onEvict  func(key string)
}

// NewManager creates a manager whose history keeps at most capacity
// sessions. onEvict runs for sessions pushed out of the history.
func NewManager(capacity int, onEvict func(key string)) (*Manager, error) {
	m := &Manager{onEvict: onEvict}
	cache, err := lru.NewWithEvict[string, *Session](capacity, m.evicted)
	if err != nil {
		return nil, fmt.Errorf("failed to create session history: %w", err)
	}
	m.history = cache
	return m, nil
}

func (m *Manager) evicted(key string, _ *Session) {
	if key == m.resuming {
		return
	}
	logging.Trace("session.evict", "key", key)
	if m.onEvict != nil {
		m.onEvict(key)
	}
}

// NewCall puts the session for key on top of the stack. A suspended session
// is resumed from history; otherwise factory builds a fresh one. A key that
// is already open is just raised.
func (m *Manager) NewCall(key string, factory Factory) (*Session, bool, error) {
	for i, s := range m.active {
		if s.Key == key {
			m.active = append(m.active[:i], m.active[i+1:]...)
			m.push(s)
			return s, true, nil
		}
	}

	if s, ok := m.history.Peek(key); ok {
		m.resuming = key
		m.history.Remove(key)
		m.resuming = ""
		m.push(s)
		logging.Trace("session.resume", "key", key)
		return s, true, nil
	}

	s, err := factory(key)
	if err != nil {
		return nil, false, err
	}
	if s == nil {
		return nil, false, fmt.Errorf("%w: %s", ErrUnknownOperation, key)
	}
	m.push(s)
	logging.Trace("session.new", "key", key)
	return s, false, nil
}

func (m *Manager) push(s *Session) {
	m.active = append([]*Session{s}, m.active...)
}

// HangUp pops the top session. With a key, it is kept in history under
// that key; without one it is discarded.
func (m *Manager) HangUp(key string) (*Session, bool) {
	if len(m.active) == 0 {
		return nil, false
	}
	s := m.active[0]
	m.active = m.active[1:]

	if key != "" {
		m.history.Add(key, s)
		logging.Trace("session.suspend", "key", key)
	} else {
		logging.Trace("session.discard", "key", s.Key)
	}
	return s, true
}

// Top returns the session receiving input
func (m *Manager) Top() (*Session, bool) {
	if len(m.active) == 0 {
		return nil, false
	}
	return m.active[0], true
}

// Active returns the open sessions, most recent first
func (m *Manager) Active() []*Session {
	return append([]*Session(nil), m.active...)
}

// Depth is the number of open sessions
func (m *Manager) Depth() int { return len(m.active) }

// Suspended reports whether key has a session in history
func (m *Manager) Suspended(key string) bool { return m.history.Contains(key) }

// HistoryKeys lists suspended sessions, most recently used first
func (m *Manager) HistoryKeys() []string {
	keys := m.history.Keys()
	for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
		keys[i], keys[j] = keys[j], keys[i]
	}
	return keys
}
