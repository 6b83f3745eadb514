package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/openapi-tui/internal/config"
	"github.com/studiowebux/openapi-tui/internal/document"
	"github.com/studiowebux/openapi-tui/internal/types"
)

// fakeDialer records dials and hands out queued results on Drain
type fakeDialer struct {
	dialed    []types.Call
	pending   map[string]bool
	cancelled []string
	results   []types.Result
}

func newFakeDialer() *fakeDialer {
	return &fakeDialer{pending: make(map[string]bool)}
}

func (f *fakeDialer) Dial(key string, req *types.HttpRequest) {
	f.dialed = append(f.dialed, types.Call{Key: key, Request: req})
	f.pending[key] = true
}

func (f *fakeDialer) Cancel(key string) bool {
	if !f.pending[key] {
		return false
	}
	delete(f.pending, key)
	f.cancelled = append(f.cancelled, key)
	return true
}

func (f *fakeDialer) Pending(key string) bool { return f.pending[key] }

func (f *fakeDialer) Drain() []types.Result {
	out := f.results
	f.results = nil
	for _, r := range out {
		delete(f.pending, r.Key)
	}
	return out
}

// finish queues a response for the next Tick
func (f *fakeDialer) finish(key string, rec *types.ResponseRecord) {
	f.results = append(f.results, types.Result{Key: key, Response: rec})
}

func okResponse(body string) *types.ResponseRecord {
	return &types.ResponseRecord{
		State:      types.ResponseReceived,
		Status:     200,
		StatusText: "200 OK",
		Protocol:   "HTTP/1.1",
		Body:       body,
	}
}

// CreateTestState builds a State over the petstore fixture with a fake
// dialer, a fixed clock and a recording clipboard
func CreateTestState(t *testing.T, settings config.Settings) (*State, *fakeDialer, *[]string) {
	t.Helper()

	doc, err := document.Load(context.Background(), "../document/testdata/petstore.yaml")
	if err != nil {
		t.Fatalf("Failed to load fixture: %v", err)
	}

	dialer := newFakeDialer()
	s, err := New(Options{Document: doc, Dialer: dialer, Settings: settings})
	if err != nil {
		t.Fatalf("Failed to create test state: %v", err)
	}

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	var copied []string
	s.clipboard = func(text string) error {
		copied = append(copied, text)
		return nil
	}
	return s, dialer, &copied
}

// key builds the KeyMsg whose String() is name
func key(name string) tea.KeyMsg {
	special := map[string]tea.KeyType{
		"enter":     tea.KeyEnter,
		"esc":       tea.KeyEsc,
		"tab":       tea.KeyTab,
		"shift+tab": tea.KeyShiftTab,
		"up":        tea.KeyUp,
		"down":      tea.KeyDown,
		"left":      tea.KeyLeft,
		"right":     tea.KeyRight,
		"backspace": tea.KeyBackspace,
		"ctrl+c":    tea.KeyCtrlC,
		"ctrl+d":    tea.KeyCtrlD,
		"ctrl+x":    tea.KeyCtrlX,
		"ctrl+p":    tea.KeyCtrlP,
		"ctrl+n":    tea.KeyCtrlN,
		"ctrl+z":    tea.KeyCtrlZ,
	}
	if kt, ok := special[name]; ok {
		return tea.KeyMsg{Type: kt}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}

// press feeds keys one event at a time
func press(t *testing.T, s *State, keys ...string) {
	t.Helper()
	for _, k := range keys {
		if err := s.HandleEvent(key(k)); err != nil {
			t.Fatalf("HandleEvent(%q) error = %v", k, err)
		}
	}
}

// send feeds one event and fails on a fatal error
func send(t *testing.T, s *State, msg tea.Msg) {
	t.Helper()
	if err := s.HandleEvent(msg); err != nil {
		t.Fatalf("HandleEvent(%T) error = %v", msg, err)
	}
}

// AssertModelField is a generic helper for checking state field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}
