package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"

	"github.com/studiowebux/openapi-tui/internal/catalog"
	"github.com/studiowebux/openapi-tui/internal/config"
	"github.com/studiowebux/openapi-tui/internal/document"
	"github.com/studiowebux/openapi-tui/internal/keybinds"
	"github.com/studiowebux/openapi-tui/internal/logging"
	"github.com/studiowebux/openapi-tui/internal/request"
	"github.com/studiowebux/openapi-tui/internal/session"
	"github.com/studiowebux/openapi-tui/internal/types"
)

// Dialer sends built requests and hands back finished responses.
// *pipeline.Pipeline satisfies it.
type Dialer interface {
	Dial(key string, req *types.HttpRequest)
	Cancel(key string) bool
	Pending(key string) bool
	Drain() []types.Result
}

// Options wires a State
type Options struct {
	Document *document.Document
	Dialer   Dialer
	Keys     *keybinds.Registry
	Settings config.Settings
}

// statusLine is the bottom message; a zero expires means persistent
type statusLine struct {
	text    string
	isError bool
	expires time.Time
}

// State is the single owner of everything the UI shows. Only the UI loop
// touches it.
type State struct {
	doc      *document.Document
	catalog  *catalog.Catalog
	sessions *session.Manager
	dialer   Dialer
	keys     *keybinds.Registry
	settings config.Settings
	baseURL  string

	responses map[string]*types.ResponseRecord

	status statusLine
	footer *footer
	popup  *historyPopup
	home   *homePage
	pages  map[string]*callPage

	width, height int
	quitting      bool
	suspending    bool

	now       func() time.Time
	clipboard func(string) error
}

// New builds the UI state for a loaded document
func New(opts Options) (*State, error) {
	if opts.Document == nil {
		return nil, errors.New("no document")
	}
	if opts.Dialer == nil {
		return nil, errors.New("no dialer")
	}
	if opts.Keys == nil {
		opts.Keys = keybinds.NewDefaultRegistry()
	}

	s := &State{
		doc:       opts.Document,
		catalog:   catalog.Load(opts.Document),
		dialer:    opts.Dialer,
		keys:      opts.Keys,
		settings:  opts.Settings,
		baseURL:   opts.Settings.BaseURL,
		responses: make(map[string]*types.ResponseRecord),
		footer:    newFooter(),
		pages:     make(map[string]*callPage),
		width:     120,
		height:    40,
		now:       time.Now,
		clipboard: clipboard.WriteAll,
	}
	if s.baseURL == "" {
		s.baseURL = opts.Document.BaseURL()
	}

	capacity := opts.Settings.HistoryCapacity
	if capacity <= 0 {
		capacity = config.DefaultHistoryCapacity
	}
	sessions, err := session.NewManager(capacity, s.evicted)
	if err != nil {
		return nil, err
	}
	s.sessions = sessions

	s.home = newHomePage(s)
	s.home.refresh(&queue{})
	return s, nil
}

// evicted forgets a session pushed out of the history
func (s *State) evicted(key string) {
	if s.dialer.Cancel(key) {
		logging.Trace("evict.cancel", "key", key)
	}
	delete(s.responses, key)
}

// newSession builds a fresh session for an operation key
func (s *State) newSession(key string) (*session.Session, error) {
	entry, ok := s.catalog.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", session.ErrUnknownOperation, key)
	}
	return session.New(entry, request.NewDraft(s.doc, entry)), nil
}

// topPage returns the page of the session on top of the stack
func (s *State) topPage() *callPage {
	top, ok := s.sessions.Top()
	if !ok {
		return nil
	}
	return s.pages[top.Key]
}

// context names the keymap context for the current focus
func (s *State) context() keybinds.Context {
	switch {
	case s.footer.active:
		return keybinds.ContextFooter
	case s.popup != nil:
		return keybinds.ContextHistory
	case s.topPage() != nil:
		return keybinds.ContextCall
	default:
		return keybinds.ContextHome
	}
}

func (s *State) setStatus(text string, d time.Duration) {
	s.status = statusLine{text: text}
	if d > 0 {
		s.status.expires = s.now().Add(d)
	}
}

func (s *State) setError(err error) {
	s.status = statusLine{text: err.Error(), isError: true}
}

// Response returns the last delivered response for key
func (s *State) Response(key string) (*types.ResponseRecord, bool) {
	rec, ok := s.responses[key]
	return rec, ok
}
