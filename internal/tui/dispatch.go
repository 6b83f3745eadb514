package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/openapi-tui/internal/action"
	"github.com/studiowebux/openapi-tui/internal/logging"
	"github.com/studiowebux/openapi-tui/internal/request"
)

// ErrDrainOverflow means handlers kept emitting past MaxDrain for one event
var ErrDrainOverflow = errors.New("action queue overflow")

// ErrNoCall is returned by call actions when no call is open
var ErrNoCall = errors.New("no open call")

// fatalError ends the program; every other handler error is shown and dropped
type fatalError struct{ err error }

func (e *fatalError) Error() string { return e.err.Error() }
func (e *fatalError) Unwrap() error { return e.err }

// Fatal marks err as ending the program
func Fatal(err error) error { return &fatalError{err: err} }

// IsFatal reports whether err was marked with Fatal
func IsFatal(err error) bool {
	var f *fatalError
	return errors.As(err, &f)
}

// tickMsg drives Tick on the configured interval
type tickMsg time.Time

// HandleEvent runs one loop iteration: translate the event, then drain
// every action it caused
func (s *State) HandleEvent(msg tea.Msg) error {
	q := &queue{}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		s.handleKey(msg, q)
	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			q.push(action.Nav{Kind: action.Up})
		case tea.MouseButtonWheelDown:
			q.push(action.Nav{Kind: action.Down})
		}
	case tea.WindowSizeMsg:
		q.push(action.Resize{Width: msg.Width, Height: msg.Height})
	case tickMsg:
		q.push(action.Tick{})
	case tea.ResumeMsg:
		q.push(action.Resume{})
	case action.Action:
		q.push(msg)
	}

	return s.drain(q)
}

// drain dispatches in emission order until the queue is empty
func (s *State) drain(q *queue) error {
	for n := 0; ; n++ {
		a, ok := q.pop()
		if !ok {
			return nil
		}
		if n >= MaxDrain {
			err := fmt.Errorf("%w: more than %d actions", ErrDrainOverflow, MaxDrain)
			logging.Error(err, "pending", q.len()+1)
			return Fatal(err)
		}

		if _, isTick := a.(action.Tick); !isTick {
			logging.Trace("dispatch", "action", action.Name(a))
		}
		if err := s.dispatch(a, q); err != nil {
			if IsFatal(err) {
				return err
			}
			logging.Error(err, "action", action.Name(a))
			s.setError(err)
		}
	}
}

// dispatch handles app-level actions, then routes the rest down the focus
// chain: popup, top call page, home page
func (s *State) dispatch(a action.Action, q *queue) error {
	switch a := a.(type) {
	case action.Quit:
		s.quitting = true
	case action.Suspend:
		s.suspending = true
	case action.Resume:
		logging.Trace("resume")
	case action.Resize:
		s.width, s.height = a.Width, a.Height
	case action.Tick:
		s.tick(q)
	case action.Render:
	case action.NewCall:
		return s.newCall(a.Key, q)
	case action.HangUp:
		return s.hangUp(a.Key, q)
	case action.Dial:
		return s.dial(q)
	case action.History:
		s.popup = newHistoryPopup(s.sessions.HistoryKeys())
	case action.CloseHistory:
		s.popup = nil
	case action.StatusLine:
		s.setStatus(a.Text, 0)
	case action.TimedStatusLine:
		s.setStatus(a.Text, a.Duration)
	case action.Error:
		if a.Err != nil {
			return a.Err
		}
	case action.FocusFooter:
		s.footer.open(a.Label, a.Initial)
	case action.FooterResult:
		return s.footerResult(a, q)
	case action.Command:
		return s.command(a, q)
	case action.OpenPayload:
		return s.openPayload(a.Path, q)
	case action.Copy:
		return s.copy(a.What, q)
	case action.Filter:
		return s.setFilter(a.Expression, q)
	case action.SetTag:
		s.catalog.SetTag(a.Tag)
		q.push(action.Update{})
	default:
		s.route(a, q)
	}
	return nil
}

// route delivers a page action. An open popup freezes the page beneath.
func (s *State) route(a action.Action, q *queue) {
	if s.popup != nil {
		s.popup.update(a, q)
		return
	}
	if page := s.topPage(); page != nil {
		page.update(a, q)
		return
	}
	s.home.update(a, q)
}

// tick clears chords, delivers finished calls and expires the status line
func (s *State) tick(q *queue) {
	if act, ok := s.keys.Flush(s.context()); ok {
		s.translate(act, q)
	}

	results := s.dialer.Drain()
	for _, r := range results {
		s.responses[r.Key] = r.Response
		logging.Trace("deliver", "key", r.Key, "state", r.Response.State.String(), "status", r.Response.Status)
		if r.Response.Failed() {
			q.push(action.Error{Err: fmt.Errorf("%s: %s", r.Key, r.Response.Error)})
		} else if top, ok := s.sessions.Top(); ok && top.Key == r.Key {
			q.push(action.TimedStatusLine{Text: r.Key + ": " + r.Response.StatusText, Duration: StatusTimeout})
		}
	}
	if len(results) > 0 {
		for _, page := range s.pages {
			page.refreshResponse()
		}
	}

	if !s.status.expires.IsZero() && !s.now().Before(s.status.expires) {
		s.status = statusLine{}
	}
}

// newCall opens, raises or resumes the call for key
func (s *State) newCall(key string, q *queue) error {
	if key == "" {
		entry, ok := s.catalog.Active()
		if !ok {
			return errors.New("no operation selected")
		}
		key = entry.Key()
	}

	sess, resumed, err := s.sessions.NewCall(key, s.newSession)
	if err != nil {
		return err
	}
	s.popup = nil
	if _, open := s.pages[key]; !open {
		s.pages[key] = newCallPage(s, sess)
	}
	logging.Trace("newcall", "key", key, "resumed", resumed, "depth", s.sessions.Depth())
	if missing := sess.Draft.MissingRequired(); len(missing) > 0 && !resumed {
		q.push(action.TimedStatusLine{Text: "required: " + strings.Join(missing, ", "), Duration: StatusTimeout})
	}
	return nil
}

// hangUp closes the top call. A key keeps it for resume; no key discards
// it and cancels its in-flight request.
func (s *State) hangUp(key string, q *queue) error {
	page := s.topPage()
	if page == nil {
		return ErrNoCall
	}
	page.save()
	sess, _ := s.sessions.HangUp(key)
	delete(s.pages, sess.Key)

	if key == "" {
		if s.dialer.Cancel(sess.Key) {
			logging.Trace("hangup.cancel", "key", sess.Key)
		}
		delete(s.responses, sess.Key)
	}
	logging.Trace("hangup", "key", sess.Key, "kept", key != "")
	q.push(action.Update{})
	return nil
}

// dial builds the top call's request and hands it to the pipeline
func (s *State) dial(q *queue) error {
	page := s.topPage()
	if page == nil {
		return ErrNoCall
	}
	if page.inserting {
		page.commitBody()
	}
	sess := page.sess

	req, err := request.Build(sess.Draft, sess.Entry.Method, sess.Entry.Path, s.baseURL)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	s.dialer.Dial(sess.Key, req)
	if missing := sess.Draft.MissingRequired(); len(missing) > 0 {
		q.push(action.TimedStatusLine{Text: "dialing without " + strings.Join(missing, ", "), Duration: StatusTimeout})
	} else {
		q.push(action.StatusLine{Text: "dialing " + req.Method + " " + req.URL})
	}
	q.push(action.Update{})
	return nil
}

// footerResult applies a closed footer input
func (s *State) footerResult(r action.FooterResult, q *queue) error {
	if !r.OK {
		return nil
	}
	switch r.Label {
	case labelFilter:
		s.catalog.SetFilter(r.Value)
		q.push(action.Update{})
	case labelCommand:
		if strings.TrimSpace(r.Value) == "" {
			return nil
		}
		cmd, err := action.ParseCommand(r.Value)
		if err != nil {
			return err
		}
		q.push(cmd)
	}
	return nil
}
