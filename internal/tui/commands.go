package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/studiowebux/openapi-tui/internal/action"
	"github.com/studiowebux/openapi-tui/internal/filter"
	"github.com/studiowebux/openapi-tui/internal/logging"
	"github.com/studiowebux/openapi-tui/internal/request"
)

// command maps a parsed command line onto actions
func (s *State) command(c action.Command, q *queue) error {
	arg := strings.Join(c.Args, " ")

	switch c.Verb {
	case "q", "quit":
		q.push(action.Quit{})
	case "request", "r":
		if len(c.Args) >= 2 && c.Args[0] == "open" {
			q.push(action.OpenPayload{Path: strings.Join(c.Args[1:], " ")})
			return nil
		}
		if len(c.Args) == 1 && c.Args[0] == "open" {
			return errors.New("usage: request open <file>")
		}
		q.push(action.NewCall{Key: arg})
	case "history":
		q.push(action.History{})
	case "hangup":
		top, ok := s.sessions.Top()
		if !ok {
			return ErrNoCall
		}
		q.push(action.HangUp{Key: top.Key})
	case "hangup!":
		q.push(action.HangUp{})
	case "dial":
		q.push(action.Dial{})
	case "filter":
		q.push(action.Filter{Expression: arg})
	case "copy":
		q.push(action.Copy{What: arg})
	case "tag":
		q.push(action.SetTag{Tag: arg})
	default:
		return fmt.Errorf("%w %q", action.ErrUnknownCommand, c.Verb)
	}
	return nil
}

// openPayload loads a file into the top call's body
func (s *State) openPayload(path string, q *queue) error {
	page := s.topPage()
	if page == nil {
		return ErrNoCall
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read payload: %w", err)
	}
	page.SetBody(string(data))
	logging.Trace("payload", "key", page.sess.Key, "path", path, "bytes", len(data))
	q.push(action.TimedStatusLine{Text: fmt.Sprintf("loaded %d bytes from %s", len(data), path), Duration: StatusTimeout})
	return nil
}

// setFilter applies a response filter to the top call; empty clears it
func (s *State) setFilter(expr string, q *queue) error {
	page := s.topPage()
	if page == nil {
		return ErrNoCall
	}
	expr = strings.TrimSpace(expr)
	if expr != "" && !filter.IsShellCommand(expr) && !filter.IsValidJMESPath(expr) {
		return fmt.Errorf("invalid JMESPath expression: %s", expr)
	}
	page.sess.Filter = expr
	page.refreshResponse()
	if page.filterErr != nil {
		return page.filterErr
	}
	if expr == "" {
		q.push(action.TimedStatusLine{Text: "filter cleared", Duration: StatusTimeout})
	}
	return nil
}

// copy puts the response body (default) or the request URL on the clipboard
func (s *State) copy(what string, q *queue) error {
	page := s.topPage()
	if page == nil {
		return ErrNoCall
	}

	var text string
	switch what {
	case "", "body":
		rec, ok := s.responses[page.sess.Key]
		if !ok || rec.Failed() {
			return errors.New("no response to copy")
		}
		text = page.Body()
		what = "body"
	case "url":
		sess := page.sess
		req, err := request.Build(sess.Draft, sess.Entry.Method, sess.Entry.Path, s.baseURL)
		if err != nil {
			return fmt.Errorf("failed to build request: %w", err)
		}
		text = req.URL
	default:
		return fmt.Errorf("usage: copy [body|url], got %q", what)
	}

	if err := s.clipboard(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	q.push(action.TimedStatusLine{Text: what + " copied to clipboard", Duration: StatusTimeout})
	return nil
}
