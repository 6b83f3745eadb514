// Package action defines the messages handlers exchange on the dispatch
// queue. Action is a closed union: only types in this package implement it.
package action

import (
	"fmt"
	"time"
)

// Action is anything a handler may emit
type Action interface {
	action()
}

// NavKind enumerates the navigation actions
type NavKind int

const (
	Up NavKind = iota
	Down
	Top
	Bottom
	FocusNext
	FocusPrev
	Go
	Back
	TabNext
	TabPrev
	ToggleFullscreen
	Submit
)

var navNames = [...]string{
	"up", "down", "top", "bottom", "focus_next", "focus_prev",
	"go", "back", "tab_next", "tab_prev", "toggle_fullscreen", "submit",
}

func (k NavKind) String() string {
	if int(k) < len(navNames) {
		return navNames[k]
	}
	return fmt.Sprintf("nav(%d)", int(k))
}

type (
	// Nav moves within the focused page or pane
	Nav struct{ Kind NavKind }

	// Tab selects a tab of the focused pane by zero-based index
	Tab struct{ Index int }

	Tick    struct{}
	Render  struct{}
	Suspend struct{}
	Resume  struct{}
	Quit    struct{}
	Resize  struct{ Width, Height int }

	// Update tells a page its model changed underneath it
	Update struct{}

	// Focus and Unfocus are sent to a pane as it gains or loses focus
	Focus   struct{}
	Unfocus struct{}

	// NewCall opens (or resumes) a call for an operation key
	NewCall struct{ Key string }

	// HangUp closes the top call. A non-empty Key keeps it in history;
	// an empty Key discards it.
	HangUp struct{ Key string }

	// Dial sends the top call's request
	Dial struct{}

	// History opens the suspended-call picker; CloseHistory dismisses it
	History      struct{}
	CloseHistory struct{}

	// FocusFooter opens the footer input under Label
	FocusFooter struct {
		Label   string
		Initial string
	}

	// FooterResult is emitted when the footer input closes. OK is false on cancel.
	FooterResult struct {
		Label string
		Value string
		OK    bool
	}

	// Command is a parsed command-line entry
	Command struct {
		Verb string
		Args []string
	}

	StatusLine      struct{ Text string }
	TimedStatusLine struct {
		Text     string
		Duration time.Duration
	}

	// Error reports a recoverable failure on the status line
	Error struct{ Err error }

	// OpenPayload loads a request body from a file
	OpenPayload struct{ Path string }

	// Copy puts the response body or the request URL on the clipboard
	Copy struct{ What string }

	// Filter sets the JMESPath (or $(shell)) view over the response body
	Filter struct{ Expression string }

	// SetTag restricts the catalog to one tag; empty means all
	SetTag struct{ Tag string }
)

func (Nav) action()             {}
func (Tab) action()             {}
func (Tick) action()            {}
func (Render) action()          {}
func (Suspend) action()         {}
func (Resume) action()          {}
func (Quit) action()            {}
func (Resize) action()          {}
func (Update) action()          {}
func (Focus) action()           {}
func (Unfocus) action()         {}
func (NewCall) action()         {}
func (HangUp) action()          {}
func (Dial) action()            {}
func (History) action()         {}
func (CloseHistory) action()    {}
func (FocusFooter) action()     {}
func (FooterResult) action()    {}
func (Command) action()         {}
func (StatusLine) action()      {}
func (TimedStatusLine) action() {}
func (Error) action()           {}
func (OpenPayload) action()     {}
func (Copy) action()            {}
func (Filter) action()          {}
func (SetTag) action()          {}

// Name returns a short label for logs
func Name(a Action) string {
	switch a := a.(type) {
	case Nav:
		return "nav:" + a.Kind.String()
	case Tab:
		return fmt.Sprintf("tab:%d", a.Index)
	case Command:
		return "command:" + a.Verb
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("%T", a)
	}
}
