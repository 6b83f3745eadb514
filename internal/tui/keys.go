package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/openapi-tui/internal/action"
	"github.com/studiowebux/openapi-tui/internal/keybinds"
)

// handleKey runs the focus chain: footer, popup, the top page's editors.
// A key nobody consumed goes through the keymap of the active context.
func (s *State) handleKey(msg tea.KeyMsg, q *queue) {
	if s.footer.active {
		s.footer.handleKey(msg, s.keys, q)
		return
	}
	if s.popup != nil {
		s.popup.handleKey(msg, s.keys, q)
		return
	}
	if page := s.topPage(); page != nil && page.handleKey(msg, s.keys, q) {
		return
	}

	act, complete, partial := s.keys.MatchMultiKey(s.context(), msg.String())
	if partial || !complete {
		return
	}
	s.translate(act, q)
}

var navActions = map[keybinds.Action]action.NavKind{
	keybinds.ActionNavigateUp:       action.Up,
	keybinds.ActionNavigateDown:     action.Down,
	keybinds.ActionGoToTop:          action.Top,
	keybinds.ActionGoToBottom:       action.Bottom,
	keybinds.ActionFocusNext:        action.FocusNext,
	keybinds.ActionFocusPrev:        action.FocusPrev,
	keybinds.ActionGo:               action.Go,
	keybinds.ActionBack:             action.Back,
	keybinds.ActionTabNext:          action.TabNext,
	keybinds.ActionTabPrev:          action.TabPrev,
	keybinds.ActionToggleFullscreen: action.ToggleFullscreen,
	keybinds.ActionSubmit:           action.Submit,
}

// translate turns a keymap action into a dispatch action
func (s *State) translate(act keybinds.Action, q *queue) {
	if kind, ok := navActions[act]; ok {
		q.push(action.Nav{Kind: kind})
		return
	}
	if i, ok := keybinds.TabActions[act]; ok {
		q.push(action.Tab{Index: i})
		return
	}

	switch act {
	case keybinds.ActionQuit, keybinds.ActionQuitForce:
		q.push(action.Quit{})
	case keybinds.ActionSuspend:
		q.push(action.Suspend{})
	case keybinds.ActionOpenFilter:
		q.push(action.FocusFooter{Label: labelFilter, Initial: s.catalog.Filter()})
	case keybinds.ActionOpenCommand:
		q.push(action.FocusFooter{Label: labelCommand})
	case keybinds.ActionOpenHistory:
		q.push(action.History{})
	case keybinds.ActionCloseModal:
		q.push(action.CloseHistory{})
	case keybinds.ActionHangUp:
		if top, ok := s.sessions.Top(); ok {
			q.push(action.HangUp{Key: top.Key})
		}
	case keybinds.ActionHangUpDiscard:
		q.push(action.HangUp{})
	case keybinds.ActionDial:
		q.push(action.Dial{})
	case keybinds.ActionCopyBody:
		q.push(action.Copy{What: "body"})
	}
}
