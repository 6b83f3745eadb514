package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/studiowebux/openapi-tui/internal/keybinds"
)

// View renders the whole screen: header, page, status or footer
func (s *State) View() string {
	if s.width <= 0 || s.height <= 0 {
		return "Initializing..."
	}

	bodyHeight := max(3, s.height-HeaderLines-FooterLines)
	var body string
	if page := s.topPage(); page != nil {
		body = page.view(s.width, bodyHeight)
	} else {
		body = s.home.view(s.width, bodyHeight)
	}

	if s.popup != nil {
		w := max(20, s.width-2*PopupWidthMargin)
		h := max(5, bodyHeight-PopupHeightMargin)
		body = lipgloss.Place(s.width, bodyHeight, lipgloss.Center, lipgloss.Center, s.popup.view(w, h))
	}

	return lipgloss.JoinVertical(lipgloss.Left, s.renderHeader(), body, s.renderFooter())
}

func (s *State) renderHeader() string {
	title := fmt.Sprintf("[ %s · %s ]", s.doc.Title(), s.doc.Version())
	right := ""
	if depth := s.sessions.Depth(); depth > 0 {
		if top, ok := s.sessions.Top(); ok {
			right = fmt.Sprintf("calls: %d  %s", depth, top.Key)
		}
	}
	if n := len(s.sessions.HistoryKeys()); n > 0 {
		right += fmt.Sprintf("  suspended: %d", n)
	}

	gap := s.width - lipgloss.Width(title) - lipgloss.Width(right)
	if gap < 1 {
		return ansi.Truncate(styleTitle.Render(title)+" "+styleSubtle.Render(right), s.width, "…")
	}
	return styleTitle.Render(title) + strings.Repeat(" ", gap) + styleSubtle.Render(right)
}

func (s *State) renderFooter() string {
	if s.footer.active {
		return s.footer.view(s.width)
	}
	if s.status.text == "" {
		return styleSubtle.Render(s.hints())
	}
	text := ansi.Truncate(s.status.text, s.width, "…")
	if s.status.isError {
		return styleError.Render(text)
	}
	return text
}

// hints lists a few bindings of the active context
func (s *State) hints() string {
	ctx := s.context()
	var parts []string
	for _, a := range hintActions(s.topPage() != nil) {
		keys := s.keys.GetBinding(ctx, a)
		if len(keys) == 0 {
			continue
		}
		parts = append(parts, keys[0]+" "+strings.ToLower(actionLabel(a)))
	}
	return ansi.Truncate(strings.Join(parts, " · "), s.width, "…")
}

func hintActions(inCall bool) []keybinds.Action {
	if inCall {
		return []keybinds.Action{
			keybinds.ActionSubmit, keybinds.ActionDial, keybinds.ActionHangUp,
			keybinds.ActionHangUpDiscard, keybinds.ActionOpenCommand, keybinds.ActionQuit,
		}
	}
	return []keybinds.Action{
		keybinds.ActionSubmit, keybinds.ActionFocusNext, keybinds.ActionGo, keybinds.ActionBack,
		keybinds.ActionOpenFilter, keybinds.ActionOpenHistory, keybinds.ActionQuit,
	}
}

func actionLabel(a keybinds.Action) string {
	return keybinds.GetActionInfo(a).Description
}
