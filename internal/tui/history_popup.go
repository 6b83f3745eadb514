package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/studiowebux/openapi-tui/internal/action"
	"github.com/studiowebux/openapi-tui/internal/keybinds"
)

// historyPopup picks a suspended call to resume. It freezes the page
// beneath it and consumes every key.
type historyPopup struct {
	keys     []string
	matches  []string
	selected int
	input    textinput.Model
}

func newHistoryPopup(keys []string) *historyPopup {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "type to filter"
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()

	p := &historyPopup{keys: keys, input: ti}
	p.refilter()
	return p
}

// refilter ranks keys against the query; an empty query keeps MRU order
func (p *historyPopup) refilter() {
	query := strings.TrimSpace(p.input.Value())
	if query == "" {
		p.matches = append([]string(nil), p.keys...)
	} else {
		p.matches = p.matches[:0]
		for _, m := range fuzzy.Find(query, p.keys) {
			p.matches = append(p.matches, m.Str)
		}
	}
	if p.selected >= len(p.matches) {
		p.selected = max(0, len(p.matches)-1)
	}
}

// current returns the highlighted key
func (p *historyPopup) current() (string, bool) {
	if p.selected < 0 || p.selected >= len(p.matches) {
		return "", false
	}
	return p.matches[p.selected], true
}

func (p *historyPopup) handleKey(msg tea.KeyMsg, keys *keybinds.Registry, q *queue) {
	act, _ := keys.Match(keybinds.ContextHistory, msg.String())
	switch act {
	case keybinds.ActionNavigateUp:
		p.update(action.Nav{Kind: action.Up}, q)
	case keybinds.ActionNavigateDown:
		p.update(action.Nav{Kind: action.Down}, q)
	case keybinds.ActionSubmit:
		p.update(action.Nav{Kind: action.Submit}, q)
	case keybinds.ActionCloseModal:
		q.push(action.CloseHistory{})
	case keybinds.ActionQuitForce:
		q.push(action.Quit{})
	default:
		p.input, _ = p.input.Update(msg)
		p.refilter()
	}
}

// update handles routed actions; everything else is swallowed
func (p *historyPopup) update(a action.Action, q *queue) {
	nav, ok := a.(action.Nav)
	if !ok {
		return
	}
	switch nav.Kind {
	case action.Up:
		if p.selected > 0 {
			p.selected--
		}
	case action.Down:
		if p.selected < len(p.matches)-1 {
			p.selected++
		}
	case action.Submit:
		if key, ok := p.current(); ok {
			q.push(action.NewCall{Key: key})
		}
	}
}

func (p *historyPopup) view(width, height int) string {
	var lines []string
	lines = append(lines, styleTitle.Render(fmt.Sprintf("Suspended calls (%d)", len(p.keys))), p.input.View(), "")

	if len(p.matches) == 0 {
		lines = append(lines, styleSubtle.Render("no suspended calls"))
	}
	for i, key := range p.matches {
		if len(lines) >= height-2 {
			break
		}
		line := "  " + key
		if i == p.selected {
			line = styleSelected.Render("> " + key)
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Width(width - MinimalBorderWidth).
		Height(height - MinimalBorderWidth).
		Render(strings.Join(lines, "\n"))
}
