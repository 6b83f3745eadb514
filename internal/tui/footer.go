package tui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/openapi-tui/internal/action"
	"github.com/studiowebux/openapi-tui/internal/keybinds"
)

// footer is the one-line filter / command input. While active it consumes
// every key.
type footer struct {
	input  textinput.Model
	label  string
	active bool
	rings  map[string]*ring
}

func newFooter() *footer {
	ti := textinput.New()
	ti.Cursor.SetMode(cursor.CursorStatic)
	return &footer{input: ti, rings: make(map[string]*ring)}
}

func (f *footer) ring(label string) *ring {
	r, ok := f.rings[label]
	if !ok {
		r = newRing(FooterHistoryCapacity)
		f.rings[label] = r
	}
	return r
}

func (f *footer) open(label, initial string) {
	f.label = label
	f.active = true
	f.input.Prompt = promptFor(label)
	f.input.SetValue(initial)
	f.input.CursorEnd()
	f.input.Focus()
	f.ring(label).reset()
}

func (f *footer) close() {
	f.active = false
	f.input.Blur()
	f.input.SetValue("")
}

func promptFor(label string) string {
	switch label {
	case labelFilter:
		return "/"
	case labelCommand:
		return ":"
	default:
		return label + ": "
	}
}

func (f *footer) handleKey(msg tea.KeyMsg, keys *keybinds.Registry, q *queue) {
	act, _ := keys.Match(keybinds.ContextFooter, msg.String())
	switch act {
	case keybinds.ActionTextSubmit:
		label, value := f.label, f.input.Value()
		f.ring(label).push(value)
		f.close()
		q.push(action.FooterResult{Label: label, Value: value, OK: true})
	case keybinds.ActionTextCancel:
		label := f.label
		f.close()
		q.push(action.FooterResult{Label: label})
	case keybinds.ActionHistoryPrev:
		if v, ok := f.ring(f.label).prev(); ok {
			f.input.SetValue(v)
			f.input.CursorEnd()
		}
	case keybinds.ActionHistoryNext:
		if v, ok := f.ring(f.label).next(); ok {
			f.input.SetValue(v)
			f.input.CursorEnd()
		}
	case keybinds.ActionQuitForce:
		q.push(action.Quit{})
	default:
		f.input, _ = f.input.Update(msg)
	}
}

func (f *footer) view(width int) string {
	f.input.Width = max(1, width-len(f.input.Prompt)-1)
	return f.input.View()
}
