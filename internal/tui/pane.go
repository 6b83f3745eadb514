package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/studiowebux/openapi-tui/internal/schema"
)

// paneKind is the closed set of panes; pages dispatch on it with a switch
type paneKind int

const (
	paneApis paneKind = iota
	paneTags
	paneEndpoint
	paneRequestSchema
	paneResponseSchema
	paneAddress
	paneParams
	paneBody
	paneResponse
)

var paneTitles = map[paneKind]string{
	paneApis:           "Apis",
	paneTags:           "Tags",
	paneEndpoint:       "Address",
	paneRequestSchema:  "Request",
	paneResponseSchema: "Response",
	paneAddress:        "Address",
	paneParams:         "Parameters",
	paneBody:           "Body",
	paneResponse:       "Response",
}

func (k paneKind) String() string {
	if t, ok := paneTitles[k]; ok {
		return t
	}
	return fmt.Sprintf("pane(%d)", int(k))
}

// layout tracks focus and fullscreen over a fixed list of panes
type layout struct {
	panes      []paneKind
	focus      int
	fullscreen int // -1 when no pane is fullscreen
}

func newLayout(panes ...paneKind) layout {
	return layout{panes: panes, fullscreen: -1}
}

func (l *layout) focused() paneKind { return l.panes[l.focus] }

func (l *layout) isFocused(k paneKind) bool { return l.focused() == k }

// next and prev move focus circularly; a fullscreen pane keeps it
func (l *layout) next() bool {
	if l.fullscreen >= 0 || len(l.panes) < 2 {
		return false
	}
	l.focus = (l.focus + 1) % len(l.panes)
	return true
}

func (l *layout) prev() bool {
	if l.fullscreen >= 0 || len(l.panes) < 2 {
		return false
	}
	l.focus = (l.focus - 1 + len(l.panes)) % len(l.panes)
	return true
}

func (l *layout) toggleFullscreen() {
	if l.fullscreen >= 0 {
		l.fullscreen = -1
		return
	}
	l.fullscreen = l.focus
}

// restore applies saved indexes, ignoring out-of-range values
func (l *layout) restore(focus, fullscreen int) {
	if focus >= 0 && focus < len(l.panes) {
		l.focus = focus
	}
	if fullscreen >= 0 && fullscreen < len(l.panes) {
		l.fullscreen = fullscreen
		l.focus = fullscreen
	}
}

// box draws a bordered pane of the given outer size
func box(title, body string, width, height int, focused bool) string {
	border := colorGray
	if focused {
		border = colorGreen
	}
	inner := max(1, width-MinimalBorderWidth)
	rows := max(1, height-MinimalBorderWidth)

	lines := append([]string{styleTitle.Render(title)}, strings.Split(body, "\n")...)
	if len(lines) > rows {
		lines = lines[:rows]
	}
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, inner, "…")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(inner).
		Height(rows).
		Render(strings.Join(lines, "\n"))
}

// renderTabs draws "1 Body  2 Query" with the active tab highlighted
func renderTabs(names []string, active int) string {
	if len(names) == 0 {
		return styleSubtle.Render("(none)")
	}
	parts := make([]string, len(names))
	for i, n := range names {
		label := fmt.Sprintf(" %d %s ", i+1, n)
		if i == active {
			parts[i] = styleSelected.Render(label)
		} else {
			parts[i] = styleSubtle.Render(label)
		}
	}
	return strings.Join(parts, "")
}

// renderSchema draws navigator lines with highlighting, scrolled so the
// cursor stays visible
func renderSchema(nav *schema.Navigator, rows int, focused bool) string {
	lines := nav.Lines()
	if len(lines) == 0 {
		return styleSubtle.Render("(no schema)")
	}

	var out []string
	if name := nav.Name(); name != "" {
		out = append(out, styleSubtle.Render(fmt.Sprintf("← %s (depth %d)", name, nav.Depth())))
		rows--
	}

	start := 0
	if cur := nav.Cursor(); rows > 0 && cur >= rows {
		start = cur - rows + 1
	}
	for i := start; i < len(lines) && i < start+max(rows, 1); i++ {
		out = append(out, renderLine(lines[i], focused && i == nav.Cursor()))
	}
	return strings.Join(out, "\n")
}

func renderLine(l schema.Line, selected bool) string {
	if selected {
		return styleSelected.Render(l.Text)
	}
	if l.Ref != "" {
		indent := l.Text[:len(l.Text)-len(strings.TrimLeft(l.Text, " "))]
		return indent + styleRef.Render(strings.TrimLeft(l.Text, " "))
	}
	var sb strings.Builder
	for _, seg := range l.Segments {
		sb.WriteString(tokenStyle(seg.Token).Render(seg.Text))
	}
	return sb.String()
}

// window returns the slice bounds showing rows items around selected
func window(total, selected, rows int) (int, int) {
	if rows <= 0 || total <= rows {
		return 0, total
	}
	start := selected - rows/2
	start = max(0, min(start, total-rows))
	return start, start + rows
}
