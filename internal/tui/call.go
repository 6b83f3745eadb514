package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/openapi-tui/internal/action"
	"github.com/studiowebux/openapi-tui/internal/executor"
	"github.com/studiowebux/openapi-tui/internal/filter"
	"github.com/studiowebux/openapi-tui/internal/keybinds"
	"github.com/studiowebux/openapi-tui/internal/request"
	"github.com/studiowebux/openapi-tui/internal/session"
	"github.com/studiowebux/openapi-tui/internal/types"
)

// callPage edits and dials one session
type callPage struct {
	s    *State
	sess *session.Session
	layout

	paramTab int
	paramRow int

	editing bool
	editIdx int
	editor  textinput.Model

	inserting bool
	body      textarea.Model

	response   viewport.Model
	shownRec   *types.ResponseRecord
	shownQuery string
	filtered   string
	filterErr  error
}

func newCallPage(s *State, sess *session.Session) *callPage {
	ti := textinput.New()
	ti.Cursor.SetMode(cursor.CursorStatic)

	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Cursor.SetMode(cursor.CursorStatic)
	ta.SetValue(sess.Draft.Body)

	p := &callPage{
		s:        s,
		sess:     sess,
		layout:   newLayout(paneAddress, paneParams, paneBody, paneResponse),
		paramTab: sess.View.ParamTab,
		paramRow: sess.View.ParamRow,
		editor:   ti,
		body:     ta,
		response: viewport.New(80, 20),
	}
	p.restore(sess.FocusedPane, sess.Fullscreen)
	p.refreshResponse()
	p.response.SetYOffset(sess.View.ResponseLine)
	return p
}

// save writes the page state back into the session before it leaves the stack
func (p *callPage) save() {
	if p.inserting {
		p.commitBody()
	}
	p.editing = false
	p.sess.FocusedPane = p.focus
	p.sess.Fullscreen = p.fullscreen
	p.sess.View = session.View{
		ParamTab:     p.paramTab,
		ParamRow:     p.paramRow,
		ResponseLine: p.response.YOffset,
	}
}

func (p *callPage) draft() *request.Draft { return p.sess.Draft }

// rows returns the parameter indexes of the active tab
func (p *callPage) rows() []int {
	return p.draft().In(request.Locations[p.paramTab])
}

// handleKey gives the open editor first claim on a key
func (p *callPage) handleKey(msg tea.KeyMsg, keys *keybinds.Registry, q *queue) bool {
	switch {
	case p.editing:
		act, _ := keys.Match(keybinds.ContextEditor, msg.String())
		switch act {
		case keybinds.ActionTextSubmit:
			p.commitParam()
			q.push(action.Update{})
		case keybinds.ActionTextCancel:
			p.editing = false
			p.editor.Blur()
		case keybinds.ActionQuitForce:
			q.push(action.Quit{})
		default:
			p.editor, _ = p.editor.Update(msg)
		}
		return true

	case p.inserting:
		act, _ := keys.Match(keybinds.ContextEditor, msg.String())
		switch act {
		case keybinds.ActionTextCancel:
			p.commitBody()
		case keybinds.ActionQuitForce:
			q.push(action.Quit{})
		default:
			p.body, _ = p.body.Update(msg)
		}
		return true
	}
	return false
}

// commitParam stores the editor value; empty input unsets the parameter
func (p *callPage) commitParam() {
	p.editing = false
	p.editor.Blur()
	if p.editIdx < 0 || p.editIdx >= len(p.draft().Params) {
		return
	}
	param := p.draft().Params[p.editIdx]
	var value *string
	if v := p.editor.Value(); v != "" {
		value = &v
	}
	p.draft().Set(param.In, param.Name, value)
}

func (p *callPage) commitBody() {
	p.inserting = false
	p.body.Blur()
	p.draft().Body = p.body.Value()
}

// SetBody replaces the request body text
func (p *callPage) SetBody(text string) {
	p.draft().Body = text
	p.body.SetValue(text)
}

func (p *callPage) update(a action.Action, q *queue) {
	switch a := a.(type) {
	case action.Nav:
		p.nav(a.Kind, q)
	case action.Tab:
		p.selectTab(a.Index)
	case action.Update:
		p.refreshResponse()
	case action.Unfocus:
		if p.inserting {
			p.commitBody()
		}
	}
}

func (p *callPage) nav(kind action.NavKind, q *queue) {
	switch kind {
	case action.FocusNext, action.FocusPrev:
		p.update(action.Unfocus{}, q)
		if kind == action.FocusNext {
			p.next()
		} else {
			p.prev()
		}
		p.update(action.Focus{}, q)
		return
	case action.ToggleFullscreen:
		p.toggleFullscreen()
		return
	}

	d := p.draft()
	switch p.focused() {
	case paneAddress:
		if kind == action.Submit {
			q.push(action.Dial{})
		}

	case paneParams:
		rows := p.rows()
		switch kind {
		case action.Up:
			if p.paramRow > 0 {
				p.paramRow--
			}
		case action.Down:
			if p.paramRow < len(rows)-1 {
				p.paramRow++
			}
		case action.Top:
			p.paramRow = 0
		case action.Bottom:
			p.paramRow = max(0, len(rows)-1)
		case action.TabNext:
			p.selectTab((p.paramTab + 1) % len(paramTabs))
		case action.TabPrev:
			p.selectTab((p.paramTab - 1 + len(paramTabs)) % len(paramTabs))
		case action.Submit:
			if p.paramRow < len(rows) {
				p.editIdx = rows[p.paramRow]
				value := ""
				if v := d.Params[p.editIdx].Value; v != nil {
					value = *v
				}
				p.editor.SetValue(value)
				p.editor.CursorEnd()
				p.editor.Focus()
				p.editing = true
			}
		}

	case paneBody:
		n := len(d.ContentTypes)
		switch kind {
		case action.TabNext:
			if n > 0 {
				p.selectTab((d.ContentType + 1) % n)
			}
		case action.TabPrev:
			if n > 0 {
				p.selectTab((d.ContentType - 1 + n) % n)
			}
		case action.Submit:
			if n > 0 {
				p.body.SetValue(d.Body)
				p.body.Focus()
				p.inserting = true
			}
		}

	case paneResponse:
		n := len(d.Accepts)
		switch kind {
		case action.Up:
			p.response.LineUp(1)
		case action.Down:
			p.response.LineDown(1)
		case action.Top:
			p.response.GotoTop()
		case action.Bottom:
			p.response.GotoBottom()
		case action.TabNext:
			if n > 0 {
				p.selectTab((d.Accept + 1) % n)
			}
		case action.TabPrev:
			if n > 0 {
				p.selectTab((d.Accept - 1 + n) % n)
			}
		case action.Submit:
			q.push(action.Dial{})
		}
	}
}

func (p *callPage) selectTab(i int) {
	d := p.draft()
	switch p.focused() {
	case paneParams:
		if i >= 0 && i < len(paramTabs) {
			p.paramTab = i
			p.paramRow = 0
		}
	case paneBody:
		if i >= 0 && i < len(d.ContentTypes) {
			d.ContentType = i
		}
	case paneResponse:
		if i >= 0 && i < len(d.Accepts) {
			d.Accept = i
		}
	}
}

// refreshResponse re-renders the response viewport when the record or the
// session filter changed
func (p *callPage) refreshResponse() {
	rec := p.s.responses[p.sess.Key]
	if rec == p.shownRec && p.sess.Filter == p.shownQuery && rec != nil {
		return
	}
	p.shownRec, p.shownQuery = rec, p.sess.Filter
	p.filtered, p.filterErr = "", nil

	if rec != nil && !rec.Failed() {
		p.filtered = filter.Pretty(rec.Body)
		if p.sess.Filter != "" {
			ctx, cancel := context.WithTimeout(context.Background(), FilterTimeout)
			p.filtered, p.filterErr = filter.Apply(ctx, rec.Body, p.sess.Filter)
			cancel()
		}
	}
	p.response.SetContent(p.renderRecord(rec))
}

// Body returns the response body as shown, after filtering
func (p *callPage) Body() string {
	if p.filterErr != nil {
		return ""
	}
	return p.filtered
}

func (p *callPage) renderRecord(rec *types.ResponseRecord) string {
	if rec == nil {
		if p.s.dialer.Pending(p.sess.Key) {
			return styleSubtle.Render("dialing…")
		}
		return styleSubtle.Render("no response yet, submit to dial")
	}
	if rec.Failed() {
		return styleError.Render("✗ " + rec.Error)
	}

	var lines []string
	size := len(rec.Body)
	if rec.ContentLength != nil && *rec.ContentLength >= 0 {
		size = int(*rec.ContentLength)
	}
	lines = append(lines, fmt.Sprintf("%s  %s  %s  %s",
		statusStyle(rec.Status).Render(rec.StatusText),
		styleSubtle.Render(rec.Protocol),
		executor.FormatSize(size),
		executor.FormatDuration(rec.Duration),
	))
	for _, h := range rec.Headers {
		lines = append(lines, styleSubtle.Render(h.Name+": ")+h.Value)
	}
	lines = append(lines, "")
	if p.sess.Filter != "" {
		lines = append(lines, styleWarning.Render("filter: "+p.sess.Filter))
	}
	if p.filterErr != nil {
		lines = append(lines, styleError.Render(p.filterErr.Error()))
	} else {
		lines = append(lines, p.filtered)
	}
	return strings.Join(lines, "\n")
}

func (p *callPage) view(width, height int) string {
	if p.fullscreen >= 0 {
		return p.renderPane(p.panes[p.fullscreen], width, height)
	}

	rest := height - AddressPaneHeight
	middle := rest / 2
	half := width / 2
	return lipgloss.JoinVertical(lipgloss.Left,
		p.renderPane(paneAddress, width, AddressPaneHeight),
		lipgloss.JoinHorizontal(lipgloss.Top,
			p.renderPane(paneParams, half, middle),
			p.renderPane(paneBody, width-half, middle),
		),
		p.renderPane(paneResponse, width, rest-middle),
	)
}

func (p *callPage) renderPane(kind paneKind, width, height int) string {
	focused := p.isFocused(kind)
	inner := max(1, width-MinimalBorderWidth)
	rows := max(1, height-MinimalBorderWidth-PaneTitleLines)
	d := p.draft()
	entry := p.sess.Entry

	switch kind {
	case paneAddress:
		req, err := request.Build(d, entry.Method, entry.Path, p.s.baseURL)
		line := methodStyle(entry.Method).Render(entry.Method) + " "
		if err != nil {
			line += styleError.Render(err.Error())
		} else {
			line += req.URL
		}
		if missing := d.MissingRequired(); len(missing) > 0 {
			line += "  " + styleWarning.Render("missing: "+strings.Join(missing, ", "))
		}
		return box("Address · "+p.sess.Key, line, width, height, focused)

	case paneParams:
		var lines []string
		lines = append(lines, renderTabs(paramTabs, p.paramTab))
		idx := p.rows()
		if len(idx) == 0 {
			lines = append(lines, styleSubtle.Render("no parameters"))
		}
		start, end := window(len(idx), p.paramRow, rows)
		for r := start; r < end; r++ {
			param := d.Params[idx[r]]
			name := param.Name
			if param.Required {
				name += "*"
			}
			value := styleSubtle.Render("<unset>")
			if param.Value != nil {
				value = *param.Value
			}
			if p.editing && p.editIdx == idx[r] {
				p.editor.Width = max(1, inner-len(name)-4)
				value = p.editor.View()
			}
			line := fmt.Sprintf("%s = %s", name, value)
			if focused && r == p.paramRow && !p.editing {
				line = styleSelected.Render(fmt.Sprintf("%s = %s", name, plainValue(param)))
			}
			lines = append(lines, line)
		}
		return box("Parameters", strings.Join(lines, "\n"), width, height, focused)

	case paneBody:
		title := "Body"
		if p.inserting {
			title += " -- INSERT --"
		}
		var content string
		if len(d.ContentTypes) == 0 {
			content = styleSubtle.Render("no request body")
		} else if p.inserting {
			p.body.SetWidth(inner)
			p.body.SetHeight(rows)
			content = p.body.View()
		} else {
			content = d.Body
		}
		return box(title, renderTabs(d.ContentTypes, d.ContentType)+"\n"+content, width, height, focused)

	case paneResponse:
		p.response.Width = inner
		p.response.Height = rows
		return box("Response", renderTabs(d.Accepts, d.Accept)+"\n"+p.response.View(), width, height, focused)
	}
	return ""
}

func plainValue(p request.Param) string {
	if p.Value == nil {
		return "<unset>"
	}
	return *p.Value
}
