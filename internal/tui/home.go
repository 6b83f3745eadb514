package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/openapi-tui/internal/action"
	"github.com/studiowebux/openapi-tui/internal/catalog"
	"github.com/studiowebux/openapi-tui/internal/request"
	"github.com/studiowebux/openapi-tui/internal/schema"
)

// requestTabLocations pairs requestTabs with parameter locations; Body has none
var requestTabLocations = []string{"", request.InQuery, request.InHeader, request.InPath, request.InCookie}

// schemaTab is one selectable root of a schema pane
type schemaTab struct {
	label string
	root  any
}

// homePage browses the catalog and the schemas of the selected operation
type homePage struct {
	s *State
	layout

	tag      int // 0 is [ALL]
	reqTab   int
	respTab  int
	respTabs []schemaTab
	reqNav   *schema.Navigator
	respNav  *schema.Navigator
	shown    string
}

func newHomePage(s *State) *homePage {
	h := &homePage{
		s:       s,
		layout:  newLayout(paneApis, paneTags, paneEndpoint, paneRequestSchema, paneResponseSchema),
		reqNav:  schema.New(s.doc.Schemas()),
		respNav: schema.New(s.doc.Schemas()),
		shown:   "\x00",
	}
	return h
}

// tagNames is the tag pane list, [ALL] first
func (h *homePage) tagNames() []string {
	return append([]string{"[ALL]"}, h.s.catalog.Tags()...)
}

// refresh rebuilds the schema panes when the selected operation changed
func (h *homePage) refresh(q *queue) {
	entry, ok := h.s.catalog.Active()
	key := ""
	if ok {
		key = entry.Key()
	}
	if key == h.shown {
		return
	}
	h.shown = key
	h.respTab = 0
	h.respTabs = nil
	if ok {
		h.respTabs = h.responseTabs(entry)
	}
	h.setRequestTab(h.reqTab, q)
	h.setResponseTab(0, q)
}

func (h *homePage) requestRoot(entry catalog.Entry, tab int) any {
	doc := h.s.doc
	op := doc.Operation(entry.Path, entry.Method)
	if op == nil {
		return nil
	}

	if tab == 0 {
		body := doc.RequestBody(op.RequestBody)
		if body == nil {
			return nil
		}
		mt, ok := request.PreferredMediaType(body.Content)
		if !ok {
			return nil
		}
		return body.Content.Get(mt).Schema
	}

	in := requestTabLocations[tab]
	var params []any
	for _, p := range doc.Parameters(entry.Path, entry.Method) {
		if p.In == in {
			params = append(params, p)
		}
	}
	if len(params) == 0 {
		return nil
	}
	return params
}

func (h *homePage) responseTabs(entry catalog.Entry) []schemaTab {
	op := h.s.doc.Operation(entry.Path, entry.Method)
	if op == nil || op.Responses == nil {
		return nil
	}

	codes := make([]string, 0, op.Responses.Len())
	for code := range op.Responses.Map() {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var tabs []schemaTab
	for _, code := range codes {
		resp := h.s.doc.Response(op.Responses.Value(code))
		if resp == nil {
			continue
		}
		if len(resp.Content) == 0 {
			desc := ""
			if resp.Description != nil {
				desc = *resp.Description
			}
			tabs = append(tabs, schemaTab{label: code, root: map[string]string{"description": desc}})
			continue
		}
		for _, mt := range sortedMedia(resp.Content) {
			tabs = append(tabs, schemaTab{label: code + " " + mt, root: resp.Content.Get(mt).Schema})
		}
	}
	return tabs
}

func sortedMedia[V any](content map[string]V) []string {
	types := make([]string, 0, len(content))
	for mt := range content {
		types = append(types, mt)
	}
	sort.Strings(types)
	return types
}

func (h *homePage) setRequestTab(i int, q *queue) {
	if i < 0 || i >= len(requestTabs) {
		return
	}
	h.reqTab = i
	var root any
	if entry, ok := h.s.catalog.Active(); ok {
		root = h.requestRoot(entry, i)
	}
	if err := h.reqNav.Set(root); err != nil {
		q.push(action.TimedStatusLine{Text: err.Error(), Duration: StatusTimeout})
	}
}

func (h *homePage) setResponseTab(i int, q *queue) {
	var root any
	if i >= 0 && i < len(h.respTabs) {
		h.respTab = i
		root = h.respTabs[i].root
	} else if len(h.respTabs) > 0 {
		return
	}
	if err := h.respNav.Set(root); err != nil {
		q.push(action.TimedStatusLine{Text: err.Error(), Duration: StatusTimeout})
	}
}

// syncTag points the tag cursor at the catalog's active tag
func (h *homePage) syncTag() {
	h.tag = 0
	for i, t := range h.s.catalog.Tags() {
		if t == h.s.catalog.Tag() {
			h.tag = i + 1
		}
	}
}

func (h *homePage) update(a action.Action, q *queue) {
	switch a := a.(type) {
	case action.Nav:
		h.nav(a.Kind, q)
	case action.Tab:
		h.selectTab(a.Index, q)
	case action.Update:
		h.syncTag()
		h.refresh(q)
	case action.Focus:
		if h.focused() == paneResponseSchema {
			q.push(action.TimedStatusLine{Text: responseHint, Duration: StatusTimeout})
		}
	}
}

func (h *homePage) nav(kind action.NavKind, q *queue) {
	switch kind {
	case action.FocusNext, action.FocusPrev:
		h.update(action.Unfocus{}, q)
		var moved bool
		if kind == action.FocusNext {
			moved = h.next()
		} else {
			moved = h.prev()
		}
		if moved {
			h.update(action.Focus{}, q)
		}
		return
	case action.ToggleFullscreen:
		h.toggleFullscreen()
		return
	}

	switch h.focused() {
	case paneApis:
		c := h.s.catalog
		switch kind {
		case action.Up:
			c.Prev()
		case action.Down:
			c.Next()
		case action.Top:
			c.Select(0)
		case action.Bottom:
			c.Select(c.Len() - 1)
		case action.Submit:
			if entry, ok := c.Active(); ok {
				q.push(action.NewCall{Key: entry.Key()})
			}
		}
		h.refresh(q)

	case paneTags:
		n := len(h.tagNames())
		switch kind {
		case action.Up:
			h.tag = (h.tag - 1 + n) % n
		case action.Down:
			h.tag = (h.tag + 1) % n
		case action.Submit:
			tag := ""
			if h.tag > 0 {
				tag = h.tagNames()[h.tag]
			}
			q.push(action.SetTag{Tag: tag})
		}

	case paneRequestSchema:
		switch kind {
		case action.TabNext:
			h.setRequestTab((h.reqTab+1)%len(requestTabs), q)
		case action.TabPrev:
			h.setRequestTab((h.reqTab-1+len(requestTabs))%len(requestTabs), q)
		default:
			navigate(h.reqNav, kind, q)
		}

	case paneResponseSchema:
		n := max(1, len(h.respTabs))
		switch kind {
		case action.TabNext:
			h.setResponseTab((h.respTab+1)%n, q)
		case action.TabPrev:
			h.setResponseTab((h.respTab-1+n)%n, q)
		default:
			navigate(h.respNav, kind, q)
		}
	}
}

// navigate applies a cursor or drill action to a schema navigator
func navigate(nav *schema.Navigator, kind action.NavKind, q *queue) {
	switch kind {
	case action.Up:
		nav.Up()
	case action.Down:
		nav.Down()
	case action.Top:
		nav.Top()
	case action.Bottom:
		nav.Bottom()
	case action.Go, action.Submit:
		if _, err := nav.Go(); err != nil {
			q.push(action.TimedStatusLine{Text: err.Error(), Duration: StatusTimeout})
		}
	case action.Back:
		if err := nav.Back(); err != nil {
			q.push(action.TimedStatusLine{Text: err.Error(), Duration: StatusTimeout})
		}
	}
}

func (h *homePage) selectTab(i int, q *queue) {
	switch h.focused() {
	case paneRequestSchema:
		h.setRequestTab(i, q)
	case paneResponseSchema:
		h.setResponseTab(i, q)
	}
}

func (h *homePage) view(width, height int) string {
	if h.fullscreen >= 0 {
		return h.renderPane(h.panes[h.fullscreen], width, height)
	}

	sidebar := max(SidebarMinWidth, int(float64(width)*SidebarWidthRatio))
	if sidebar > width/2 && width < 2*SidebarMinWidth+10 {
		sidebar = width / 2
	}
	main := width - sidebar

	left := lipgloss.JoinVertical(lipgloss.Left,
		h.renderPane(paneApis, sidebar, height-TagsPaneHeight),
		h.renderPane(paneTags, sidebar, TagsPaneHeight),
	)

	rest := height - AddressPaneHeight
	right := lipgloss.JoinVertical(lipgloss.Left,
		h.renderPane(paneEndpoint, main, AddressPaneHeight),
		h.renderPane(paneRequestSchema, main, rest/2),
		h.renderPane(paneResponseSchema, main, rest-rest/2),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (h *homePage) renderPane(kind paneKind, width, height int) string {
	focused := h.isFocused(kind)
	rows := height - MinimalBorderWidth - 1

	switch kind {
	case paneApis:
		c := h.s.catalog
		visible := c.Visible()
		title := fmt.Sprintf("Apis (%d/%d)", len(visible), len(c.Entries()))
		if c.Filter() != "" {
			title += " /" + c.Filter()
		}
		start, end := window(len(visible), c.Selection(), rows)
		var lines []string
		for i := start; i < end; i++ {
			lines = append(lines, h.renderEntry(visible[i], i == c.Selection()))
		}
		if len(visible) == 0 {
			lines = append(lines, styleSubtle.Render("no operations match"))
		}
		return box(title, strings.Join(lines, "\n"), width, height, focused)

	case paneTags:
		names := h.tagNames()
		start, end := window(len(names), h.tag, rows)
		var lines []string
		for i := start; i < end; i++ {
			mark := "  "
			if (i == 0 && h.s.catalog.Tag() == "") || (i > 0 && names[i] == h.s.catalog.Tag()) {
				mark = "* "
			}
			line := mark + names[i]
			if i == h.tag && focused {
				line = styleSelected.Render(line)
			}
			lines = append(lines, line)
		}
		return box("Tags", strings.Join(lines, "\n"), width, height, focused)

	case paneEndpoint:
		entry, ok := h.s.catalog.Active()
		if !ok {
			return box("Address", "", width, height, focused)
		}
		line := methodStyle(entry.Method).Render(entry.Method) + " " + styleSubtle.Render(h.s.baseURL) + entry.Path
		if entry.Kind == catalog.KindWebhook {
			line = methodStyle(entry.Method).Render(entry.Method) + " " + styleWarning.Render("webhook "+entry.Path)
		}
		return box("Address", line, width, height, focused)

	case paneRequestSchema:
		body := renderTabs(requestTabs, h.reqTab) + "\n" + renderSchema(h.reqNav, rows-1, focused)
		return box("Request", body, width, height, focused)

	case paneResponseSchema:
		labels := make([]string, len(h.respTabs))
		for i, t := range h.respTabs {
			labels[i] = t.label
		}
		body := renderTabs(labels, h.respTab) + "\n" + renderSchema(h.respNav, rows-1, focused)
		return box("Response", body, width, height, focused)
	}
	return ""
}

func (h *homePage) renderEntry(e catalog.Entry, selected bool) string {
	mark := " "
	if h.s.sessions.Suspended(e.Key()) {
		mark = "•"
	}
	if selected {
		return styleSelected.Render(fmt.Sprintf("%s%-7s %s", mark, e.Method, e.Path))
	}
	line := mark + methodStyle(e.Method).Render(fmt.Sprintf("%-7s", e.Method)) + " " + e.Path
	if e.Summary != "" {
		line += " " + styleSubtle.Render(e.Summary)
	}
	return line
}
