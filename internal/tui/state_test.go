package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/openapi-tui/internal/action"
	"github.com/studiowebux/openapi-tui/internal/config"
	"github.com/studiowebux/openapi-tui/internal/keybinds"
	"github.com/studiowebux/openapi-tui/internal/request"
	"github.com/studiowebux/openapi-tui/internal/types"
)

func TestNew_InitializesStateCorrectly(t *testing.T) {
	s, _, _ := CreateTestState(t, config.Defaults())

	AssertModelField(t, "operations", len(s.catalog.Entries()), 7)
	AssertModelField(t, "baseURL", s.baseURL, s.doc.BaseURL())
	AssertModelField(t, "context()", s.context(), keybinds.ContextHome)
	AssertModelField(t, "home focus", s.home.focused(), paneApis)
	AssertModelField(t, "depth", s.sessions.Depth(), 0)
}

func TestNew_RequiresDocumentAndDialer(t *testing.T) {
	if _, err := New(Options{Dialer: newFakeDialer()}); err == nil {
		t.Error("New() without document should fail")
	}
	s, _, _ := CreateTestState(t, config.Defaults())
	if _, err := New(Options{Document: s.doc}); err == nil {
		t.Error("New() without dialer should fail")
	}
}

func TestNew_SettingsBaseURLWins(t *testing.T) {
	settings := config.Defaults()
	settings.BaseURL = "http://127.0.0.1:8080"
	s, _, _ := CreateTestState(t, settings)

	AssertModelField(t, "baseURL", s.baseURL, "http://127.0.0.1:8080")
}

func TestDispatch_DialAndDeliver(t *testing.T) {
	s, dialer, _ := CreateTestState(t, config.Defaults())

	press(t, s, "enter")
	AssertModelField(t, "depth", s.sessions.Depth(), 1)
	AssertModelField(t, "context()", s.context(), keybinds.ContextCall)

	press(t, s, "ctrl+d")
	if len(dialer.dialed) != 1 {
		t.Fatalf("dialed = %d, want 1", len(dialer.dialed))
	}
	call := dialer.dialed[0]
	AssertModelField(t, "key", call.Key, "listPets")
	AssertModelField(t, "method", call.Request.Method, "GET")
	if !strings.Contains(call.Request.URL, "/pets?limit=20") {
		t.Errorf("URL = %q, want the default limit", call.Request.URL)
	}
	if _, ok := s.Response("listPets"); ok {
		t.Error("Response() before Tick should be empty")
	}

	// Nothing is delivered outside a Tick
	dialer.finish("listPets", okResponse(`{"id":1}`))
	press(t, s, "j")
	if _, ok := s.Response("listPets"); ok {
		t.Error("Response() delivered outside Tick")
	}

	send(t, s, tickMsg{})
	rec, ok := s.Response("listPets")
	if !ok {
		t.Fatal("Response() after Tick missing")
	}
	AssertModelField(t, "status", rec.Status, 200)
	if !strings.Contains(s.status.text, "200 OK") {
		t.Errorf("status = %q, want the response status", s.status.text)
	}
	if !strings.Contains(s.topPage().Body(), `"id": 1`) {
		t.Errorf("Body() = %q, want pretty JSON", s.topPage().Body())
	}
}

func TestDispatch_FailedDialShowsError(t *testing.T) {
	s, dialer, _ := CreateTestState(t, config.Defaults())

	press(t, s, "enter", "ctrl+d")
	dialer.finish("listPets", &types.ResponseRecord{State: types.ResponseFailed, Error: "connection refused"})
	send(t, s, tickMsg{})

	AssertModelField(t, "isError", s.status.isError, true)
	if !strings.Contains(s.status.text, "connection refused") {
		t.Errorf("status = %q", s.status.text)
	}
	rec, ok := s.Response("listPets")
	if !ok || !rec.Failed() {
		t.Errorf("Response() = %+v, want a failed record", rec)
	}
}

func TestDispatch_HandlerErrorIsNotFatal(t *testing.T) {
	s, _, _ := CreateTestState(t, config.Defaults())

	if err := s.HandleEvent(action.Dial{}); err != nil {
		t.Fatalf("HandleEvent() error = %v, want nil", err)
	}
	AssertModelField(t, "isError", s.status.isError, true)
	AssertModelField(t, "status", s.status.text, ErrNoCall.Error())
}

func TestDrain_Overflow(t *testing.T) {
	tests := []struct {
		name    string
		actions int
		wantErr bool
	}{
		{name: "at the bound", actions: MaxDrain},
		{name: "past the bound", actions: MaxDrain + 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := CreateTestState(t, config.Defaults())
			q := &queue{}
			for i := 0; i < tt.actions; i++ {
				q.push(action.Render{})
			}

			err := s.drain(q)
			if (err != nil) != tt.wantErr {
				t.Fatalf("drain() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !IsFatal(err) || !errors.Is(err, ErrDrainOverflow) {
					t.Errorf("drain() error = %v, want fatal overflow", err)
				}
			}
		})
	}
}

func TestTick_ClearsChord(t *testing.T) {
	s, _, _ := CreateTestState(t, config.Defaults())
	press(t, s, "enter")

	press(t, s, "g")
	AssertModelField(t, "Pending()", s.keys.Pending(keybinds.ContextCall), "g")

	send(t, s, tickMsg{})
	AssertModelField(t, "Pending() after Tick", s.keys.Pending(keybinds.ContextCall), "")

	// A fresh g starts a new chord instead of completing the old one
	press(t, s, "g")
	AssertModelField(t, "Pending()", s.keys.Pending(keybinds.ContextCall), "g")
}

func TestTick_ExpiresTimedStatus(t *testing.T) {
	s, _, _ := CreateTestState(t, config.Defaults())
	now := s.now()

	send(t, s, action.TimedStatusLine{Text: "hello", Duration: StatusTimeout})
	send(t, s, tickMsg{})
	AssertModelField(t, "status", s.status.text, "hello")

	s.now = func() time.Time { return now.Add(StatusTimeout) }
	send(t, s, tickMsg{})
	AssertModelField(t, "status", s.status.text, "")

	send(t, s, action.StatusLine{Text: "sticky"})
	s.now = func() time.Time { return now.Add(time.Hour) }
	send(t, s, tickMsg{})
	AssertModelField(t, "status", s.status.text, "sticky")
}

func TestHome_FullscreenKeepsFocus(t *testing.T) {
	s, _, _ := CreateTestState(t, config.Defaults())

	press(t, s, "f")
	AssertModelField(t, "fullscreen", s.home.fullscreen, 0)

	press(t, s, "l")
	AssertModelField(t, "focus", s.home.focused(), paneApis)

	press(t, s, "f", "l")
	AssertModelField(t, "fullscreen", s.home.fullscreen, -1)
	AssertModelField(t, "focus", s.home.focused(), paneTags)
}

func TestHome_ResponsePaneHint(t *testing.T) {
	s, _, _ := CreateTestState(t, config.Defaults())

	press(t, s, "l", "l", "l")
	AssertModelField(t, "focus", s.home.focused(), paneRequestSchema)
	if s.status.text == responseHint {
		t.Fatal("hint shown before the response pane was focused")
	}

	press(t, s, "l")
	AssertModelField(t, "focus", s.home.focused(), paneResponseSchema)
	AssertModelField(t, "status", s.status.text, responseHint)
}

func TestHome_MouseWheelMovesSelection(t *testing.T) {
	s, _, _ := CreateTestState(t, config.Defaults())

	send(t, s, tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	AssertModelField(t, "Selection()", s.catalog.Selection(), 1)

	send(t, s, tea.MouseMsg{Button: tea.MouseButtonWheelUp})
	AssertModelField(t, "Selection()", s.catalog.Selection(), 0)
}

func TestFooter_FilterAndCommandHistory(t *testing.T) {
	s, _, _ := CreateTestState(t, config.Defaults())

	press(t, s, "/")
	AssertModelField(t, "footer.active", s.footer.active, true)
	AssertModelField(t, "context()", s.context(), keybinds.ContextFooter)

	// While the footer is open, bound keys are text
	press(t, s, "q", "enter")
	AssertModelField(t, "quitting", s.quitting, false)
	AssertModelField(t, "Filter()", s.catalog.Filter(), "q")
	AssertModelField(t, "footer.active", s.footer.active, false)

	press(t, s, ":", "tag pets", "enter")
	AssertModelField(t, "Tag()", s.catalog.Tag(), "pets")

	press(t, s, ":", "tag store", "enter")
	AssertModelField(t, "Tag()", s.catalog.Tag(), "store")

	press(t, s, ":", "up")
	AssertModelField(t, "footer value", s.footer.input.Value(), "tag store")
	press(t, s, "up")
	AssertModelField(t, "footer value", s.footer.input.Value(), "tag pets")
	press(t, s, "esc")
	AssertModelField(t, "footer.active", s.footer.active, false)
	AssertModelField(t, "Tag()", s.catalog.Tag(), "store")
}

func TestFooter_ForceQuit(t *testing.T) {
	s, _, _ := CreateTestState(t, config.Defaults())

	press(t, s, ":", "ctrl+c")
	AssertModelField(t, "quitting", s.quitting, true)
}

func TestQuit(t *testing.T) {
	s, _, _ := CreateTestState(t, config.Defaults())

	press(t, s, "q")
	AssertModelField(t, "quitting", s.quitting, true)
}

func TestNewCall_WarnsAboutRequired(t *testing.T) {
	s, _, _ := CreateTestState(t, config.Defaults())

	send(t, s, action.NewCall{Key: "getPet"})
	if !strings.Contains(s.status.text, "required: path:id") {
		t.Errorf("status = %q, want the missing path parameter", s.status.text)
	}
}

func TestNewCall_UnknownKey(t *testing.T) {
	s, _, _ := CreateTestState(t, config.Defaults())

	send(t, s, action.NewCall{Key: "nope"})
	AssertModelField(t, "depth", s.sessions.Depth(), 0)
	AssertModelField(t, "isError", s.status.isError, true)
}

func TestDial_WithoutRequiredStillDials(t *testing.T) {
	s, dialer, _ := CreateTestState(t, config.Defaults())

	send(t, s, action.NewCall{Key: "getPet"})
	press(t, s, "ctrl+d")
	AssertModelField(t, "dialed", len(dialer.dialed), 1)
	if !strings.Contains(s.status.text, "dialing without path:id") {
		t.Errorf("status = %q", s.status.text)
	}
}

func TestHangUp_ResumeRestoresDraftAndView(t *testing.T) {
	s, _, _ := CreateTestState(t, config.Defaults())
	send(t, s, action.NewCall{Key: "getPet"})

	// Address -> Parameters, edit the path id
	press(t, s, "l", "enter", "42", "enter", "f")
	page := s.topPage()
	AssertModelField(t, "focus", page.focused(), paneParams)
	AssertModelField(t, "fullscreen", page.fullscreen, 1)

	press(t, s, "esc")
	AssertModelField(t, "depth", s.sessions.Depth(), 0)
	AssertModelField(t, "Suspended()", s.sessions.Suspended("getPet"), true)

	send(t, s, action.NewCall{Key: "getPet"})
	page = s.topPage()
	d := page.draft()
	id := d.Params[d.Index(request.InPath, "id")].Value
	if id == nil || *id != "42" {
		t.Fatalf("id = %v, want 42", id)
	}
	AssertModelField(t, "focus", page.focused(), paneParams)
	AssertModelField(t, "fullscreen", page.fullscreen, 1)
	AssertModelField(t, "paramTab", page.paramTab, 0)
	AssertModelField(t, "Suspended()", s.sessions.Suspended("getPet"), false)
}

func TestHangUp_DiscardCancels(t *testing.T) {
	s, dialer, _ := CreateTestState(t, config.Defaults())

	press(t, s, "enter", "ctrl+d", "ctrl+x")
	AssertModelField(t, "depth", s.sessions.Depth(), 0)
	AssertModelField(t, "Suspended()", s.sessions.Suspended("listPets"), false)
	if len(dialer.cancelled) != 1 || dialer.cancelled[0] != "listPets" {
		t.Errorf("cancelled = %v, want [listPets]", dialer.cancelled)
	}
}

func TestHangUp_SuspendKeepsInFlight(t *testing.T) {
	s, dialer, _ := CreateTestState(t, config.Defaults())

	press(t, s, "enter", "ctrl+d", "esc")
	AssertModelField(t, "Pending()", dialer.Pending("listPets"), true)
	AssertModelField(t, "cancelled", len(dialer.cancelled), 0)

	// The response lands while suspended and is there on resume
	dialer.finish("listPets", okResponse(`[]`))
	send(t, s, tickMsg{})
	send(t, s, action.NewCall{Key: "listPets"})
	if _, ok := s.Response("listPets"); !ok {
		t.Error("Response() missing after resume")
	}
}

func TestHangUp_NoCall(t *testing.T) {
	s, _, _ := CreateTestState(t, config.Defaults())

	send(t, s, action.HangUp{})
	AssertModelField(t, "status", s.status.text, ErrNoCall.Error())
}

func TestEviction_CancelsAndForgets(t *testing.T) {
	settings := config.Defaults()
	settings.HistoryCapacity = 1
	s, dialer, _ := CreateTestState(t, settings)

	send(t, s, action.NewCall{Key: "listPets"})
	press(t, s, "ctrl+d")
	dialer.finish("listPets", okResponse(`[]`))
	send(t, s, tickMsg{})
	press(t, s, "ctrl+d", "esc")

	send(t, s, action.NewCall{Key: "getPet"})
	press(t, s, "esc")

	AssertModelField(t, "Suspended(listPets)", s.sessions.Suspended("listPets"), false)
	AssertModelField(t, "Suspended(getPet)", s.sessions.Suspended("getPet"), true)
	if len(dialer.cancelled) != 1 || dialer.cancelled[0] != "listPets" {
		t.Errorf("cancelled = %v, want [listPets]", dialer.cancelled)
	}
	if _, ok := s.Response("listPets"); ok {
		t.Error("Response() kept for an evicted session")
	}
}

func TestHistoryPopup(t *testing.T) {
	s, _, _ := CreateTestState(t, config.Defaults())

	send(t, s, action.NewCall{Key: "listPets"})
	press(t, s, "esc")
	send(t, s, action.NewCall{Key: "getPet"})
	press(t, s, "esc")

	press(t, s, "H")
	if s.popup == nil {
		t.Fatal("popup not opened")
	}
	AssertModelField(t, "context()", s.context(), keybinds.ContextHistory)
	AssertModelField(t, "matches", strings.Join(s.popup.matches, ","), "getPet,listPets")

	// The page beneath is frozen
	send(t, s, action.Nav{Kind: action.Down})
	AssertModelField(t, "Selection()", s.catalog.Selection(), 0)
	AssertModelField(t, "popup.selected", s.popup.selected, 1)

	press(t, s, "list")
	AssertModelField(t, "matches", strings.Join(s.popup.matches, ","), "listPets")

	press(t, s, "enter")
	if s.popup != nil {
		t.Error("popup still open after resume")
	}
	top, ok := s.sessions.Top()
	if !ok || top.Key != "listPets" {
		t.Errorf("Top() = %v, want listPets", top)
	}
}

func TestHistoryPopup_Close(t *testing.T) {
	s, _, _ := CreateTestState(t, config.Defaults())

	press(t, s, "H", "esc")
	if s.popup != nil {
		t.Error("popup still open after esc")
	}
	AssertModelField(t, "depth", s.sessions.Depth(), 0)
}

func TestView_Header(t *testing.T) {
	s, _, _ := CreateTestState(t, config.Defaults())
	send(t, s, tea.WindowSizeMsg{Width: 100, Height: 30})

	view := s.View()
	if !strings.Contains(view, "[ Petstore · 1.2.0 ]") {
		t.Errorf("View() header missing title, got first line %q", strings.SplitN(view, "\n", 2)[0])
	}

	send(t, s, action.NewCall{Key: "listPets"})
	if !strings.Contains(s.renderHeader(), "calls: 1") {
		t.Errorf("renderHeader() = %q, want the call depth", s.renderHeader())
	}
}
