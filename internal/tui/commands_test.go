package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/studiowebux/openapi-tui/internal/action"
	"github.com/studiowebux/openapi-tui/internal/config"
)

func TestCommand_CopyBody(t *testing.T) {
	s, dialer, copied := CreateTestState(t, config.Defaults())

	send(t, s, action.NewCall{Key: "listPets"})
	press(t, s, "ctrl+d")
	dialer.finish("listPets", okResponse(`[{"name":"Rex"},{"name":"Tom"}]`))
	send(t, s, tickMsg{})

	press(t, s, "y")
	if len(*copied) != 1 || !strings.Contains((*copied)[0], `"name": "Rex"`) {
		t.Fatalf("copied = %q, want the pretty body", *copied)
	}

	// The filtered body is what gets copied
	press(t, s, ":", "filter [*].name", "enter")
	press(t, s, ":", "copy body", "enter")
	if len(*copied) != 2 {
		t.Fatalf("copied = %d entries, want 2", len(*copied))
	}
	got := (*copied)[1]
	if !strings.Contains(got, "Tom") || strings.Contains(got, "name") {
		t.Errorf("copied = %q, want only the filtered names", got)
	}
}

func TestCommand_CopyURL(t *testing.T) {
	s, _, copied := CreateTestState(t, config.Defaults())

	send(t, s, action.NewCall{Key: "listPets"})
	send(t, s, action.Command{Verb: "copy", Args: []string{"url"}})
	if len(*copied) != 1 || !strings.HasSuffix((*copied)[0], "/pets?limit=20") {
		t.Errorf("copied = %q, want the request URL", *copied)
	}
}

func TestCommand_CopyWithoutResponse(t *testing.T) {
	s, _, copied := CreateTestState(t, config.Defaults())

	send(t, s, action.NewCall{Key: "listPets"})
	press(t, s, "y")
	AssertModelField(t, "copied", len(*copied), 0)
	AssertModelField(t, "isError", s.status.isError, true)
}

func TestCommand_RequestOpen(t *testing.T) {
	s, _, _ := CreateTestState(t, config.Defaults())
	path := filepath.Join(t.TempDir(), "pet.json")
	payload := `{"name":"Bella"}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	send(t, s, action.NewCall{Key: "createPet"})
	press(t, s, ":", "request open "+path, "enter")
	AssertModelField(t, "Body", s.topPage().draft().Body, payload)

	send(t, s, action.Command{Verb: "request", Args: []string{"open", filepath.Join(t.TempDir(), "missing.json")}})
	AssertModelField(t, "isError", s.status.isError, true)
	AssertModelField(t, "Body", s.topPage().draft().Body, payload)
}

func TestCommand_RequestKey(t *testing.T) {
	s, _, _ := CreateTestState(t, config.Defaults())

	press(t, s, ":", "r deletePet", "enter")
	top, ok := s.sessions.Top()
	if !ok || top.Key != "deletePet" {
		t.Errorf("Top() = %v, want deletePet", top)
	}
}

func TestCommand_Hangups(t *testing.T) {
	s, dialer, _ := CreateTestState(t, config.Defaults())

	send(t, s, action.NewCall{Key: "listPets"})
	press(t, s, ":", "hangup", "enter")
	AssertModelField(t, "Suspended()", s.sessions.Suspended("listPets"), true)

	send(t, s, action.NewCall{Key: "getPet"})
	press(t, s, "ctrl+d", ":", "hangup!", "enter")
	AssertModelField(t, "Suspended(getPet)", s.sessions.Suspended("getPet"), false)
	AssertModelField(t, "cancelled", strings.Join(dialer.cancelled, ","), "getPet")
}

func TestCommand_Unknown(t *testing.T) {
	s, _, _ := CreateTestState(t, config.Defaults())

	press(t, s, ":", "quitt", "enter")
	AssertModelField(t, "quitting", s.quitting, false)
	AssertModelField(t, "isError", s.status.isError, true)
	if !strings.Contains(s.status.text, `did you mean "quit"`) {
		t.Errorf("status = %q, want a suggestion", s.status.text)
	}

	err := s.dispatch(action.Command{Verb: "bogus"}, &queue{})
	if !errors.Is(err, action.ErrUnknownCommand) {
		t.Errorf("dispatch() error = %v, want ErrUnknownCommand", err)
	}
}

func TestCommand_InvalidFilter(t *testing.T) {
	s, _, _ := CreateTestState(t, config.Defaults())

	send(t, s, action.NewCall{Key: "listPets"})
	send(t, s, action.Filter{Expression: "[[["})
	AssertModelField(t, "isError", s.status.isError, true)
	AssertModelField(t, "Filter", s.topPage().sess.Filter, "")

	send(t, s, action.Filter{Expression: "length(@)"})
	AssertModelField(t, "Filter", s.topPage().sess.Filter, "length(@)")

	send(t, s, action.Filter{})
	AssertModelField(t, "Filter", s.topPage().sess.Filter, "")
	AssertModelField(t, "status", s.status.text, "filter cleared")
}
