package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/studiowebux/openapi-tui/internal/action"
	"github.com/studiowebux/openapi-tui/internal/config"
	"github.com/studiowebux/openapi-tui/internal/document"
	"github.com/studiowebux/openapi-tui/internal/request"
	"github.com/studiowebux/openapi-tui/internal/schema"
)

const mixedBodies = `openapi: 3.0.3
info: {title: mixed, version: "1"}
paths:
  /pets:
    post:
      operationId: createPet
      requestBody:
        content:
          application/hal+json:
            schema: {type: string}
          application/json:
            schema:
              $ref: '#/components/schemas/Pet'
      responses:
        "201": {description: created}
components:
  schemas:
    Pet:
      type: object
      properties:
        name: {type: string}
`

func TestHome_RequestSchemaMatchesDraftBody(t *testing.T) {
	doc, err := document.Parse([]byte(mixedBodies))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	s, err := New(Options{Document: doc, Dialer: newFakeDialer(), Settings: config.Defaults()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	entry, ok := s.catalog.Active()
	if !ok {
		t.Fatal("no active operation")
	}
	draft := request.NewDraft(doc, entry)
	AssertModelField(t, "draft content type", draft.ContentTypes[draft.ContentType], "application/json")
	AssertModelField(t, "request schema", s.home.reqNav.Name(), "Pet")
}

func TestHome_UnresolvedRootIsWarning(t *testing.T) {
	s, _, _ := CreateTestState(t, config.Defaults())

	s.home.respTabs = []schemaTab{{label: "200", root: &openapi3.SchemaRef{Ref: schema.RefPrefix + "Missing"}}}
	q := &queue{}
	s.home.setResponseTab(0, q)

	a, ok := q.pop()
	if !ok {
		t.Fatal("setResponseTab() queued nothing")
	}
	status, ok := a.(action.TimedStatusLine)
	if !ok {
		t.Fatalf("queued %T, want action.TimedStatusLine", a)
	}
	if !strings.Contains(status.Text, "Missing") {
		t.Errorf("status = %q, want the missing schema named", status.Text)
	}
	AssertModelField(t, "at root", s.home.respNav.AtRoot(), true)

	// backing out retries the pointer and warns again
	err := s.home.respNav.Back()
	if !errors.Is(err, schema.ErrUnresolvedRef) {
		t.Errorf("Back() error = %v, want %v", err, schema.ErrUnresolvedRef)
	}
}
