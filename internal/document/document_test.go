package document

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"
)

func loadPetstore(t *testing.T) *Document {
	t.Helper()
	doc, err := Load(context.Background(), "testdata/petstore.yaml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return doc
}

func TestLoadKeepsDocumentOrder(t *testing.T) {
	doc := loadPetstore(t)

	var got []string
	for _, p := range doc.Paths {
		for _, m := range p.Methods {
			got = append(got, m+" "+p.Path)
		}
	}
	want := []string{
		"GET /pets",
		"POST /pets",
		"GET /pets/{id}",
		"DELETE /pets/{id}",
		"GET /store/inventory",
		"GET /health",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("paths = %v, want %v", got, want)
	}

	if len(doc.Webhooks) != 1 || doc.Webhooks[0].Path != "newPet" {
		t.Fatalf("webhooks = %+v", doc.Webhooks)
	}
	if op := doc.Operation("newPet", "post"); op == nil || op.OperationID != "newPetHook" {
		t.Errorf("Operation(newPet, post) = %+v", op)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(context.Background(), "  "); !errors.Is(err, ErrEmptySource) {
		t.Errorf("Load(empty) error = %v, want ErrEmptySource", err)
	}
	if _, err := Load(context.Background(), "testdata/missing.yaml"); err == nil {
		t.Error("Load(missing) expected error")
	}
}

func TestLoadFromURL(t *testing.T) {
	data, err := os.ReadFile("testdata/petstore.yaml")
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	doc, err := Load(context.Background(), srv.URL+"/openapi.yaml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if doc.Origin != srv.URL {
		t.Errorf("Origin = %q, want %q", doc.Origin, srv.URL)
	}
}

func TestParameters(t *testing.T) {
	doc := loadPetstore(t)

	params := doc.Parameters("/pets/{id}", "GET")
	var got []string
	for _, p := range params {
		got = append(got, p.In+":"+p.Name)
	}
	want := []string{"path:id", "query:limit", "cookie:session"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parameters() = %v, want %v", got, want)
	}

	hook := doc.Parameters("newPet", "POST")
	if len(hook) != 1 || hook[0].Name != "X-Signature" || !hook[0].Required {
		t.Errorf("webhook Parameters() = %+v", hook)
	}
}

func TestBaseURL(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		origin string
		want   string
	}{
		{
			name: "server variables substituted",
			yaml: `openapi: 3.0.3
info: {title: t, version: "1"}
servers:
  - url: https://{env}.example.com/
    variables:
      env: {default: staging}
paths: {}`,
			want: "https://staging.example.com",
		},
		{
			name: "operation server",
			yaml: `openapi: 3.0.3
info: {title: t, version: "1"}
paths:
  /a:
    get:
      servers:
        - url: https://ops.example.com
      responses:
        "200": {description: ok}`,
			want: "https://ops.example.com",
		},
		{
			name:   "origin fallback",
			yaml:   "openapi: 3.0.3\ninfo: {title: t, version: \"1\"}\npaths: {}",
			origin: "https://docs.example.com",
			want:   "https://docs.example.com",
		},
		{
			name:   "relative server on origin",
			yaml:   "openapi: 3.0.3\ninfo: {title: t, version: \"1\"}\nservers:\n  - url: /v2\npaths: {}",
			origin: "https://docs.example.com",
			want:   "https://docs.example.com/v2",
		},
		{
			name: "localhost default",
			yaml: "openapi: 3.0.3\ninfo: {title: t, version: \"1\"}\npaths: {}",
			want: DefaultBaseURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.yaml))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			doc.Origin = tt.origin
			if got := doc.BaseURL(); got != tt.want {
				t.Errorf("BaseURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMetadata(t *testing.T) {
	doc := loadPetstore(t)

	if doc.Title() != "Petstore" || doc.Version() != "1.2.0" {
		t.Errorf("Title/Version = %q/%q", doc.Title(), doc.Version())
	}
	if got := doc.Tags(); !reflect.DeepEqual(got, []string{"pets", "store"}) {
		t.Errorf("Tags() = %v", got)
	}
	if _, ok := doc.Schemas()["Owner"]; !ok {
		t.Error("Schemas() missing Owner")
	}
	if got := doc.BaseURL(); got != "https://api.example.com/v1" {
		t.Errorf("BaseURL() = %q", got)
	}
}

func TestParseSkipsPathItemFields(t *testing.T) {
	const spec = `openapi: 3.0.3
info: {title: t, version: "1"}
paths:
  /things/{id}:
    summary: one thing
    description: a thing by id
    servers:
      - url: https://things.example.com
    parameters:
      - {name: id, in: path, required: true, schema: {type: string}}
    get:
      responses: {"200": {description: ok}}
    post:
      responses: {"201": {description: created}}
webhooks:
  thingCreated:
    summary: fired on create
    post:
      responses: {"200": {description: ok}}
`
	doc, err := Parse([]byte(spec))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(doc.Paths) != 1 {
		t.Fatalf("Paths = %d, want 1", len(doc.Paths))
	}
	if got := doc.Paths[0].Methods; !reflect.DeepEqual(got, []string{"GET", "POST"}) {
		t.Errorf("Methods = %v, want [GET POST]", got)
	}
	if len(doc.Webhooks) != 1 || !reflect.DeepEqual(doc.Webhooks[0].Methods, []string{"POST"}) {
		t.Errorf("Webhooks = %+v, want one POST", doc.Webhooks)
	}
	if op := doc.Operation("/things/{id}", "summary"); op != nil {
		t.Errorf("Operation(summary) = %v, want nil", op)
	}
}
