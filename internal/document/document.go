package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// ErrEmptySource is returned when no document location was given
var ErrEmptySource = errors.New("no OpenAPI document given")

// DefaultBaseURL is used when neither the document nor the user names a server
const DefaultBaseURL = "http://localhost"

const fetchTimeout = 30 * time.Second

// methodOrder is the field order of a path item object
var methodOrder = []string{
	http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete,
	http.MethodOptions, http.MethodHead, http.MethodPatch, http.MethodTrace,
}

// PathItem is one entry of the paths (or webhooks) object in document order
type PathItem struct {
	Path    string
	Item    *openapi3.PathItem
	Methods []string
}

// Document is a loaded OpenAPI description. It is never mutated after Load.
type Document struct {
	Spec     *openapi3.T
	Source   string
	Origin   string
	Paths    []PathItem
	Webhooks []PathItem
}

// Load reads a document from a file path or an http(s) URL
func Load(ctx context.Context, source string) (*Document, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, ErrEmptySource
	}

	if u, err := url.Parse(source); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		data, err := fetch(ctx, u)
		if err != nil {
			return nil, err
		}
		doc, err := parse(ctx, data, u)
		if err != nil {
			return nil, err
		}
		doc.Source = source
		doc.Origin = u.Scheme + "://" + u.Host
		return doc, nil
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	abs, err := filepath.Abs(source)
	if err != nil {
		abs = source
	}
	doc, err := parse(ctx, data, &url.URL{Path: filepath.ToSlash(abs)})
	if err != nil {
		return nil, err
	}
	doc.Source = source
	return doc, nil
}

// Parse builds a document from raw JSON or YAML bytes
func Parse(data []byte) (*Document, error) {
	return parse(context.Background(), data, nil)
}

func fetch(ctx context.Context, u *url.URL) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("failed to fetch %s: %s", u, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return data, nil
}

func parse(ctx context.Context, data []byte, location *url.URL) (*Document, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = true

	var (
		spec *openapi3.T
		err  error
	)
	if location != nil {
		spec, err = loader.LoadFromDataWithPath(data, location)
	} else {
		spec, err = loader.LoadFromData(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI document: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to read document order: %w", err)
	}

	doc := &Document{Spec: spec}
	doc.Paths = orderedPaths(spec, lookup(&root, "paths"))
	doc.Webhooks, err = webhooks(lookup(&root, "webhooks"))
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// lookup returns the value node for key in the top-level mapping
func lookup(root *yaml.Node, key string) *yaml.Node {
	node := root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// methodsOf lists the operation keys of a path item node in the order written,
// skipping non-method keys such as summary or parameters
func methodsOf(node *yaml.Node, item *openapi3.PathItem) []string {
	ops := item.Operations()

	var methods []string
	if node != nil && node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			m := strings.ToUpper(node.Content[i].Value)
			if ops[m] != nil {
				methods = append(methods, m)
			}
		}
	}
	if len(methods) > 0 {
		return methods
	}
	// $ref'd path items have no local keys; fall back to field order
	for _, m := range methodOrder {
		if ops[m] != nil {
			methods = append(methods, m)
		}
	}
	return methods
}

func orderedPaths(spec *openapi3.T, node *yaml.Node) []PathItem {
	if spec.Paths == nil {
		return nil
	}

	var items []PathItem
	seen := make(map[string]bool)
	if node != nil && node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			path := node.Content[i].Value
			item := spec.Paths.Value(path)
			if item == nil || seen[path] {
				continue
			}
			seen[path] = true
			items = append(items, PathItem{Path: path, Item: item, Methods: methodsOf(node.Content[i+1], item)})
		}
	}

	// Anything the node walk missed (e.g. merged keys) goes last, sorted
	for _, path := range spec.Paths.InMatchingOrder() {
		if seen[path] {
			continue
		}
		item := spec.Paths.Value(path)
		items = append(items, PathItem{Path: path, Item: item, Methods: methodsOf(nil, item)})
	}
	return items
}

// webhooks decodes the 3.1 webhooks object, which the 3.0 model does not carry
func webhooks(node *yaml.Node) ([]PathItem, error) {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil, nil
	}

	var items []PathItem
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value

		var raw any
		if err := node.Content[i+1].Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to decode webhook %s: %w", name, err)
		}
		data, err := json.Marshal(stringKeys(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to decode webhook %s: %w", name, err)
		}
		item := &openapi3.PathItem{}
		if err := json.Unmarshal(data, item); err != nil {
			return nil, fmt.Errorf("failed to decode webhook %s: %w", name, err)
		}
		items = append(items, PathItem{Path: name, Item: item, Methods: methodsOf(node.Content[i+1], item)})
	}
	return items, nil
}

// stringKeys rewrites yaml's map[any]any (unquoted status codes) into
// something encoding/json accepts
func stringKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = stringKeys(val)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = stringKeys(val)
		}
		return m
	case []any:
		for i, val := range t {
			t[i] = stringKeys(val)
		}
		return t
	default:
		return v
	}
}

// Title returns the info title, or the source when untitled
func (d *Document) Title() string {
	if d.Spec.Info != nil && d.Spec.Info.Title != "" {
		return d.Spec.Info.Title
	}
	return d.Source
}

// Version returns the info version
func (d *Document) Version() string {
	if d.Spec.Info != nil {
		return d.Spec.Info.Version
	}
	return ""
}

// Tags returns the declared tag names in order
func (d *Document) Tags() []string {
	tags := make([]string, 0, len(d.Spec.Tags))
	for _, t := range d.Spec.Tags {
		if t != nil && t.Name != "" {
			tags = append(tags, t.Name)
		}
	}
	return tags
}

// Item returns the path item for a path or webhook name
func (d *Document) Item(path string) *openapi3.PathItem {
	for _, p := range d.Paths {
		if p.Path == path {
			return p.Item
		}
	}
	for _, p := range d.Webhooks {
		if p.Path == path {
			return p.Item
		}
	}
	return nil
}

// Operation returns the operation at (path, method), or nil
func (d *Document) Operation(path, method string) *openapi3.Operation {
	item := d.Item(path)
	if item == nil {
		return nil
	}
	return item.Operations()[strings.ToUpper(method)]
}

// Parameters merges path-level and operation-level parameters. Operation
// parameters replace path-level ones with the same name and location.
func (d *Document) Parameters(path, method string) []*openapi3.Parameter {
	item := d.Item(path)
	op := d.Operation(path, method)
	if item == nil || op == nil {
		return nil
	}

	var params []*openapi3.Parameter
	index := make(map[string]int)
	add := func(refs openapi3.Parameters) {
		for _, ref := range refs {
			p := d.Parameter(ref)
			if p == nil {
				continue
			}
			key := p.In + ":" + p.Name
			if i, ok := index[key]; ok {
				params[i] = p
				continue
			}
			index[key] = len(params)
			params = append(params, p)
		}
	}
	add(item.Parameters)
	add(op.Parameters)
	return params
}

// componentName extracts the name from a local #/components/<kind>/<name> ref
func componentName(ref, kind string) (string, bool) {
	prefix := "#/components/" + kind + "/"
	if !strings.HasPrefix(ref, prefix) {
		return "", false
	}
	return strings.TrimPrefix(ref, prefix), true
}

// Parameter follows a parameter ref the loader left unresolved
func (d *Document) Parameter(ref *openapi3.ParameterRef) *openapi3.Parameter {
	if ref == nil {
		return nil
	}
	if ref.Value != nil {
		return ref.Value
	}
	name, ok := componentName(ref.Ref, "parameters")
	if !ok || d.Spec.Components == nil {
		return nil
	}
	if target, ok := d.Spec.Components.Parameters[name]; ok && target != nil {
		return target.Value
	}
	return nil
}

// RequestBody follows a request body ref the loader left unresolved
func (d *Document) RequestBody(ref *openapi3.RequestBodyRef) *openapi3.RequestBody {
	if ref == nil {
		return nil
	}
	if ref.Value != nil {
		return ref.Value
	}
	name, ok := componentName(ref.Ref, "requestBodies")
	if !ok || d.Spec.Components == nil {
		return nil
	}
	if target, ok := d.Spec.Components.RequestBodies[name]; ok && target != nil {
		return target.Value
	}
	return nil
}

// Response follows a response ref the loader left unresolved
func (d *Document) Response(ref *openapi3.ResponseRef) *openapi3.Response {
	if ref == nil {
		return nil
	}
	if ref.Value != nil {
		return ref.Value
	}
	name, ok := componentName(ref.Ref, "responses")
	if !ok || d.Spec.Components == nil {
		return nil
	}
	if target, ok := d.Spec.Components.Responses[name]; ok && target != nil {
		return target.Value
	}
	return nil
}

// Schemas returns the named component schemas
func (d *Document) Schemas() openapi3.Schemas {
	if d.Spec.Components == nil {
		return nil
	}
	return d.Spec.Components.Schemas
}
