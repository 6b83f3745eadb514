package request

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/studiowebux/openapi-tui/internal/catalog"
	"github.com/studiowebux/openapi-tui/internal/document"
)

// Parameter locations
const (
	InPath   = openapi3.ParameterInPath
	InQuery  = openapi3.ParameterInQuery
	InHeader = openapi3.ParameterInHeader
	InCookie = openapi3.ParameterInCookie
)

// Locations in editor tab order
var Locations = []string{InPath, InQuery, InHeader, InCookie}

// Param is one editable parameter. A nil Value means unset.
type Param struct {
	Name        string
	In          string
	Required    bool
	Description string
	Value       *string
}

// Draft is the editable request state of one session
type Draft struct {
	Params       []Param
	ContentTypes []string
	ContentType  int
	Body         string
	Accepts      []string
	Accept       int
}

// NewDraft builds a fresh draft for an operation, with parameter values
// taken from schema defaults and the body from the first media example
func NewDraft(doc *document.Document, entry catalog.Entry) *Draft {
	d := &Draft{ContentType: -1, Accept: -1}
	op := doc.Operation(entry.Path, entry.Method)
	if op == nil {
		return d
	}

	for _, p := range doc.Parameters(entry.Path, entry.Method) {
		d.Params = append(d.Params, Param{
			Name:        p.Name,
			In:          p.In,
			Required:    p.Required || p.In == InPath,
			Description: p.Description,
			Value:       defaultValue(p.Schema),
		})
	}

	if body := doc.RequestBody(op.RequestBody); body != nil {
		d.ContentTypes = mediaTypes(body.Content)
		d.ContentType = preferred(d.ContentTypes)
		if d.ContentType >= 0 {
			d.Body = example(body.Content.Get(d.ContentTypes[d.ContentType]))
		}
	}

	if resp := successResponse(doc, op); resp != nil {
		d.Accepts = mediaTypes(resp.Content)
		d.Accept = preferred(d.Accepts)
	}
	return d
}

func defaultValue(ref *openapi3.SchemaRef) *string {
	if ref == nil || ref.Value == nil || ref.Value.Default == nil {
		return nil
	}
	var v string
	switch def := ref.Value.Default.(type) {
	case string:
		v = def
	case float64:
		v = strconv.FormatFloat(def, 'f', -1, 64)
	default:
		data, err := json.Marshal(def)
		if err != nil {
			return nil
		}
		v = string(data)
	}
	return &v
}

func example(mt *openapi3.MediaType) string {
	if mt == nil || mt.Example == nil {
		return ""
	}
	if s, ok := mt.Example.(string); ok {
		return s
	}
	data, err := json.MarshalIndent(mt.Example, "", "  ")
	if err != nil {
		return ""
	}
	return string(data)
}

func mediaTypes(content openapi3.Content) []string {
	types := make([]string, 0, len(content))
	for mt := range content {
		types = append(types, mt)
	}
	sort.Strings(types)
	return types
}

// PreferredMediaType is the media type a new draft selects from content
func PreferredMediaType(content openapi3.Content) (string, bool) {
	types := mediaTypes(content)
	i := preferred(types)
	if i < 0 {
		return "", false
	}
	return types[i], true
}

// preferred picks application/json when offered, else the first type
func preferred(types []string) int {
	if len(types) == 0 {
		return -1
	}
	for i, t := range types {
		if t == "application/json" {
			return i
		}
	}
	return 0
}

// successResponse returns the lowest 2xx response, else "default"
func successResponse(doc *document.Document, op *openapi3.Operation) *openapi3.Response {
	if op.Responses == nil {
		return nil
	}
	codes := make([]string, 0, op.Responses.Len())
	for code := range op.Responses.Map() {
		if strings.HasPrefix(code, "2") {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	if len(codes) > 0 {
		return doc.Response(op.Responses.Value(codes[0]))
	}
	return doc.Response(op.Responses.Default())
}

// Index returns the position of the named parameter, or -1
func (d *Draft) Index(in, name string) int {
	for i, p := range d.Params {
		if p.In == in && p.Name == name {
			return i
		}
	}
	return -1
}

// In returns the indexes of parameters at a location, in order
func (d *Draft) In(in string) []int {
	var idx []int
	for i, p := range d.Params {
		if p.In == in {
			idx = append(idx, i)
		}
	}
	return idx
}

// Set assigns a parameter value; nil unsets it
func (d *Draft) Set(in, name string, value *string) bool {
	i := d.Index(in, name)
	if i < 0 {
		return false
	}
	if value != nil {
		v := *value
		value = &v
	}
	d.Params[i].Value = value
	return true
}

// SelectedContentType returns the body media type, if any
func (d *Draft) SelectedContentType() (string, bool) {
	if d.ContentType < 0 || d.ContentType >= len(d.ContentTypes) {
		return "", false
	}
	return d.ContentTypes[d.ContentType], true
}

// SelectedAccept returns the accepted response media type, if any
func (d *Draft) SelectedAccept() (string, bool) {
	if d.Accept < 0 || d.Accept >= len(d.Accepts) {
		return "", false
	}
	return d.Accepts[d.Accept], true
}

// MissingRequired lists required parameters that are still unset
func (d *Draft) MissingRequired() []string {
	var missing []string
	for _, p := range d.Params {
		if p.Required && p.Value == nil {
			missing = append(missing, p.In+":"+p.Name)
		}
	}
	return missing
}

// Clone returns a deep copy
func (d *Draft) Clone() *Draft {
	c := *d
	c.Params = make([]Param, len(d.Params))
	for i, p := range d.Params {
		c.Params[i] = p
		if p.Value != nil {
			v := *p.Value
			c.Params[i].Value = &v
		}
	}
	c.ContentTypes = append([]string(nil), d.ContentTypes...)
	c.Accepts = append([]string(nil), d.Accepts...)
	return &c
}
