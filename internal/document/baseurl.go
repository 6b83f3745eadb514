package document

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// BaseURL picks the server calls are sent to. The first document server wins,
// then the first operation-level server, then the origin the document was
// fetched from, then DefaultBaseURL. Server variables take their defaults.
func (d *Document) BaseURL() string {
	if u := d.firstServer(); u != "" {
		return d.absolute(u)
	}
	if d.Origin != "" {
		return d.Origin
	}
	return DefaultBaseURL
}

func (d *Document) firstServer() string {
	for _, s := range d.Spec.Servers {
		if u := serverURL(s); u != "" {
			return u
		}
	}
	for _, group := range [][]PathItem{d.Paths, d.Webhooks} {
		for _, p := range group {
			for _, s := range p.Item.Servers {
				if u := serverURL(s); u != "" {
					return u
				}
			}
			for _, m := range p.Methods {
				op := p.Item.GetOperation(m)
				if op == nil || op.Servers == nil {
					continue
				}
				for _, s := range *op.Servers {
					if u := serverURL(s); u != "" {
						return u
					}
				}
			}
		}
	}
	return ""
}

// absolute anchors a relative server URL ("/v1") on the origin
func (d *Document) absolute(u string) string {
	if !strings.HasPrefix(u, "/") {
		return u
	}
	origin := d.Origin
	if origin == "" {
		origin = DefaultBaseURL
	}
	return strings.TrimRight(origin+u, "/")
}

func serverURL(s *openapi3.Server) string {
	if s == nil {
		return ""
	}
	u := s.URL
	for name, v := range s.Variables {
		if v == nil {
			continue
		}
		u = strings.ReplaceAll(u, "{"+name+"}", v.Default)
	}
	return strings.TrimRight(strings.TrimSpace(u), "/")
}
