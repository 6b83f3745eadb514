package request

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/studiowebux/openapi-tui/internal/types"
)

var (
	// ErrInvalidMethod is returned for an empty or non-token method
	ErrInvalidMethod = errors.New("invalid HTTP method")
	// ErrInvalidURL is returned when the substituted URL does not parse
	ErrInvalidURL = errors.New("invalid request URL")
)

// Build assembles the wire request from a draft. It is a pure function of
// its inputs. Contributions are folded in order: base URL and path, path
// parameters, query, headers, cookies, accept, body.
func Build(d *Draft, method, path, baseURL string) (*types.HttpRequest, error) {
	method = strings.ToUpper(strings.TrimSpace(method))
	if !validMethod(method) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}

	target := strings.TrimRight(baseURL, "/") + path
	for _, p := range d.Params {
		if p.In == InPath && p.Value != nil {
			target = strings.ReplaceAll(target, "{"+p.Name+"}", url.PathEscape(*p.Value))
		}
	}

	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q has no scheme or host", ErrInvalidURL, target)
	}

	query := url.Values{}
	for _, p := range d.Params {
		if p.In != InQuery {
			continue
		}
		switch {
		case p.Value != nil:
			query.Add(p.Name, *p.Value)
		case p.Required:
			query.Add(p.Name, "")
		}
	}
	if encoded := query.Encode(); encoded != "" {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + encoded
	}

	req := &types.HttpRequest{Method: method, URL: target}

	var cookies []string
	for _, p := range d.Params {
		if p.Value == nil {
			continue
		}
		switch p.In {
		case InHeader:
			req.Headers = append(req.Headers, types.Header{Name: p.Name, Value: *p.Value})
		case InCookie:
			cookies = append(cookies, p.Name+"="+*p.Value)
		}
	}
	if len(cookies) > 0 {
		req.Headers = append(req.Headers, types.Header{Name: "cookie", Value: strings.Join(cookies, "; ")})
	}

	if accept, ok := d.SelectedAccept(); ok {
		req.Headers = append(req.Headers, types.Header{Name: "accept", Value: accept})
	}
	if ct, ok := d.SelectedContentType(); ok {
		req.Headers = append(req.Headers, types.Header{Name: "content-type", Value: ct})
		req.Body = d.Body
	}
	return req, nil
}

// validMethod accepts RFC 7230 tokens
func validMethod(m string) bool {
	if m == "" {
		return false
	}
	for _, r := range m {
		if r > 127 || !(r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || strings.ContainsRune("!#$%&'*+-.^_`|~", r)) {
			return false
		}
	}
	return true
}
