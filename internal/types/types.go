package types

import (
	"strings"
	"time"
)

// Header is a single name/value pair. Order is preserved on the wire.
type Header struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// HttpRequest is a fully assembled request ready to be executed
type HttpRequest struct {
	Method  string   `json:"method" yaml:"method"`
	URL     string   `json:"url" yaml:"url"`
	Headers []Header `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body    string   `json:"body,omitempty" yaml:"body,omitempty"`
}

// Header returns the first header value matching name, case-insensitively
func (r *HttpRequest) Header(name string) (string, bool) {
	for _, h := range r.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value, true
		}
	}
	return "", false
}

// Call pairs an assembled request with the operation key it belongs to
type Call struct {
	Key     string
	Request *HttpRequest
}

// ResponseState tells a received response apart from a failed dial
type ResponseState int

const (
	ResponseReceived ResponseState = iota
	ResponseFailed
)

func (s ResponseState) String() string {
	switch s {
	case ResponseReceived:
		return "received"
	case ResponseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ResponseRecord is the latest response stored for an operation
type ResponseRecord struct {
	State         ResponseState `json:"state"`
	Status        int           `json:"status"`
	StatusText    string        `json:"statusText"`
	Protocol      string        `json:"protocol"`
	Headers       []Header      `json:"headers,omitempty"`
	ContentLength *int64        `json:"contentLength,omitempty"`
	Body          string        `json:"body,omitempty"`
	Error         string        `json:"error,omitempty"`
	Duration      int64         `json:"duration"` // milliseconds
	ReceivedAt    time.Time     `json:"receivedAt"`
}

// Failed reports whether the dial never produced an HTTP response
func (r *ResponseRecord) Failed() bool {
	return r.State == ResponseFailed
}

// Result is what the async pipeline hands back to the UI loop
type Result struct {
	Key      string
	Response *ResponseRecord
}
