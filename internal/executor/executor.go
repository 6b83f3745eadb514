package executor

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/studiowebux/openapi-tui/internal/types"
)

// DefaultTimeout bounds a single call when Options leaves it unset
const DefaultTimeout = 30 * time.Second

// TLSOptions configures server verification and client certificates
type TLSOptions struct {
	InsecureSkipVerify bool
	CAFile             string
	CertFile           string
	KeyFile            string
}

// Options configures the HTTP client
type Options struct {
	Timeout time.Duration
	TLS     *TLSOptions
}

// Client executes assembled requests
type Client struct {
	http *http.Client
}

// NewClient builds a client with optional TLS/mTLS configuration
func NewClient(opts Options) (*Client, error) {
	client, err := buildHTTPClient(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to configure HTTP client: %w", err)
	}
	return &Client{http: client}, nil
}

// Execute performs an HTTP request. Transport failures come back as a
// ResponseFailed record; the error is reserved for requests that could not
// be created at all.
func (c *Client) Execute(ctx context.Context, req *types.HttpRequest) (*types.ResponseRecord, error) {
	startTime := time.Now()

	var bodyReader io.Reader
	if req.Body != "" {
		bodyReader = bytes.NewBufferString(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for _, h := range req.Headers {
		httpReq.Header.Add(h.Name, h.Value)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return failed(err.Error(), startTime), nil
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		rec := failed(fmt.Sprintf("failed to read response body: %v", err), startTime)
		rec.Status = resp.StatusCode
		rec.StatusText = resp.Status
		rec.Protocol = resp.Proto
		return rec, nil
	}

	rec := &types.ResponseRecord{
		State:      types.ResponseReceived,
		Status:     resp.StatusCode,
		StatusText: resp.Status,
		Protocol:   resp.Proto,
		Headers:    sortedHeaders(resp.Header),
		Body:       string(bodyBytes),
		Duration:   time.Since(startTime).Milliseconds(),
		ReceivedAt: time.Now(),
	}
	if resp.ContentLength >= 0 {
		n := resp.ContentLength
		rec.ContentLength = &n
	}
	return rec, nil
}

func failed(msg string, start time.Time) *types.ResponseRecord {
	return &types.ResponseRecord{
		State:      types.ResponseFailed,
		Error:      msg,
		Duration:   time.Since(start).Milliseconds(),
		ReceivedAt: time.Now(),
	}
}

func sortedHeaders(h http.Header) []types.Header {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)

	headers := make([]types.Header, 0, len(names))
	for _, name := range names {
		headers = append(headers, types.Header{Name: name, Value: strings.Join(h[name], ", ")})
	}
	return headers
}

// buildHTTPClient creates an HTTP client with optional TLS/mTLS configuration
func buildHTTPClient(opts Options) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if tlsConfig := opts.TLS; tlsConfig != nil {
		tlsCfg := &tls.Config{
			InsecureSkipVerify: tlsConfig.InsecureSkipVerify,
		}

		// Load client certificate if provided (for mTLS)
		if tlsConfig.CertFile != "" && tlsConfig.KeyFile != "" {
			cert, err := tls.LoadX509KeyPair(tlsConfig.CertFile, tlsConfig.KeyFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load client certificate: %w", err)
			}
			tlsCfg.Certificates = []tls.Certificate{cert}
		}

		// Load CA certificate if provided (for server verification)
		if tlsConfig.CAFile != "" {
			caCert, err := os.ReadFile(tlsConfig.CAFile)
			if err != nil {
				return nil, fmt.Errorf("failed to read CA certificate: %w", err)
			}
			caCertPool := x509.NewCertPool()
			if !caCertPool.AppendCertsFromPEM(caCert) {
				return nil, fmt.Errorf("failed to parse CA certificate")
			}
			tlsCfg.RootCAs = caCertPool
		}

		transport.TLSClientConfig = tlsCfg
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}, nil
}

// FormatDuration formats duration in milliseconds to human-readable string
func FormatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	seconds := float64(ms) / 1000.0
	return fmt.Sprintf("%.2fs", seconds)
}

// FormatSize formats byte size to human-readable string
func FormatSize(bytes int) string {
	if bytes < 1024 {
		return fmt.Sprintf("%dB", bytes)
	}
	if bytes < 1024*1024 {
		return fmt.Sprintf("%.2fKB", float64(bytes)/1024.0)
	}
	return fmt.Sprintf("%.2fMB", float64(bytes)/(1024.0*1024.0))
}

// IsSuccessStatus returns true if status code is 2xx
func IsSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}

// IsClientErrorStatus returns true if status code is 4xx
func IsClientErrorStatus(status int) bool {
	return status >= 400 && status < 500
}

// IsServerErrorStatus returns true if status code is 5xx
func IsServerErrorStatus(status int) bool {
	return status >= 500 && status < 600
}
