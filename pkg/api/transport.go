package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"sparklebot/pkg/version"
)

const (
	DefaultTimeout = 30 * time.Second

	// MaxResponseSize caps how much of a response body is read.
	MaxResponseSize = 10 * 1024 * 1024
)

// Request describes one HTTP call.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

// Sender performs exactly one HTTP call and returns the raw response body.
type Sender interface {
	Send(ctx context.Context, req Request) ([]byte, error)
}

// TransportError reports a network-level failure: DNS, TLS, refused
// connection, timeout or a truncated body.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Transport sends requests with a configured http.Client. It never retries.
type Transport struct {
	HTTPClient *http.Client
	UserAgent  string
}

// NewTransport creates a transport around httpClient. A nil client gets the
// default timeout and the system trust store.
func NewTransport(httpClient *http.Client) *Transport {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Transport{
		HTTPClient: httpClient,
		UserAgent:  version.UserAgent(),
	}
}

// NewHTTPClient builds an http.Client with the given timeout. When caBundle
// names a PEM file, its certificates replace the system roots.
func NewHTTPClient(timeout time.Duration, caBundle string) (*http.Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}
	if bundle := strings.TrimSpace(caBundle); bundle != "" {
		pool, err := loadCertPool(bundle)
		if err != nil {
			return nil, err
		}
		tlsConfig.RootCAs = pool
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = tlsConfig

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}, nil
}

func loadCertPool(path string) (*x509.CertPool, error) {
	pem, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA bundle: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("no certificates found in CA bundle %s", path)
	}
	return pool, nil
}

// Send performs a single request. Any HTTP status is returned as a body; only
// failures to talk to the server are errors.
func (t *Transport) Send(ctx context.Context, req Request) ([]byte, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, body)
	if err != nil {
		return nil, &TransportError{Op: "create request", URL: req.URL, Err: err}
	}

	if t.UserAgent != "" {
		httpReq.Header.Set("User-Agent", t.UserAgent)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	slog.Debug("Sending HTTP request",
		"method", method,
		"url", req.URL,
		"request_size", len(req.Body))

	start := time.Now()
	resp, err := t.HTTPClient.Do(httpReq)
	if err != nil {
		slog.Warn("HTTP request failed", "url", req.URL, "error", err)
		return nil, &TransportError{Op: method, URL: req.URL, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		slog.Warn("Failed to read response body", "url", req.URL, "error", err)
		return nil, &TransportError{Op: "read response", URL: req.URL, Err: err}
	}
	if len(data) > MaxResponseSize {
		return nil, &TransportError{Op: "read response", URL: req.URL, Err: errors.New("response body exceeds size limit")}
	}

	slog.Debug("Received HTTP response",
		"url", req.URL,
		"status_code", resp.StatusCode,
		"content_type", resp.Header.Get("Content-Type"),
		"response_size", len(data),
		"elapsed", time.Since(start))

	if resp.StatusCode >= http.StatusBadRequest {
		slog.Warn("Server returned error status", "url", req.URL, "status_code", resp.StatusCode)
	}

	return data, nil
}

var _ Sender = (*Transport)(nil)
