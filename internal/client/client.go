package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/maauso/deckgen/internal/form"
)

// Static errors for client construction and calls.
var (
	// ErrBaseURLRequired is returned when the base URL is empty.
	ErrBaseURLRequired = errors.New("client: base URL is required")
	// ErrInvalidBaseURL is returned when the base URL cannot be parsed as an absolute URL.
	ErrInvalidBaseURL = errors.New("client: base URL must be absolute")
)

// HTTPClient calls POST {baseURL}/generate.
// It performs exactly one request per call: no retries and no client-side timeout
// beyond what the context or the injected http.Client imposes.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// ClientOption is a function that configures an HTTPClient.
type ClientOption func(*HTTPClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(hc *HTTPClient) {
		hc.httpClient = c
	}
}

// NewClient creates a client for the server at baseURL (e.g. http://localhost:5000).
func NewClient(baseURL string, opts ...ClientOption) (*HTTPClient, error) {
	if baseURL == "" {
		return nil, ErrBaseURLRequired
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("client: parse base URL: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, ErrInvalidBaseURL
	}

	c := &HTTPClient{
		baseURL:    u,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Generate submits topic and returns the generated file.
//
// The response body is decoded as JSON whatever the status code. A non-2xx
// response yields a *form.GenerationError carrying the server's message.
// Transport and decode failures are returned as plain errors.
func (c *HTTPClient) Generate(ctx context.Context, topic string) (form.Result, error) {
	body, err := json.Marshal(generateRequest{Topic: topic})
	if err != nil {
		return form.Result{}, fmt.Errorf("client: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL.String()+"/generate", bytes.NewReader(body))
	if err != nil {
		return form.Result{}, fmt.Errorf("client: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return form.Result{}, fmt.Errorf("client: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return form.Result{}, fmt.Errorf("client: read response: %w", err)
	}

	var payload generateResponse
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return form.Result{}, fmt.Errorf("client: unmarshal response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return form.Result{}, &form.GenerationError{Message: payload.errorMessage()}
	}

	return form.Result{
		Filename:    payload.Filename,
		DownloadURL: payload.DownloadURL,
	}, nil
}

// Resolve returns ref resolved against the base URL.
// Absolute references are returned unchanged; unparsable ones are returned as-is.
func (c *HTTPClient) Resolve(ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return c.baseURL.ResolveReference(u).String()
}

// Compile-time check that HTTPClient implements form.Generator.
var _ form.Generator = (*HTTPClient)(nil)
