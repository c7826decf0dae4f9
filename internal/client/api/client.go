// Package api implements the HTTP client adapter: a single outbound request
// pipeline bound to the backend base URL. Every request is intercepted to
// attach the bearer token held by the session store (requests without a token
// proceed unauthenticated) and a generated request id. Responses are unwrapped
// to their payload; non-2xx responses surface as *Error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vidtube/client/internal/logging"
)

const maxErrorBody = 1 << 20 // cap retained error payloads at 1 MiB

// TokenSource supplies the current auth token, or "" when none is held.
// The session store satisfies this.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client is the configured HTTP adapter.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	log     logging.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithLogger sets the logger used for request tracing.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithTransport replaces the underlying transport the auth interceptor wraps.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.http.Transport.(*authTransport).next = rt
	}
}

// New builds a Client bound to baseURL. tokens may be nil, in which case all
// requests go out unauthenticated.
func New(baseURL string, tokens TokenSource, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}

	c := &Client{
		baseURL: u,
		http: &http.Client{
			Timeout:   timeout,
			Transport: &authTransport{next: http.DefaultTransport, tokens: tokens},
		},
		log: logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// authTransport attaches Authorization and X-Request-Id to every outbound
// request. A missing token is not an error: the server decides whether the
// endpoint requires one.
type authTransport struct {
	next   http.RoundTripper
	tokens TokenSource
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if clone.Header.Get("X-Request-Id") == "" {
		clone.Header.Set("X-Request-Id", uuid.NewString())
	}

	if t.tokens != nil {
		token, err := t.tokens.Token(req.Context())
		if err != nil {
			return nil, fmt.Errorf("reading auth token: %w", err)
		}
		if token != "" {
			clone.Header.Set("Authorization", "Bearer "+token)
		}
	}

	return t.next.RoundTrip(clone)
}

// Get issues a GET request. params may be nil.
func (c *Client) Get(ctx context.Context, path string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, params, "", nil, out)
}

// Post issues a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request with an optional JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, "", nil, out)
}

// PostMultipart issues a POST with a multipart/form-data body.
func (c *Client) PostMultipart(ctx context.Context, path string, form *Form, out any) error {
	contentType, body, err := form.encode()
	if err != nil {
		return fmt.Errorf("encoding multipart form: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, nil, contentType, body, out)
}

// PutMultipart issues a PUT with a multipart/form-data body.
func (c *Client) PutMultipart(ctx context.Context, path string, form *Form, out any) error {
	contentType, body, err := form.encode()
	if err != nil {
		return fmt.Errorf("encoding multipart form: %w", err)
	}
	return c.do(ctx, http.MethodPut, path, nil, contentType, body, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, nil, contentType, reader, out)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, contentType string, body io.Reader, out any) error {
	u := c.resolve(path)
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed before response", "method", method, "path", path, "error", err)
		return &Error{Kind: KindNetwork, cause: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return &Error{Kind: KindNetwork, Status: resp.StatusCode, cause: err}
	}

	c.log.Debug(ctx, "request done",
		"method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{
			Kind:    classify(resp.StatusCode),
			Status:  resp.StatusCode,
			Message: serverMessage(payload),
			Body:    payload,
		}
	}

	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &Error{Kind: KindDecode, Status: resp.StatusCode, Body: payload, cause: err}
	}
	return nil
}

// resolve joins path onto the base URL, keeping any base path prefix
// (e.g. "/api") intact.
func (c *Client) resolve(path string) *url.URL {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimPrefix(path, "/")
	return &u
}
