// Package api wraps HTTP access to the wallet backend.
//
// The client attaches the persisted bearer token to every request, unwraps
// the backend's transport envelope, and surfaces transport-level failures
// (network unreachable, forbidden) as user-visible notices in addition to
// rejecting the call. Server rejections are returned for the call site to
// display. Nothing here retries; every failure is terminal for its attempt.
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
)

// Notifier shows transient user-facing notices. Implemented by cli.Notices.
type Notifier interface {
	Success(message string)
	Error(message string)
	Info(message string)
}

// TokenSource reads the persisted bearer token. Implemented by
// storage.SQLiteStore. An empty token means the user is logged out.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client issues requests against the wallet backend.
type Client struct {
	tokens     TokenSource
	notices    Notifier
	httpClient *http.Client
	baseURL    string
}

// envelope is the backend's transport wrapper. Single resources arrive as
// {status, message, data}; paginated lists as {pagination, data}. Either
// way the caller only wants data.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// errorBody is the backend's rejection shape.
type errorBody struct {
	Detail string `json:"detail"`
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, tokens TokenSource, notices Notifier) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if tokens == nil {
		return nil, fmt.Errorf("token source is required")
	}
	if notices == nil {
		return nil, fmt.Errorf("notifier is required")
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		notices: notices,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Get issues a GET request and returns the unwrapped payload.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, params, nil)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, path, nil, body)
}

// Patch issues a PATCH request with an optional JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPatch, path, nil, body)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, path, params, nil)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body any) (json.RawMessage, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read session token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")
	} else if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// No response at all: surface centrally and reject the call.
		c.notices.Error("Server network error!")
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, c.rejection(resp.StatusCode, raw)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if env.Data != nil {
		return env.Data, nil
	}
	// Some endpoints (logout) answer with a bare message and no data field.
	return raw, nil
}

func (c *Client) rejection(status int, raw []byte) error {
	var body errorBody
	_ = json.Unmarshal(raw, &body)

	apiErr := &APIError{Status: status, Detail: body.Detail}

	if status == 401 || body.Detail == notAuthenticatedDetail {
		// The session is gone. Forcing a logout here matches what users
		// expect, but the web client ships with this reaction disabled, so
		// the call just fails and the caller stays where they are.
		//
		// c.sessions.Clear()
		// c.tokens.ClearToken(ctx)
		return apiErr
	}

	if status == 403 {
		c.notices.Error("Unauthorized!")
		return apiErr
	}

	return apiErr
}
