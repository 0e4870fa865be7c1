// Package apiclient wraps the upstream REST backend. Each call is a single
// round trip with no retries or caching; callers do their own loading-state
// bookkeeping around the call.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const basePath = "/api/v1"

// APIError is a non-2xx response translated into an error, carrying the
// backend's envelope message when one was present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// envelope is the `{data, message}` wrapper the backend responds with.
// Either field may be absent; some endpoints return a bare payload.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Client issues JSON requests against one backend base URL.
type Client struct {
	base string
	http *http.Client
}

// New creates a client for the given base URL (scheme://host[:port]).
func New(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

// NewWithHTTPClient creates a client with a caller-supplied http.Client.
func NewWithHTTPClient(base string, hc *http.Client) *Client {
	return &Client{base: strings.TrimRight(base, "/"), http: hc}
}

// do issues one request. A non-empty token is attached as a bearer
// Authorization header. On success the envelope's data field is decoded
// into out when present, otherwise the raw body is; out may be nil.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+basePath+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromResponse(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	return decodePayload(raw, out)
}

// doRaw issues a request whose body is already encoded (e.g. multipart).
func (c *Client) doRaw(ctx context.Context, method, path, token, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.base+basePath+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromResponse(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	return decodePayload(raw, out)
}

// errorFromResponse extracts the envelope message, falling back to a
// generic message when the envelope is malformed or missing.
func errorFromResponse(status int, raw []byte) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Message != "" {
		return &APIError{StatusCode: status, Message: env.Message}
	}
	return &APIError{StatusCode: status, Message: fmt.Sprintf("request failed with status %d", status)}
}

// decodePayload unwraps `{data: ...}` envelopes and decodes bare payloads
// as-is.
func decodePayload(raw []byte, out any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}
	if trimmed[0] == '{' {
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err == nil && len(env.Data) > 0 && string(env.Data) != "null" {
			return json.Unmarshal(env.Data, out)
		}
	}
	return json.Unmarshal(trimmed, out)
}
