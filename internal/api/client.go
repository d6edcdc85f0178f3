// Package api is the HTTP client for the Syncro backend gateways. All calls
// to the backend go through here. It is stateless: the bearer token is
// supplied by the caller (the session store owns token persistence).
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/cepdnaclk/e22-co2060-Syncro/internal/logging"
)

// DefaultBaseURL is where the dockerized backend listens.
const DefaultBaseURL = "http://localhost:8000"

// Error is a non-2xx gateway response. Detail carries the backend's
// {"detail": ...} message verbatim when present.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("Request failed: %d", e.StatusCode)
}

// IsAuthError reports whether err is a gateway rejection (as opposed to a
// transport failure).
func IsAuthError(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr)
}

// Client talks to the Syncro gateways.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the given base URL, or the default when empty.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// doJSON issues a request with an optional JSON body and decodes the JSON
// response into out (when out is non-nil). A non-empty token is attached as
// a bearer credential.
func (c *Client) doJSON(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logging.APIError("%s %s: %v", method, path, err)
		return err
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		logging.APIError("%s %s: %v", method, path, err)
		return err
	}

	logging.API("%s %s -> %d", method, path, resp.StatusCode)
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// doMultipart posts a multipart form. The browser client relies on fetch to
// set the boundary; here the writer's content type is set explicitly.
func (c *Client) doMultipart(ctx context.Context, path, token string, build func(*multipart.Writer) error, out interface{}) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := build(mw); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logging.APIError("POST %s: %v", path, err)
		return err
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		logging.APIError("POST %s: %v", path, err)
		return err
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// checkResponse converts a non-2xx response into an *Error, surfacing the
// backend's detail message when the body parses.
func checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	apiErr := &Error{StatusCode: resp.StatusCode}
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Detail != "" {
		apiErr.Detail = body.Detail
	}
	return apiErr
}
