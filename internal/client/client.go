// Package client is a typed HTTP client for the Prompt Studio API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/promptstudio/promptstudio-go/internal/identity"
)

var (
	// ErrNotFound is returned when the server answers 404.
	ErrNotFound = errors.New("not found")
	// ErrForeignOwner is returned when a call names an owner other than the
	// identity the client's token belongs to.
	ErrForeignOwner = errors.New("owner does not match the signed-in user")
	// ErrNoToken is returned by authenticated calls on an anonymous client.
	ErrNoToken = errors.New("not signed in")
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// Client talks to one Prompt Studio server. It is safe for concurrent use.
type Client struct {
	baseURL string
	token   string
	userID  string
	http    *http.Client
}

// New creates a Client. token may be empty for anonymous use of the public
// endpoints. A nil httpClient means http.DefaultClient.
func New(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    httpClient,
	}
	if token != "" {
		// The server verifies the signature; the client only needs the subject.
		if sub, err := identity.SubjectUnverified(token); err == nil {
			c.userID = sub
		}
	}
	return c
}

// UserID is the subject of the client's token, or "" when anonymous.
func (c *Client) UserID() string {
	return c.userID
}

func (c *Client) checkOwner(ownerID string) error {
	if c.token == "" {
		return ErrNoToken
	}
	if ownerID != c.userID {
		return ErrForeignOwner
	}
	return nil
}

// do sends a JSON request and decodes a JSON answer into out when out is
// non-nil. Transport failures are returned unwrapped from net/http.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	var body struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
	}
	return apiErr
}

// isNotFound reports whether err is a 404 from the server.
func isNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
