package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/agusnoopy3000/Carta-QR/internal/models"
)

// Client talks to the Carta-QR REST backend. Public menu endpoints need no
// auth; admin endpoints send HTTP Basic credentials held in memory.
type Client struct {
	baseURL string
	http    *http.Client

	mu          sync.RWMutex
	credentials string // base64 "user:password", empty when logged out
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetCredentials stores the Basic pair without validating it. Login performs
// the validating round trip.
func (c *Client) SetCredentials(username, password string) {
	encoded := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	c.mu.Lock()
	c.credentials = encoded
	c.mu.Unlock()
}

// RestoreCredentials installs a previously persisted encoded pair.
func (c *Client) RestoreCredentials(encoded string) {
	c.mu.Lock()
	c.credentials = encoded
	c.mu.Unlock()
}

func (c *Client) ClearCredentials() {
	c.mu.Lock()
	c.credentials = ""
	c.mu.Unlock()
}

// Credentials returns the encoded pair for persistence, empty when none.
func (c *Client) Credentials() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.credentials
}

func (c *Client) IsAuthenticated() bool {
	return c.Credentials() != ""
}

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	Status int
	Path   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.Status, e.Path)
}

// IsUnauthorized reports whether err is an upstream 401/403, meaning the
// stored credentials are no longer valid.
func IsUnauthorized(err error) bool {
	se, ok := err.(*StatusError)
	if !ok {
		return false
	}
	return se.Status == http.StatusUnauthorized || se.Status == http.StatusForbidden
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out, false)
}

func (c *Client) adminSend(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, nil, body, out, true)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, auth bool) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request for %s: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	if auth {
		creds := c.Credentials()
		if creds == "" {
			return models.ErrNotAuthenticated
		}
		req.Header.Set("Authorization", "Basic "+creds)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{Status: resp.StatusCode, Path: path}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return nil
}

func langQuery(language string) url.Values {
	if language == "" {
		language = "es"
	}
	return url.Values{"lang": []string{language}}
}
