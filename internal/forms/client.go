// Package forms proxies form-creation requests to the external workflow
// service that builds feedback forms for finished sessions.
package forms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrNotConfigured is returned when no workflow service URL is set.
var ErrNotConfigured = errors.New("workflow service URL is not configured")

// CreateRequest is the payload relayed to the workflow service. Segments is
// passed through untouched: its shape belongs to the workflow service, not
// to this server.
type CreateRequest struct {
	Segments  json.RawMessage `json:"segments"`
	SessionID string          `json:"sessionId"`
}

// Client calls the workflow service over HTTP.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a client for the workflow service at url. An empty url
// produces a client whose calls fail with ErrNotConfigured.
func NewClient(url string) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Create posts the form-creation request and returns the service's decoded
// JSON reply. A reply containing a non-empty "error" member is treated as a
// failure even when the HTTP status is 200, matching the workflow service's
// error convention.
func (c *Client) Create(ctx context.Context, req CreateRequest) (map[string]any, error) {
	if c.url == "" {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling workflow service: %w", err)
	}
	defer resp.Body.Close()

	var data map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding workflow service reply: %w", err)
	}

	if msg, ok := data["error"].(string); ok && msg != "" {
		return nil, fmt.Errorf("workflow service error: %s", msg)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("workflow service returned status %d", resp.StatusCode)
	}

	return data, nil
}
