// Package email sends the subscriber announcement through Buttondown.
// Sending is best-effort: a missing API key or empty copy skips the
// send rather than failing the run, since by the time an email goes out
// the site documents are already written.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/electionriskmap/mapbot/internal/model"
)

// Client is a minimal Buttondown API client
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Buttondown client
func NewClient(cfg model.EmailConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.buttondown.com"
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Configured reports whether the client holds an API key
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Send queues one email for delivery. Returns true only when Buttondown
// accepted it; a missing key or empty subject/body returns false with
// no error, which callers log as a skip.
func (c *Client) Send(ctx context.Context, subject, body string) (bool, error) {
	if c.apiKey == "" {
		return false, nil
	}
	if subject == "" || body == "" {
		return false, nil
	}

	payload := map[string]string{
		"subject": subject,
		"body":    body,
		"status":  "about_to_send",
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return false, fmt.Errorf("marshal email: %w", err)
	}

	url := c.baseURL + "/v1/emails"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return false, fmt.Errorf("Buttondown API error (%d): %s", resp.StatusCode, string(respBody))
	}

	return true, nil
}
