// Package tracker talks to the GitHub repo whose issues drive the
// update workflow: approval events arrive as issue comments, scan
// findings go out as new issues.
package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/electionriskmap/mapbot/internal/model"
)

// Client is a minimal GitHub REST client scoped to issue operations
type Client struct {
	repo       string // owner/name
	token      string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new GitHub client
func NewClient(cfg model.TrackerConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		repo:    cfg.Repo,
		token:   cfg.Token,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Configured reports whether the client has what it needs to call the
// API. Unconfigured runs print what they would have posted instead.
func (c *Client) Configured() bool {
	return c.token != "" && c.repo != ""
}

// IssueRef identifies an issue the client created
type IssueRef struct {
	Number int    `json:"number"`
	URL    string `json:"html_url"`
}

// issueEvent mirrors the fields of the Actions issue_comment payload
type issueEvent struct {
	Issue struct {
		Number int    `json:"number"`
		Title  string `json:"title"`
		Body   string `json:"body"`
	} `json:"issue"`
	Comment struct {
		Body string `json:"body"`
	} `json:"comment"`
}

// LoadEvent reads the approval event from the Actions payload file.
// Without a payload file it falls back to ISSUE_NUMBER, ISSUE_TITLE,
// ISSUE_BODY and COMMENT_BODY, so the flow can be exercised locally.
func LoadEvent(eventPath string) (*model.ApprovalEvent, error) {
	if eventPath != "" {
		data, err := os.ReadFile(eventPath)
		if err != nil {
			return nil, fmt.Errorf("read event payload: %w", err)
		}

		var event issueEvent
		if err := json.Unmarshal(data, &event); err != nil {
			return nil, fmt.Errorf("parse event payload: %w", err)
		}

		return &model.ApprovalEvent{
			IssueNumber: event.Issue.Number,
			IssueTitle:  event.Issue.Title,
			IssueBody:   event.Issue.Body,
			CommentBody: event.Comment.Body,
		}, nil
	}

	number, _ := strconv.Atoi(os.Getenv("ISSUE_NUMBER"))
	return &model.ApprovalEvent{
		IssueNumber: number,
		IssueTitle:  os.Getenv("ISSUE_TITLE"),
		IssueBody:   os.Getenv("ISSUE_BODY"),
		CommentBody: os.Getenv("COMMENT_BODY"),
	}, nil
}

// CreateComment posts a comment on an existing issue
func (c *Client) CreateComment(ctx context.Context, issueNumber int, body string) error {
	path := fmt.Sprintf("/repos/%s/issues/%d/comments", c.repo, issueNumber)
	payload := map[string]string{"body": body}
	return c.do(ctx, http.MethodPost, path, payload, nil)
}

// CloseIssue closes an issue
func (c *Client) CloseIssue(ctx context.Context, issueNumber int) error {
	path := fmt.Sprintf("/repos/%s/issues/%d", c.repo, issueNumber)
	payload := map[string]string{"state": "closed"}
	return c.do(ctx, http.MethodPatch, path, payload, nil)
}

// CreateIssue opens a new issue and returns its number and URL
func (c *Client) CreateIssue(ctx context.Context, title, body string, labels []string) (*IssueRef, error) {
	path := fmt.Sprintf("/repos/%s/issues", c.repo)
	payload := map[string]any{
		"title":  title,
		"body":   body,
		"labels": labels,
	}

	var ref IssueRef
	if err := c.do(ctx, http.MethodPost, path, payload, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

// do makes an authenticated request against the GitHub API
func (c *Client) do(ctx context.Context, method, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Message != "" {
			return fmt.Errorf("GitHub API error (%d): %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("GitHub API error (%d): %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return nil
}
