package tracker

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadEvent_PayloadFile(t *testing.T) {
	payload := `{
  "issue": {
    "number": 42,
    "title": "🔔 1 election update(s) found — Feb 6, 2026",
    "body": "## Proposed update\n\nStay granted."
  },
  "comment": {
    "body": "approved"
  }
}`
	path := filepath.Join(t.TempDir(), "event.json")
	if err := os.WriteFile(path, []byte(payload), 0644); err != nil {
		t.Fatalf("Failed to write payload: %v", err)
	}

	event, err := LoadEvent(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if event.IssueNumber != 42 {
		t.Errorf("Expected issue 42, got %d", event.IssueNumber)
	}
	if !strings.Contains(event.IssueBody, "Stay granted") {
		t.Errorf("Unexpected issue body: %q", event.IssueBody)
	}
	if event.CommentBody != "approved" {
		t.Errorf("Unexpected comment body: %q", event.CommentBody)
	}
}

func TestLoadEvent_MalformedPayloadFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatalf("Failed to write payload: %v", err)
	}

	_, err := LoadEvent(path)
	if err == nil {
		t.Fatal("Expected error for malformed payload, got nil")
	}
	if !strings.Contains(err.Error(), "parse event payload") {
		t.Errorf("Expected a parse error, got %v", err)
	}
}

func TestLoadEvent_MissingPayloadFileFails(t *testing.T) {
	_, err := LoadEvent(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("Expected error for missing payload file, got nil")
	}
	if !strings.Contains(err.Error(), "read event payload") {
		t.Errorf("Expected a read error, got %v", err)
	}
}

func TestLoadEvent_EnvFallback(t *testing.T) {
	t.Setenv("ISSUE_NUMBER", "7")
	t.Setenv("ISSUE_TITLE", "Weekly scan: No updates found — Feb 2, 2026")
	t.Setenv("ISSUE_BODY", "Proposed body")
	t.Setenv("COMMENT_BODY", "approved with edits")

	event, err := LoadEvent("")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if event.IssueNumber != 7 {
		t.Errorf("Expected issue 7, got %d", event.IssueNumber)
	}
	if event.IssueTitle != "Weekly scan: No updates found — Feb 2, 2026" {
		t.Errorf("Unexpected title: %q", event.IssueTitle)
	}
	if event.IssueBody != "Proposed body" {
		t.Errorf("Unexpected body: %q", event.IssueBody)
	}
	if event.CommentBody != "approved with edits" {
		t.Errorf("Unexpected comment: %q", event.CommentBody)
	}
}

func TestLoadEvent_NonNumericIssueNumberIsZero(t *testing.T) {
	t.Setenv("ISSUE_NUMBER", "forty-two")
	t.Setenv("ISSUE_BODY", "Proposed body")

	event, err := LoadEvent("")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if event.IssueNumber != 0 {
		t.Errorf("Expected issue 0 for unparseable number, got %d", event.IssueNumber)
	}
	if event.IssueBody != "Proposed body" {
		t.Errorf("Unexpected body: %q", event.IssueBody)
	}
}
