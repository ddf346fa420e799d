package generate

import (
	"errors"
	"strings"
	"testing"
)

func TestExtractJSON_FencedBlock(t *testing.T) {
	raw := "```json\n{\"new_timeline_entries_html\": \"\"}\n```"

	out, err := ExtractJSON(raw)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if out != `{"new_timeline_entries_html": ""}` {
		t.Errorf("Unexpected extraction: %s", out)
	}
}

func TestExtractJSON_ProseAroundFence(t *testing.T) {
	raw := "Here is the update descriptor you asked for:\n\n" +
		"```json\n{\"email_subject\": \"DOJ sues Minnesota\"}\n```\n\n" +
		"Let me know if you need anything else."

	out, err := ExtractJSON(raw)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if out != `{"email_subject": "DOJ sues Minnesota"}` {
		t.Errorf("Unexpected extraction: %s", out)
	}
}

func TestExtractJSON_NoObject(t *testing.T) {
	_, err := ExtractJSON("I could not produce any updates today.")
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("Expected MalformedResponseError, got %T", err)
	}
	if malformed.Raw == "" {
		t.Error("Expected raw text preserved in error")
	}
}

func TestParseDescriptor_NullsStayUnset(t *testing.T) {
	raw := `{
		"new_timeline_entries_html": "<div class=\"tl-item\"></div>",
		"stat_updates": {"states_sued": 9, "states_complied": null},
		"new_feed_items_xml": "",
		"feed_last_build_date": null,
		"monitor_timeline_additions": "",
		"email_subject": "Update",
		"email_body": "Body",
		"last_updated_date": "February 6, 2026"
	}`

	desc, err := ParseDescriptor(raw)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if desc.StatUpdates == nil || desc.StatUpdates.StatesSued == nil {
		t.Fatal("Expected states_sued to be set")
	}
	if *desc.StatUpdates.StatesSued != 9 {
		t.Errorf("Expected states_sued 9, got %d", *desc.StatUpdates.StatesSued)
	}
	if desc.StatUpdates.StatesComplied != nil {
		t.Error("Expected null states_complied to stay unset")
	}
	if desc.FeedLastBuildDate != nil {
		t.Error("Expected null feed_last_build_date to stay unset")
	}
	if desc.LastUpdatedDate == nil || *desc.LastUpdatedDate != "February 6, 2026" {
		t.Errorf("Expected last_updated_date set, got %v", desc.LastUpdatedDate)
	}
}

func TestParseDescriptor_EmptyStringIsAValue(t *testing.T) {
	desc, err := ParseDescriptor(`{"feed_last_build_date": ""}`)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if desc.FeedLastBuildDate == nil {
		t.Fatal("Expected empty feed_last_build_date to be present")
	}
	if *desc.FeedLastBuildDate != "" {
		t.Errorf("Expected empty string, got %q", *desc.FeedLastBuildDate)
	}
}

func TestParseDescriptor_InvalidJSON(t *testing.T) {
	_, err := ParseDescriptor(`{"email_subject": "Unterminated`)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("Expected MalformedResponseError, got %T", err)
	}
}

func TestParseDescriptor_TruncatesLongRaw(t *testing.T) {
	_, err := ParseDescriptor(`{` + strings.Repeat("x", 2000))
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("Expected MalformedResponseError, got %T", err)
	}
	if len(malformed.Raw) > 600 {
		t.Errorf("Expected raw snippet truncated, got %d bytes", len(malformed.Raw))
	}
}

func TestParseFindings_Success(t *testing.T) {
	raw := "```json\n" + `{
		"search_date": "2026-02-06",
		"findings": [
			{
				"headline": "Appeals court stays voter roll ruling",
				"date": "2026-02-05",
				"category": "court_ruling",
				"affected_states": ["MN"],
				"confidence": "high",
				"sources": [{"name": "Reuters", "url": "https://reuters.com/a"}]
			}
		],
		"no_updates": false,
		"summary": "One ruling."
	}` + "\n```"

	report, err := ParseFindings(raw)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if report.NoUpdates {
		t.Error("Expected no_updates false")
	}
	if len(report.Findings) != 1 {
		t.Fatalf("Expected 1 finding, got %d", len(report.Findings))
	}
	if report.Findings[0].Headline != "Appeals court stays voter roll ruling" {
		t.Errorf("Unexpected headline: %s", report.Findings[0].Headline)
	}
	if len(report.Findings[0].Sources) != 1 || report.Findings[0].Sources[0].URL != "https://reuters.com/a" {
		t.Errorf("Unexpected sources: %+v", report.Findings[0].Sources)
	}
}

func TestParseFindings_Malformed(t *testing.T) {
	_, err := ParseFindings("Search complete, nothing structured to report.")
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("Expected MalformedResponseError, got %T", err)
	}
}
