package generate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/electionriskmap/mapbot/internal/model"
)

// MalformedResponseError reports generator output that did not contain a
// parsable JSON object. There is no retry path; the run has to be
// re-triggered after whatever confused the model is fixed.
type MalformedResponseError struct {
	Reason string
	Raw    string // Offending text, truncated for logs
}

func (e *MalformedResponseError) Error() string {
	if e.Raw == "" {
		return fmt.Sprintf("malformed generator response: %s", e.Reason)
	}
	return fmt.Sprintf("malformed generator response: %s\nraw: %s", e.Reason, e.Raw)
}

// ExtractJSON locates the first top-level JSON object in generator
// output, tolerating a markdown code fence and surrounding prose. The
// object runs from the first "{" to the last "}".
func ExtractJSON(text string) (string, error) {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```") {
		if i := strings.Index(cleaned, "\n"); i >= 0 {
			cleaned = cleaned[i+1:]
		} else {
			cleaned = cleaned[3:]
		}
	}
	if strings.HasSuffix(cleaned, "```") {
		cleaned = cleaned[:len(cleaned)-3]
	}
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return "", &MalformedResponseError{Reason: "no JSON object found", Raw: truncate(cleaned, 300)}
	}
	return cleaned[start : end+1], nil
}

// ParseDescriptor extracts and decodes an update descriptor from raw
// generator output
func ParseDescriptor(text string) (*model.UpdateDescriptor, error) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}
	var desc model.UpdateDescriptor
	if err := json.Unmarshal([]byte(raw), &desc); err != nil {
		return nil, &MalformedResponseError{Reason: fmt.Sprintf("invalid JSON: %v", err), Raw: truncate(raw, 500)}
	}
	return &desc, nil
}

// ParseFindings extracts and decodes a scan report from raw generator
// output
func ParseFindings(text string) (*model.ScanReport, error) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}
	var report model.ScanReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return nil, &MalformedResponseError{Reason: fmt.Sprintf("invalid JSON: %v", err), Raw: truncate(raw, 500)}
	}
	return &report, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
