// Package review interprets the human reviewer's comment on an update
// issue: which approval mode it selects and, for edited approvals, the
// corrections and email copy it carries.
package review

import "strings"

// Mode is the approval mode a review comment selects
type Mode string

const (
	ModeClean     Mode = "clean"      // Bare approval, the generator drafts everything
	ModeWithEdits Mode = "with_edits" // Approval with corrections and human email copy
)

// DetectMode resolves the approval mode. The single rule: a comment
// containing the phrase "approved with edits" in any case selects
// ModeWithEdits; every other comment selects ModeClean. No labels or
// front matter are consulted.
func DetectMode(comment string) Mode {
	if strings.Contains(strings.ToLower(comment), "approved with edits") {
		return ModeWithEdits
	}
	return ModeClean
}
