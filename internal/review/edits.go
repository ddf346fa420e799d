package review

import (
	"regexp"
	"strings"
)

// Edits is what a reviewer supplies alongside an "approved with edits"
// verdict. Any field may come back empty; the caller decides whether
// that is worth a warning.
type Edits struct {
	Corrections  string // Factual fixes the generator must apply
	EmailSubject string
	EmailBody    string
}

var (
	correctionsRe  = regexp.MustCompile(`(?is)##?\s*Corrections.*?\n(.*?)(?:##?\s|\z)`)
	subjectRe      = regexp.MustCompile(`(?i)(?:\*\*)?Subject:?\*?\*?\s*(.+?)(?:\n|\z)`)
	bodyRe         = regexp.MustCompile(`(?is)(?:\*\*)?Body:?\*?\*?\s*\n(.*?)(?:\n---|\z)`)
	emailSectionRe = regexp.MustCompile(`(?s)##?\s*(?:Send this )?[Ee]mail.*?\n(.*)`)
	boldSubjectRe  = regexp.MustCompile(`\*\*Subject:\*\*.*?\n`)
	leadingBodyRe  = regexp.MustCompile(`^\*\*Body:\*\*\s*`)
)

// ParseEdits pulls the corrections block and the email subject and body
// out of a review comment. Reviewers write these free-form, so matching
// is forgiving: headings may use one or two hashes, labels may be bold
// or bare, and a missing "Body:" label falls back to everything under
// an "email" heading with the subject line stripped out.
func ParseEdits(comment string) *Edits {
	edits := &Edits{}

	if m := correctionsRe.FindStringSubmatch(comment); m != nil {
		edits.Corrections = strings.TrimSpace(m[1])
	}
	if m := subjectRe.FindStringSubmatch(comment); m != nil {
		edits.EmailSubject = strings.TrimSpace(m[1])
	}
	if m := bodyRe.FindStringSubmatch(comment); m != nil {
		edits.EmailBody = strings.TrimSpace(m[1])
	} else if m := emailSectionRe.FindStringSubmatch(comment); m != nil {
		part := boldSubjectRe.ReplaceAllString(m[1], "")
		part = strings.TrimSpace(part)
		part = leadingBodyRe.ReplaceAllString(part, "")
		edits.EmailBody = strings.TrimSpace(part)
	}

	return edits
}
