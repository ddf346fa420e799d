package model

// ApprovalEvent is the issue-plus-comment pair that triggers exactly one
// merge attempt. The issue body holds the proposed update, the review
// comment holds the human's verdict. Consumed once; the issue is closed
// afterward.
type ApprovalEvent struct {
	IssueNumber int    // 0 when unknown (local runs without event payload)
	IssueTitle  string
	IssueBody   string
	CommentBody string
}
