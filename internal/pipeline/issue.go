package pipeline

import (
	"fmt"
	"strings"

	"github.com/electionriskmap/mapbot/internal/model"
)

// FormatIssueBody renders a scan report as a review issue. Source links
// are annotated with their reachability probe when checks are supplied;
// an unreachable citation stays in the list for the reviewer to judge,
// it is never dropped.
func FormatIssueBody(report *model.ScanReport, checks map[string]model.SourceCheck) string {
	now := timeNow().UTC().Format("2006-01-02 15:04 UTC")
	var lines []string
	lines = append(lines, fmt.Sprintf("## Automated Election Update Scan — %s", now), "")

	if report.NoUpdates || len(report.Findings) == 0 {
		summary := report.Summary
		if summary == "" {
			summary = "No updates."
		}
		lines = append(lines,
			"### No new verified developments found.",
			"",
			fmt.Sprintf("**Summary:** %s", summary),
			"",
			"---",
			"*This scan checked Brennan Center, DOJ press releases, Votebeat, "+
				"Democracy Docket, NPR, and other election news sources.*",
		)
		return strings.Join(lines, "\n")
	}

	lines = append(lines,
		fmt.Sprintf("**Summary:** %s", report.Summary),
		"",
		fmt.Sprintf("### %d Update(s) Found", len(report.Findings)),
		"",
	)

	for i, f := range report.Findings {
		confidenceEmoji := "🟡"
		if f.Confidence == "HIGH" {
			confidenceEmoji = "🟢"
		}

		lines = append(lines,
			"---",
			"",
			fmt.Sprintf("#### %d. %s", i+1, f.Headline),
			"",
			fmt.Sprintf("**Date:** %s  ", orUnknown(f.Date)),
			fmt.Sprintf("**Confidence:** %s %s (%d sources)  ", confidenceEmoji, f.Confidence, len(f.Sources)),
			fmt.Sprintf("**Category:** %s  ", orDefault(f.Category, "other")),
		)
		if len(f.AffectedStates) > 0 {
			lines = append(lines, fmt.Sprintf("**Affected states:** %s  ", strings.Join(f.AffectedStates, ", ")))
		}
		lines = append(lines, "", f.Description, "", "**Sources:**")
		for _, src := range f.Sources {
			lines = append(lines, sourceLine(src, checks))
		}
		lines = append(lines, "", fmt.Sprintf("**Suggested timeline entry:** %s", orDefault(f.SuggestedTimelineEntry, "N/A")), "")
		if f.SuggestedRiskChanges != "" && !strings.EqualFold(f.SuggestedRiskChanges, "none") {
			lines = append(lines, fmt.Sprintf("**Risk level changes:** %s", f.SuggestedRiskChanges), "")
		}
	}

	lines = append(lines,
		"---",
		"",
		"### What to do next",
		"",
		"If these updates are accurate and should be added to the site:",
		"1. Comment `approved` on this issue, or `approved with edits` with",
		"   a `## Corrections` section and the email subject and body",
		"2. The apply workflow will update the site, RSS feed, and send the email blast",
		"",
		"If any finding looks wrong, comment with corrections before approving.",
		"",
		"---",
		"*Automated scan by the electionriskmap.org monitoring pipeline. "+
			"All findings require human approval before going live.*",
	)

	return strings.Join(lines, "\n")
}

// sourceLine renders one citation with its probe verdict
func sourceLine(src model.Source, checks map[string]model.SourceCheck) string {
	name := orDefault(src.Name, "Source")
	url := orDefault(src.URL, "#")
	line := fmt.Sprintf("- [%s](%s)", name, url)

	check, ok := checks[strings.TrimSpace(src.URL)]
	if !ok {
		return line
	}
	switch {
	case check.OK:
		return line + fmt.Sprintf(" — reachable, %s source", check.Authority)
	case check.RobotsBlocked:
		return line + " — not probed (robots.txt), verify manually"
	case check.StatusCode != 0:
		return line + fmt.Sprintf(" — UNREACHABLE (HTTP %d), verify manually", check.StatusCode)
	default:
		return line + " — UNREACHABLE, verify manually"
	}
}

func orUnknown(s string) string {
	return orDefault(s, "Unknown")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
