// Package pipeline orchestrates the two mapbot runs: merging an
// approved update into the site documents, and scanning for new
// developments to put up for review.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/electionriskmap/mapbot/internal/email"
	"github.com/electionriskmap/mapbot/internal/generate"
	"github.com/electionriskmap/mapbot/internal/merge"
	"github.com/electionriskmap/mapbot/internal/model"
	"github.com/electionriskmap/mapbot/internal/review"
	"github.com/electionriskmap/mapbot/internal/site"
	"github.com/electionriskmap/mapbot/internal/tracker"
)

// warnOutput is where non-fatal degradations are logged (swapped in tests)
var warnOutput io.Writer = os.Stderr

// Apply merges one approved update into the site documents. Everything
// up to the document write is fatal-and-clean; everything after is
// best-effort, because by then the site has already changed.
type Apply struct {
	config   *model.Config
	provider generate.Provider
	tracker  *tracker.Client
	email    *email.Client
}

// ApplyResult summarizes what one apply run did
type ApplyResult struct {
	RunID        string
	Mode         review.Mode
	IssueNumber  int
	Changes      []string
	Warnings     []string
	EmailSent    bool
	EmailSubject string
	LastUpdated  string
}

// NewApply wires the apply pipeline from configuration
func NewApply(cfg *model.Config) (*Apply, error) {
	if err := requireGeneratorKey(cfg); err != nil {
		return nil, err
	}

	provider, err := generate.NewProvider(generate.ConfigFromModel(cfg.Generator, cfg.HTTP))
	if err != nil {
		return nil, fmt.Errorf("create generator: %w", err)
	}
	if provider == nil {
		return nil, &model.ConfigError{Key: "generator provider"}
	}

	return &Apply{
		config:   cfg,
		provider: provider,
		tracker:  tracker.NewClient(cfg.Tracker),
		email:    email.NewClient(cfg.Email),
	}, nil
}

// Run executes one apply: load the approval event and documents,
// resolve the mode, obtain the descriptor, merge, persist, notify.
func (a *Apply) Run(ctx context.Context) (*ApplyResult, error) {
	result := &ApplyResult{RunID: ulid.Make().String()}

	event, err := tracker.LoadEvent(a.config.Tracker.EventPath)
	if err != nil {
		return nil, err
	}
	if event.IssueBody == "" {
		return nil, &model.ConfigError{Key: "issue body"}
	}
	result.IssueNumber = event.IssueNumber
	result.Mode = review.DetectMode(event.CommentBody)

	paths := site.Paths{
		Index: a.config.Site.IndexPath,
		Feed:  a.config.Site.FeedPath,
		Brief: a.config.Site.BriefPath,
	}
	docs, err := site.Load(paths)
	if err != nil {
		return nil, err
	}
	timeline := site.TimelineExcerpt(docs.Index)

	var desc *model.UpdateDescriptor
	var emailSubject, emailBody string

	if result.Mode == review.ModeWithEdits {
		edits := review.ParseEdits(event.CommentBody)
		if edits.Corrections == "" {
			a.warnf(result, "no corrections block found in review comment")
		}
		if edits.EmailSubject == "" || edits.EmailBody == "" {
			a.warnf(result, "email subject or body missing from review comment, send will be skipped")
		}

		desc, err = a.generateDescriptor(ctx, generate.BuildEditsPrompt(
			event.IssueBody, edits.Corrections, timeline, docs.Feed))
		if err != nil {
			return nil, err
		}
		// The human wrote the email; the generator's copy, if any, is ignored
		emailSubject = edits.EmailSubject
		emailBody = edits.EmailBody
	} else {
		desc, err = a.generateDescriptor(ctx, generate.BuildCleanPrompt(
			event.IssueBody, timeline, docs.Feed))
		if err != nil {
			return nil, err
		}
		emailSubject = desc.EmailSubject
		emailBody = desc.EmailBody
	}

	a.merge(docs, desc, result)

	if err := site.Save(paths, docs); err != nil {
		return nil, err
	}

	// The documents are written; from here nothing fails the run
	sent, err := a.email.Send(ctx, emailSubject, emailBody)
	if err != nil {
		a.warnf(result, "email send failed: %v", err)
	}
	result.EmailSent = sent
	result.EmailSubject = emailSubject
	if sent {
		result.Changes = append(result.Changes, "Email sent via Buttondown")
	} else {
		result.Changes = append(result.Changes, "Email skipped (missing API key, empty content, or error)")
	}
	if result.Mode == review.ModeWithEdits {
		result.Changes = append(result.Changes, "Applied human corrections (approved with edits)")
	}

	a.notify(ctx, event, summaryComment(result), result)

	return result, nil
}

// generateDescriptor makes the single generation call and decodes it.
// Both steps are fatal: a failed or unparsable response aborts the run
// before any file write, with no retry.
func (a *Apply) generateDescriptor(ctx context.Context, prompt string) (*model.UpdateDescriptor, error) {
	resp, err := a.provider.Generate(ctx, generate.Request{
		System:    generate.SystemPrompt,
		Prompt:    prompt,
		MaxTokens: a.config.Generator.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate updates: %w", err)
	}
	return generate.ParseDescriptor(resp.Text)
}

// merge applies the descriptor to the loaded documents in place
func (a *Apply) merge(docs *site.Documents, desc *model.UpdateDescriptor, result *ApplyResult) {
	// Freshness markers are recomputed every merge: strip all of them,
	// then insert the new block carrying its own
	docs.Index = merge.StripNewMarkers(docs.Index)

	var warnings []string
	if desc.NewTimelineEntriesHTML != "" {
		docs.Index, warnings = merge.InsertEntries(docs.Index, desc.NewTimelineEntriesHTML, a.config.Site.CycleYear)
		a.warnAll(result, warnings)
		result.Changes = append(result.Changes, "Added timeline entries")
	}

	if desc.StatUpdates.Any() {
		docs.Index, warnings = merge.UpdateStats(docs.Index, desc.StatUpdates)
		a.warnAll(result, warnings)
		result.Changes = append(result.Changes, "Updated stats")
	}

	if desc.LastUpdatedDate != nil && *desc.LastUpdatedDate != "" {
		docs.Index, warnings = merge.UpdateStamps(docs.Index, *desc.LastUpdatedDate)
		a.warnAll(result, warnings)
		result.LastUpdated = *desc.LastUpdatedDate
	}

	if desc.NewFeedItemsXML != "" || desc.FeedLastBuildDate != nil {
		docs.Feed, warnings = merge.UpdateFeed(docs.Feed, desc.NewFeedItemsXML, desc.FeedLastBuildDate)
		a.warnAll(result, warnings)
		if desc.NewFeedItemsXML != "" {
			result.Changes = append(result.Changes, "Updated RSS feed")
		}
	}

	if desc.MonitorTimelineAdditions != "" {
		docs.Brief, warnings = merge.AppendMemo(docs.Brief, desc.MonitorTimelineAdditions)
		a.warnAll(result, warnings)
		result.Changes = append(result.Changes, "Recorded new facts in the scan brief")
	}
}

// notify posts the run summary on the issue and closes it. Without
// tracker credentials or an issue number the summary is printed
// instead, so local runs still show what would have been posted.
func (a *Apply) notify(ctx context.Context, event *model.ApprovalEvent, summary string, result *ApplyResult) {
	if !a.tracker.Configured() || event.IssueNumber == 0 {
		fmt.Fprintf(warnOutput, "Would comment on issue:\n%s\n", summary)
		return
	}
	if err := a.tracker.CreateComment(ctx, event.IssueNumber, summary); err != nil {
		a.warnf(result, "issue comment failed: %v", err)
	}
	if err := a.tracker.CloseIssue(ctx, event.IssueNumber); err != nil {
		a.warnf(result, "issue close failed: %v", err)
	}
}

func (a *Apply) warnf(result *ApplyResult, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	result.Warnings = append(result.Warnings, msg)
	fmt.Fprintf(warnOutput, "Warning: %s\n", msg)
}

func (a *Apply) warnAll(result *ApplyResult, warnings []string) {
	for _, w := range warnings {
		a.warnf(result, "%s", w)
	}
}

// summaryComment renders the closing comment for the update issue
func summaryComment(result *ApplyResult) string {
	var b strings.Builder

	if result.Mode == review.ModeWithEdits {
		b.WriteString("Update applied with corrections.\n\nMode: approved with edits\n\n")
	} else {
		b.WriteString("Update applied.\n\nMode: approved\n\n")
	}

	b.WriteString("Changes:\n")
	for _, c := range result.Changes {
		b.WriteString("- " + c + "\n")
	}

	subject := result.EmailSubject
	if subject == "" {
		subject = "(none)"
	}
	b.WriteString("\nEmail subject: " + subject + "\n")

	lastUpdated := result.LastUpdated
	if lastUpdated == "" {
		lastUpdated = "N/A"
	}
	b.WriteString("\nLast updated: " + lastUpdated + "\n")

	b.WriteString("\nTo deploy: git pull in your site folder, then drag to Netlify.\n")
	b.WriteString("\n---\nApplied by mapbot (run " + result.RunID + ").")

	return b.String()
}

// requireGeneratorKey turns a missing credential into a ConfigError
// before any side effect happens
func requireGeneratorKey(cfg *model.Config) error {
	switch strings.ToLower(cfg.Generator.Provider) {
	case "anthropic", "claude":
		if cfg.Generator.APIKey == "" {
			return &model.ConfigError{Key: "ANTHROPIC_API_KEY"}
		}
	case "openai":
		if cfg.Generator.APIKey == "" {
			return &model.ConfigError{Key: "OPENAI_API_KEY"}
		}
	}
	return nil
}
