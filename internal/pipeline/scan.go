package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/electionriskmap/mapbot/internal/cache"
	"github.com/electionriskmap/mapbot/internal/generate"
	"github.com/electionriskmap/mapbot/internal/model"
	"github.com/electionriskmap/mapbot/internal/site"
	"github.com/electionriskmap/mapbot/internal/tracker"
	"github.com/electionriskmap/mapbot/internal/verify"
)

// timeNow is swapped in tests
var timeNow = time.Now

const briefFallback = "(Could not read scan brief — flag everything as potentially new)"

// Scan researches new developments, probes the cited sources, and files
// the findings as a review issue. Nothing a scan does touches the site;
// all of its output waits for a human verdict.
type Scan struct {
	config   *model.Config
	provider generate.Provider
	tracker  *tracker.Client
	verifier *verify.Verifier
}

// ScanResult summarizes what one scan run found and filed
type ScanResult struct {
	RunID    string
	Report   *model.ScanReport
	Checks   map[string]model.SourceCheck
	Issue    *tracker.IssueRef // nil when nothing was filed
	Warnings []string
}

// NewScan wires the scan pipeline from configuration
func NewScan(cfg *model.Config) (*Scan, error) {
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

	ttl := time.Duration(cfg.Cache.TTLHours) * time.Hour
	var store cache.Cache
	if cfg.Cache.Enabled {
		if dir := cacheDir(cfg); dir != "" {
			store = cache.NewLayeredCache(ttl, dir, ttl)
		}
	}

	return &Scan{
		config:   cfg,
		provider: provider,
		tracker:  tracker.NewClient(cfg.Tracker),
		verifier: verify.NewVerifier(cfg.Verify, cfg.HTTP, store, ttl),
	}, nil
}

// Run executes one scan: prime the researcher with what the site
// already says, parse its findings, probe the cited sources, and file
// the review issue.
func (s *Scan) Run(ctx context.Context) (*ScanResult, error) {
	result := &ScanResult{RunID: ulid.Make().String()}

	resp, err := s.provider.Generate(ctx, generate.Request{
		Prompt:    generate.BuildScanPrompt(s.knownFacts(result)),
		MaxTokens: s.config.Generator.MaxTokens,
		WebSearch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("research call: %w", err)
	}

	report, err := generate.ParseFindings(resp.Text)
	if err != nil {
		// A garbled research answer is not worth failing a scheduled
		// scan over; degrade to a no-findings report
		s.warnf(result, "findings unparsable: %v", err)
		report = &model.ScanReport{NoUpdates: true, Summary: "Failed to parse response."}
	}
	result.Report = report

	if report.NoUpdates || len(report.Findings) == 0 {
		// Quiet weeks only get a visibility issue on Mondays
		if timeNow().UTC().Weekday() != time.Monday {
			return result, nil
		}
		title := fmt.Sprintf("Weekly scan: No updates found — %s", timeNow().UTC().Format("Jan 2, 2006"))
		if err := s.file(ctx, title, FormatIssueBody(report, nil), []string{"automated-scan", "no-updates"}, result); err != nil {
			return nil, err
		}
		return result, nil
	}

	result.Checks = s.verifier.CheckSources(ctx, report.Findings)

	title := fmt.Sprintf("🔔 %d election update(s) found — %s",
		len(report.Findings), timeNow().UTC().Format("Jan 2, 2006"))
	if err := s.file(ctx, title, FormatIssueBody(report, result.Checks), []string{"automated-scan", "needs-review"}, result); err != nil {
		return nil, err
	}

	return result, nil
}

// knownFacts assembles what the researcher must not re-report: the scan
// brief's ledger plus the current site state extracted from the page
func (s *Scan) knownFacts(result *ScanResult) string {
	facts := briefFallback
	if data, err := os.ReadFile(s.config.Site.BriefPath); err == nil {
		facts = string(data)
	} else {
		s.warnf(result, "read scan brief: %v", err)
	}

	page, err := os.ReadFile(s.config.Site.IndexPath)
	if err != nil {
		s.warnf(result, "read index page: %v", err)
		return facts
	}
	if state := site.CurrentState(string(page)); state != "" {
		facts += "\n\n" + state
	}
	return facts
}

// file creates the review issue, or prints it when the tracker is not
// configured so local runs still show the outcome
func (s *Scan) file(ctx context.Context, title, body string, labels []string, result *ScanResult) error {
	if !s.tracker.Configured() {
		fmt.Fprintf(warnOutput, "Missing tracker credentials — printing issue instead.\n\nISSUE: %s\n\n%s\n", title, body)
		return nil
	}

	ref, err := s.tracker.CreateIssue(ctx, title, body, labels)
	if err != nil {
		return fmt.Errorf("create review issue: %w", err)
	}
	result.Issue = ref
	return nil
}

func (s *Scan) warnf(result *ScanResult, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	result.Warnings = append(result.Warnings, msg)
	fmt.Fprintf(warnOutput, "Warning: %s\n", msg)
}

func cacheDir(cfg *model.Config) string {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mapbot", "cache")
}
