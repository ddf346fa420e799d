package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/electionriskmap/mapbot/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	applyProvider string
	applyModel    string
	applyIndex    string
	applyFeed     string
	applyBrief    string
	applyTimeout  time.Duration
)

// applyCmd represents the apply command
var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply an approved update to the site documents",
	Long: `Apply merges one approved update into the tracking site:
- Read the approval event (issue body + review comment)
- Resolve the approval mode (clean, or approved with edits)
- Generate the structured update descriptor
- Splice it into index.html, feed.xml and the scan brief
- Send the subscriber email and close the issue

Triggered by the apply-update workflow when a maintainer comments
"approved" or "approved with edits" on a needs-review issue.
For local runs, set ISSUE_NUMBER/ISSUE_TITLE/ISSUE_BODY/COMMENT_BODY
instead of GITHUB_EVENT_PATH.

Example:
  mapbot apply
  mapbot apply --provider openai --model gpt-4o
  mapbot apply --index site/index.html --feed site/feed.xml`,
	Args: cobra.NoArgs,
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)

	// Document paths
	applyCmd.Flags().StringVar(&applyIndex, "index", "", "timeline page path (default index.html)")
	applyCmd.Flags().StringVar(&applyFeed, "feed", "", "RSS feed path (default feed.xml)")
	applyCmd.Flags().StringVar(&applyBrief, "brief", "", "scan brief path (default prompts/scan_brief.txt)")

	// Generator flags
	applyCmd.Flags().StringVar(&applyProvider, "provider", "anthropic", "generation provider (openai, anthropic, ollama)")
	applyCmd.Flags().StringVar(&applyModel, "model", "", "generation model name (empty uses the provider default)")
	applyCmd.Flags().DurationVar(&applyTimeout, "timeout", 5*time.Minute, "overall run timeout")
}

func runApply(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), applyTimeout)
	defer cancel()

	cfg, err := buildConfig(applyProvider, applyModel, applyIndex, applyFeed, applyBrief)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Applying update (provider: %s)\n", applyProvider)
		fmt.Fprintf(os.Stderr, "Index: %s\n", cfg.Site.IndexPath)
		fmt.Fprintf(os.Stderr, "Feed: %s\n", cfg.Site.FeedPath)
		fmt.Fprintf(os.Stderr, "Brief: %s\n", cfg.Site.BriefPath)
		fmt.Fprintln(os.Stderr)
	}

	apply, err := pipeline.NewApply(cfg)
	if err != nil {
		return err
	}

	result, err := apply.Run(ctx)
	if err != nil {
		return fmt.Errorf("apply failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Mode: %s\n", result.Mode)
	for _, c := range result.Changes {
		fmt.Fprintf(os.Stderr, "✓ %s\n", c)
	}
	if result.IssueNumber != 0 {
		fmt.Fprintf(os.Stderr, "✓ Issue #%d commented and closed\n", result.IssueNumber)
	}
	if len(result.Warnings) > 0 {
		fmt.Fprintf(os.Stderr, "⚠  %d warning(s), see above\n", len(result.Warnings))
	}
	fmt.Fprintf(os.Stderr, "Done (run %s)\n", result.RunID)

	return nil
}
