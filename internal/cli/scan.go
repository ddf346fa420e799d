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
	scanProvider string
	scanModel    string
	scanIndex    string
	scanBrief    string
	noCache      bool
	scanTimeout  time.Duration
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Research new developments and file them for review",
	Long: `Scan runs one research pass:
- Prime the researcher with the scan brief and the current site state
- Search for new verified election interference developments
- Probe every cited source URL (robots-gated, rate-limited, cached)
- File the findings as a needs-review issue on GitHub

Nothing a scan does touches the site. Findings wait for a human to
comment "approved" or "approved with edits", which triggers apply.

Example:
  mapbot scan
  mapbot scan --no-cache
  mapbot scan --provider anthropic --model claude-sonnet-4-20250514`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	// Document paths
	scanCmd.Flags().StringVar(&scanIndex, "index", "", "timeline page path (default index.html)")
	scanCmd.Flags().StringVar(&scanBrief, "brief", "", "scan brief path (default prompts/scan_brief.txt)")

	// Generator flags
	scanCmd.Flags().StringVar(&scanProvider, "provider", "anthropic", "generation provider (web search needs anthropic)")
	scanCmd.Flags().StringVar(&scanModel, "model", "", "generation model name (empty uses the provider default)")

	scanCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the source check cache")
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 10*time.Minute, "overall run timeout (research plus source checks)")
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	cfg, err := buildConfig(scanProvider, scanModel, scanIndex, "", scanBrief)
	if err != nil {
		return err
	}
	cfg.Cache.Enabled = !noCache

	if verbose {
		fmt.Fprintf(os.Stderr, "🔍 Searching for election interference updates (provider: %s)\n", scanProvider)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	scan, err := pipeline.NewScan(cfg)
	if err != nil {
		return err
	}

	result, err := scan.Run(ctx)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if result.Report.NoUpdates || len(result.Report.Findings) == 0 {
		fmt.Fprintln(os.Stderr, "✓ No new verified developments found")
	} else {
		fmt.Fprintf(os.Stderr, "✓ Found %d update(s)\n", len(result.Report.Findings))
		fmt.Fprintf(os.Stderr, "✓ Checked %d source URL(s)\n", len(result.Checks))
	}
	if result.Issue != nil {
		fmt.Fprintf(os.Stderr, "✓ Filed issue #%d: %s\n", result.Issue.Number, result.Issue.URL)
	}
	if len(result.Warnings) > 0 {
		fmt.Fprintf(os.Stderr, "⚠  %d warning(s), see above\n", len(result.Warnings))
	}
	fmt.Fprintf(os.Stderr, "Done (run %s)\n", result.RunID)

	return nil
}
