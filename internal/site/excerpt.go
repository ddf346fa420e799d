package site

import (
	"strings"

	"github.com/electionriskmap/mapbot/internal/merge"
)

const (
	timelineAnchor  = `<div class="timeline-title`
	excerptEntries  = 10
	excerptMaxBytes = 3000
	excerptNotFound = "(Could not extract timeline section)"
)

// TimelineExcerpt returns the most recent timeline entries as they
// appear on the page, for embedding in a generator prompt. Sending the
// whole page would waste most of the context window on CSS and map
// data.
func TimelineExcerpt(page string) string {
	blocks := merge.EntryBlocks(page, excerptEntries)
	if len(blocks) > 0 {
		return strings.Join(blocks, "\n")
	}

	// No parseable entries; fall back to a raw slice from the section
	// heading so the generator at least sees the empty scaffold.
	if idx := strings.Index(page, timelineAnchor); idx != -1 {
		section := page[idx:]
		if len(section) > excerptMaxBytes {
			section = section[:excerptMaxBytes]
		}
		return section
	}

	return excerptNotFound
}
