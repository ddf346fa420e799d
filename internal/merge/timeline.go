// Package merge applies descriptor changes to the site documents using
// anchored pattern matching over raw text. Regions no operation touches
// stay byte-identical, which matters for a hand-maintained page.
package merge

import (
	"regexp"
	"strings"
)

// timelineTitleAnchor marks the top of the timeline section, used when
// there is nothing to order against.
const timelineTitleAnchor = `<div class="timeline-title mono">`

// dateScanWindow bounds how far past an entry's opening tag we look for
// its date label.
const dateScanWindow = 200

var (
	newMarkerRe       = regexp.MustCompile(`\s*<span class="tl-new">New</span>`)
	legacyNewMarkerRe = regexp.MustCompile(`\s*<span class="timeline-tag new">New</span>`)
	entryDateRe       = regexp.MustCompile(`<div class="tl-date">(.*?)</div>`)
	entryOpenRe       = regexp.MustCompile(`<div class="tl-item">`)
)

// StripNewMarkers removes every "New" badge, current and legacy, so
// marker state is recomputed on each merge instead of accumulating.
func StripNewMarkers(page string) string {
	page = newMarkerRe.ReplaceAllString(page, "")
	return legacyNewMarkerRe.ReplaceAllString(page, "")
}

// InsertEntries splices a block of new tl-item entries into the
// timeline, placed by the block's leading date label so the section
// stays newest-first. Entries dated the same day as an existing one go
// above it. A block with no recognizable date label goes to the top of
// the section.
func InsertEntries(page, entries string, cycleYear int) (string, []string) {
	m := entryDateRe.FindStringSubmatch(entries)
	if m == nil {
		return insertAtSectionTop(page, entries, "new entries carry no date label, inserting at top of timeline")
	}
	newDate := ParseEntryDate(m[1], cycleYear)

	starts := entryOpenRe.FindAllStringIndex(page, -1)
	if len(starts) == 0 {
		return insertAtSectionTop(page, entries, "")
	}

	for _, loc := range starts {
		start := loc[0]
		end := start + dateScanWindow
		if end > len(page) {
			end = len(page)
		}
		dm := entryDateRe.FindStringSubmatch(page[start:end])
		if dm == nil {
			continue
		}
		if !newDate.Before(ParseEntryDate(dm[1], cycleYear)) {
			return page[:start] + entries + "\n    " + page[start:], nil
		}
	}

	// Older than everything present: append after the last entry's
	// whole block.
	end := blockEnd(page, starts[len(starts)-1][0])
	if end < 0 {
		return page + "\n" + entries, nil
	}
	return page[:end] + "\n    " + entries + "\n" + page[end:], nil
}

// EntryBlocks returns up to max complete tl-item blocks in page order.
func EntryBlocks(page string, max int) []string {
	var blocks []string
	for _, loc := range entryOpenRe.FindAllStringIndex(page, -1) {
		if len(blocks) >= max {
			break
		}
		end := blockEnd(page, loc[0])
		if end < 0 {
			break
		}
		blocks = append(blocks, page[loc[0]:end])
	}
	return blocks
}

// blockEnd returns the index just past the </div> that closes the div
// opening at start, or -1 when the block never closes.
func blockEnd(page string, start int) int {
	depth := 0
	i := start
	for i < len(page) {
		open := strings.Index(page[i:], "<div")
		closing := strings.Index(page[i:], "</div>")
		if closing < 0 {
			return -1
		}
		if open >= 0 && open < closing {
			depth++
			i += open + len("<div")
			continue
		}
		depth--
		i += closing + len("</div>")
		if depth == 0 {
			return i
		}
	}
	return -1
}

func insertAtSectionTop(page, entries, note string) (string, []string) {
	var warnings []string
	if note != "" {
		warnings = append(warnings, note)
	}
	idx := strings.Index(page, timelineTitleAnchor)
	if idx < 0 {
		return page, append(warnings, "timeline title anchor not found, timeline left unmodified")
	}
	closeIdx := strings.Index(page[idx:], "</div>")
	if closeIdx < 0 {
		return page, append(warnings, "timeline title tag never closes, timeline left unmodified")
	}
	pos := idx + closeIdx + len("</div>")
	return page[:pos] + "\n" + entries + "\n" + page[pos:], warnings
}
