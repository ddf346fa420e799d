package merge

import (
	"strconv"
	"strings"
	"time"
)

// minEntryDate is where unparseable date labels sort: the bottom of the
// timeline, instead of aborting the merge.
var minEntryDate = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// dayMonthLayouts carry no year of their own; the operating cycle year
// is assumed for them.
var dayMonthLayouts = []string{"Jan 2", "January 2"}

var monthYearLayouts = []string{"Jan 2006", "January 2006"}

// ParseEntryDate normalizes a timeline date label ("Feb 6", "Jan 2026",
// bare "2025") into a sortable date. The first matching form wins.
func ParseEntryDate(label string, cycleYear int) time.Time {
	label = strings.TrimSpace(label)
	for _, layout := range dayMonthLayouts {
		if t, err := time.Parse(layout, label); err == nil {
			return time.Date(cycleYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
	}
	for _, layout := range monthYearLayouts {
		if t, err := time.Parse(layout, label); err == nil {
			return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		}
	}
	if year, err := strconv.Atoi(label); err == nil {
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	return minEntryDate
}
