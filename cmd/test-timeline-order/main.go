// Test program to demonstrate timeline insertion ordering
// This shows chronological placement, tie handling and marker stripping working
package main

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/electionriskmap/mapbot/internal/merge"
)

const cycleYear = 2026

const fixture = `<div class="timeline-title mono">Timeline</div>
    <div class="tl-item">
      <div class="tl-date">Feb 5</div>
      <div class="tl-dot" style="background:var(--critical)"></div>
      <div class="tl-text"><strong>DOJ sues Maine</strong> over voter data <span class="tl-new">New</span></div>
    </div>
    <div class="tl-item">
      <div class="tl-date">Jan 30</div>
      <div class="tl-dot" style="background:var(--elevated)"></div>
      <div class="tl-text"><strong>Court hearing</strong> scheduled</div>
    </div>
    <div class="tl-item">
      <div class="tl-date">Dec 2025</div>
      <div class="tl-dot" style="background:var(--moderate)"></div>
      <div class="tl-text"><strong>SAVE Act</strong> reintroduced</div>
    </div>`

var dateRe = regexp.MustCompile(`<div class="tl-date">(.*?)</div>`)

func entry(date, text string) string {
	return fmt.Sprintf(`<div class="tl-item">
      <div class="tl-date">%s</div>
      <div class="tl-dot" style="background:var(--elevated)"></div>
      <div class="tl-text"><strong>%s</strong> <span class="tl-new">New</span></div>
    </div>`, date, text)
}

func main() {
	fmt.Println("=== Timeline Insertion Order Test ===")
	fmt.Println()

	cases := []struct {
		name string
		date string
	}{
		{"newest goes first", "Feb 6"},
		{"middle placement", "Feb 2"},
		{"tie goes above existing", "Jan 30"},
		{"oldest appends last", "Nov 2025"},
		{"garbage date sinks to bottom", "sometime soon"},
	}

	for _, tc := range cases {
		fmt.Printf("Inserting %q (%s)\n", tc.date, tc.name)
		fmt.Println(strings.Repeat("-", 60))

		page := merge.StripNewMarkers(fixture)
		page, warnings := merge.InsertEntries(page, entry(tc.date, "Inserted entry"), cycleYear)
		for _, w := range warnings {
			fmt.Printf("  ⚠️  %s\n", w)
		}

		for i, m := range dateRe.FindAllStringSubmatch(page, -1) {
			marker := ""
			if tc.date == m[1] {
				marker = "  ← inserted"
			}
			fmt.Printf("  %d. %s%s\n", i+1, m[1], marker)
		}
		fmt.Println()
	}

	fmt.Println("Marker stripping idempotence:")
	once := merge.StripNewMarkers(fixture)
	twice := merge.StripNewMarkers(once)
	fmt.Printf("  second strip is a no-op: %v\n", once == twice)
}
