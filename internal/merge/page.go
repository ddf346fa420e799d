package merge

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/electionriskmap/mapbot/internal/model"
)

// timeNow is swapped in tests
var timeNow = time.Now

// statAnchors ties each counter to the data-stat attribute its value
// sits behind on the page, in descriptor field order.
var statAnchors = []struct {
	key string
	re  *regexp.Regexp
}{
	{"sued", regexp.MustCompile(`(data-stat="sued"[^>]*>)\s*(\d+)`)},
	{"complied", regexp.MustCompile(`(data-stat="complied"[^>]*>)\s*(\d+)`)},
	{"contacted", regexp.MustCompile(`(data-stat="contacted"[^>]*>)\s*(\d+)`)},
	{"court", regexp.MustCompile(`(data-stat="court"[^>]*>)\s*(\d+)`)},
}

var (
	lastUpdatedRe = regexp.MustCompile(`(?i)(Last updated[:\s]*)\w+ \d{1,2}, \d{4}`)
	dataAsOfRe    = regexp.MustCompile(`(Data as of )\w+ \d{4}`)
)

// UpdateStats rewrites the page counters whose descriptor fields are
// set. Nil fields leave their counters alone.
func UpdateStats(page string, stats *model.StatUpdates) (string, []string) {
	values := []*int{stats.StatesSued, stats.StatesComplied, stats.StatesContacted, stats.CourtWinsMerits}
	var warnings []string
	for i, anchor := range statAnchors {
		v := values[i]
		if v == nil {
			continue
		}
		if !anchor.re.MatchString(page) {
			warnings = append(warnings, fmt.Sprintf("stat anchor data-stat=%q not found, counter left unchanged", anchor.key))
			continue
		}
		page = anchor.re.ReplaceAllString(page, "${1}"+strconv.Itoa(*v))
	}
	return page, warnings
}

// UpdateStamps rewrites the visible freshness stamps. "Last updated"
// takes the descriptor's date; "Data as of" takes the current month, so
// the two stamps may diverge.
func UpdateStamps(page, lastUpdated string) (string, []string) {
	var warnings []string
	if lastUpdatedRe.MatchString(page) {
		page = lastUpdatedRe.ReplaceAllString(page, "${1}"+lastUpdated)
	} else {
		warnings = append(warnings, `"Last updated" stamp not found`)
	}
	if dataAsOfRe.MatchString(page) {
		page = dataAsOfRe.ReplaceAllString(page, "${1}"+timeNow().Format("January 2006"))
	} else {
		warnings = append(warnings, `"Data as of" stamp not found`)
	}
	return page, warnings
}
