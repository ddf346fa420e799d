package merge

import "regexp"

var (
	lastBuildRe   = regexp.MustCompile(`<lastBuildDate>.*?</lastBuildDate>`)
	channelDescRe = regexp.MustCompile(`</description>\s*\n`)
)

// UpdateFeed refreshes the feed's build date and splices new item
// fragments in right after the channel description. Item ordering
// inside the fragment is the generator's responsibility; everything
// lands at that single anchor.
func UpdateFeed(feed, items string, buildDate *string) (string, []string) {
	var warnings []string
	if buildDate != nil {
		if lastBuildRe.MatchString(feed) {
			feed = lastBuildRe.ReplaceAllLiteralString(feed, "<lastBuildDate>"+*buildDate+"</lastBuildDate>")
		} else {
			warnings = append(warnings, "lastBuildDate tag not found, feed build date left unchanged")
		}
	}
	if items != "" {
		loc := channelDescRe.FindStringIndex(feed)
		if loc == nil {
			warnings = append(warnings, "channel description anchor not found, feed items not inserted")
		} else {
			feed = feed[:loc[1]] + items + "\n" + feed[loc[1]:]
		}
	}
	return feed, warnings
}
