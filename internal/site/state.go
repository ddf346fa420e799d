package site

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/electionriskmap/mapbot/internal/merge"
)

// compliedStateRe finds the two-letter keys marked complied inside the
// map's inline data script. That data is JavaScript source, not
// markup, so it is matched on the raw page rather than the parsed DOM.
var compliedStateRe = regexp.MustCompile(`(\w{2}):\{name:"[^"]+",risk:"complied"`)

const factTextLimit = 200

// CurrentState distills what the page already says into a plain-text
// fact list, so a research scan is not handed its own old news back as
// fresh findings.
func CurrentState(page string) string {
	// Date labels carry the freshness marker until the next update
	// strips it; keep it out of the fact list.
	page = merge.StripNewMarkers(page)

	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return ""
	}

	var (
		dates, texts         []string
		courtStates, details []string
		statNums, statLabels []string
	)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "div" {
			switch {
			case hasClass(n, "tl-date"):
				dates = append(dates, innerText(n))
			case hasClass(n, "tl-text"):
				texts = append(texts, innerText(n))
			case hasClass(n, "court-state"):
				courtStates = append(courtStates, innerText(n))
			case hasClass(n, "court-detail"):
				details = append(details, innerText(n))
			case hasClass(n, "stat-num"):
				statNums = append(statNums, innerText(n))
			case hasClass(n, "stat-label"):
				statLabels = append(statLabels, innerText(n))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	var facts []string

	if len(dates) > 0 {
		facts = append(facts, "TIMELINE ENTRIES ALREADY ON SITE:")
		for i, date := range dates {
			if i >= len(texts) {
				break
			}
			facts = append(facts, fmt.Sprintf("- %s: %s", date, clip(texts[i])))
		}
	}

	if len(courtStates) > 0 {
		facts = append(facts, "\nCOURT RULINGS SECTION ALREADY ON SITE:")
		for i, state := range courtStates {
			if i >= len(details) {
				break
			}
			facts = append(facts, fmt.Sprintf("- %s: %s", state, clip(details[i])))
		}
	}

	if len(statNums) > 0 {
		facts = append(facts, "\nCURRENT STATS:")
		for i, num := range statNums {
			if i >= len(statLabels) {
				break
			}
			facts = append(facts, fmt.Sprintf("- %s: %s", statLabels[i], num))
		}
	}

	if complied := compliedStates(page); len(complied) > 0 {
		facts = append(facts, fmt.Sprintf("\nSTATES MARKED COMPLIED: %s", strings.Join(complied, ", ")))
	}

	return strings.Join(facts, "\n")
}

func compliedStates(page string) []string {
	var states []string
	for _, m := range compliedStateRe.FindAllStringSubmatch(page, -1) {
		states = append(states, m[1])
	}
	sort.Strings(states)
	return states
}

// hasClass reports whether the node's class attribute contains the
// given class name.
func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

// innerText collects the text under a node, tags stripped and
// whitespace collapsed.
func innerText(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			buf.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func clip(s string) string {
	if len(s) > factTextLimit {
		return s[:factTextLimit]
	}
	return s
}
