package merge

import "strings"

// MemoSentinel is the heading in the scan brief after which
// already-published facts accumulate.
const MemoSentinel = "Already on the site (do NOT re-report these):"

// AppendMemo records freshly published facts in the scan brief so the
// next research pass does not re-report them. Lines go in right after
// the sentinel, verbatim and in the order given; dedup is the
// generator's responsibility.
func AppendMemo(brief, lines string) (string, []string) {
	idx := strings.Index(brief, MemoSentinel)
	if idx < 0 {
		return brief, []string{"known-facts sentinel not found in scan brief, memo not updated"}
	}
	pos := idx + len(MemoSentinel)
	return brief[:pos] + "\n" + lines + brief[pos:], nil
}
