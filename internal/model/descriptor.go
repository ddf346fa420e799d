package model

// UpdateDescriptor is the set of site changes produced for one approved
// update. It lives for a single run and is never persisted.
//
// Nil pointers mean "leave the current value alone". Empty insertion
// strings mean "insert nothing". The two are not interchangeable: a
// non-nil empty date string replaces the existing date with nothing.
type UpdateDescriptor struct {
	NewTimelineEntriesHTML   string       `json:"new_timeline_entries_html"`  // tl-item blocks, may hold several entries
	StatUpdates              *StatUpdates `json:"stat_updates"`               // Counter rewrites, nil fields untouched
	NewFeedItemsXML          string       `json:"new_feed_items_xml"`         // <item> fragments for the RSS feed
	FeedLastBuildDate        *string      `json:"feed_last_build_date"`       // RFC 822 date for <lastBuildDate>
	MonitorTimelineAdditions string       `json:"monitor_timeline_additions"` // Lines for the known-facts memo
	EmailSubject             string       `json:"email_subject"`              // Only produced on clean approvals
	EmailBody                string       `json:"email_body"`                 // Only produced on clean approvals
	LastUpdatedDate          *string      `json:"last_updated_date"`          // "Month D, YYYY" for the page stamp
}

// StatUpdates carries new values for the page counters. A nil field
// means "leave unchanged", never "reset to zero".
type StatUpdates struct {
	StatesSued      *int `json:"states_sued"`
	StatesComplied  *int `json:"states_complied"`
	StatesContacted *int `json:"states_contacted"`
	CourtWinsMerits *int `json:"court_wins_merits"`
}

// Any reports whether at least one counter is being rewritten
func (s *StatUpdates) Any() bool {
	if s == nil {
		return false
	}
	return s.StatesSued != nil || s.StatesComplied != nil || s.StatesContacted != nil || s.CourtWinsMerits != nil
}
