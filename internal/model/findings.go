package model

// ScanReport is the parsed result of one research scan
type ScanReport struct {
	SearchDate string    `json:"search_date"`          // YYYY-MM-DD
	Findings   []Finding `json:"findings"`
	NoUpdates  bool      `json:"no_updates"`
	Summary    string    `json:"summary"`
}

// Finding is a single development the researcher surfaced
type Finding struct {
	Headline               string   `json:"headline"`
	Date                   string   `json:"date"`                     // YYYY-MM-DD when known
	Description            string   `json:"description"`
	Category               string   `json:"category"`                 // court_ruling, lawsuit, federal_action, legislation, compliance, other
	AffectedStates         []string `json:"affected_states"`          // Two-letter codes
	Confidence             string   `json:"confidence"`               // HIGH or MEDIUM
	Sources                []Source `json:"sources"`
	SuggestedTimelineEntry string   `json:"suggested_timeline_entry"`
	SuggestedRiskChanges   string   `json:"suggested_risk_changes"`
}

// Source is a cited link backing a finding
type Source struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// AuthorityTier classifies how authoritative a source domain is
type AuthorityTier int

const (
	TierUnknown   AuthorityTier = 0 // Not classified
	TierPrimary   AuthorityTier = 1 // Courts, agencies, official filings
	TierSecondary AuthorityTier = 2 // Established election-law press and trackers
	TierTertiary  AuthorityTier = 3 // Everything else
)

func (t AuthorityTier) String() string {
	switch t {
	case TierPrimary:
		return "primary"
	case TierSecondary:
		return "secondary"
	case TierTertiary:
		return "tertiary"
	default:
		return "unknown"
	}
}

// SourceCheck records the reachability probe for one cited URL
type SourceCheck struct {
	URL           string        `json:"url"`
	OK            bool          `json:"ok"`                // 2xx or 3xx response
	StatusCode    int           `json:"status_code,omitempty"`
	RobotsBlocked bool          `json:"robots_blocked"`    // Disallowed, probe skipped
	Authority     AuthorityTier `json:"authority"`
	Error         string        `json:"error,omitempty"`
}
