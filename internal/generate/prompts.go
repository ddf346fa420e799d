package generate

import "fmt"

// SystemPrompt frames every update-drafting call. The HTML structure
// and marker strings in here are load-bearing: the merge engine inserts
// whatever comes back verbatim.
const SystemPrompt = `You are the update engine for electionriskmap.org, a nonpartisan site
tracking federal election interference risks ahead of the 2026 midterms.

You will receive findings from an automated scan (already fact-checked and approved by a human),
plus the current timeline HTML and feed.xml.

Your job is to generate structured JSON output with the exact updates to apply.
Be precise. Match the existing HTML/XML style exactly. Do not invent facts.

CRITICAL RULES:
- Timeline entries are ordered newest-first by EVENT DATE (not by when they were added)
- New entries must be inserted at the correct chronological position, NOT always at the top
- Each new entry MUST use this exact HTML structure:
  <div class="tl-item">
    <div class="tl-date">Feb 6</div>
    <div class="tl-dot" style="background:var(--elevated)"></div>
    <div class="tl-text"><strong>Key phrase</strong> rest of text <span class="tl-new">New</span></div>
  </div>
- The "New" tag MUST be: <span class="tl-new">New</span>
- Dot colors: var(--critical) for alarming, var(--elevated) for concerning, var(--moderate) for moderate, #22C55E for good news
- feed.xml items go newest-first (after the channel metadata)
- Email should be concise, factual, and include a call to action
- Email body is markdown (Buttondown renders it)
- Use only ASCII in email subject lines (no em-dashes, arrows, or special characters)`

const cleanPromptTemplate = `Here are the approved findings from the automated scan:

--- ISSUE BODY ---
%s
--- END ISSUE BODY ---

--- CURRENT TIMELINE HTML ---
%s
--- END TIMELINE ---

--- CURRENT feed.xml ---
%s
--- END feed.xml ---

Generate a JSON response with this exact structure:
{
  "new_timeline_entries_html": "HTML string of new <div class='tl-item'> entries. MUST use tl-item/tl-date/tl-dot/tl-text classes. Include <span class='tl-new'>New</span> in each tl-text.",
  "stat_updates": {
    "states_sued": null,
    "states_complied": null,
    "states_contacted": null,
    "court_wins_merits": null
  },
  "new_feed_items_xml": "XML string of new <item> elements for feed.xml.",
  "feed_last_build_date": "RFC 822 date string",
  "monitor_timeline_additions": "Plain text lines for the known-facts list in the scan brief. Format: '- Mon DD, YYYY: Brief description'",
  "email_subject": "Email subject line - ASCII only, no special characters",
  "email_body": "Email body in markdown. Under 300 words. Include what happened, why it matters, court score, what readers can do, link to map.",
  "last_updated_date": "Month DD, YYYY"
}

Set stat fields to null if unchanged. Respond ONLY with JSON.`

const editsPromptTemplate = `Here are the findings from the automated scan, BUT they need corrections.
Apply the corrections below before generating updates.

--- ISSUE BODY (original findings — may contain errors) ---
%s
--- END ISSUE BODY ---

--- CORRECTIONS TO APPLY ---
%s
--- END CORRECTIONS ---

--- CURRENT TIMELINE HTML ---
%s
--- END TIMELINE ---

--- CURRENT feed.xml ---
%s
--- END feed.xml ---

Generate the CORRECTED updates as JSON (same structure as always):
{
  "new_timeline_entries_html": "HTML with corrections applied. MUST use tl-item/tl-date/tl-dot/tl-text classes. Include <span class='tl-new'>New</span>.",
  "stat_updates": {
    "states_sued": null,
    "states_complied": null,
    "states_contacted": null,
    "court_wins_merits": null
  },
  "new_feed_items_xml": "Corrected XML items for feed.xml.",
  "feed_last_build_date": "RFC 822 date string",
  "monitor_timeline_additions": "Corrected plain text lines for the known-facts list.",
  "last_updated_date": "Month DD, YYYY"
}

NOTE: Do NOT generate email fields — the email was already drafted by the human.
Set stat fields to null if unchanged. Respond ONLY with JSON.`

const scanPromptTemplate = `You are a fact-checker for electionriskmap.org, a nonpartisan site tracking
federal election interference risks ahead of the 2026 midterms.

Your job is to search for NEW developments that are NOT already on the site.
Focus on:
1. New DOJ voter data lawsuits or states complying/resisting
2. Court rulings on existing voter data cases
3. Federal actions targeting state election infrastructure
4. Legislative efforts to federalize elections (SAVE Act, etc.)
5. New threats to election officials or voting access
6. Calls to action / new resources for voters

%s

INSTRUCTIONS:
1. Search for recent election interference news (last 7 days)
2. For each potential update, search for at least 2 INDEPENDENT sources confirming it
3. Only report findings confirmed by 2+ independent sources
4. For each finding, rate confidence: HIGH (3+ sources), MEDIUM (2 sources)
5. Do NOT report anything already listed above
6. Do NOT report opinion pieces, speculation, or predictions — only concrete events

Respond in this exact JSON format (no markdown, no backticks, just raw JSON):
{
  "search_date": "YYYY-MM-DD",
  "findings": [
    {
      "headline": "Short headline",
      "date": "YYYY-MM-DD or approximate",
      "description": "2-3 sentence factual description",
      "category": "court_ruling|lawsuit|federal_action|legislation|compliance|other",
      "affected_states": ["XX", "YY"],
      "confidence": "HIGH|MEDIUM",
      "sources": [
        {"name": "Source Name", "url": "https://..."},
        {"name": "Source Name 2", "url": "https://..."}
      ],
      "suggested_timeline_entry": "Short text for the timeline",
      "suggested_risk_changes": "Any state risk level changes needed, or 'none'"
    }
  ],
  "no_updates": false,
  "summary": "1-2 sentence summary of what was found (or 'No new verified developments found.')"
}

If nothing new is found, set "findings" to an empty array and "no_updates" to true.
Be conservative. Only include developments you are confident actually happened.`

// BuildCleanPrompt assembles the payload for a bare approval: the
// generator drafts everything, email included, from the issue body
func BuildCleanPrompt(issueBody, timelineHTML, feedXML string) string {
	return fmt.Sprintf(cleanPromptTemplate, issueBody, timelineHTML, feedXML)
}

// BuildEditsPrompt assembles the payload for an approval with
// corrections. Email fields are deliberately absent from the requested
// schema; the human already wrote that copy.
func BuildEditsPrompt(issueBody, corrections, timelineHTML, feedXML string) string {
	return fmt.Sprintf(editsPromptTemplate, issueBody, corrections, timelineHTML, feedXML)
}

// BuildScanPrompt assembles the research payload. knownFacts is the
// scan brief's ledger plus the freshly extracted site state, so the
// model knows what not to re-report.
func BuildScanPrompt(knownFacts string) string {
	return fmt.Sprintf(scanPromptTemplate, knownFacts)
}
