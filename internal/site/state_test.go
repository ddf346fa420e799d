package site

import (
	"strings"
	"testing"
)

const statePage = `<!doctype html>
<html>
<head><title>Election Risk Map</title></head>
<body>
  <main>
    <div class="stats">
      <div class="stat-num" data-stat="sued">7</div>
      <div class="stat-label">states sued</div>
      <div class="stat-num" data-stat="complied">3</div>
      <div class="stat-label">states complied</div>
    </div>
    <div class="timeline-title mono">TIMELINE</div>
    <div class="tl-item">
      <div class="tl-date">Feb 5 <span class="tl-new">New</span></div>
      <div class="tl-dot critical"></div>
      <div class="tl-text"><strong>DOJ sues Minnesota</strong> over voter roll access.</div>
    </div>
    <div class="tl-item">
      <div class="tl-date">Jan 30</div>
      <div class="tl-dot moderate"></div>
      <div class="tl-text">Oregon agrees to share voter data.</div>
    </div>
    <div class="court-card">
      <div class="court-state">Minnesota</div>
      <div class="court-detail">District court <em>blocked</em> the subpoena.</div>
    </div>
    <script>
      const riskData = {MN:{name:"Minnesota",risk:"critical"},OR:{name:"Oregon",risk:"complied"},NC:{name:"North Carolina",risk:"complied"}};
    </script>
  </main>
</body>
</html>`

func TestCurrentState_FullPage(t *testing.T) {
	want := strings.Join([]string{
		"TIMELINE ENTRIES ALREADY ON SITE:",
		"- Feb 5: DOJ sues Minnesota over voter roll access.",
		"- Jan 30: Oregon agrees to share voter data.",
		"",
		"COURT RULINGS SECTION ALREADY ON SITE:",
		"- Minnesota: District court blocked the subpoena.",
		"",
		"CURRENT STATS:",
		"- states sued: 7",
		"- states complied: 3",
		"",
		"STATES MARKED COMPLIED: NC, OR",
	}, "\n")

	got := CurrentState(statePage)
	if got != want {
		t.Errorf("Unexpected state summary:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestCurrentState_EmptyPage(t *testing.T) {
	if got := CurrentState("<html><body></body></html>"); got != "" {
		t.Errorf("Expected empty summary, got %q", got)
	}
}

func TestCurrentState_ClipsLongEntryText(t *testing.T) {
	long := strings.Repeat("x", 300)
	page := `<div class="tl-item"><div class="tl-date">Feb 1</div><div class="tl-text">` + long + `</div></div>`

	got := CurrentState(page)
	if strings.Contains(got, long) {
		t.Error("Expected long entry text to be clipped")
	}
	if !strings.Contains(got, strings.Repeat("x", 200)) {
		t.Error("Expected the first 200 characters to survive")
	}
}
