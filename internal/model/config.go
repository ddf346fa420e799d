package model

// Config holds all mapbot configuration
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Generator GeneratorConfig `yaml:"generator"`
	Tracker   TrackerConfig   `yaml:"tracker"`
	Email     EmailConfig     `yaml:"email"`
	HTTP      HTTPConfig      `yaml:"http"`
	Cache     CacheConfig     `yaml:"cache"`
	Verify    VerifyConfig    `yaml:"verify"`
	Output    OutputConfig    `yaml:"output"`
}

// SiteConfig locates the tracked site artifacts in the working tree
type SiteConfig struct {
	IndexPath string `yaml:"index_path"` // Timeline page
	FeedPath  string `yaml:"feed_path"`  // RSS feed
	BriefPath string `yaml:"brief_path"` // Scan brief with the known-facts memo
	URL       string `yaml:"url"`        // Public site URL
	CycleYear int    `yaml:"cycle_year"` // Year assumed for day-month date labels
}

// GeneratorConfig selects and tunes the LLM provider
type GeneratorConfig struct {
	Provider  string `yaml:"provider"`          // openai, anthropic, ollama
	Model     string `yaml:"model,omitempty"`   // Empty uses the provider default
	APIKey    string `yaml:"api_key,omitempty"` // Usually from env, not from file
	BaseURL   string `yaml:"base_url,omitempty"`
	MaxTokens int    `yaml:"max_tokens"`
	Timeout   int    `yaml:"timeout"` // Seconds
}

// TrackerConfig points at the GitHub repo whose issues drive updates
type TrackerConfig struct {
	Repo      string `yaml:"repo"`              // owner/name
	Token     string `yaml:"token,omitempty"`   // Usually from GITHUB_TOKEN
	BaseURL   string `yaml:"base_url"`
	EventPath string `yaml:"-"` // Runtime input (GITHUB_EVENT_PATH), never from file
	Timeout   int    `yaml:"timeout"` // Seconds
}

// EmailConfig configures the Buttondown newsletter client
type EmailConfig struct {
	APIKey  string `yaml:"api_key,omitempty"` // Usually from BUTTONDOWN_API_KEY
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"` // Seconds
}

// HTTPConfig applies to outbound source checks
type HTTPConfig struct {
	UserAgent  string `yaml:"user_agent"`
	Timeout    int    `yaml:"timeout"` // Seconds
	HTTPProxy  string `yaml:"http_proxy,omitempty"`
	HTTPSProxy string `yaml:"https_proxy,omitempty"`
	NoProxy    string `yaml:"no_proxy,omitempty"`
}

// CacheConfig controls caching of source check results
type CacheConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Dir      string `yaml:"dir,omitempty"` // Empty uses ~/.mapbot/cache
	TTLHours int    `yaml:"ttl_hours"`
}

// VerifyConfig tunes the source verification fan-out
type VerifyConfig struct {
	Workers           int             `yaml:"workers"`
	RequestsPerSecond float64         `yaml:"requests_per_second"` // Per-domain
	BurstSize         int             `yaml:"burst_size"`
	MaxRetries        int             `yaml:"max_retries"`
	Authority         AuthorityConfig `yaml:"authority"`
}

// AuthorityConfig classifies source domains into authority tiers
type AuthorityConfig struct {
	PrimaryDomains   []string `yaml:"primary_domains"`
	SecondaryDomains []string `yaml:"secondary_domains"`
}

// OutputConfig controls console output
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the built-in defaults, tuned for the
// electionriskmap.org working tree and its GitHub Actions runner
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			IndexPath: "index.html",
			FeedPath:  "feed.xml",
			BriefPath: "prompts/scan_brief.txt",
			URL:       "https://electionriskmap.org",
			CycleYear: 2026,
		},
		Generator: GeneratorConfig{
			Provider:  "anthropic",
			MaxTokens: 8192,
			Timeout:   120,
		},
		Tracker: TrackerConfig{
			BaseURL: "https://api.github.com",
			Timeout: 30,
		},
		Email: EmailConfig{
			BaseURL: "https://api.buttondown.com",
			Timeout: 30,
		},
		HTTP: HTTPConfig{
			UserAgent: "mapbot/1.0 (+https://electionriskmap.org)",
			Timeout:   10,
		},
		Cache: CacheConfig{
			Enabled:  true,
			TTLHours: 24,
		},
		Verify: VerifyConfig{
			Workers:           4,
			RequestsPerSecond: 2.0,
			BurstSize:         4,
			MaxRetries:        3,
			Authority: AuthorityConfig{
				PrimaryDomains: []string{
					"justice.gov",
					"supremecourt.gov",
					"uscourts.gov",
					"congress.gov",
					"whitehouse.gov",
					"eac.gov",
					"cisa.gov",
					"fec.gov",
				},
				SecondaryDomains: []string{
					"brennancenter.org",
					"democracydocket.com",
					"votebeat.org",
					"electionline.org",
					"apnews.com",
					"reuters.com",
					"npr.org",
					"propublica.org",
				},
			},
		},
		Output: OutputConfig{
			Verbose: false,
		},
	}
}
