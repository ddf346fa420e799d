// Package verify probes the source URLs a research scan cites, so the
// reviewer sees which citations actually resolve before approving an
// update.
package verify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/electionriskmap/mapbot/internal/cache"
	"github.com/electionriskmap/mapbot/internal/model"
	"github.com/electionriskmap/mapbot/internal/util"
	"github.com/electionriskmap/mapbot/internal/worker"
)

// sleepFunc is the sleep function used between retries (injectable for tests)
var sleepFunc = time.Sleep

// Verifier checks cited URLs concurrently: robots.txt gate first, then
// a rate-limited HEAD request with retry on transient failures.
type Verifier struct {
	httpClient *http.Client
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	store      cache.Cache
	authority  *AuthorityClassifier
	workers    int
	maxRetries int
	userAgent  string
	cacheTTL   time.Duration
}

// NewVerifier creates a verifier. A nil store disables caching.
func NewVerifier(cfg model.VerifyConfig, httpCfg model.HTTPConfig, store cache.Cache, cacheTTL time.Duration) *Verifier {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	timeout := time.Duration(httpCfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Verifier{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		robots:     util.NewRobotsChecker(httpCfg.UserAgent, timeout),
		limiter:    worker.NewLimiter(cfg.RequestsPerSecond, cfg.BurstSize),
		store:      store,
		authority:  NewAuthorityClassifier(&cfg.Authority),
		workers:    workers,
		maxRetries: maxRetries,
		userAgent:  httpCfg.UserAgent,
		cacheTTL:   cacheTTL,
	}
}

// checkJob probes one URL through the worker pool
type checkJob struct {
	url      string
	verifier *Verifier
}

func (j *checkJob) Execute(ctx context.Context) worker.Result {
	return &checkResult{check: j.verifier.checkWithRetry(ctx, j.url)}
}

// checkResult wraps a SourceCheck as a pool result
type checkResult struct {
	check model.SourceCheck
}

func (r *checkResult) GetError() error {
	if r.check.Error != "" {
		return errors.New(r.check.Error)
	}
	return nil
}

// CheckSources probes every distinct source URL the findings cite and
// returns the results keyed by URL.
func (v *Verifier) CheckSources(ctx context.Context, findings []model.Finding) map[string]model.SourceCheck {
	var urls []string
	seen := make(map[string]bool)
	for _, f := range findings {
		for _, s := range f.Sources {
			u := strings.TrimSpace(s.URL)
			if u == "" || seen[u] {
				continue
			}
			seen[u] = true
			urls = append(urls, u)
		}
	}

	checks := make(map[string]model.SourceCheck, len(urls))
	if len(urls) == 0 {
		return checks
	}

	pool := worker.NewPool(v.workers)
	pool.Start()
	for _, u := range urls {
		pool.Submit(&checkJob{url: u, verifier: v})
	}

	for _, result := range pool.Wait() {
		if cr, ok := result.(*checkResult); ok {
			checks[cr.check.URL] = cr.check
		}
	}

	return checks
}

// checkWithRetry consults the cache, then retries transient failures
// with exponential backoff.
func (v *Verifier) checkWithRetry(ctx context.Context, rawURL string) model.SourceCheck {
	if cached, ok := v.cachedCheck(rawURL); ok {
		return cached
	}

	var check model.SourceCheck
	for attempt := 0; attempt < v.maxRetries; attempt++ {
		check = v.checkOnce(ctx, rawURL)
		if !isRetryableCheck(check) {
			// Transient failures are never cached; terminal outcomes are
			v.storeCheck(check)
			return check
		}
		if attempt < v.maxRetries-1 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			sleepFunc(backoff)
		}
	}
	return check
}

// checkOnce performs a single robots-gated HEAD probe
func (v *Verifier) checkOnce(ctx context.Context, rawURL string) model.SourceCheck {
	check := model.SourceCheck{
		URL:       rawURL,
		Authority: v.authority.Classify(rawURL),
	}

	allowed, err := v.robots.CanFetch(ctx, rawURL)
	if err != nil {
		check.Error = fmt.Sprintf("robots check: %v", err)
		return check
	}
	if !allowed {
		check.RobotsBlocked = true
		check.Error = "blocked by robots.txt"
		return check
	}

	if err := v.limiter.Wait(ctx, rawURL); err != nil {
		check.Error = fmt.Sprintf("rate limit wait: %v", err)
		return check
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		check.Error = fmt.Sprintf("create request: %v", err)
		return check
	}
	req.Header.Set("User-Agent", v.userAgent)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		check.Error = fmt.Sprintf("request failed: %v", err)
		return check
	}
	defer func() { _ = resp.Body.Close() }()

	check.StatusCode = resp.StatusCode
	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		check.OK = true
	}

	return check
}

// isRetryableCheck returns true for results that indicate transient failures
func isRetryableCheck(check model.SourceCheck) bool {
	if check.RobotsBlocked {
		return false
	}
	// Retry on 5xx server errors and 429 rate limits
	if check.StatusCode >= 500 && check.StatusCode < 600 {
		return true
	}
	if check.StatusCode == 429 {
		return true
	}
	// Retry on network errors (timeout, connection refused)
	if check.Error != "" && check.StatusCode == 0 {
		return isRetryableNetworkError(check.Error)
	}
	return false
}

// isRetryableNetworkError checks error strings for transient network failures
func isRetryableNetworkError(errMsg string) bool {
	s := strings.ToLower(errMsg)
	return strings.Contains(s, "timeout") ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connection reset")
}

func (v *Verifier) cachedCheck(rawURL string) (model.SourceCheck, bool) {
	if v.store == nil {
		return model.SourceCheck{}, false
	}

	data, found := v.store.Get(cache.CacheKey(rawURL))
	if !found {
		return model.SourceCheck{}, false
	}

	var check model.SourceCheck
	if err := json.Unmarshal(data, &check); err != nil {
		return model.SourceCheck{}, false
	}
	return check, true
}

func (v *Verifier) storeCheck(check model.SourceCheck) {
	if v.store == nil {
		return
	}

	// Only outcomes backed by an actual response or a robots verdict
	// are worth keeping; local errors are cheap to reproduce.
	if check.StatusCode == 0 && !check.RobotsBlocked {
		return
	}

	data, err := json.Marshal(check)
	if err != nil {
		return
	}
	_ = v.store.Set(cache.CacheKey(check.URL), data, v.cacheTTL)
}
