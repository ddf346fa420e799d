package verify

import (
	"net/url"
	"strings"

	"github.com/electionriskmap/mapbot/internal/model"
)

// AuthorityClassifier buckets source domains into tiers: official
// government and court sources first, established election-law press
// second, everything else third.
type AuthorityClassifier struct {
	primaryMap   map[string]bool
	secondaryMap map[string]bool
}

// NewAuthorityClassifier creates a new authority classifier
func NewAuthorityClassifier(config *model.AuthorityConfig) *AuthorityClassifier {
	if config == nil {
		config = &model.DefaultConfig().Verify.Authority
	}

	classifier := &AuthorityClassifier{
		primaryMap:   make(map[string]bool),
		secondaryMap: make(map[string]bool),
	}

	for _, domain := range config.PrimaryDomains {
		classifier.primaryMap[domain] = true
	}
	for _, domain := range config.SecondaryDomains {
		classifier.secondaryMap[domain] = true
	}

	return classifier
}

// Classify classifies a URL into an authority tier
func (a *AuthorityClassifier) Classify(rawURL string) model.AuthorityTier {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return model.TierTertiary
	}

	host := parsed.Host

	// Remove port from host
	if idx := strings.Index(host, ":"); idx > 0 {
		host = host[:idx]
	}

	if matchesDomain(host, a.primaryMap) {
		return model.TierPrimary
	}
	if matchesDomain(host, a.secondaryMap) {
		return model.TierSecondary
	}

	// Government and academic hosts count as primary even when not
	// listed explicitly
	if strings.HasSuffix(host, ".gov") || strings.HasSuffix(host, ".edu") {
		return model.TierPrimary
	}

	return model.TierTertiary
}

// matchesDomain reports whether host is one of the domains or a
// subdomain of one
func matchesDomain(host string, domains map[string]bool) bool {
	if domains[host] {
		return true
	}
	for domain := range domains {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}
