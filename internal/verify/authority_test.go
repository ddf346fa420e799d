package verify

import (
	"testing"

	"github.com/electionriskmap/mapbot/internal/model"
)

func TestAuthorityClassifier_PrimaryDomains(t *testing.T) {
	config := &model.AuthorityConfig{
		PrimaryDomains: []string{
			"justice.gov",
			"uscourts.gov",
			"eac.gov",
		},
		SecondaryDomains: []string{
			"apnews.com",
		},
	}

	classifier := NewAuthorityClassifier(config)

	tests := []struct {
		url      string
		expected model.AuthorityTier
		desc     string
	}{
		{
			url:      "https://justice.gov/opa/pr/123",
			expected: model.TierPrimary,
			desc:     "Primary domain exact match",
		},
		{
			url:      "https://www.justice.gov/opa/pr/123",
			expected: model.TierPrimary,
			desc:     "Primary domain with subdomain",
		},
		{
			url:      "https://ecf.uscourts.gov/docket/456",
			expected: model.TierPrimary,
			desc:     "Court filing system",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			result := classifier.Classify(tt.url)
			if result != tt.expected {
				t.Errorf("Expected %v for %s, got %v", tt.expected, tt.url, result)
			}
		})
	}
}

func TestAuthorityClassifier_SecondaryDomains(t *testing.T) {
	config := &model.AuthorityConfig{
		SecondaryDomains: []string{
			"democracydocket.com",
			"votebeat.org",
		},
	}

	classifier := NewAuthorityClassifier(config)

	tests := []struct {
		url      string
		expected model.AuthorityTier
		desc     string
	}{
		{
			url:      "https://www.democracydocket.com/cases/mn",
			expected: model.TierSecondary,
			desc:     "Election-law tracker",
		},
		{
			url:      "https://votebeat.org/texas/2026/story",
			expected: model.TierSecondary,
			desc:     "Election press",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			result := classifier.Classify(tt.url)
			if result != tt.expected {
				t.Errorf("Expected %v for %s, got %v", tt.expected, tt.url, result)
			}
		})
	}
}

func TestAuthorityClassifier_TLDHeuristics(t *testing.T) {
	classifier := NewAuthorityClassifier(&model.AuthorityConfig{})

	tests := []struct {
		url      string
		expected model.AuthorityTier
		desc     string
	}{
		{
			url:      "https://sos.wa.gov/elections",
			expected: model.TierPrimary,
			desc:     ".gov TLD should be primary even when unlisted",
		},
		{
			url:      "https://electionlab.mit.edu/research",
			expected: model.TierPrimary,
			desc:     ".edu TLD should be primary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			result := classifier.Classify(tt.url)
			if result != tt.expected {
				t.Errorf("Expected %v for %s, got %v", tt.expected, tt.url, result)
			}
		})
	}
}

func TestAuthorityClassifier_TertiaryDefault(t *testing.T) {
	classifier := NewAuthorityClassifier(nil)

	tests := []struct {
		url      string
		expected model.AuthorityTier
		desc     string
	}{
		{
			url:      "https://randomsite.com/page",
			expected: model.TierTertiary,
			desc:     "Unknown domain defaults to tertiary",
		},
		{
			url:      "https://someblog.substack.com/p/hot-take",
			expected: model.TierTertiary,
			desc:     "Newsletter defaults to tertiary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			result := classifier.Classify(tt.url)
			if result != tt.expected {
				t.Errorf("Expected %v for %s, got %v", tt.expected, tt.url, result)
			}
		})
	}
}

func TestAuthorityClassifier_InvalidURLs(t *testing.T) {
	classifier := NewAuthorityClassifier(nil)

	tests := []struct {
		url      string
		expected model.AuthorityTier
		desc     string
	}{
		{
			url:      "not-a-url",
			expected: model.TierTertiary,
			desc:     "Invalid URL defaults to tertiary",
		},
		{
			url:      "://missing-scheme",
			expected: model.TierTertiary,
			desc:     "Malformed URL defaults to tertiary",
		},
		{
			url:      "",
			expected: model.TierTertiary,
			desc:     "Empty URL defaults to tertiary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			result := classifier.Classify(tt.url)
			if result != tt.expected {
				t.Errorf("Expected %v for %s, got %v", tt.expected, tt.url, result)
			}
		})
	}
}

func TestAuthorityClassifier_PortHandling(t *testing.T) {
	config := &model.AuthorityConfig{
		PrimaryDomains: []string{"example.gov"},
	}

	classifier := NewAuthorityClassifier(config)

	result := classifier.Classify("http://example.gov:8080/page")
	if result != model.TierPrimary {
		t.Errorf("Expected URL with port to match domain, got %v", result)
	}
}

func TestNewAuthorityClassifier_NilConfig(t *testing.T) {
	classifier := NewAuthorityClassifier(nil)

	if classifier == nil {
		t.Fatal("Expected classifier to be created with default config")
	}

	// Built-in defaults should recognize the tracker's core sources
	if classifier.Classify("https://www.justice.gov/opa") != model.TierPrimary {
		t.Error("Expected default config to classify justice.gov as primary")
	}
	if classifier.Classify("https://apnews.com/article/1") != model.TierSecondary {
		t.Error("Expected default config to classify apnews.com as secondary")
	}
}
