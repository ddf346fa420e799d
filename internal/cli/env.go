package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/electionriskmap/mapbot/internal/model"
)

// buildConfig assembles the run configuration from defaults, command
// flags and the conventional environment variables. Credentials only
// ever come from the environment, matching the Actions runner.
func buildConfig(provider, modelName, indexPath, feedPath, briefPath string) (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose

	if indexPath != "" {
		cfg.Site.IndexPath = indexPath
	}
	if feedPath != "" {
		cfg.Site.FeedPath = feedPath
	}
	if briefPath != "" {
		cfg.Site.BriefPath = briefPath
	}

	cfg.Generator.Provider = provider
	cfg.Generator.Model = modelName

	switch strings.ToLower(provider) {
	case "openai":
		cfg.Generator.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.Generator.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.Generator.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.Generator.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.Generator.BaseURL = baseURL
		}
	}

	cfg.Tracker.Repo = os.Getenv("GITHUB_REPOSITORY")
	cfg.Tracker.Token = os.Getenv("GITHUB_TOKEN")
	cfg.Tracker.EventPath = os.Getenv("GITHUB_EVENT_PATH")
	cfg.Email.APIKey = os.Getenv("BUTTONDOWN_API_KEY")

	return cfg, nil
}
