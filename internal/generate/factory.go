package generate

import (
	"fmt"
	"strings"

	"github.com/electionriskmap/mapbot/internal/model"
)

// NewProvider creates a generation provider based on configuration
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		// No provider configured - generation disabled
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}
}

// ConfigFromModel converts the app-level generator and HTTP sections
// into a provider Config
func ConfigFromModel(gen model.GeneratorConfig, httpCfg model.HTTPConfig) Config {
	return Config{
		Provider:   gen.Provider,
		Model:      gen.Model,
		APIKey:     gen.APIKey,
		BaseURL:    gen.BaseURL,
		Timeout:    gen.Timeout,
		MaxTokens:  gen.MaxTokens,
		HTTPProxy:  httpCfg.HTTPProxy,
		HTTPSProxy: httpCfg.HTTPSProxy,
		NoProxy:    httpCfg.NoProxy,
	}
}
