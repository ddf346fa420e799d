// Package generate talks to the LLM provider that drafts site updates
// and runs research scans. Providers return raw text; turning that text
// into a descriptor or findings object lives in parse.go.
package generate

import "context"

// Provider defines the interface for generation backends
type Provider interface {
	// Name returns the provider name
	Name() string

	// Generate runs one synchronous generation call
	Generate(ctx context.Context, req Request) (*Response, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Request is the input for a single generation call
type Request struct {
	// System is the system instruction, empty to omit
	System string

	// Prompt is the user payload
	Prompt string

	// Model overrides the configured model when set
	Model string

	// MaxTokens limits the response length
	MaxTokens int

	// WebSearch lets the model search the web while answering.
	// Only the Anthropic backend supports this.
	WebSearch bool
}

// Response is the raw result of a generation call
type Response struct {
	// Text is the concatenated text output
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds generation provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "anthropic",
		Model:     "",
		Timeout:   120,
		MaxTokens: 8192,
	}
}
