package model

import "fmt"

// ConfigError marks a missing required credential or input. Raised before
// any file or network side effect, so the run can abort clean.
type ConfigError struct {
	Key string // What was missing, e.g. "ANTHROPIC_API_KEY" or "issue body"
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing required input: %s", e.Key)
}
