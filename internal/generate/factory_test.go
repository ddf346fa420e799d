package generate

import (
	"strings"
	"testing"
)

func TestNewProvider_Anthropic(t *testing.T) {
	provider, err := NewProvider(Config{Provider: "anthropic", APIKey: "key"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if provider.Name() != "anthropic" {
		t.Errorf("Expected anthropic, got %s", provider.Name())
	}
}

func TestNewProvider_ClaudeAlias(t *testing.T) {
	provider, err := NewProvider(Config{Provider: "claude", APIKey: "key"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if provider.Name() != "anthropic" {
		t.Errorf("Expected anthropic, got %s", provider.Name())
	}
}

func TestNewProvider_Empty(t *testing.T) {
	provider, err := NewProvider(Config{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if provider != nil {
		t.Errorf("Expected nil provider, got %v", provider)
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	_, err := NewProvider(Config{Provider: "grok"})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !strings.Contains(err.Error(), "unknown provider") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestNewProvider_AnthropicRequiresKey(t *testing.T) {
	_, err := NewProvider(Config{Provider: "anthropic"})
	if err == nil {
		t.Fatal("Expected error without API key, got nil")
	}
}
