package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures one backend.
type Config struct {
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// DefaultConfig picks the cheapest capable model of each backend.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-001"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2,
		},
	}
}

// envBindings maps KANAZ_* variables onto Config fields.
var envBindings = []struct {
	key   string
	field func(*Config) *string
}{
	{"KANAZ_LLM_PROVIDER", func(c *Config) *string { return &c.Provider }},
	{"KANAZ_ANTHROPIC_API_KEY", func(c *Config) *string { return &c.Anthropic.APIKey }},
	{"KANAZ_ANTHROPIC_MODEL", func(c *Config) *string { return &c.Anthropic.Model }},
	{"KANAZ_OPENAI_API_KEY", func(c *Config) *string { return &c.OpenAI.APIKey }},
	{"KANAZ_OPENAI_MODEL", func(c *Config) *string { return &c.OpenAI.Model }},
	{"KANAZ_OPENAI_BASE_URL", func(c *Config) *string { return &c.OpenAI.BaseURL }},
	{"KANAZ_GEMINI_API_KEY", func(c *Config) *string { return &c.Gemini.APIKey }},
	{"KANAZ_GEMINI_MODEL", func(c *Config) *string { return &c.Gemini.Model }},
	{"KANAZ_GEMINI_BASE_URL", func(c *Config) *string { return &c.Gemini.BaseURL }},
	{"KANAZ_OPENROUTER_API_KEY", func(c *Config) *string { return &c.OpenRouter.APIKey }},
	{"KANAZ_OPENROUTER_MODEL", func(c *Config) *string { return &c.OpenRouter.Model }},
	{"KANAZ_OPENROUTER_BASE_URL", func(c *Config) *string { return &c.OpenRouter.BaseURL }},
}

// vendorKeys are the vendors' own key variables, checked in this order.
var vendorKeys = []struct {
	env      string
	provider string
	field    func(*Config) *string
}{
	{"GEMINI_API_KEY", ProviderGemini, func(c *Config) *string { return &c.Gemini.APIKey }},
	{"OPENAI_API_KEY", ProviderOpenAI, func(c *Config) *string { return &c.OpenAI.APIKey }},
	{"ANTHROPIC_API_KEY", ProviderAnthropic, func(c *Config) *string { return &c.Anthropic.APIKey }},
	{"OPENROUTER_API_KEY", ProviderOpenRouter, func(c *Config) *string { return &c.OpenRouter.APIKey }},
}

// ConfigFromEnv overlays set KANAZ_* variables on DefaultConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	for _, b := range envBindings {
		if v := os.Getenv(b.key); v != "" {
			*b.field(&cfg) = v
		}
	}
	return cfg
}

// DiscoverConfig returns a Config for the first vendor key variable set.
func DiscoverConfig() (Config, bool) {
	for _, vk := range vendorKeys {
		if k := os.Getenv(vk.env); k != "" {
			cfg := DefaultConfig()
			cfg.Provider = vk.provider
			*vk.field(&cfg) = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Resolve returns the KANAZ_* configuration when a provider or a key for
// the default provider is set there, otherwise the discovered vendor
// configuration.
func Resolve() (Config, bool) {
	cfg := ConfigFromEnv()
	if os.Getenv("KANAZ_LLM_PROVIDER") != "" || cfg.Validate() == nil {
		return cfg, true
	}
	return DiscoverConfig()
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	if c.Provider == ProviderMock {
		return nil
	}
	for _, b := range envBindings {
		if b.key == "KANAZ_"+strings.ToUpper(c.Provider)+"_API_KEY" {
			if *b.field(&c) == "" {
				return fmt.Errorf("%s is required for the %s provider", b.key, c.Provider)
			}
			return nil
		}
	}
	return fmt.Errorf("unknown LLM provider: %q", c.Provider)
}
