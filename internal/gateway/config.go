package gateway

import (
	"fmt"
	"os"
	"time"
)

// Model identifiers per capability. Each capability rides a distinct
// model over the same credentialed channel.
const (
	ModelFlash  = "gemini-2.5-flash"
	ModelVision = "gemini-2.5-flash" // supports documents too
	ModelTTS    = "gemini-2.5-flash-preview-tts"
	ModelCoach  = "gemini-3-pro-preview"
	ModelImage  = "gemini-2.5-flash-image"
	ModelVideo  = "veo-3.1-fast-generate-preview"
	ModelLive   = "gemini-2.5-flash-native-audio-preview-09-2025"
)

// Config holds gateway provider configuration.
type Config struct {
	// Provider selects the text provider.
	// Values: "gemini", "openai", "anthropic", "mock"
	Provider string

	Gemini    GeminiConfig
	OpenAI    OpenAIConfig
	Anthropic AnthropicConfig

	// Timeout is the maximum duration for a single gateway request.
	// Default: 60s. There is no retry policy — every call is one-shot.
	Timeout time.Duration
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey    string
	TextModel string // Default: ModelFlash
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional override for compatible APIs.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku-4-5-20251001"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Gemini: GeminiConfig{
			TextModel: ModelFlash,
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku-4-5-20251001",
		},
		Timeout: 60 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("COMPANION_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	if k := os.Getenv("COMPANION_GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	}
	if m := os.Getenv("COMPANION_GEMINI_MODEL"); m != "" {
		cfg.Gemini.TextModel = m
	}

	if k := os.Getenv("COMPANION_OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if m := os.Getenv("COMPANION_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("COMPANION_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	if k := os.Getenv("COMPANION_ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	}
	if m := os.Getenv("COMPANION_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	return cfg
}

// DiscoverConfig probes standard API key env vars in priority order
// (Gemini → OpenAI → Anthropic) and returns a Config for the first
// provider whose key is found. Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("COMPANION_GEMINI_API_KEY is required for the gemini provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("COMPANION_OPENAI_API_KEY is required for the openai provider")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("COMPANION_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown gateway provider: %q", c.Provider)
	}
	return nil
}
