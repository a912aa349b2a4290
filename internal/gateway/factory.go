package gateway

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/careerco/companion/internal/store"
)

// newProvider creates the text Provider from configuration, wrapped with
// event logging. Gateway calls are one-shot; callers fall back on
// failure instead of retrying.
func newProvider(ctx context.Context, cfg Config, events store.EventRepo, log *slog.Logger) (Provider, *GeminiProvider, error) {
	var base Provider
	var gemini *GeminiProvider
	var err error

	switch cfg.Provider {
	case "gemini":
		gemini, err = NewGeminiProvider(ctx, cfg.Gemini)
		base = gemini
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, nil, fmt.Errorf("unknown gateway provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithLogging(base, events, log), gemini, nil
}
