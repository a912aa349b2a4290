// Package gateway is the hosted generative-AI service boundary — the sole
// source of "intelligence" in the system. Every operation is stateless
// except chat handles. Failures downgrade to fallbacks at the call sites;
// no operation retries.
package gateway

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"github.com/careerco/companion/internal/learn"
	"github.com/careerco/companion/internal/store"
)

// Gateway shapes requests to the hosted AI service and decodes its
// responses: text, audio bytes, image bytes and video URIs.
type Gateway struct {
	provider Provider
	genai    *genai.Client // nil unless the gemini provider is selected
	cfg      Config
	events   store.EventRepo
	log      *slog.Logger
}

// New builds a Gateway for the configured provider. events may be nil to
// disable the persisted call log.
func New(ctx context.Context, cfg Config, events store.EventRepo, log *slog.Logger) (*Gateway, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	provider, gemini, err := newProvider(ctx, cfg, events, log)
	if err != nil {
		return nil, err
	}

	g := &Gateway{
		provider: provider,
		cfg:      cfg,
		events:   events,
		log:      log,
	}
	if gemini != nil {
		g.genai = gemini.Client()
	}
	return g, nil
}

// NewWithProvider builds a Gateway over an explicit text provider. Used
// by tests with the mock provider; multimodal capabilities report
// ErrUnsupported.
func NewWithProvider(p Provider, events store.EventRepo, log *slog.Logger) *Gateway {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Gateway{
		provider: p,
		cfg:      DefaultConfig(),
		events:   events,
		log:      log,
	}
}

// ProviderName returns the active text provider's identifier.
func (g *Gateway) ProviderName() string {
	return g.provider.Name()
}

// NewTutorChat opens a persona-and-language-scoped tutoring conversation.
// The returned handle must be replaced whenever the persona or language
// changes.
func (g *Gateway) NewTutorChat(ctx context.Context, persona learn.Persona, language string) (Chat, error) {
	return g.provider.NewChat(ctx, ChatConfig{
		System:      tutorSystemPrompt(persona, language),
		Temperature: 0.7,
	})
}

// NewCoachChat opens a career-strategy conversation with web-search
// grounding. Grounding is only available on the Gemini provider; others
// run the same conversation without citations.
func (g *Gateway) NewCoachChat(ctx context.Context, persona learn.Persona) (Chat, error) {
	return g.provider.NewChat(ctx, ChatConfig{
		Model:      ModelCoach,
		System:     coachSystemPrompt(persona),
		WithSearch: true,
	})
}

// requireGemini guards the multimodal capabilities.
func (g *Gateway) requireGemini(capability string) error {
	if g.genai == nil {
		return &ErrUnsupported{Capability: capability, Provider: g.provider.Name()}
	}
	return nil
}

// record appends a multimodal call to the gateway event log.
func (g *Gateway) record(ctx context.Context, purpose, model string, start time.Time, err error, inChars, outChars int) {
	if g.events == nil {
		return
	}
	data := store.GatewayEventData{
		Purpose:     purpose,
		Provider:    g.provider.Name(),
		Model:       model,
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		InputChars:  inChars,
		OutputChars: outChars,
	}
	if err != nil {
		data.Error = err.Error()
	}
	if logErr := g.events.Append(context.WithoutCancel(ctx), data); logErr != nil {
		g.log.Warn("failed to log gateway event", "err", logErr)
	}
}

func personaAudience(p learn.Persona) string {
	switch p {
	case learn.PersonaFresher:
		return "a fresher entering the job market"
	case learn.PersonaExperienced:
		return "an experienced professional"
	default:
		return "a school or college student"
	}
}
