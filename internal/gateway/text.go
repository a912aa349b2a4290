package gateway

import (
	"context"
	"fmt"

	"github.com/careerco/companion/internal/learn"
)

// LessonMarkdown generates a structured markdown lesson for the given
// subject, topic and persona. Pure function of its inputs — the caller
// decides whether to cache.
func (g *Gateway) LessonMarkdown(ctx context.Context, subject, topic string, persona learn.Persona) (string, error) {
	ctx = WithPurpose(ctx, "lesson")

	resp, err := g.provider.GenerateText(ctx, TextRequest{
		Prompt:      lessonPrompt(subject, topic, persona),
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("lesson generation: %w", err)
	}
	return resp.Text, nil
}

// Translate renders markdown text into the target language, preserving
// structure. On any failure the original text is returned unchanged — an
// idempotent no-op fallback, never an error surfaced to the user.
func (g *Gateway) Translate(ctx context.Context, text, targetLanguage string) string {
	if targetLanguage == "" || targetLanguage == learn.DefaultLanguage {
		return text
	}
	ctx = WithPurpose(ctx, "translate")

	resp, err := g.provider.GenerateText(ctx, TextRequest{
		Prompt:      translatePrompt(text, targetLanguage),
		Temperature: 0.3,
	})
	if err != nil {
		g.log.Warn("translation failed", "language", targetLanguage, "err", err)
		return text
	}
	if resp.Text == "" {
		return text
	}
	return resp.Text
}
