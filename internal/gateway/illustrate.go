package gateway

import (
	"context"
	"strings"

	"github.com/careerco/companion/internal/learn"
)

// StoryStyles are the selectable art universes for poster generation.
var StoryStyles = []string{
	"Stranger Things", "Marvel", "Tech Noir", "Shakespeare",
	"Harry Potter", "Star Wars", "Game of Thrones", "Rick and Morty",
	"Sherlock Holmes", "Lord of the Rings", "The Matrix", "Anime (Shonen)",
	"Pixar", "Wes Anderson", "Cyberpunk 2077",
}

// Placeholder documents substituted when generation fails or produces
// something that is not an SVG.
const (
	failedSVG  = "<svg viewBox='0 0 500 500'><text y='50'>Failed to generate valid SVG</text></svg>"
	offlineSVG = "<svg viewBox='0 0 500 500'><text y='50'>Agent Offline</text></svg>"
)

// IllustrateStory turns source text into a stylized SVG poster document.
// The generator sometimes wraps its output in code fences despite
// instructions; those are stripped before validation. Anything that does
// not start with the SVG root tag is replaced with a visible placeholder.
func (g *Gateway) IllustrateStory(ctx context.Context, content, style string, persona learn.Persona, language string) string {
	if language == "" {
		language = learn.DefaultLanguage
	}
	ctx = WithPurpose(ctx, "illustrate")

	resp, err := g.provider.GenerateText(ctx, TextRequest{
		Prompt:      storyPrompt(content, style, persona, language),
		Temperature: 1.0, // high creativity
	})
	if err != nil {
		g.log.Warn("story generation failed", "style", style, "err", err)
		return offlineSVG
	}

	text := sanitizeSVG(resp.Text)
	if !strings.HasPrefix(text, "<svg") {
		return failedSVG
	}
	return text
}

// IsPlaceholderSVG reports whether the document is one of the failure
// placeholders rather than a generated poster.
func IsPlaceholderSVG(svg string) bool {
	return svg == failedSVG || svg == offlineSVG
}

// sanitizeSVG strips markdown code-fence wrappers from generator output.
func sanitizeSVG(text string) string {
	text = strings.ReplaceAll(text, "```svg", "")
	text = strings.ReplaceAll(text, "```xml", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}
