package gateway

import (
	"context"
	"strings"
	"testing"

	"github.com/careerco/companion/internal/learn"
)

func TestIllustrateStoryStripsCodeFences(t *testing.T) {
	mock := NewMockProvider(MockReply{Text: "```svg\n<svg viewBox='0 0 500 700'><rect/></svg>\n```"})
	g := NewWithProvider(mock, nil, nil)

	got := g.IllustrateStory(context.Background(), "gravity", "Pixar", learn.PersonaStudent, "English")
	if !strings.HasPrefix(got, "<svg") {
		t.Fatalf("fences not stripped: %q", got)
	}
	if IsPlaceholderSVG(got) {
		t.Fatal("valid document flagged as placeholder")
	}
}

func TestIllustrateStoryRejectsNonSVG(t *testing.T) {
	mock := NewMockProvider(MockReply{Text: "Sorry, I can't draw that."})
	g := NewWithProvider(mock, nil, nil)

	got := g.IllustrateStory(context.Background(), "gravity", "Marvel", learn.PersonaStudent, "English")
	if !IsPlaceholderSVG(got) {
		t.Fatalf("expected placeholder for non-SVG output, got %q", got)
	}
	if !strings.HasPrefix(got, "<svg") {
		t.Fatalf("placeholder itself must be renderable SVG: %q", got)
	}
}

func TestIllustrateStoryOfflineFallback(t *testing.T) {
	mock := NewMockProvider(MockReply{Err: &ErrUnavailable{}})
	g := NewWithProvider(mock, nil, nil)

	got := g.IllustrateStory(context.Background(), "gravity", "Tech Noir", learn.PersonaStudent, "English")
	if !IsPlaceholderSVG(got) {
		t.Fatalf("expected offline placeholder, got %q", got)
	}
}

func TestIllustrateStoryDefaultsLanguage(t *testing.T) {
	mock := NewMockProvider(MockReply{Text: "<svg viewBox='0 0 1 1'/>"})
	g := NewWithProvider(mock, nil, nil)

	g.IllustrateStory(context.Background(), "gravity", "Anime (Shonen)", learn.PersonaStudent, "")
	if len(mock.Calls) != 1 || !strings.Contains(mock.Calls[0], learn.DefaultLanguage) {
		t.Fatalf("empty language should default in the prompt: %v", mock.Calls)
	}
}
