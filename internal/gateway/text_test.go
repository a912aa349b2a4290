package gateway

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/careerco/companion/internal/learn"
)

func TestLessonMarkdown(t *testing.T) {
	mock := NewMockProvider(MockReply{Text: "# Lesson\nBody."})
	g := NewWithProvider(mock, nil, nil)

	got, err := g.LessonMarkdown(context.Background(), "Physics", "Core Concepts Deep Dive", learn.PersonaStudent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "# Lesson\nBody." {
		t.Fatalf("unexpected lesson body: %q", got)
	}
	if len(mock.Calls) != 1 || !strings.Contains(mock.Calls[0], "Physics") {
		t.Fatalf("prompt missing subject: %v", mock.Calls)
	}
}

func TestLessonMarkdownPropagatesFailure(t *testing.T) {
	mock := NewMockProvider(MockReply{Err: &ErrUnavailable{Err: errors.New("boom")}})
	g := NewWithProvider(mock, nil, nil)

	_, err := g.LessonMarkdown(context.Background(), "Physics", "Final Review", learn.PersonaStudent)
	if err == nil {
		t.Fatal("expected error")
	}
	var unavail *ErrUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrUnavailable, got %T", err)
	}
}

func TestTranslateReturnsTranslation(t *testing.T) {
	mock := NewMockProvider(MockReply{Text: "अनुवादित"})
	g := NewWithProvider(mock, nil, nil)

	if got := g.Translate(context.Background(), "original", "Hindi"); got != "अनुवादित" {
		t.Fatalf("expected translation, got %q", got)
	}
}

func TestTranslateFallsBackOnError(t *testing.T) {
	mock := NewMockProvider(MockReply{Err: &ErrUnavailable{}})
	g := NewWithProvider(mock, nil, nil)

	if got := g.Translate(context.Background(), "original", "Tamil"); got != "original" {
		t.Fatalf("expected original text on failure, got %q", got)
	}
}

func TestTranslateFallsBackOnEmptyReply(t *testing.T) {
	mock := NewMockProvider(MockReply{Text: ""})
	g := NewWithProvider(mock, nil, nil)

	if got := g.Translate(context.Background(), "original", "Tamil"); got != "original" {
		t.Fatalf("expected original text on empty reply, got %q", got)
	}
}

func TestTranslateSkipsDefaultLanguage(t *testing.T) {
	mock := NewMockProvider() // empty queue would error if called
	g := NewWithProvider(mock, nil, nil)

	if got := g.Translate(context.Background(), "original", learn.DefaultLanguage); got != "original" {
		t.Fatalf("expected passthrough, got %q", got)
	}
	if got := g.Translate(context.Background(), "original", ""); got != "original" {
		t.Fatalf("expected passthrough for empty target, got %q", got)
	}
	if len(mock.Calls) != 0 {
		t.Fatalf("provider called for no-op translation: %v", mock.Calls)
	}
}
