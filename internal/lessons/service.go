package lessons

import (
	"context"
	"sync"

	"github.com/careerco/companion/internal/gateway"
	"github.com/careerco/companion/internal/learn"
)

// Generator produces lesson content for a subject/title pair. The
// gateway satisfies this; tests substitute their own.
type Generator interface {
	LessonMarkdown(ctx context.Context, subject, title string, persona learn.Persona) (string, error)
}

// Service resolves lesson content: static table, then in-memory cache,
// then the generator. Generated lessons are cached for the process
// lifetime so re-opening a lesson is free.
type Service struct {
	gen Generator

	mu    sync.Mutex
	cache map[string]string
}

func NewService(gen Generator) *Service {
	return &Service{gen: gen, cache: make(map[string]string)}
}

// Content returns the lesson body and whether it was served without a
// generator call.
func (s *Service) Content(ctx context.Context, subject, title string, persona learn.Persona) (string, bool, error) {
	if body, ok := StaticLesson(subject, title); ok {
		return body, true, nil
	}

	key := subject + "|" + title + "|" + string(persona)
	s.mu.Lock()
	body, ok := s.cache[key]
	s.mu.Unlock()
	if ok {
		return body, true, nil
	}

	body, err := s.gen.LessonMarkdown(ctx, subject, title, persona)
	if err != nil {
		return "", false, err
	}
	s.mu.Lock()
	s.cache[key] = body
	s.mu.Unlock()
	return body, false, nil
}

var _ Generator = (*gateway.Gateway)(nil)
