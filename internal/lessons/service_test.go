package lessons

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/careerco/companion/internal/learn"
)

type fakeGenerator struct {
	calls int
	body  string
	err   error
}

func (f *fakeGenerator) LessonMarkdown(ctx context.Context, subject, title string, persona learn.Persona) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.body, nil
}

func TestContentServesStaticWithoutGenerator(t *testing.T) {
	gen := &fakeGenerator{body: "generated"}
	svc := NewService(gen)

	body, instant, err := svc.Content(context.Background(), "Physics", "Introduction & Fundamentals", learn.PersonaStudent)
	require.NoError(t, err)
	require.True(t, instant)
	require.Contains(t, body, "Introduction to Physics")
	require.Zero(t, gen.calls)
}

func TestContentCachesGeneratedLessons(t *testing.T) {
	gen := &fakeGenerator{body: "# Advanced Physics\n\nContent."}
	svc := NewService(gen)
	ctx := context.Background()

	body, instant, err := svc.Content(ctx, "Physics", "Advanced Techniques", learn.PersonaStudent)
	require.NoError(t, err)
	require.False(t, instant)
	require.Equal(t, gen.body, body)
	require.Equal(t, 1, gen.calls)

	body, instant, err = svc.Content(ctx, "Physics", "Advanced Techniques", learn.PersonaStudent)
	require.NoError(t, err)
	require.True(t, instant)
	require.Equal(t, gen.body, body)
	require.Equal(t, 1, gen.calls, "cache hit must not call the generator again")
}

func TestContentCacheIsPerPersona(t *testing.T) {
	gen := &fakeGenerator{body: "lesson"}
	svc := NewService(gen)
	ctx := context.Background()

	_, _, err := svc.Content(ctx, "Physics", "Advanced Techniques", learn.PersonaStudent)
	require.NoError(t, err)
	_, _, err = svc.Content(ctx, "Physics", "Advanced Techniques", learn.PersonaExperienced)
	require.NoError(t, err)
	require.Equal(t, 2, gen.calls)
}

func TestContentPropagatesGeneratorError(t *testing.T) {
	wantErr := errors.New("model offline")
	gen := &fakeGenerator{err: wantErr}
	svc := NewService(gen)

	_, _, err := svc.Content(context.Background(), "Physics", "Case Studies", learn.PersonaStudent)
	require.ErrorIs(t, err, wantErr)

	gen.err = nil
	gen.body = "recovered"
	body, instant, err := svc.Content(context.Background(), "Physics", "Case Studies", learn.PersonaStudent)
	require.NoError(t, err)
	require.False(t, instant, "errors must not be cached")
	require.Equal(t, "recovered", body)
}

func TestSubjectsFallBackToStudentTrack(t *testing.T) {
	require.Equal(t, Subjects(learn.PersonaStudent), Subjects(learn.Persona("unknown")))
	require.Len(t, Subjects(learn.PersonaFresher), 10)
	require.Len(t, Titles, 10)
}
