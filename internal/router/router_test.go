package router

import (
	"fmt"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/careerco/companion/internal/screen"
)

type stubScreen struct {
	title  string
	inited bool
	last   tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.inited = true
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.last = msg
	return s, nil
}

func (s *stubScreen) View(width, height int) string { return s.title }
func (s *stubScreen) Title() string                 { return s.title }

func TestPushPopReplace(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)
	if r.Depth() != 1 {
		t.Fatalf("initial depth = %d, want 1", r.Depth())
	}

	detail := &stubScreen{title: "detail"}
	r.Update(PushScreenMsg{Screen: detail})
	if r.Depth() != 2 || r.Active() != detail {
		t.Fatalf("push: depth=%d active=%v", r.Depth(), r.Active().Title())
	}
	if !detail.inited {
		t.Fatal("pushed screen was not initialized")
	}

	swapped := &stubScreen{title: "swapped"}
	r.Update(ReplaceScreenMsg{Screen: swapped})
	if r.Depth() != 2 || r.Active() != swapped {
		t.Fatalf("replace: depth=%d active=%v", r.Depth(), r.Active().Title())
	}

	r.Update(PopScreenMsg{})
	if r.Depth() != 1 || r.Active() != home {
		t.Fatalf("pop: depth=%d active=%v", r.Depth(), r.Active().Title())
	}

	// Popping the last screen is a no-op.
	r.Update(PopScreenMsg{})
	if r.Depth() != 1 {
		t.Fatalf("pop at depth 1: depth = %d, want 1", r.Depth())
	}
}

func TestResolveFallsBackForUnknownPath(t *testing.T) {
	r := New(&stubScreen{title: "boot"})
	r.Register("/lessons", func() screen.Screen { return &stubScreen{title: "lessons"} })
	r.Register("/tutor", func() screen.Screen { return &stubScreen{title: "tutor"} })

	if got := r.Resolve("/tutor"); got != "/tutor" {
		t.Fatalf("Resolve(/tutor) = %q", got)
	}
	if got := r.Resolve("/nope"); got != "/lessons" {
		t.Fatalf("Resolve(/nope) = %q, want first registered route", got)
	}

	r.SetFallback("/tutor")
	if got := r.Resolve("/nope"); got != "/tutor" {
		t.Fatalf("Resolve after SetFallback = %q, want /tutor", got)
	}
}

func TestNavigateResetsStack(t *testing.T) {
	r := New(&stubScreen{title: "boot"})
	built := 0
	r.Register("/lessons", func() screen.Screen {
		built++
		return &stubScreen{title: fmt.Sprintf("lessons-%d", built)}
	})

	r.Update(PushScreenMsg{Screen: &stubScreen{title: "deep"}})
	r.Update(PushScreenMsg{Screen: &stubScreen{title: "deeper"}})
	if r.Depth() != 3 {
		t.Fatalf("setup depth = %d, want 3", r.Depth())
	}

	r.Update(NavigateMsg{Path: "/lessons"})
	if r.Depth() != 1 {
		t.Fatalf("navigate depth = %d, want 1", r.Depth())
	}
	if got := r.Active().Title(); got != "lessons-1" {
		t.Fatalf("active after navigate = %q", got)
	}

	// Unknown path lands on the fallback with a fresh screen.
	r.Update(NavigateMsg{Path: "/missing"})
	if got := r.Active().Title(); got != "lessons-2" {
		t.Fatalf("active after unknown navigate = %q", got)
	}
}

func TestUpdateForwardsToActiveScreen(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)

	msg := tea.WindowSizeMsg{Width: 100, Height: 40}
	r.Update(msg)
	if home.last != msg {
		t.Fatalf("active screen saw %v, want %v", home.last, msg)
	}
	if got := r.View(100, 40); got != "home" {
		t.Fatalf("View = %q", got)
	}
}
