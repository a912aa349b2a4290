package router

import (
	"github.com/careerco/companion/internal/screen"

	tea "charm.land/bubbletea/v2"
)

// PushScreenMsg requests the router to push a new screen onto the stack.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg requests the router to pop the current screen off the stack.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the active screen without growing the stack.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// NavigateMsg requests navigation to a named route. Unknown paths land
// on the router's fallback route.
type NavigateMsg struct {
	Path string
}

// Builder constructs a fresh screen for a route.
type Builder func() screen.Screen

// Router manages a stack of screens plus a named route table.
type Router struct {
	stack    []screen.Screen
	routes   map[string]Builder
	fallback string
}

// New creates a new Router with the given initial screen.
func New(initial screen.Screen) *Router {
	return &Router{
		stack:  []screen.Screen{initial},
		routes: make(map[string]Builder),
	}
}

// Register adds a named route. The first registered route becomes the
// fallback unless SetFallback overrides it.
func (r *Router) Register(path string, b Builder) {
	if len(r.routes) == 0 && r.fallback == "" {
		r.fallback = path
	}
	r.routes[path] = b
}

// SetFallback names the route used for unknown paths.
func (r *Router) SetFallback(path string) {
	r.fallback = path
}

// Resolve maps a path to itself if registered, or the fallback.
func (r *Router) Resolve(path string) string {
	if _, ok := r.routes[path]; ok {
		return path
	}
	return r.fallback
}

// Navigate resets the stack to the screen for the given route.
func (r *Router) Navigate(path string) tea.Cmd {
	b, ok := r.routes[r.Resolve(path)]
	if !ok {
		return nil
	}
	s := b()
	r.stack = []screen.Screen{s}
	return s.Init()
}

// Push adds a screen on top of the stack and calls its Init().
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop removes the top screen. No-op if stack depth would become 0.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack = r.stack[:len(r.stack)-1]
	return nil
}

// Replace swaps the top screen for a new one and calls its Init().
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if len(r.stack) == 0 {
		return r.Push(s)
	}
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// Active returns the top screen on the stack.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of screens on the stack.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update forwards a message to the active screen and handles navigation messages.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case NavigateMsg:
		return r.Navigate(msg.Path)
	}

	active := r.Active()
	if active == nil {
		return nil
	}

	updated, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}
