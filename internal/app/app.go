// Package app owns the root Bubble Tea model: the onboarding gate,
// global navigation, and the shared frame around every screen.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/careerco/companion/internal/audio"
	"github.com/careerco/companion/internal/auth"
	"github.com/careerco/companion/internal/gateway"
	"github.com/careerco/companion/internal/learn"
	"github.com/careerco/companion/internal/lessons"
	"github.com/careerco/companion/internal/profile"
	"github.com/careerco/companion/internal/router"
	"github.com/careerco/companion/internal/screen"
	"github.com/careerco/companion/internal/screens/authscreen"
	"github.com/careerco/companion/internal/screens/coachagent"
	"github.com/careerco/companion/internal/screens/illustrateagent"
	"github.com/careerco/companion/internal/screens/interviewagent"
	"github.com/careerco/companion/internal/screens/lessonsagent"
	"github.com/careerco/companion/internal/screens/personaselect"
	"github.com/careerco/companion/internal/screens/studioagent"
	"github.com/careerco/companion/internal/screens/tutoragent"
	"github.com/careerco/companion/internal/screens/visionagent"
	"github.com/careerco/companion/internal/ui/layout"
)

// Deps are the services the screens draw on. Syncer may be nil when
// remote sync is not configured.
type Deps struct {
	Ctx     *learn.Context
	Auth    auth.Store
	Syncer  *profile.Syncer
	Gateway *gateway.Gateway
	Lessons *lessons.Service
	Device  audio.Device
	Log     *slog.Logger
}

// agentRoutes maps the alt+digit shortcuts, in order.
var agentRoutes = []struct {
	Path  string
	Label string
}{
	{"/lessons", "Lessons"},
	{"/tutor", "Tutor"},
	{"/vision", "Vision"},
	{"/illustrate", "Illustrate"},
	{"/coach", "Coach"},
	{"/interview", "Interview"},
	{"/studio", "Studio"},
}

// loggedOutMsg confirms the session was torn down.
type loggedOutMsg struct{ Err error }

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps   Deps
	router *router.Router
	width  int
	height int
}

// newAppModel wires the route table and picks the first screen from the
// onboarding stage.
func newAppModel(deps Deps) AppModel {
	var initial screen.Screen
	switch deps.Ctx.Stage() {
	case learn.StageAuth:
		initial = authscreen.New(deps.Auth, deps.Syncer, deps.Ctx)
	case learn.StagePersona:
		initial = personaselect.New(deps.Ctx)
	default:
		initial = lessonsagent.New(deps.Lessons, deps.Gateway, deps.Ctx)
	}

	r := router.New(initial)
	r.Register("/lessons", func() screen.Screen {
		return lessonsagent.New(deps.Lessons, deps.Gateway, deps.Ctx)
	})
	r.Register("/tutor", func() screen.Screen {
		return tutoragent.New(deps.Gateway, deps.Ctx)
	})
	r.Register("/vision", func() screen.Screen {
		return visionagent.New(deps.Gateway, deps.Ctx)
	})
	r.Register("/illustrate", func() screen.Screen {
		return illustrateagent.New(deps.Gateway, deps.Ctx)
	})
	r.Register("/coach", func() screen.Screen {
		return coachagent.New(deps.Gateway, deps.Ctx)
	})
	r.Register("/interview", func() screen.Screen {
		return interviewagent.New(deps.Gateway, deps.Ctx, deps.Device)
	})
	r.Register("/studio", func() screen.Screen {
		return studioagent.New(deps.Gateway, deps.Ctx)
	})
	r.SetFallback("/lessons")

	return AppModel{deps: deps, router: r}
}

func (m AppModel) Init() tea.Cmd {
	active := m.router.Active()
	if active == nil {
		return nil
	}
	return active.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case router.NavigateMsg:
		// Agent routes only exist once onboarding completes.
		if m.deps.Ctx.Stage() != learn.StageReady {
			return m, nil
		}
		return m, m.router.Update(msg)

	case loggedOutMsg:
		m.deps.Ctx.Logout()
		next := authscreen.New(m.deps.Auth, m.deps.Syncer, m.deps.Ctx)
		return m, m.router.Update(router.ReplaceScreenMsg{Screen: next})

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+p":
			if m.deps.Ctx.Stage() == learn.StageReady {
				m.deps.Ctx.ClearPersona()
				next := personaselect.New(m.deps.Ctx)
				return m, m.router.Update(router.ReplaceScreenMsg{Screen: next})
			}
			return m, nil
		case "ctrl+l":
			if m.deps.Ctx.Stage() != learn.StageAuth {
				return m, m.logout()
			}
			return m, nil
		case "esc":
			if m.router.Depth() > 1 {
				return m, m.router.Update(router.PopScreenMsg{})
			}
			// Screens use esc for their own back steps.

		default:
			if path, ok := routeForKey(msg.String()); ok {
				if m.deps.Ctx.Stage() == learn.StageReady {
					return m, m.router.Update(router.NavigateMsg{Path: path})
				}
				return m, nil
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// routeForKey maps alt+1..alt+7 to agent routes. Plain digits stay
// available to text inputs.
func routeForKey(key string) (string, bool) {
	if len(key) != 5 || key[:4] != "alt+" {
		return "", false
	}
	idx := int(key[4] - '1')
	if idx < 0 || idx >= len(agentRoutes) {
		return "", false
	}
	return agentRoutes[idx].Path, true
}

// logout clears the persisted session off the UI goroutine, then resets
// local state.
func (m AppModel) logout() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := m.deps.Auth.Logout(ctx)
		if err != nil {
			m.deps.Log.Warn("logout failed", "err", err)
		}
		return loggedOutMsg{Err: err}
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	info := layout.HeaderInfo{XP: m.deps.Ctx.XP, Streak: m.deps.Ctx.Streak}
	if m.deps.Ctx.Persona != nil {
		info.Persona = string(*m.deps.Ctx.Persona)
	}
	header := layout.RenderHeader(title, info, m.width)

	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if provider, ok := active.(screen.KeyHintProvider); ok {
		hints := provider.KeyHints()
		if m.deps.Ctx.Stage() == learn.StageReady {
			hints = append(hints, layout.KeyHint{Key: "Alt+1..7", Description: "Agents"})
		}
		return hints
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(deps Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
