package app

import (
	"log/slog"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/careerco/companion/internal/audio"
	"github.com/careerco/companion/internal/auth"
	"github.com/careerco/companion/internal/gateway"
	"github.com/careerco/companion/internal/learn"
	"github.com/careerco/companion/internal/lessons"
	"github.com/careerco/companion/internal/router"
	"github.com/careerco/companion/internal/store"
)

func newTestDeps(t *testing.T) Deps {
	t.Helper()
	st, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	gw := gateway.NewWithProvider(gateway.NewMockProvider(), nil, nil)
	return Deps{
		Ctx:     learn.NewContext(),
		Auth:    auth.NewLocalStore(st.UserRepo(), st.SessionRepo()),
		Gateway: gw,
		Lessons: lessons.NewService(gw),
		Device:  audio.NewNullDevice(),
		Log:     slog.New(slog.DiscardHandler),
	}
}

func activeTitle(m AppModel) string {
	return m.router.Active().Title()
}

func TestInitialScreenFollowsOnboardingStage(t *testing.T) {
	deps := newTestDeps(t)
	m := newAppModel(deps)
	if got := activeTitle(m); got != "Sign In" {
		t.Fatalf("signed-out initial screen = %q", got)
	}

	deps.Ctx.SetUser(&learn.User{UID: "u1", Username: "dev"})
	m = newAppModel(deps)
	if got := activeTitle(m); got != "Choose Your Path" {
		t.Fatalf("no-persona initial screen = %q", got)
	}

	deps.Ctx.SetPersona(learn.PersonaStudent)
	m = newAppModel(deps)
	if got := activeTitle(m); got != "Lessons" {
		t.Fatalf("ready initial screen = %q", got)
	}
}

func TestAgentRoutesLockedUntilReady(t *testing.T) {
	deps := newTestDeps(t)
	m := newAppModel(deps)

	model, _ := m.Update(router.NavigateMsg{Path: "/tutor"})
	m = model.(AppModel)
	if got := activeTitle(m); got != "Sign In" {
		t.Fatalf("navigation while signed out reached %q", got)
	}

	deps.Ctx.SetUser(&learn.User{UID: "u1", Username: "dev"})
	model, _ = m.Update(router.NavigateMsg{Path: "/tutor"})
	m = model.(AppModel)
	if got := activeTitle(m); got != "Sign In" {
		t.Fatalf("navigation without persona reached %q", got)
	}

	deps.Ctx.SetPersona(learn.PersonaFresher)
	model, _ = m.Update(router.NavigateMsg{Path: "/tutor"})
	m = model.(AppModel)
	if got := activeTitle(m); got != "Tutor · English" {
		t.Fatalf("navigation when ready reached %q", got)
	}
}

func TestUnknownRouteFallsBackToLessons(t *testing.T) {
	deps := newTestDeps(t)
	deps.Ctx.SetUser(&learn.User{UID: "u1", Username: "dev"})
	deps.Ctx.SetPersona(learn.PersonaStudent)
	m := newAppModel(deps)

	model, _ := m.Update(router.NavigateMsg{Path: "/does-not-exist"})
	m = model.(AppModel)
	if got := activeTitle(m); got != "Lessons" {
		t.Fatalf("unknown route landed on %q", got)
	}
}

func TestAltDigitShortcutsNavigate(t *testing.T) {
	deps := newTestDeps(t)
	deps.Ctx.SetUser(&learn.User{UID: "u1", Username: "dev"})
	deps.Ctx.SetPersona(learn.PersonaStudent)
	m := newAppModel(deps)

	model, _ := m.Update(tea.KeyPressMsg{Code: '3', Mod: tea.ModAlt})
	m = model.(AppModel)
	if got := activeTitle(m); got != "Vision" {
		t.Fatalf("alt+3 landed on %q", got)
	}

	if _, ok := routeForKey("alt+8"); ok {
		t.Fatal("alt+8 mapped to a route")
	}
	if _, ok := routeForKey("3"); ok {
		t.Fatal("bare digit mapped to a route")
	}
}

func TestSwitchPersonaRelocksNavigation(t *testing.T) {
	deps := newTestDeps(t)
	deps.Ctx.SetUser(&learn.User{UID: "u1", Username: "dev"})
	deps.Ctx.SetPersona(learn.PersonaStudent)
	m := newAppModel(deps)

	model, _ := m.Update(tea.KeyPressMsg{Code: 'p', Mod: tea.ModCtrl})
	m = model.(AppModel)
	if deps.Ctx.Persona != nil {
		t.Fatal("persona not cleared")
	}
	if got := activeTitle(m); got != "Choose Your Path" {
		t.Fatalf("switch persona landed on %q", got)
	}
	if deps.Ctx.User == nil {
		t.Fatal("switching persona logged the user out")
	}

	model, _ = m.Update(router.NavigateMsg{Path: "/tutor"})
	m = model.(AppModel)
	if got := activeTitle(m); got != "Choose Your Path" {
		t.Fatalf("navigation after persona reset reached %q", got)
	}
}

func TestLogoutReturnsToAuth(t *testing.T) {
	deps := newTestDeps(t)
	deps.Ctx.SetUser(&learn.User{UID: "u1", Username: "dev"})
	deps.Ctx.SetPersona(learn.PersonaStudent)
	m := newAppModel(deps)

	model, _ := m.Update(loggedOutMsg{})
	m = model.(AppModel)
	if got := activeTitle(m); got != "Sign In" {
		t.Fatalf("logout landed on %q", got)
	}
	if deps.Ctx.User != nil || deps.Ctx.Persona != nil {
		t.Fatal("context not reset on logout")
	}
	if deps.Ctx.XP != learn.SeedXP {
		t.Fatalf("xp after logout = %d, want seed %d", deps.Ctx.XP, learn.SeedXP)
	}
}
