// Package authscreen is the sign-in gate. Nothing past it is reachable
// until a user exists in the session.
package authscreen

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/careerco/companion/internal/auth"
	"github.com/careerco/companion/internal/learn"
	"github.com/careerco/companion/internal/profile"
	"github.com/careerco/companion/internal/router"
	"github.com/careerco/companion/internal/screen"
	"github.com/careerco/companion/internal/screens/personaselect"
	"github.com/careerco/companion/internal/ui/components"
	"github.com/careerco/companion/internal/ui/layout"
	"github.com/careerco/companion/internal/ui/theme"
)

const submitTimeout = 15 * time.Second

// mode selects between the two forms.
type mode int

const (
	modeLogin mode = iota
	modeRegister
)

// authResultMsg reports the outcome of a register or login attempt.
// Progress fields are pre-fetched from the profile sync so the UI
// goroutine only has to apply them.
type authResultMsg struct {
	User    *learn.User
	XP      int
	Streak  int
	Persona *learn.Persona
	Err     error
}

// AuthScreen collects credentials and signs the user in.
type AuthScreen struct {
	store  auth.Store
	syncer *profile.Syncer
	lc     *learn.Context

	mode     mode
	username components.TextInput
	password components.TextInput
	focus    int
	busy     bool
	errMsg   string
}

var _ screen.Screen = (*AuthScreen)(nil)
var _ screen.KeyHintProvider = (*AuthScreen)(nil)

// New creates the auth screen. syncer may be nil when remote profile
// sync is not configured.
func New(store auth.Store, syncer *profile.Syncer, lc *learn.Context) *AuthScreen {
	return &AuthScreen{
		store:    store,
		syncer:   syncer,
		lc:       lc,
		username: components.NewTextInput("Username", "you@example.com", false),
		password: components.NewTextInput("Password", "", true),
	}
}

func (a *AuthScreen) Init() tea.Cmd {
	return a.username.Init()
}

func (a *AuthScreen) Title() string {
	if a.mode == modeRegister {
		return "Create Account"
	}
	return "Sign In"
}

func (a *AuthScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+S", Description: "Switch mode"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (a *AuthScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		return a.handleResult(msg)

	case tea.KeyMsg:
		if a.busy {
			return a, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			return a, a.toggleFocus()
		case "ctrl+s":
			if a.mode == modeLogin {
				a.mode = modeRegister
			} else {
				a.mode = modeLogin
			}
			a.errMsg = ""
			return a, nil
		case "enter":
			return a, a.submit()
		}
	}

	if a.busy {
		return a, nil
	}
	var cmd tea.Cmd
	if a.focus == 0 {
		a.username, cmd = a.username.Update(msg)
	} else {
		a.password, cmd = a.password.Update(msg)
	}
	return a, cmd
}

func (a *AuthScreen) toggleFocus() tea.Cmd {
	if a.focus == 0 {
		a.focus = 1
		a.username.Blur()
		return a.password.Focus()
	}
	a.focus = 0
	a.password.Blur()
	return a.username.Focus()
}

func (a *AuthScreen) submit() tea.Cmd {
	creds := auth.Credentials{
		Username: strings.TrimSpace(a.username.Value()),
		Password: a.password.Value(),
	}
	a.username.ClearError()
	a.password.ClearError()
	if creds.Username == "" {
		a.username.SetError("Required")
	}
	if creds.Password == "" {
		a.password.SetError("Required")
	}
	if creds.Username == "" || creds.Password == "" {
		return nil
	}

	a.busy = true
	a.errMsg = ""
	register := a.mode == modeRegister

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()

		var (
			u   *learn.User
			err error
		)
		if register {
			u, err = a.store.Register(ctx, creds)
		} else {
			u, err = a.store.Login(ctx, creds)
		}
		if err != nil {
			return authResultMsg{Err: err}
		}

		// Pull synced progress into a scratch context so the UI
		// goroutine can apply it without racing.
		result := authResultMsg{User: u, XP: -1, Streak: -1}
		if a.syncer != nil {
			scratch := learn.NewContext()
			a.syncer.Hydrate(ctx, u, scratch)
			result.XP = scratch.XP
			result.Streak = scratch.Streak
			result.Persona = scratch.Persona
		}
		return result
	}
}

func (a *AuthScreen) handleResult(msg authResultMsg) (screen.Screen, tea.Cmd) {
	a.busy = false
	if msg.Err != nil {
		switch {
		case errors.Is(msg.Err, auth.ErrDuplicateUser):
			a.errMsg = "That username is already taken."
		case errors.Is(msg.Err, auth.ErrInvalidCredentials):
			a.errMsg = "Wrong username or password."
		default:
			a.errMsg = "Connection error. Please try again."
		}
		return a, nil
	}

	a.lc.SetUser(msg.User)
	a.lc.Hydrate(msg.XP, msg.Streak, msg.Persona)
	if a.syncer != nil {
		a.syncer.Bind(a.lc, msg.User.UID)
	}

	if a.lc.Persona != nil {
		return a, func() tea.Msg { return router.NavigateMsg{Path: "/lessons"} }
	}
	next := personaselect.New(a.lc)
	return a, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (a *AuthScreen) View(width, height int) string {
	title := theme.Title.Render("Career Companion")
	subtitle := theme.Subtitle.Render("Your AI study desk")

	modeLabel := "Sign in to continue"
	if a.mode == modeRegister {
		modeLabel = "Create a new account"
	}

	var status string
	switch {
	case a.busy:
		status = theme.Hint.Render("…signing in")
	case a.errMsg != "":
		status = lipgloss.NewStyle().Foreground(theme.Error).Render(a.errMsg)
	}

	form := strings.Join([]string{
		theme.Body.Render(modeLabel),
		"",
		a.username.View(),
		"",
		a.password.View(),
		"",
		status,
	}, "\n")

	card := theme.Card.Width(50).Render(form)

	content := strings.Join([]string{title, subtitle, "", card}, "\n")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
