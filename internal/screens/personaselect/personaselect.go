// Package personaselect is the track picker shown once per account,
// and again whenever the user switches tracks.
package personaselect

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/careerco/companion/internal/learn"
	"github.com/careerco/companion/internal/router"
	"github.com/careerco/companion/internal/screen"
	"github.com/careerco/companion/internal/ui/components"
	"github.com/careerco/companion/internal/ui/layout"
	"github.com/careerco/companion/internal/ui/theme"
)

// PersonaScreen lets the user choose their learner track.
type PersonaScreen struct {
	lc   *learn.Context
	menu components.Menu
}

var _ screen.Screen = (*PersonaScreen)(nil)
var _ screen.KeyHintProvider = (*PersonaScreen)(nil)

func New(lc *learn.Context) *PersonaScreen {
	items := make([]components.MenuItem, 0, len(learn.Personas))
	for _, p := range learn.Personas {
		persona := p
		items = append(items, components.MenuItem{
			Label:  string(persona),
			Detail: persona.Description(),
			Action: func() tea.Cmd {
				lc.SetPersona(persona)
				return func() tea.Msg { return router.NavigateMsg{Path: "/lessons"} }
			},
		})
	}
	return &PersonaScreen{lc: lc, menu: components.NewMenu(items)}
}

func (p *PersonaScreen) Init() tea.Cmd {
	return nil
}

func (p *PersonaScreen) Title() string {
	return "Choose Your Path"
}

func (p *PersonaScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (p *PersonaScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	p.menu, cmd = p.menu.Update(msg)
	return p, cmd
}

func (p *PersonaScreen) View(width, height int) string {
	greeting := "Welcome"
	if p.lc.User != nil && p.lc.User.DisplayName != "" {
		greeting = "Welcome, " + p.lc.User.DisplayName
	} else if p.lc.User != nil && p.lc.User.Username != "" {
		greeting = "Welcome, " + p.lc.User.Username
	}

	content := strings.Join([]string{
		theme.Title.Render(greeting),
		theme.Subtitle.Render("Pick the track that fits where you are"),
		"",
		p.menu.View(),
	}, "\n")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
