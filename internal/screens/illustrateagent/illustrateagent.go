// Package illustrateagent turns a topic into a stylized SVG poster and
// saves it next to the user's other documents.
package illustrateagent

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/careerco/companion/internal/gateway"
	"github.com/careerco/companion/internal/learn"
	"github.com/careerco/companion/internal/screen"
	"github.com/careerco/companion/internal/ui/components"
	"github.com/careerco/companion/internal/ui/layout"
	"github.com/careerco/companion/internal/ui/theme"
)

const (
	generateTimeout = 120 * time.Second
	posterXP        = 100
)

type phase int

const (
	phaseTopic phase = iota
	phaseStyle
	phaseWorking
	phaseDone
)

// posterMsg delivers the generated SVG and where it was written.
type posterMsg struct {
	Gen         int
	Path        string
	Placeholder bool
	Err         error
}

// IllustrateScreen collects a topic and a style, then renders a poster.
type IllustrateScreen struct {
	gw *gateway.Gateway
	lc *learn.Context

	phase  phase
	input  components.TextInput
	styles components.Menu
	topic  string
	style  string
	path   string
	errMsg string
	gen    int
}

var _ screen.Screen = (*IllustrateScreen)(nil)
var _ screen.KeyHintProvider = (*IllustrateScreen)(nil)

func New(gw *gateway.Gateway, lc *learn.Context) *IllustrateScreen {
	s := &IllustrateScreen{
		gw:    gw,
		lc:    lc,
		input: components.NewTextInput("Topic", "A concept, story, or idea to illustrate…", false),
	}

	items := make([]components.MenuItem, 0, len(gateway.StoryStyles))
	for _, style := range gateway.StoryStyles {
		st := style
		items = append(items, components.MenuItem{
			Label:  st,
			Action: func() tea.Cmd { return s.generate(st) },
		})
	}
	s.styles = components.NewMenu(items)
	return s
}

func (s *IllustrateScreen) Init() tea.Cmd { return s.input.Init() }

func (s *IllustrateScreen) Title() string { return "Illustrate" }

func (s *IllustrateScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseStyle:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Style"},
			{Key: "Enter", Description: "Generate"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseDone:
		return []layout.KeyHint{{Key: "Esc", Description: "New poster"}}
	default:
		return []layout.KeyHint{{Key: "Enter", Description: "Next"}}
	}
}

func (s *IllustrateScreen) generate(style string) tea.Cmd {
	s.style = style
	s.phase = phaseWorking
	s.errMsg = ""
	s.gen++
	gen := s.gen
	topic := s.topic

	persona := learn.PersonaStudent
	if s.lc.Persona != nil {
		persona = *s.lc.Persona
	}
	language := s.lc.Language

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
		defer cancel()

		svg := s.gw.IllustrateStory(ctx, topic, style, persona, language)
		placeholder := gateway.IsPlaceholderSVG(svg)

		path := posterPath()
		if err := os.WriteFile(path, []byte(svg), 0o644); err != nil {
			return posterMsg{Gen: gen, Err: err}
		}
		return posterMsg{Gen: gen, Path: path, Placeholder: placeholder}
	}
}

func posterPath() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, fmt.Sprintf("companion-poster-%d.svg", time.Now().Unix()))
}

func (s *IllustrateScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case posterMsg:
		if msg.Gen != s.gen {
			return s, nil
		}
		if msg.Err != nil {
			s.phase = phaseStyle
			s.errMsg = "Couldn't save the poster."
			return s, nil
		}
		s.path = msg.Path
		s.phase = phaseDone
		if msg.Placeholder {
			s.errMsg = "Generation fell back to a placeholder. Try another style."
		} else {
			s.lc.AddXP(posterXP)
		}
		return s, nil

	case tea.KeyMsg:
		switch s.phase {
		case phaseTopic:
			if msg.String() == "enter" {
				topic := strings.TrimSpace(s.input.Value())
				if topic == "" {
					return s, nil
				}
				s.topic = topic
				s.phase = phaseStyle
				return s, nil
			}
		case phaseStyle:
			if msg.String() == "esc" {
				s.phase = phaseTopic
				return s, s.input.Focus()
			}
			var cmd tea.Cmd
			s.styles, cmd = s.styles.Update(msg)
			return s, cmd
		case phaseWorking:
			if msg.String() == "esc" {
				s.gen++
				s.phase = phaseStyle
			}
			return s, nil
		case phaseDone:
			if msg.String() == "esc" {
				s.phase = phaseTopic
				s.errMsg = ""
				s.input = components.NewTextInput("Topic", "A concept, story, or idea to illustrate…", false)
				return s, s.input.Init()
			}
			return s, nil
		}
	}

	if s.phase == phaseTopic {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *IllustrateScreen) View(width, height int) string {
	var parts []string

	switch s.phase {
	case phaseTopic:
		parts = append(parts,
			theme.Title.Render("Illustrate"),
			theme.Subtitle.Render("Turn any idea into a story poster"),
			"",
			theme.Card.Width(64).Render(s.input.View()),
		)
	case phaseStyle:
		parts = append(parts,
			theme.Title.Render("Pick a style"),
			theme.Subtitle.Render(s.topic),
			"",
			s.styles.View(),
		)
		if s.errMsg != "" {
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
		}
	case phaseWorking:
		parts = append(parts, theme.Hint.Render("…painting your poster in "+s.style+" style"))
	case phaseDone:
		parts = append(parts,
			theme.Title.Render("Poster ready"),
			"",
			theme.Body.Render("Saved to "+s.path),
		)
		if s.errMsg != "" {
			parts = append(parts, "", lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
		} else {
			parts = append(parts, "", lipgloss.NewStyle().Foreground(theme.Success).Render("✦ +100 XP"))
		}
	}

	return lipgloss.NewStyle().
		Width(width).Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(parts, "\n"))
}
