// Package studioagent is the Visual Studio: prompt-driven image
// generation, image editing, and short video clips.
package studioagent

import (
	"context"
	"encoding/base64"
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
	imageTimeout = 120 * time.Second
	// Video generation polls a long-running operation.
	videoTimeout = 10 * time.Minute
	studioXP     = 150
)

type mode int

const (
	modeImage mode = iota
	modeEdit
	modeVideo
)

type phase int

const (
	phaseMode phase = iota
	phasePrompt
	phaseSource
	phaseWorking
	phaseDone
)

// studioResultMsg delivers the finished artifact: a saved file for
// images, a download URL for video.
type studioResultMsg struct {
	Gen  int
	Path string
	URL  string
	Err  error
}

// StudioScreen drives the three creation modes.
type StudioScreen struct {
	gw *gateway.Gateway
	lc *learn.Context

	phase  phase
	mode   mode
	menu   components.Menu
	prompt components.TextInput
	source components.TextInput

	path   string
	url    string
	errMsg string
	gen    int
}

var _ screen.Screen = (*StudioScreen)(nil)
var _ screen.KeyHintProvider = (*StudioScreen)(nil)

func New(gw *gateway.Gateway, lc *learn.Context) *StudioScreen {
	s := &StudioScreen{
		gw:     gw,
		lc:     lc,
		prompt: components.NewTextInput("Prompt", "Describe what to create…", false),
		source: components.NewTextInput("Source image", "Path to the image to edit…", false),
	}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Generate Image", Detail: "a square illustration from a prompt",
			Action: func() tea.Cmd { return s.pick(modeImage) }},
		{Label: "Edit Image", Detail: "transform an existing picture",
			Action: func() tea.Cmd { return s.pick(modeEdit) }},
		{Label: "Generate Video", Detail: "a short clip, takes a few minutes",
			Action: func() tea.Cmd { return s.pick(modeVideo) }},
	})
	return s
}

func (s *StudioScreen) Init() tea.Cmd { return nil }

func (s *StudioScreen) Title() string { return "Visual Studio" }

func (s *StudioScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseMode:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Mode"},
			{Key: "Enter", Description: "Select"},
		}
	case phaseDone:
		return []layout.KeyHint{{Key: "Esc", Description: "Create another"}}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *StudioScreen) pick(m mode) tea.Cmd {
	s.mode = m
	s.phase = phasePrompt
	s.errMsg = ""
	return s.prompt.Focus()
}

func (s *StudioScreen) start() tea.Cmd {
	s.phase = phaseWorking
	s.gen++
	gen := s.gen
	prompt := strings.TrimSpace(s.prompt.Value())
	sourcePath := strings.TrimSpace(s.source.Value())
	m := s.mode

	return func() tea.Msg {
		switch m {
		case modeVideo:
			ctx, cancel := context.WithTimeout(context.Background(), videoTimeout)
			defer cancel()
			url, err := s.gw.GenerateVideo(ctx, prompt)
			return studioResultMsg{Gen: gen, URL: url, Err: err}

		case modeEdit:
			data, err := os.ReadFile(sourcePath)
			if err != nil {
				return studioResultMsg{Gen: gen, Err: err}
			}
			ctx, cancel := context.WithTimeout(context.Background(), imageTimeout)
			defer cancel()
			uri, err := s.gw.EditImage(ctx, data, prompt)
			if err != nil {
				return studioResultMsg{Gen: gen, Err: err}
			}
			path, err := saveDataURI(uri)
			return studioResultMsg{Gen: gen, Path: path, Err: err}

		default:
			ctx, cancel := context.WithTimeout(context.Background(), imageTimeout)
			defer cancel()
			uri, err := s.gw.GenerateImage(ctx, prompt)
			if err != nil {
				return studioResultMsg{Gen: gen, Err: err}
			}
			path, err := saveDataURI(uri)
			return studioResultMsg{Gen: gen, Path: path, Err: err}
		}
	}
}

// saveDataURI decodes a base64 data URI and writes it to the home
// directory, returning the file path.
func saveDataURI(uri string) (string, error) {
	_, payload, ok := strings.Cut(uri, ",")
	if !ok {
		return "", fmt.Errorf("malformed data uri")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	dir, err := os.UserHomeDir()
	if err != nil {
		dir = "."
	}
	path := filepath.Join(dir, fmt.Sprintf("companion-studio-%d.png", time.Now().Unix()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (s *StudioScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case studioResultMsg:
		if msg.Gen != s.gen {
			return s, nil
		}
		if msg.Err != nil {
			s.phase = phasePrompt
			s.errMsg = "Generation failed. Please try again."
			return s, nil
		}
		s.path = msg.Path
		s.url = msg.URL
		s.phase = phaseDone
		s.lc.AddXP(studioXP)
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	switch s.phase {
	case phasePrompt:
		var cmd tea.Cmd
		s.prompt, cmd = s.prompt.Update(msg)
		return s, cmd
	case phaseSource:
		var cmd tea.Cmd
		s.source, cmd = s.source.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *StudioScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.phase {
	case phaseMode:
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd

	case phasePrompt:
		switch key {
		case "esc":
			s.phase = phaseMode
			return s, nil
		case "enter":
			if strings.TrimSpace(s.prompt.Value()) == "" {
				return s, nil
			}
			if s.mode == modeEdit {
				s.phase = phaseSource
				s.prompt.Blur()
				return s, s.source.Focus()
			}
			return s, s.start()
		}
		var cmd tea.Cmd
		s.prompt, cmd = s.prompt.Update(msg)
		return s, cmd

	case phaseSource:
		switch key {
		case "esc":
			s.phase = phasePrompt
			s.source.Blur()
			return s, s.prompt.Focus()
		case "enter":
			if strings.TrimSpace(s.source.Value()) == "" {
				return s, nil
			}
			return s, s.start()
		}
		var cmd tea.Cmd
		s.source, cmd = s.source.Update(msg)
		return s, cmd

	case phaseWorking:
		if key == "esc" {
			s.gen++
			s.phase = phasePrompt
		}
		return s, nil

	case phaseDone:
		if key == "esc" {
			s.phase = phaseMode
			s.errMsg = ""
			s.prompt = components.NewTextInput("Prompt", "Describe what to create…", false)
			s.source = components.NewTextInput("Source image", "Path to the image to edit…", false)
		}
		return s, nil
	}
	return s, nil
}

func (s *StudioScreen) View(width, height int) string {
	var parts []string

	switch s.phase {
	case phaseMode:
		parts = append(parts,
			theme.Title.Render("Visual Studio"),
			theme.Subtitle.Render("Create images and video from a prompt"),
			"",
			s.menu.View(),
		)
	case phasePrompt:
		parts = append(parts,
			theme.Title.Render("Visual Studio"),
			"",
			theme.Card.Width(64).Render(s.prompt.View()),
		)
		if s.errMsg != "" {
			parts = append(parts, "", lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
		}
	case phaseSource:
		parts = append(parts,
			theme.Title.Render("Visual Studio"),
			"",
			theme.Card.Width(64).Render(s.source.View()),
		)
	case phaseWorking:
		working := "…generating"
		if s.mode == modeVideo {
			working = "…rendering video, this can take a few minutes"
		}
		parts = append(parts, theme.Hint.Render(working))
	case phaseDone:
		parts = append(parts, theme.Title.Render("Done"), "")
		if s.path != "" {
			parts = append(parts, theme.Body.Render("Saved to "+s.path))
		}
		if s.url != "" {
			parts = append(parts, theme.Body.Render("Download: "+s.url))
		}
		parts = append(parts, "", lipgloss.NewStyle().Foreground(theme.Success).Render("✦ +150 XP"))
	}

	return lipgloss.NewStyle().
		Width(width).Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(parts, "\n"))
}
