// Package visionagent explains a document or image picked from disk.
package visionagent

import (
	"context"
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
	analyzeTimeout = 90 * time.Second
	analyzeXP      = 50
)

// analysisMsg delivers the model's explanation of the file.
type analysisMsg struct {
	Gen  int
	Text string
	Err  error
}

// VisionScreen takes a file path and explains its contents.
type VisionScreen struct {
	gw *gateway.Gateway
	lc *learn.Context

	input    components.TextInput
	analysis string
	fileName string
	busy     bool
	scroll   int
	errMsg   string
	gen      int
}

var _ screen.Screen = (*VisionScreen)(nil)
var _ screen.KeyHintProvider = (*VisionScreen)(nil)

func New(gw *gateway.Gateway, lc *learn.Context) *VisionScreen {
	return &VisionScreen{
		gw:    gw,
		lc:    lc,
		input: components.NewTextInput("File", "Path to an image or PDF…", false),
	}
}

func (v *VisionScreen) Init() tea.Cmd { return v.input.Init() }

func (v *VisionScreen) Title() string { return "Vision" }

func (v *VisionScreen) KeyHints() []layout.KeyHint {
	if v.analysis != "" {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Scroll"},
			{Key: "Esc", Description: "New file"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Analyze"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// visionMIME maps a file extension to the inline data type sent to the
// model. Unknown extensions are treated as PNG.
func visionMIME(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	case ".pdf":
		return "application/pdf"
	default:
		return "image/png"
	}
}

func (v *VisionScreen) analyze(path string) tea.Cmd {
	v.busy = true
	v.errMsg = ""
	v.fileName = filepath.Base(path)
	v.gen++
	gen := v.gen

	persona := learn.PersonaStudent
	if v.lc.Persona != nil {
		persona = *v.lc.Persona
	}
	language := v.lc.Language

	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return analysisMsg{Gen: gen, Err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
		defer cancel()
		text, err := v.gw.AnalyzeVision(ctx, data, visionMIME(path), persona, language)
		return analysisMsg{Gen: gen, Text: text, Err: err}
	}
}

func (v *VisionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case analysisMsg:
		if msg.Gen != v.gen {
			return v, nil
		}
		v.busy = false
		if msg.Err != nil {
			v.errMsg = "Couldn't analyze that file. Check the path and try again."
			return v, nil
		}
		v.analysis = msg.Text
		v.scroll = 0
		v.lc.AddXP(analyzeXP)
		return v, nil

	case tea.KeyMsg:
		if v.analysis != "" {
			switch msg.String() {
			case "esc":
				v.analysis = ""
				v.input = components.NewTextInput("File", "Path to an image or PDF…", false)
				return v, v.input.Init()
			case "up", "k":
				if v.scroll > 0 {
					v.scroll--
				}
				return v, nil
			case "down", "j":
				v.scroll++
				return v, nil
			}
			return v, nil
		}
		if msg.String() == "enter" {
			if v.busy {
				return v, nil
			}
			path := strings.TrimSpace(v.input.Value())
			if path == "" {
				return v, nil
			}
			return v, v.analyze(path)
		}
	}

	if v.busy || v.analysis != "" {
		return v, nil
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *VisionScreen) View(width, height int) string {
	if v.analysis != "" {
		return v.renderAnalysis(width, height)
	}

	var parts []string
	parts = append(parts,
		theme.Title.Render("Vision"),
		theme.Subtitle.Render("Point me at a photo, screenshot, or PDF and I'll explain it"),
		"",
		theme.Card.Width(60).Render(v.input.View()),
	)
	if v.busy {
		parts = append(parts, "", theme.Hint.Render("…reading your file"))
	}
	if v.errMsg != "" {
		parts = append(parts, "", lipgloss.NewStyle().Foreground(theme.Error).Render(v.errMsg))
	}

	return lipgloss.NewStyle().
		Width(width).Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(parts, "\n"))
}

func (v *VisionScreen) renderAnalysis(width, height int) string {
	bodyWidth := width - 8
	if bodyWidth < 20 {
		bodyWidth = width
	}

	heading := theme.Title.Render(v.fileName)
	rendered := theme.Body.Width(bodyWidth).Render(v.analysis)
	lines := strings.Split(rendered, "\n")

	visible := height - 3
	if visible < 1 {
		visible = 1
	}
	if v.scroll > len(lines)-visible {
		v.scroll = len(lines) - visible
	}
	if v.scroll < 0 {
		v.scroll = 0
	}
	end := v.scroll + visible
	if end > len(lines) {
		end = len(lines)
	}

	return lipgloss.NewStyle().Padding(0, 4).Render(
		heading + "\n\n" + strings.Join(lines[v.scroll:end], "\n"))
}
