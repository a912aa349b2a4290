// Package lessonsagent is the structured-learning screen: pick a
// subject from the persona's track, pick a lesson, read it.
package lessonsagent

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/careerco/companion/internal/learn"
	"github.com/careerco/companion/internal/lessons"
	"github.com/careerco/companion/internal/screen"
	"github.com/careerco/companion/internal/ui/components"
	"github.com/careerco/companion/internal/ui/layout"
	"github.com/careerco/companion/internal/ui/theme"
)

const (
	loadTimeout = 60 * time.Second
	completeXP  = 50
)

// phase is where the user is inside the screen.
type phase int

const (
	phaseSubjects phase = iota
	phaseTitles
	phaseLoading
	phaseReading
)

// lessonReadyMsg delivers generated or cached lesson content. Gen ties
// the reply to the request that asked for it; stale replies are dropped.
type lessonReadyMsg struct {
	Gen    int
	Body   string
	Cached bool
	Err    error
}

// translatedMsg delivers the lesson body in the session language. A
// failed translation comes back as the original text.
type translatedMsg struct {
	Gen  int
	Body string
}

// Translator renders text in another language, returning the original
// on failure.
type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string) string
}

// LessonsScreen walks subject -> lesson -> content.
type LessonsScreen struct {
	svc        *lessons.Service
	translator Translator
	lc         *learn.Context

	phase    phase
	subjects components.Menu
	titles   components.Menu
	subject  string
	title    string
	body     string
	scroll   int
	errMsg   string

	gen       int
	completed map[string]bool
}

var _ screen.Screen = (*LessonsScreen)(nil)
var _ screen.KeyHintProvider = (*LessonsScreen)(nil)

// New builds the screen. translator may be nil, which disables the
// translate key.
func New(svc *lessons.Service, translator Translator, lc *learn.Context) *LessonsScreen {
	s := &LessonsScreen{
		svc:        svc,
		translator: translator,
		lc:         lc,
		completed:  make(map[string]bool),
	}

	persona := learn.PersonaStudent
	if lc.Persona != nil {
		persona = *lc.Persona
	}

	subjectItems := make([]components.MenuItem, 0, 10)
	for _, subject := range lessons.Subjects(persona) {
		subj := subject
		subjectItems = append(subjectItems, components.MenuItem{
			Label:  subj,
			Action: func() tea.Cmd { return s.openSubject(subj) },
		})
	}
	s.subjects = components.NewMenu(subjectItems)
	return s
}

func (s *LessonsScreen) Init() tea.Cmd {
	return nil
}

func (s *LessonsScreen) Title() string {
	switch s.phase {
	case phaseTitles:
		return s.subject
	case phaseLoading, phaseReading:
		return s.subject + " · " + s.title
	}
	return "Lessons"
}

func (s *LessonsScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseReading:
		hints := []layout.KeyHint{
			{Key: "↑↓", Description: "Scroll"},
			{Key: "Esc", Description: "Back"},
		}
		if !s.completed[s.lessonKey()] {
			hints = append(hints, layout.KeyHint{Key: "C", Description: "Complete lesson"})
		}
		if s.translator != nil && s.lc.Language != learn.DefaultLanguage {
			hints = append(hints, layout.KeyHint{Key: "T", Description: "Translate to " + s.lc.Language})
		}
		return hints
	case phaseLoading:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *LessonsScreen) lessonKey() string {
	return s.subject + "-" + s.title
}

func (s *LessonsScreen) openSubject(subject string) tea.Cmd {
	s.subject = subject
	titleItems := make([]components.MenuItem, 0, len(lessons.Titles))
	for _, title := range lessons.Titles {
		t := title
		detail := ""
		if s.completed[subject+"-"+t] {
			detail = "done"
		}
		titleItems = append(titleItems, components.MenuItem{
			Label:  t,
			Detail: detail,
			Action: func() tea.Cmd { return s.openLesson(t) },
		})
	}
	s.titles = components.NewMenu(titleItems)
	s.phase = phaseTitles
	return nil
}

func (s *LessonsScreen) openLesson(title string) tea.Cmd {
	s.title = title
	s.phase = phaseLoading
	s.errMsg = ""
	s.scroll = 0

	s.gen++
	gen := s.gen
	subject := s.subject
	persona := learn.PersonaStudent
	if s.lc.Persona != nil {
		persona = *s.lc.Persona
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		body, cached, err := s.svc.Content(ctx, subject, title, persona)
		return lessonReadyMsg{Gen: gen, Body: body, Cached: cached, Err: err}
	}
}

// translate re-renders the current lesson in the session language.
func (s *LessonsScreen) translate() tea.Cmd {
	if s.translator == nil || s.lc.Language == learn.DefaultLanguage {
		return nil
	}
	gen := s.gen
	body := s.body
	language := s.lc.Language

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		return translatedMsg{Gen: gen, Body: s.translator.Translate(ctx, body, language)}
	}
}

func (s *LessonsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case lessonReadyMsg:
		if msg.Gen != s.gen {
			return s, nil
		}
		if msg.Err != nil {
			s.phase = phaseTitles
			s.errMsg = "Couldn't load that lesson. Check your connection and try again."
			return s, nil
		}
		s.body = msg.Body
		s.phase = phaseReading
		return s, nil

	case translatedMsg:
		if msg.Gen != s.gen || s.phase != phaseReading {
			return s, nil
		}
		s.body = msg.Body
		s.scroll = 0
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *LessonsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.phase {
	case phaseSubjects:
		var cmd tea.Cmd
		s.subjects, cmd = s.subjects.Update(msg)
		return s, cmd

	case phaseTitles:
		if key == "esc" {
			s.phase = phaseSubjects
			s.errMsg = ""
			return s, nil
		}
		var cmd tea.Cmd
		s.titles, cmd = s.titles.Update(msg)
		return s, cmd

	case phaseLoading:
		if key == "esc" {
			// Drop whatever comes back for this request.
			s.gen++
			s.phase = phaseTitles
		}
		return s, nil

	case phaseReading:
		switch key {
		case "esc":
			s.openSubject(s.subject)
			return s, nil
		case "up", "k":
			if s.scroll > 0 {
				s.scroll--
			}
		case "down", "j":
			s.scroll++
		case "c":
			if !s.completed[s.lessonKey()] {
				s.completed[s.lessonKey()] = true
				s.lc.AddXP(completeXP)
			}
		case "t":
			return s, s.translate()
		}
	}
	return s, nil
}

func (s *LessonsScreen) View(width, height int) string {
	switch s.phase {
	case phaseSubjects:
		return s.renderMenu("Pick a subject", s.subjects, width, height)
	case phaseTitles:
		return s.renderMenu(s.subject, s.titles, width, height)
	case phaseLoading:
		return lipgloss.NewStyle().
			Width(width).Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(theme.Hint.Render("…preparing your lesson"))
	case phaseReading:
		return s.renderLesson(width, height)
	}
	return ""
}

func (s *LessonsScreen) renderMenu(heading string, menu components.Menu, width, height int) string {
	var parts []string
	parts = append(parts, theme.Title.Render(heading), "")
	if s.errMsg != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg), "")
	}
	parts = append(parts, menu.View())

	return lipgloss.NewStyle().
		Width(width).Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(parts, "\n"))
}

func (s *LessonsScreen) renderLesson(width, height int) string {
	bodyWidth := width - 8
	if bodyWidth < 20 {
		bodyWidth = width
	}

	rendered := theme.Body.Width(bodyWidth).Render(s.body)
	lines := strings.Split(rendered, "\n")

	footer := ""
	if s.completed[s.lessonKey()] {
		footer = lipgloss.NewStyle().Foreground(theme.Success).Render("✓ Completed")
	}

	visible := height - 2
	if visible < 1 {
		visible = 1
	}
	if s.scroll > len(lines)-visible {
		s.scroll = len(lines) - visible
	}
	if s.scroll < 0 {
		s.scroll = 0
	}
	end := s.scroll + visible
	if end > len(lines) {
		end = len(lines)
	}

	page := strings.Join(lines[s.scroll:end], "\n")
	if footer != "" {
		page += "\n\n" + footer
	}

	return lipgloss.NewStyle().Padding(0, 4).Render(page)
}
