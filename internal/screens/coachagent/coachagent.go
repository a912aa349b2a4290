// Package coachagent is the career coach: a web-grounded conversation
// on the stronger reasoning model, with sources cited inline.
package coachagent

import (
	"context"
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
	replyTimeout = 90 * time.Second
	replyXP      = 25

	fallbackReply = "Connection error. Please try again."
)

type chatReadyMsg struct {
	Gen  int
	Chat gateway.Chat
	Err  error
}

type replyMsg struct {
	Gen   int
	Reply *gateway.ChatReply
	Err   error
}

// CoachScreen is the career-coach chat.
type CoachScreen struct {
	gw *gateway.Gateway
	lc *learn.Context

	chat     gateway.Chat
	messages []learn.Message
	input    components.TextInput
	busy     bool
	errMsg   string
	gen      int
}

var _ screen.Screen = (*CoachScreen)(nil)
var _ screen.KeyHintProvider = (*CoachScreen)(nil)

func New(gw *gateway.Gateway, lc *learn.Context) *CoachScreen {
	return &CoachScreen{
		gw:    gw,
		lc:    lc,
		input: components.NewTextInput("", "What's on your mind about your career?", false),
	}
}

func (c *CoachScreen) Init() tea.Cmd {
	return tea.Batch(c.input.Init(), c.openChat())
}

func (c *CoachScreen) Title() string { return "Career Coach" }

func (c *CoachScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (c *CoachScreen) openChat() tea.Cmd {
	c.gen++
	gen := c.gen
	c.chat = nil

	persona := learn.PersonaStudent
	if c.lc.Persona != nil {
		persona = *c.lc.Persona
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
		defer cancel()
		ctx = gateway.WithPurpose(ctx, "coach")
		chat, err := c.gw.NewCoachChat(ctx, persona)
		return chatReadyMsg{Gen: gen, Chat: chat, Err: err}
	}
}

func (c *CoachScreen) send(text string) tea.Cmd {
	c.messages = append(c.messages, learn.NewMessage(learn.RoleUser, text))
	c.busy = true
	c.errMsg = ""
	gen := c.gen
	chat := c.chat

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
		defer cancel()
		ctx = gateway.WithPurpose(ctx, "coach")
		reply, err := chat.Send(ctx, text)
		return replyMsg{Gen: gen, Reply: reply, Err: err}
	}
}

func (c *CoachScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case chatReadyMsg:
		if msg.Gen != c.gen {
			return c, nil
		}
		if msg.Err != nil {
			c.errMsg = fallbackReply
			return c, nil
		}
		c.chat = msg.Chat
		return c, nil

	case replyMsg:
		if msg.Gen != c.gen {
			return c, nil
		}
		c.busy = false
		if msg.Err != nil {
			c.messages = append(c.messages, learn.NewMessage(learn.RoleModel, fallbackReply))
			return c, nil
		}
		m := learn.NewMessage(learn.RoleModel, msg.Reply.Text)
		for _, cit := range msg.Reply.Citations {
			m.Citations = append(m.Citations, learn.Citation{Title: cit.Title, URI: cit.URI})
		}
		c.messages = append(c.messages, m)
		c.lc.AddXP(replyXP)
		return c, nil

	case tea.KeyMsg:
		if msg.String() == "enter" {
			if c.busy || c.chat == nil {
				return c, nil
			}
			text := strings.TrimSpace(c.input.Value())
			if text == "" {
				return c, nil
			}
			cmd := c.send(text)
			c.input = components.NewTextInput("", "What's on your mind about your career?", false)
			return c, tea.Batch(cmd, c.input.Init())
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c *CoachScreen) View(width, height int) string {
	transcript := components.Transcript{Messages: c.messages, Thinking: c.busy}

	inputView := c.input.View()
	if c.errMsg != "" {
		inputView += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(c.errMsg)
	}
	inputBox := theme.Card.Width(width - 4).Render(inputView)

	transcriptHeight := height - lipgloss.Height(inputBox) - 1
	if transcriptHeight < 1 {
		transcriptHeight = 1
	}

	return transcript.View(width, transcriptHeight) + "\n" + inputBox
}
