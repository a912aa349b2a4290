// Package tutoragent is the conversational tutor: a grounded chat in
// the user's chosen language, with optional voice notes.
package tutoragent

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
	replyTimeout = 60 * time.Second
	replyXP      = 10
	voiceXP      = 100

	fallbackReply = "Connection error. Please try again."
)

// chatReadyMsg delivers a freshly created chat session.
type chatReadyMsg struct {
	Gen  int
	Chat gateway.Chat
	Err  error
}

// replyMsg delivers one model turn.
type replyMsg struct {
	Gen   int
	Reply *gateway.ChatReply
	Err   error
}

// voiceReplyMsg delivers the response to a voice note: the model's text
// plus optional synthesized speech.
type voiceReplyMsg struct {
	Gen   int
	Text  string
	Audio []byte
	Err   error
}

// TutorScreen is a chat transcript with a prompt line.
type TutorScreen struct {
	gw *gateway.Gateway
	lc *learn.Context

	chat     gateway.Chat
	messages []learn.Message
	input    components.TextInput
	busy     bool
	voice    bool
	errMsg   string
	gen      int
}

var _ screen.Screen = (*TutorScreen)(nil)
var _ screen.KeyHintProvider = (*TutorScreen)(nil)

func New(gw *gateway.Gateway, lc *learn.Context) *TutorScreen {
	return &TutorScreen{
		gw:    gw,
		lc:    lc,
		input: components.NewTextInput("", "Ask me anything…", false),
	}
}

func (t *TutorScreen) Init() tea.Cmd {
	return tea.Batch(t.input.Init(), t.openChat())
}

func (t *TutorScreen) Title() string {
	return "Tutor · " + t.lc.Language
}

func (t *TutorScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Ctrl+T", Description: "Language"},
	}
	if t.voice {
		hints[0] = layout.KeyHint{Key: "Enter", Description: "Send voice note"}
	}
	hints = append(hints, layout.KeyHint{Key: "Ctrl+O", Description: "Voice note"})
	return hints
}

// openChat starts a new conversation bound to the current persona and
// language. The transcript resets to a single greeting, and any
// in-flight reply from a previous chat is invalidated.
func (t *TutorScreen) openChat() tea.Cmd {
	t.gen++
	gen := t.gen
	t.chat = nil

	persona := learn.PersonaStudent
	if t.lc.Persona != nil {
		persona = *t.lc.Persona
	}
	language := t.lc.Language
	t.messages = []learn.Message{learn.NewMessage(learn.RoleModel, greeting(language))}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
		defer cancel()
		ctx = gateway.WithPurpose(ctx, "tutor")
		chat, err := t.gw.NewTutorChat(ctx, persona, language)
		return chatReadyMsg{Gen: gen, Chat: chat, Err: err}
	}
}

func (t *TutorScreen) send(text string) tea.Cmd {
	t.messages = append(t.messages, learn.NewMessage(learn.RoleUser, text))
	t.busy = true
	t.errMsg = ""
	gen := t.gen
	chat := t.chat

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
		defer cancel()
		ctx = gateway.WithPurpose(ctx, "tutor")
		reply, err := chat.Send(ctx, text)
		return replyMsg{Gen: gen, Reply: reply, Err: err}
	}
}

// sendVoice reads an audio file from disk and routes it through the
// audio-chat path, which answers in both text and speech.
func (t *TutorScreen) sendVoice(path string) tea.Cmd {
	t.messages = append(t.messages, learn.NewMessage(learn.RoleUser, "♪ voice note: "+filepath.Base(path)))
	t.busy = true
	t.errMsg = ""
	gen := t.gen

	persona := learn.PersonaStudent
	if t.lc.Persona != nil {
		persona = *t.lc.Persona
	}

	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return voiceReplyMsg{Gen: gen, Err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
		defer cancel()
		text, audio, err := t.gw.AudioChat(ctx, data, audioMIME(path), persona)
		return voiceReplyMsg{Gen: gen, Text: text, Audio: audio, Err: err}
	}
}

func greeting(language string) string {
	return "Namaste! I am your Tutor. I will speak with you in " + language + ". Ask me anything about your subjects!"
}

func audioMIME(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return "audio/mp3"
	case ".ogg":
		return "audio/ogg"
	case ".flac":
		return "audio/flac"
	default:
		return "audio/wav"
	}
}

func (t *TutorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case chatReadyMsg:
		if msg.Gen != t.gen {
			return t, nil
		}
		if msg.Err != nil {
			t.errMsg = fallbackReply
			return t, nil
		}
		t.chat = msg.Chat
		return t, nil

	case replyMsg:
		if msg.Gen != t.gen {
			return t, nil
		}
		t.busy = false
		if msg.Err != nil {
			t.messages = append(t.messages, learn.NewMessage(learn.RoleModel, fallbackReply))
			return t, nil
		}
		m := learn.NewMessage(learn.RoleModel, msg.Reply.Text)
		for _, c := range msg.Reply.Citations {
			m.Citations = append(m.Citations, learn.Citation{Title: c.Title, URI: c.URI})
		}
		t.messages = append(t.messages, m)
		t.lc.AddXP(replyXP)
		return t, nil

	case voiceReplyMsg:
		if msg.Gen != t.gen {
			return t, nil
		}
		t.busy = false
		if msg.Err != nil {
			t.messages = append(t.messages, learn.NewMessage(learn.RoleModel, fallbackReply))
			return t, nil
		}
		m := learn.NewMessage(learn.RoleModel, msg.Text)
		m.Audio = msg.Audio
		t.messages = append(t.messages, m)
		t.lc.AddXP(voiceXP)
		return t, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+t":
			t.lc.SetLanguage(learn.NextLanguage(t.lc.Language))
			return t, t.openChat()
		case "ctrl+o":
			t.voice = !t.voice
			if t.voice {
				t.input = components.NewTextInput("", "Path to an audio file…", false)
			} else {
				t.input = components.NewTextInput("", "Ask me anything…", false)
			}
			return t, t.input.Init()
		case "enter":
			if t.busy {
				return t, nil
			}
			text := strings.TrimSpace(t.input.Value())
			if text == "" {
				return t, nil
			}
			if t.voice {
				t.voice = false
				cmd := t.sendVoice(text)
				t.input = components.NewTextInput("", "Ask me anything…", false)
				return t, tea.Batch(cmd, t.input.Init())
			}
			if t.chat == nil {
				t.errMsg = "Still connecting…"
				return t, nil
			}
			cmd := t.send(text)
			t.input = components.NewTextInput("", "Ask me anything…", false)
			return t, tea.Batch(cmd, t.input.Init())
		}
	}

	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

func (t *TutorScreen) View(width, height int) string {
	transcript := components.Transcript{Messages: t.messages, Thinking: t.busy}

	inputView := t.input.View()
	if t.errMsg != "" {
		inputView += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(t.errMsg)
	}
	inputBox := theme.Card.Width(width - 4).Render(inputView)

	transcriptHeight := height - lipgloss.Height(inputBox) - 1
	if transcriptHeight < 1 {
		transcriptHeight = 1
	}

	return transcript.View(width, transcriptHeight) + "\n" + inputBox
}
