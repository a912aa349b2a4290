package tutoragent

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/careerco/companion/internal/gateway"
	"github.com/careerco/companion/internal/learn"
)

func newTestScreen(replies ...gateway.MockReply) (*TutorScreen, *learn.Context, *gateway.MockProvider) {
	mock := gateway.NewMockProvider(replies...)
	gw := gateway.NewWithProvider(mock, nil, nil)
	lc := learn.NewContext()
	lc.SetUser(&learn.User{UID: "u1", Username: "dev"})
	lc.SetPersona(learn.PersonaFresher)
	return New(gw, lc), lc, mock
}

// connect runs the open-chat command and applies the result.
func connect(t *testing.T, s *TutorScreen) {
	t.Helper()
	cmd := s.openChat()
	if len(s.messages) != 1 || s.messages[0].Role != learn.RoleModel {
		t.Fatalf("transcript after open = %+v, want a single greeting", s.messages)
	}
	msg, ok := cmd().(chatReadyMsg)
	if !ok || msg.Err != nil {
		t.Fatalf("open chat failed: %+v", msg)
	}
	s.Update(msg)
	if s.chat == nil {
		t.Fatal("chat not set after chatReadyMsg")
	}
}

func TestReplyAppendsMessageAndAwardsXP(t *testing.T) {
	s, lc, _ := newTestScreen(gateway.MockReply{
		Text:      "Start with arrays.",
		Citations: []gateway.Citation{{Title: "DS Guide", URI: "https://example.com/ds"}},
	})
	connect(t, s)
	startXP := lc.XP

	cmd := s.send("How do I prepare for coding rounds?")
	if !s.busy {
		t.Fatal("screen not busy while waiting for reply")
	}
	s.Update(cmd())

	if s.busy {
		t.Fatal("still busy after reply")
	}
	if len(s.messages) != 3 {
		t.Fatalf("message count = %d, want greeting + exchange", len(s.messages))
	}
	last := s.messages[2]
	if last.Role != learn.RoleModel || last.Content != "Start with arrays." {
		t.Fatalf("model message = %+v", last)
	}
	if len(last.Citations) != 1 || last.Citations[0].Title != "DS Guide" {
		t.Fatalf("citations = %+v", last.Citations)
	}
	if lc.XP != startXP+replyXP {
		t.Fatalf("XP = %d, want %d", lc.XP, startXP+replyXP)
	}
}

func TestStaleReplyIsDropped(t *testing.T) {
	s, lc, _ := newTestScreen(gateway.MockReply{Text: "old answer"})
	connect(t, s)
	startXP := lc.XP

	cmd := s.send("question")
	stale := cmd()

	// Switching language opens a new chat and invalidates the reply.
	s.Update(tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl})
	before := len(s.messages)

	s.Update(stale)
	if len(s.messages) != before {
		t.Fatalf("stale reply appended a message")
	}
	if lc.XP != startXP {
		t.Fatalf("stale reply awarded XP: %d", lc.XP-startXP)
	}
}

func TestReplyErrorShowsFallback(t *testing.T) {
	s, lc, _ := newTestScreen()
	connect(t, s)
	startXP := lc.XP

	s.Update(replyMsg{Gen: s.gen, Err: errors.New("network down")})
	if len(s.messages) != 2 {
		t.Fatalf("message count = %d, want greeting + fallback", len(s.messages))
	}
	if s.messages[1].Content != fallbackReply {
		t.Fatalf("fallback message = %q", s.messages[1].Content)
	}
	if lc.XP != startXP {
		t.Fatal("error awarded XP")
	}
}

func TestVoiceReplyCarriesAudioAndXP(t *testing.T) {
	s, lc, _ := newTestScreen()
	connect(t, s)
	startXP := lc.XP

	pcm := []byte{0x01, 0x02, 0x03}
	s.Update(voiceReplyMsg{Gen: s.gen, Text: "Bonne réponse!", Audio: pcm})

	last := s.messages[len(s.messages)-1]
	if last.Content != "Bonne réponse!" || len(last.Audio) != len(pcm) {
		t.Fatalf("voice message = %+v", last)
	}
	if lc.XP != startXP+voiceXP {
		t.Fatalf("XP = %d, want %d", lc.XP, startXP+voiceXP)
	}
}

func TestLanguageSwitchResetsTranscript(t *testing.T) {
	s, lc, _ := newTestScreen(gateway.MockReply{Text: "answer"})
	connect(t, s)

	s.Update(s.send("question")())
	if len(s.messages) != 3 {
		t.Fatalf("message count before switch = %d, want 3", len(s.messages))
	}

	s.Update(tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl})
	if len(s.messages) != 1 {
		t.Fatalf("message count after switch = %d, want a single greeting", len(s.messages))
	}
	g := s.messages[0]
	if g.Role != learn.RoleModel || !strings.Contains(g.Content, lc.Language) {
		t.Fatalf("greeting = %+v, want model message naming %s", g, lc.Language)
	}
}

func TestLanguageCycleReopensChat(t *testing.T) {
	s, lc, mock := newTestScreen()
	connect(t, s)

	startLang := lc.Language
	startGen := s.gen
	_, cmd := s.Update(tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl})
	if lc.Language == startLang {
		t.Fatal("language did not change")
	}
	if s.gen != startGen+1 {
		t.Fatalf("gen = %d, want %d", s.gen, startGen+1)
	}
	if cmd == nil {
		t.Fatal("no reconnect command")
	}
	msg := cmd().(chatReadyMsg)
	s.Update(msg)
	if s.chat == nil {
		t.Fatal("chat not reopened")
	}
	if len(mock.Systems) != 2 {
		t.Fatalf("chat sessions opened = %d, want 2", len(mock.Systems))
	}
}
