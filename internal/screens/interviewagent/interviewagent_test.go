package interviewagent

import (
	"testing"
	"time"

	"github.com/careerco/companion/internal/audio"
	"github.com/careerco/companion/internal/gateway"
	"github.com/careerco/companion/internal/learn"
)

func newLiveScreen(dev audio.Device) *InterviewScreen {
	gw := gateway.NewWithProvider(gateway.NewMockProvider(), nil, nil)
	lc := learn.NewContext()
	lc.SetUser(&learn.User{UID: "u1", Username: "dev"})
	lc.SetPersona(learn.PersonaFresher)
	s := New(gw, lc, dev)
	s.status = statusLive
	s.started = time.Now()
	return s
}

func TestSpeakerFrameCountsAndSchedulesPlayback(t *testing.T) {
	dev := audio.NewMemoryDevice()
	s := newLiveScreen(dev)

	_, cmd := s.Update(speakerFrameMsg{Gen: s.gen, PCM: make([]byte, 480), OK: true})
	if s.heard != 1 {
		t.Fatalf("heard = %d, want 1", s.heard)
	}
	if cmd == nil {
		t.Fatal("no playback command returned")
	}
}

func TestPlayHonorsScheduledStart(t *testing.T) {
	dev := audio.NewMemoryDevice()
	s := newLiveScreen(dev)

	// 2400 samples = 100ms at 24kHz: the second frame must wait out
	// the first before reaching the device.
	frame := make([]byte, 4800)
	before := time.Now()
	first := s.play(frame)
	second := s.play(frame)
	first()
	second()
	elapsed := time.Since(before)

	if got := dev.Played(); len(got) != 2 {
		t.Fatalf("played %d buffers, want 2", len(got))
	}
	if elapsed < 100*time.Millisecond {
		t.Fatalf("second frame reached the device after %v, want at least 100ms", elapsed)
	}
}

func TestStaleSpeakerFrameIsDropped(t *testing.T) {
	dev := audio.NewMemoryDevice()
	s := newLiveScreen(dev)

	_, cmd := s.Update(speakerFrameMsg{Gen: s.gen - 1, PCM: []byte{1, 2}, OK: true})
	if cmd != nil || s.heard != 0 {
		t.Fatalf("stale frame handled: heard = %d", s.heard)
	}
}
