// Package interviewagent runs the live mock interview: full-duplex
// audio between the microphone and the interviewer model.
package interviewagent

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/careerco/companion/internal/audio"
	"github.com/careerco/companion/internal/gateway"
	"github.com/careerco/companion/internal/learn"
	"github.com/careerco/companion/internal/screen"
	"github.com/careerco/companion/internal/ui/layout"
	"github.com/careerco/companion/internal/ui/theme"
)

const (
	connectTimeout = 30 * time.Second
	interviewXP    = 100
)

type status int

const (
	statusConnecting status = iota
	statusLive
	statusEnded
	statusFailed
)

// connectedMsg delivers the opened live session.
type connectedMsg struct {
	Gen     int
	Session *gateway.LiveSession
	Err     error
}

// micFrameMsg reports one microphone frame forwarded to the model.
type micFrameMsg struct {
	Gen int
	OK  bool
	Err error
}

// speakerFrameMsg carries one inbound audio frame. OK is false when the
// model side closed the stream.
type speakerFrameMsg struct {
	Gen int
	PCM []byte
	OK  bool
}

// tickMsg advances the elapsed clock.
type tickMsg time.Time

// InterviewScreen manages the duplex session lifecycle.
type InterviewScreen struct {
	gw     *gateway.Gateway
	lc     *learn.Context
	device audio.Device

	status  status
	session *gateway.LiveSession
	sched   *gateway.PlaybackScheduler
	started time.Time
	elapsed time.Duration
	muted   bool
	sent    int
	heard   int
	errMsg  string
	gen     int
}

var _ screen.Screen = (*InterviewScreen)(nil)
var _ screen.KeyHintProvider = (*InterviewScreen)(nil)

func New(gw *gateway.Gateway, lc *learn.Context, device audio.Device) *InterviewScreen {
	return &InterviewScreen{
		gw:     gw,
		lc:     lc,
		device: device,
		sched:  gateway.NewPlaybackScheduler(gateway.LiveOutputRate),
	}
}

func (i *InterviewScreen) Init() tea.Cmd {
	return i.connect()
}

func (i *InterviewScreen) Title() string { return "Live Interview" }

func (i *InterviewScreen) KeyHints() []layout.KeyHint {
	if i.status == statusLive {
		mute := "Mute"
		if i.muted {
			mute = "Unmute"
		}
		return []layout.KeyHint{
			{Key: "M", Description: mute},
			{Key: "E", Description: "End interview"},
		}
	}
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
}

func (i *InterviewScreen) connect() tea.Cmd {
	i.status = statusConnecting
	i.gen++
	gen := i.gen

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		session, err := i.gw.LiveConnect(ctx)
		if err != nil {
			return connectedMsg{Gen: gen, Err: err}
		}
		if err := i.device.Start(); err != nil {
			session.Close()
			return connectedMsg{Gen: gen, Err: err}
		}
		return connectedMsg{Gen: gen, Session: session, Err: nil}
	}
}

// pumpMic blocks on the next capture frame and forwards it unless the
// session is muted. Each delivery re-arms the pump from Update.
func (i *InterviewScreen) pumpMic() tea.Cmd {
	gen := i.gen
	session := i.session
	muted := i.muted

	return func() tea.Msg {
		frame, ok := <-i.device.Frames()
		if !ok {
			return micFrameMsg{Gen: gen, OK: false}
		}
		if muted {
			return micFrameMsg{Gen: gen, OK: true}
		}
		pcm := gateway.Float32ToPCM16(frame)
		if err := session.SendAudio(pcm); err != nil {
			return micFrameMsg{Gen: gen, OK: true, Err: err}
		}
		return micFrameMsg{Gen: gen, OK: true}
	}
}

// pumpSpeaker blocks on the next model audio frame.
func (i *InterviewScreen) pumpSpeaker() tea.Cmd {
	gen := i.gen
	session := i.session

	return func() tea.Msg {
		pcm, ok := <-session.Audio
		return speakerFrameMsg{Gen: gen, PCM: pcm, OK: ok}
	}
}

// play hands a model audio frame to the device no earlier than its
// scheduled start, so frames that arrive in a burst come out gap-free
// instead of on top of each other. The start time is reserved on the
// update goroutine; only the wait and the device write run async.
func (i *InterviewScreen) play(pcm []byte) tea.Cmd {
	start := i.sched.Schedule(time.Now(), len(pcm))
	return func() tea.Msg {
		time.Sleep(time.Until(start))
		// Playback errors are not fatal to the interview.
		_ = i.device.Play(pcm)
		return nil
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (i *InterviewScreen) end() {
	if i.session != nil {
		i.session.Close()
	}
	i.device.Close()
	i.gen++ // invalidate in-flight pump messages
	if i.status == statusLive {
		i.status = statusEnded
		i.lc.AddXP(interviewXP)
	}
}

func (i *InterviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case connectedMsg:
		if msg.Gen != i.gen {
			if msg.Session != nil {
				msg.Session.Close()
			}
			return i, nil
		}
		if msg.Err != nil {
			i.status = statusFailed
			i.errMsg = "Couldn't reach the interviewer. Check your connection."
			return i, nil
		}
		i.session = msg.Session
		i.status = statusLive
		i.started = time.Now()
		i.sched.Reset()
		return i, tea.Batch(i.pumpMic(), i.pumpSpeaker(), tick())

	case micFrameMsg:
		if msg.Gen != i.gen || i.status != statusLive {
			return i, nil
		}
		if !msg.OK {
			// Capture stream ended.
			i.end()
			return i, nil
		}
		if msg.Err == nil && !i.muted {
			i.sent++
		}
		return i, i.pumpMic()

	case speakerFrameMsg:
		if msg.Gen != i.gen || i.status != statusLive {
			return i, nil
		}
		if !msg.OK {
			i.end()
			return i, nil
		}
		i.heard++
		return i, tea.Batch(i.play(msg.PCM), i.pumpSpeaker())

	case tickMsg:
		if i.status != statusLive {
			return i, nil
		}
		i.elapsed = time.Since(i.started)
		return i, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "m":
			if i.status == statusLive {
				i.muted = !i.muted
			}
			return i, nil
		case "e", "esc":
			if i.status == statusLive {
				i.end()
			}
			return i, nil
		case "r":
			if i.status == statusFailed || i.status == statusEnded {
				return i, i.connect()
			}
			return i, nil
		}
	}
	return i, nil
}

func (i *InterviewScreen) View(width, height int) string {
	var parts []string

	switch i.status {
	case statusConnecting:
		parts = append(parts, theme.Hint.Render("…calling your interviewer"))
	case statusLive:
		state := lipgloss.NewStyle().Foreground(theme.Success).Render("● LIVE")
		if i.muted {
			state = lipgloss.NewStyle().Foreground(theme.Error).Render("● MUTED")
		}
		parts = append(parts,
			theme.Title.Render("Mock Interview"),
			"",
			state,
			theme.Body.Render(formatElapsed(i.elapsed)),
			"",
			theme.Hint.Render(fmt.Sprintf("you → %d frames   interviewer → %d frames", i.sent, i.heard)),
		)
	case statusEnded:
		parts = append(parts,
			theme.Title.Render("Interview complete"),
			"",
			theme.Body.Render("Duration: "+formatElapsed(i.elapsed)),
			"",
			lipgloss.NewStyle().Foreground(theme.Success).Render("✦ +100 XP"),
			"",
			theme.Hint.Render("Press R for another round"),
		)
	case statusFailed:
		parts = append(parts,
			lipgloss.NewStyle().Foreground(theme.Error).Render(i.errMsg),
			"",
			theme.Hint.Render("Press R to retry"),
		)
	}

	return lipgloss.NewStyle().
		Width(width).Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(parts, "\n"))
}

func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
