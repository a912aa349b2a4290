package gateway

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"
)

// Sample rates for the live duplex channel. Outbound microphone audio is
// 16kHz PCM16; inbound model audio arrives at 24kHz PCM16.
const (
	LiveInputRate  = 16000
	LiveOutputRate = 24000
)

const liveInputMIME = "audio/pcm;rate=16000"

// liveVoice is the prebuilt voice for the interview agent.
const liveVoice = "Zephyr"

// LiveSession is a bidirectional audio streaming session. Outbound PCM16
// frames go through SendAudio; inbound PCM16 frames arrive on Audio until
// the session ends. Close releases the session — muting is the caller's
// concern (stop feeding SendAudio, keep the session open).
type LiveSession struct {
	session *genai.Session

	// Audio delivers inbound 24kHz PCM16 frames. Closed when the
	// session ends or the receive loop fails.
	Audio <-chan []byte

	closeOnce sync.Once
	closeErr  error
}

// LiveConnect opens a live duplex session with the interviewer system
// instruction. The receive loop runs until the session is closed.
func (g *Gateway) LiveConnect(ctx context.Context) (*LiveSession, error) {
	if err := g.requireGemini("live audio"); err != nil {
		return nil, err
	}

	config := &genai.LiveConnectConfig{
		ResponseModalities: []genai.Modality{genai.ModalityAudio},
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: interviewSystemPrompt}},
		},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: liveVoice},
			},
		},
	}

	session, err := g.genai.Live.Connect(ctx, ModelLive, config)
	if err != nil {
		return nil, &ErrUnavailable{Err: fmt.Errorf("live connect: %w", err)}
	}

	audio := make(chan []byte, 16)
	ls := &LiveSession{session: session, Audio: audio}
	go ls.receiveLoop(audio)
	return ls, nil
}

// SendAudio pushes one outbound PCM16 frame (16kHz) to the model. The
// SDK handles base64 framing on the wire.
func (s *LiveSession) SendAudio(pcm []byte) error {
	err := s.session.SendRealtimeInput(genai.LiveRealtimeInput{
		Media: &genai.Blob{MIMEType: liveInputMIME, Data: pcm},
	})
	if err != nil {
		return &ErrUnavailable{Err: fmt.Errorf("send audio: %w", err)}
	}
	return nil
}

// receiveLoop drains server messages and forwards inbound audio frames.
func (s *LiveSession) receiveLoop(audio chan<- []byte) {
	defer close(audio)
	for {
		msg, err := s.session.Receive()
		if err != nil {
			return
		}
		if msg.ServerContent == nil || msg.ServerContent.ModelTurn == nil {
			continue
		}
		for _, part := range msg.ServerContent.ModelTurn.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				audio <- part.InlineData.Data
			}
		}
	}
}

// Close ends the session and releases the stream. Safe to call more than
// once.
func (s *LiveSession) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.session.Close()
	})
	return s.closeErr
}
