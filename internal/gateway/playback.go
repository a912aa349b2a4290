package gateway

import "time"

// PlaybackScheduler serializes audio buffer start times on a single
// shared clock so queued chunks play gap-free and never overlap. Each
// screen instance owns one scheduler; the watermark only moves forward.
type PlaybackScheduler struct {
	sampleRate int
	next       time.Time
}

// NewPlaybackScheduler creates a scheduler for the given PCM16 sample
// rate.
func NewPlaybackScheduler(sampleRate int) *PlaybackScheduler {
	return &PlaybackScheduler{sampleRate: sampleRate}
}

// Schedule returns the start time for a PCM16 buffer of the given byte
// length: no earlier than now, no earlier than the end of the previously
// scheduled buffer. The watermark advances by the buffer's duration.
func (p *PlaybackScheduler) Schedule(now time.Time, pcmLen int) time.Time {
	start := now
	if p.next.After(start) {
		start = p.next
	}
	p.next = start.Add(p.Duration(pcmLen))
	return start
}

// Duration returns the play time of a PCM16 buffer of the given byte
// length at the scheduler's sample rate.
func (p *PlaybackScheduler) Duration(pcmLen int) time.Duration {
	samples := pcmLen / 2
	return time.Duration(samples) * time.Second / time.Duration(p.sampleRate)
}

// Reset clears the watermark, e.g. when playback is interrupted.
func (p *PlaybackScheduler) Reset() {
	p.next = time.Time{}
}
