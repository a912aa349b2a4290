package gateway

import (
	"testing"
	"time"
)

func TestScheduleFirstBufferPlaysNow(t *testing.T) {
	p := NewPlaybackScheduler(LiveOutputRate)
	now := time.Now()

	start := p.Schedule(now, 4800) // 2400 samples = 100ms at 24kHz
	if !start.Equal(now) {
		t.Fatalf("first buffer delayed: %v vs %v", start, now)
	}
}

func TestScheduleQueuesBackToBack(t *testing.T) {
	p := NewPlaybackScheduler(LiveOutputRate)
	now := time.Now()

	first := p.Schedule(now, 4800)
	second := p.Schedule(now, 4800)
	third := p.Schedule(now, 4800)

	if got := second.Sub(first); got != 100*time.Millisecond {
		t.Fatalf("second buffer gap = %v, want 100ms", got)
	}
	if got := third.Sub(second); got != 100*time.Millisecond {
		t.Fatalf("third buffer gap = %v, want 100ms", got)
	}
}

func TestScheduleNeverBeforeNow(t *testing.T) {
	p := NewPlaybackScheduler(LiveOutputRate)
	now := time.Now()

	p.Schedule(now, 4800)
	// A long silence: the watermark is in the past relative to the
	// next arrival, so it snaps forward to now.
	later := now.Add(5 * time.Second)
	start := p.Schedule(later, 4800)
	if !start.Equal(later) {
		t.Fatalf("buffer scheduled in the past: %v vs %v", start, later)
	}
}

func TestResetClearsWatermark(t *testing.T) {
	p := NewPlaybackScheduler(LiveOutputRate)
	now := time.Now()

	p.Schedule(now, 48000)
	p.Reset()
	start := p.Schedule(now, 4800)
	if !start.Equal(now) {
		t.Fatalf("reset did not clear watermark: %v vs %v", start, now)
	}
}

func TestDuration(t *testing.T) {
	p := NewPlaybackScheduler(16000)
	if got := p.Duration(32000); got != time.Second {
		t.Fatalf("32000 bytes at 16kHz = %v, want 1s", got)
	}
}
