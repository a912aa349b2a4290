// Package audio abstracts the host sound device for the live-interview
// and audio-chat screens. Real capture hardware is host specific, so
// the app is written against Device and ships a null implementation;
// anything that can supply float32 frames and accept PCM16 buffers can
// slot in.
package audio

import "sync"

// Device is a duplex sound interface. Frames reports captured audio as
// 32-bit float samples; Play accepts little-endian PCM16 for output.
type Device interface {
	// Start begins capture. Frames may be called only after Start.
	Start() error
	// Frames returns the capture stream. The channel is closed by Close.
	Frames() <-chan []float32
	// Play queues a PCM16 buffer for output.
	Play(pcm []byte) error
	Close() error
}

// NullDevice satisfies Device without touching any hardware. Capture
// yields nothing and playback is discarded.
type NullDevice struct {
	once   sync.Once
	frames chan []float32
}

func NewNullDevice() *NullDevice {
	return &NullDevice{frames: make(chan []float32)}
}

func (d *NullDevice) Start() error             { return nil }
func (d *NullDevice) Frames() <-chan []float32 { return d.frames }
func (d *NullDevice) Play([]byte) error        { return nil }

func (d *NullDevice) Close() error {
	d.once.Do(func() { close(d.frames) })
	return nil
}

// MemoryDevice is a Device backed by slices, for tests. Captured frames
// are fed in with Feed and played buffers are retained for inspection.
type MemoryDevice struct {
	mu     sync.Mutex
	once   sync.Once
	frames chan []float32
	played [][]byte
}

func NewMemoryDevice() *MemoryDevice {
	return &MemoryDevice{frames: make(chan []float32, 16)}
}

func (d *MemoryDevice) Start() error             { return nil }
func (d *MemoryDevice) Frames() <-chan []float32 { return d.frames }

// Feed injects a capture frame.
func (d *MemoryDevice) Feed(frame []float32) { d.frames <- frame }

func (d *MemoryDevice) Play(pcm []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	buf := make([]byte, len(pcm))
	copy(buf, pcm)
	d.played = append(d.played, buf)
	return nil
}

// Played returns the buffers handed to Play, in order.
func (d *MemoryDevice) Played() [][]byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([][]byte, len(d.played))
	copy(out, d.played)
	return out
}

func (d *MemoryDevice) Close() error {
	d.once.Do(func() { close(d.frames) })
	return nil
}
