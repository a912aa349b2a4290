package audio

import "testing"

func TestNullDeviceCloseIsIdempotent(t *testing.T) {
	d := NewNullDevice()
	if err := d.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := d.Play([]byte{1, 2}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	// Second close must not panic on the closed channel.
	if err := d.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if _, ok := <-d.Frames(); ok {
		t.Fatal("closed device still delivering frames")
	}
}

func TestMemoryDeviceRoundTrip(t *testing.T) {
	d := NewMemoryDevice()
	if err := d.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	d.Feed([]float32{0.5, -0.5})
	frame, ok := <-d.Frames()
	if !ok || len(frame) != 2 {
		t.Fatalf("frame = %v ok=%v", frame, ok)
	}

	pcm := []byte{0xAA, 0xBB}
	if err := d.Play(pcm); err != nil {
		t.Fatalf("Play: %v", err)
	}
	pcm[0] = 0x00 // Played must have copied the buffer
	played := d.Played()
	if len(played) != 1 || played[0][0] != 0xAA {
		t.Fatalf("played = %v", played)
	}

	d.Close()
	d.Close()
	if _, ok := <-d.Frames(); ok {
		t.Fatal("closed device still delivering frames")
	}
}
