package gateway

import (
	"math"
	"testing"
)

func TestFloat32ToPCM16LittleEndian(t *testing.T) {
	out := Float32ToPCM16([]float32{0, 1, -1})
	if len(out) != 6 {
		t.Fatalf("expected 6 bytes, got %d", len(out))
	}
	// 0 → 0x0000
	if out[0] != 0x00 || out[1] != 0x00 {
		t.Fatalf("zero sample encoded as % x", out[0:2])
	}
	// 1 → 0x7FFF little-endian
	if out[2] != 0xFF || out[3] != 0x7F {
		t.Fatalf("full-scale positive encoded as % x", out[2:4])
	}
	// -1 → 0x8000 little-endian
	if out[4] != 0x00 || out[5] != 0x80 {
		t.Fatalf("full-scale negative encoded as % x", out[4:6])
	}
}

func TestFloat32ToPCM16Clamps(t *testing.T) {
	out := Float32ToPCM16([]float32{2.5, -3.0})
	if out[0] != 0xFF || out[1] != 0x7F {
		t.Fatalf("over-range not clamped to max: % x", out[0:2])
	}
	if out[2] != 0x00 || out[3] != 0x80 {
		t.Fatalf("under-range not clamped to min: % x", out[2:4])
	}
}

func TestPCMRoundTrip(t *testing.T) {
	in := []float32{0, 0.25, -0.25, 0.99, -0.99}
	got := PCM16ToFloat32(Float32ToPCM16(in))
	if len(got) != len(in) {
		t.Fatalf("length mismatch: %d vs %d", len(got), len(in))
	}
	for i := range in {
		if math.Abs(float64(got[i]-in[i])) > 1.0/32768 {
			t.Fatalf("sample %d drifted: %f vs %f", i, got[i], in[i])
		}
	}
}

func TestPCM16ToFloat32IgnoresTrailingByte(t *testing.T) {
	got := PCM16ToFloat32([]byte{0x00, 0x00, 0xFF})
	if len(got) != 1 {
		t.Fatalf("expected 1 sample, got %d", len(got))
	}
}
