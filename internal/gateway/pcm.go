package gateway

import "encoding/binary"

// PCM16 conversion helpers for the live duplex channel and speech
// playback. All wire audio is little-endian 16-bit mono.

// Float32ToPCM16 converts normalized float samples to a PCM16 byte
// buffer. Samples outside [-1, 1] are clamped.
func Float32ToPCM16(samples []float32) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		var v int16
		if s < 0 {
			v = int16(s * 0x8000)
		} else {
			v = int16(s * 0x7FFF)
		}
		binary.LittleEndian.PutUint16(out[i*2:], uint16(v))
	}
	return out
}

// PCM16ToFloat32 converts a PCM16 byte buffer to normalized float
// samples. A trailing odd byte is ignored.
func PCM16ToFloat32(data []byte) []float32 {
	n := len(data) / 2
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		v := int16(binary.LittleEndian.Uint16(data[i*2:]))
		out[i] = float32(v) / 32768.0
	}
	return out
}
