// Package audioio converts between the synthesizer's float samples and
// the PCM forms needed for WAV export and device playback.
package audioio

import "math"

// FloatToPCM16 converts samples in [-1, 1] to signed 16-bit PCM with
// clamping.
func FloatToPCM16(samples []float64) []int16 {
	out := make([]int16, len(samples))
	for i, v := range samples {
		v = math.Max(-1, math.Min(1, v))
		out[i] = int16(math.Round(v * 32767))
	}
	return out
}

// PCM16ToFloat converts signed 16-bit PCM back to floats in [-1, 1].
func PCM16ToFloat(pcm []int16) []float64 {
	out := make([]float64, len(pcm))
	for i, v := range pcm {
		out[i] = float64(v) / 32767
	}
	return out
}

// Interleave expands mono PCM to the requested channel count by
// duplication. Mono input with channels=1 is returned as-is.
func Interleave(pcm []int16, channels int) []int16 {
	if channels <= 1 {
		return pcm
	}
	out := make([]int16, 0, len(pcm)*channels)
	for _, v := range pcm {
		for c := 0; c < channels; c++ {
			out = append(out, v)
		}
	}
	return out
}

// PCM16Bytes serializes PCM to little-endian bytes, the layout both the
// WAV container and the playback device consume.
func PCM16Bytes(pcm []int16) []byte {
	out := make([]byte, len(pcm)*2)
	for i, v := range pcm {
		out[i*2] = byte(v)
		out[i*2+1] = byte(uint16(v) >> 8)
	}
	return out
}
