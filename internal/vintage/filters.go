package vintage

import "math"

// The filter primitives below are deliberately crude one- and two-pole
// IIR sections. Their softness is the point: steeper modern filters lose
// the rounded top end of early consumer audio hardware.

func filterAlpha(cutoff, sampleRate float64) float64 {
	return math.Exp(-2 * math.Pi * cutoff / sampleRate)
}

// onePoleLowpass runs a first-order low-pass over buf in place.
func onePoleLowpass(buf []float64, cutoff, sampleRate float64) {
	if len(buf) <= 1 {
		return
	}
	alpha := filterAlpha(cutoff, sampleRate)
	buf[0] *= 1 - alpha
	for i := 1; i < len(buf); i++ {
		buf[i] = alpha*buf[i-1] + (1-alpha)*buf[i]
	}
}

// twoPoleLowpass cascades two first-order sections for a steeper roll-off.
func twoPoleLowpass(buf []float64, cutoff, sampleRate float64) {
	if len(buf) <= 1 {
		return
	}
	onePoleLowpass(buf, cutoff, sampleRate)
	onePoleLowpass(buf, cutoff, sampleRate)
}

// onePoleHighpass runs a first-order high-pass over buf in place.
func onePoleHighpass(buf []float64, cutoff, sampleRate float64) {
	if len(buf) <= 1 {
		return
	}
	alpha := filterAlpha(cutoff, sampleRate)
	prev := buf[0]
	for i := 1; i < len(buf); i++ {
		x := buf[i]
		buf[i] = alpha*buf[i-1] + alpha*(x-prev)
		prev = x
	}
}

// speechEmphasis boosts the 2-4kHz intelligibility band with a resonant
// feedback tap around center. radius sets the Q; feedback is the amount
// of resonance mixed back in. Buffers too short to filter are scaled by
// gain directly.
func speechEmphasis(buf []float64, sampleRate, center, radius, gain, feedback float64) {
	if len(buf) <= 2 {
		for i := range buf {
			buf[i] *= gain
		}
		return
	}
	omega := 2 * math.Pi * center / sampleRate
	cosw := math.Cos(omega)
	for i := 2; i < len(buf); i++ {
		resonance := radius*cosw*buf[i-1] - radius*radius*buf[i-2]
		buf[i] += feedback * resonance
	}
}

// compress applies envelope-follower gain reduction in place. The
// envelope tracks the rectified signal with separate attack and release
// one-pole coefficients; samples whose envelope exceeds threshold get
// soft ratio-limited gain.
func compress(buf []float64, threshold, ratio, attack, release float64) {
	if len(buf) == 0 {
		return
	}
	env := math.Abs(buf[0])
	for i := range buf {
		level := math.Abs(buf[i])
		if i > 0 {
			if level > env {
				env = attack*level + (1-attack)*env
			} else {
				env = release*level + (1-release)*env
			}
		}
		if env > threshold {
			excess := env - threshold
			buf[i] *= threshold / env * (1 + excess/ratio)
		}
	}
}

func clamp(buf []float64) {
	for i, v := range buf {
		buf[i] = math.Max(-1, math.Min(1, v))
	}
}
