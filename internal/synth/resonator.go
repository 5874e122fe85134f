package synth

import "math"

// resonator is a time-varying second-order IIR section approximating one
// formant. The two delay cells hold the previous outputs; state lives for
// a single diphone and is discarded between units, so each unit starts
// from a quiet filter.
type resonator struct {
	sampleRate float64
	bandwidth  float64

	y1, y2 float64
	n      int
}

func newResonator(sampleRate, bandwidth float64) *resonator {
	return &resonator{sampleRate: sampleRate, bandwidth: bandwidth}
}

// process runs one sample through the section. A non-positive center
// frequency produces silence for that sample while still advancing the
// delay line.
func (r *resonator) process(x, freq, amp float64) float64 {
	var y float64
	if freq > 0 {
		if r.n >= 2 {
			omega := 2 * math.Pi * freq / r.sampleRate
			radius := 1 - r.bandwidth/r.sampleRate
			y = amp*x + 2*radius*math.Cos(omega)*r.y1 - radius*radius*r.y2
		} else {
			y = amp * x
		}
	}
	r.y2, r.y1 = r.y1, y
	r.n++
	return y
}
