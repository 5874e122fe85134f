// Package synth renders diphone units into audio samples with a
// three-formant resonator model: a sawtooth pulse train or shaped noise
// source driven through three time-varying resonators, mixed, enveloped,
// and finished with a narrow-band smoothing pass.
package synth

import (
	"math"
	"math/rand/v2"

	"github.com/phonolabs/retrovox/internal/diphone"
	"github.com/phonolabs/retrovox/internal/phoneme"
)

const (
	// FundamentalFrequency is the fixed glottal pitch for voiced
	// segments, an average adult male F0.
	FundamentalFrequency = 120.0

	// FormantBandwidth is the -3dB bandwidth shared by all three
	// resonators, in Hz.
	FormantBandwidth = 100.0

	// silenceTransition is the duration of diphones that touch silence.
	silenceTransition = phoneme.BaseDuration * 0.5

	fricativeCutoff = 2000.0
	diphonePeak     = 0.8
)

// Engine synthesizes utterances at a fixed sample rate. The noise source
// is seeded deterministically so a given phoneme sequence always renders
// to the same samples. An Engine is not safe for concurrent use; create
// one per goroutine.
type Engine struct {
	sampleRate int
	rng        *rand.Rand
}

// New returns an engine rendering at sampleRate Hz.
func New(sampleRate int) *Engine {
	return &Engine{
		sampleRate: sampleRate,
		rng:        rand.New(rand.NewPCG(0x7261766f, uint64(sampleRate))),
	}
}

// SampleRate returns the engine's output rate in Hz.
func (e *Engine) SampleRate() int {
	return e.sampleRate
}

// Synthesize renders a phoneme sequence (with inline pause markers) into
// mono float64 samples in [-1, 1]. An empty sequence yields an empty
// buffer.
func (e *Engine) Synthesize(symbols []string) []float64 {
	units := diphone.Sequence(symbols)
	if len(units) == 0 {
		return nil
	}

	var audio []float64
	for _, u := range units {
		if u.Pause {
			audio = append(audio, make([]float64, int(u.Duration*float64(e.sampleRate)))...)
			continue
		}
		audio = append(audio, e.renderDiphone(u.Start, u.End)...)
	}

	return e.finish(audio)
}

// renderDiphone synthesizes one transition from the start target to the
// end target.
func (e *Engine) renderDiphone(start, end string) []float64 {
	from := phoneme.Lookup(start)
	to := phoneme.Lookup(end)

	n := int(e.diphoneDuration(start, end) * float64(e.sampleRate))
	if n <= 0 {
		return nil
	}

	voicedStart := from.Voiced
	voicedEnd := to.Voiced

	var source []float64
	if voicedStart || voicedEnd {
		source = e.pulseTrain(n, voicedStart, voicedEnd)
	} else {
		source = e.noise(n, start, end)
	}

	r1 := newResonator(float64(e.sampleRate), FormantBandwidth)
	r2 := newResonator(float64(e.sampleRate), FormantBandwidth)
	r3 := newResonator(float64(e.sampleRate), FormantBandwidth)

	audio := make([]float64, n)
	for i := range audio {
		f1 := r1.process(source[i], lerpAt(from.F1, to.F1, i, n), lerpAt(from.A1, to.A1, i, n))
		f2 := r2.process(source[i], lerpAt(from.F2, to.F2, i, n), lerpAt(from.A2, to.A2, i, n))
		f3 := r3.process(source[i], lerpAt(from.F3, to.F3, i, n), lerpAt(from.A3, to.A3, i, n))
		audio[i] = 0.5*f1 + 0.3*f2 + 0.2*f3
	}

	applyEnvelope(audio)
	normalize(audio, diphonePeak)
	return audio
}

// diphoneDuration keys the unit length off the start phoneme's nominal
// duration; transitions touching silence are always short.
func (e *Engine) diphoneDuration(start, end string) float64 {
	if start == phoneme.Silence || end == phoneme.Silence {
		return silenceTransition
	}
	return phoneme.Lookup(start).Duration
}

// pulseTrain generates the voiced glottal source: a sawtooth whose phase
// integrates the F0 contour, scaled by the voicing weight so voicing can
// fade in or out across the transition.
func (e *Engine) pulseTrain(n int, voicedStart, voicedEnd bool) []float64 {
	f0Start, f0End := 0.0, 0.0
	if voicedStart {
		f0Start = FundamentalFrequency
	}
	if voicedEnd {
		f0End = FundamentalFrequency
	}
	vStart, vEnd := boolWeight(voicedStart), boolWeight(voicedEnd)

	dt := 1.0 / float64(e.sampleRate)
	source := make([]float64, n)
	phase := 0.0
	for i := range source {
		cycles := phase / (2 * math.Pi)
		saw := 2 * (cycles - math.Floor(cycles+0.5))
		source[i] = saw * lerpAt(vStart, vEnd, i, n)
		phase += lerpAt(f0Start, f0End, i, n) * dt * 2 * math.Pi
	}
	return source
}

// noise generates the unvoiced source: white noise, high-pass shaped for
// fricatives or burst-enveloped for stops.
func (e *Engine) noise(n int, start, end string) []float64 {
	source := make([]float64, n)
	for i := range source {
		source[i] = e.rng.NormFloat64()
	}

	switch {
	case phoneme.IsFricative(start) || phoneme.IsFricative(end):
		e.highpass(source, fricativeCutoff)
	case phoneme.IsStop(start) || phoneme.IsStop(end):
		burstShape(source)
	}
	return source
}

// highpass runs a first-order high-pass over the buffer in place.
func (e *Engine) highpass(buf []float64, cutoff float64) {
	if len(buf) <= 1 {
		return
	}
	alpha := math.Exp(-2 * math.Pi * cutoff / float64(e.sampleRate))
	prev := buf[0]
	for i := 1; i < len(buf); i++ {
		x := buf[i]
		buf[i] = alpha*buf[i-1] + alpha*(x-prev)
		prev = x
	}
}

// burstShape applies an exponential decay over the leading quarter of the
// buffer so stop noise sounds like a release burst, not sustained hiss.
func burstShape(buf []float64) {
	decay := min(len(buf)/4, 100)
	if decay <= 0 {
		return
	}
	for i := 0; i < decay; i++ {
		buf[i] *= math.Exp(-3 * lerpAt(0, 1, i, decay))
	}
}

// applyEnvelope ramps the diphone in and out to avoid concatenation
// clicks.
func applyEnvelope(buf []float64) {
	n := len(buf)
	if n <= 1 {
		return
	}
	edge := min(n/8, 50)
	for i := 0; i < edge; i++ {
		buf[i] *= lerpAt(0, 1, i, edge)
		buf[n-edge+i] *= lerpAt(1, 0, i, edge)
	}
}

// normalize scales the buffer so its absolute peak equals peak. A silent
// buffer is left untouched.
func normalize(buf []float64, peak float64) {
	var maxAbs float64
	for _, v := range buf {
		if a := math.Abs(v); a > maxAbs {
			maxAbs = a
		}
	}
	if maxAbs == 0 {
		return
	}
	scale := peak / maxAbs
	for i := range buf {
		buf[i] *= scale
	}
}

// finish applies the utterance-level character pass: a three-tap moving
// average that trims the top of the band, then 256-level quantization for
// early-sound-card grain.
func (e *Engine) finish(audio []float64) []float64 {
	if len(audio) == 0 {
		return audio
	}

	if len(audio) > 1 {
		smoothed := make([]float64, len(audio))
		for i := range audio {
			sum := audio[i]
			if i > 0 {
				sum += audio[i-1]
			}
			if i < len(audio)-1 {
				sum += audio[i+1]
			}
			smoothed[i] = sum / 3
		}
		audio = smoothed
	}

	for i, v := range audio {
		audio[i] = math.Round(v*128) / 128
	}
	return audio
}

// lerpAt evaluates a linear ramp from a to b at index i of n points, with
// both endpoints included.
func lerpAt(a, b float64, i, n int) float64 {
	if n <= 1 {
		return a
	}
	return a + (b-a)*float64(i)/float64(n-1)
}

func boolWeight(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
