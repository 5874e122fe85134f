package vintage

import (
	"math"
	"math/rand/v2"
	"slices"
)

// Preset names selecting the final character stage of the Processor.
const (
	PresetDrSbaitso         = "dr_sbaitso"
	PresetDrSbaitsoEnhanced = "dr_sbaitso_enhanced"
	PresetSubtleVintage     = "subtle_vintage"
)

// Options configures a Processor. Intensity runs from 0 (clean pass-
// through) to 1 (full vintage character); intermediate values blend the
// processed and clean signals.
type Options struct {
	SampleRate int
	BitDepth   int

	Enabled   bool
	Intensity float64
	Preset    string

	QuantizationNoise bool
	AnalogSimulation  bool
	FrequencyShaping  bool

	SpectralEnhancement bool
	HarmonicEnrichment  bool
	NoiseReduction      bool
	TemporalSmoothing   bool
}

// params holds the stage parameters resolved from Options once, at
// construction. All intensity scaling happens here so the stages stay
// intensity-blind.
type params struct {
	maxFrequency  float64
	dynamicRange  float64
	noiseFloorDB  float64
	effectiveBits int

	lowCutoff    float64
	bassCutoff   float64
	emphasisGain float64

	threshold float64
	ratio     float64
	attack    float64
	release   float64

	distortion float64
	dcOffset   float64
}

func resolve(o Options) params {
	var p params

	switch {
	case o.BitDepth >= 16:
		p.dynamicRange, p.noiseFloorDB = 96, -90
	case o.BitDepth >= 12:
		p.dynamicRange, p.noiseFloorDB = 72, -66
	default:
		p.dynamicRange, p.noiseFloorDB = 48, -42
	}

	switch {
	case o.Intensity > 0.8:
		p.maxFrequency = 8000
	case o.Intensity > 0.5:
		p.maxFrequency = 11025
	default:
		p.maxFrequency = math.Min(float64(o.SampleRate)/2, 16000)
	}

	p.effectiveBits = o.BitDepth
	if o.Intensity < 1 {
		maxBits := o.BitDepth
		if o.BitDepth > 8 {
			maxBits = 16
		}
		p.effectiveBits = o.BitDepth + int(float64(maxBits-o.BitDepth)*(1-o.Intensity))
	}

	p.lowCutoff = p.maxFrequency * (1 - o.Intensity*0.3)
	p.bassCutoff = 200 * (1 + o.Intensity*0.5)
	p.emphasisGain = 1 + 0.2*o.Intensity

	p.threshold = 0.8 - o.Intensity*0.2
	p.ratio = 2 + o.Intensity*2
	p.attack = 0.1 * (1 + o.Intensity)
	p.release = 0.001 * (1 + 2*o.Intensity)

	p.distortion = 0.002 * o.Intensity
	p.dcOffset = 0.001 * o.Intensity

	return p
}

// Processor is the intensity-scalable pipeline. It composes the same
// stages as Chain, parameterized by Options, and blends the result with
// the clean input when intensity is below 1. Not safe for concurrent
// use.
type Processor struct {
	opts Options
	p    params
	rng  *rand.Rand
}

// NewProcessor builds a processor with parameters resolved from opts.
func NewProcessor(opts Options) *Processor {
	return &Processor{
		opts: opts,
		p:    resolve(opts),
		rng:  rand.New(rand.NewPCG(0x76a5c3e1, uint64(opts.SampleRate)<<8|uint64(opts.BitDepth))),
	}
}

// EffectiveBits returns the quantization depth actually applied after
// intensity interpolation.
func (pr *Processor) EffectiveBits() int {
	return pr.p.effectiveBits
}

// Process returns a new buffer with the configured character applied.
// The input is not modified. With processing disabled, or intensity 0
// and no enhancements, the output equals the input.
func (pr *Processor) Process(audio []float64) []float64 {
	if len(audio) == 0 {
		return audio
	}
	buf := slices.Clone(audio)

	if pr.opts.SpectralEnhancement {
		pr.spectralEnhance(buf)
	}
	if pr.opts.HarmonicEnrichment {
		harmonicEnrich(buf)
	}

	if pr.opts.Enabled && pr.opts.Intensity > 0 {
		buf = pr.vintageChain(buf)
	}

	if pr.opts.NoiseReduction {
		noiseGate(buf)
	}
	if pr.opts.TemporalSmoothing {
		temporalSmooth(buf)
	}

	return buf
}

func (pr *Processor) vintageChain(clean []float64) []float64 {
	sr := float64(pr.opts.SampleRate)
	buf := slices.Clone(clean)

	if pr.opts.AnalogSimulation {
		analogFrontend(buf, pr.p.distortion, pr.p.dcOffset)
		if pr.opts.BitDepth <= 8 {
			addGaussianNoise(buf, 0.0001*pr.opts.Intensity, pr.rng)
		}
	}

	if pr.opts.FrequencyShaping && len(buf) > 1 {
		twoPoleLowpass(buf, pr.p.lowCutoff, sr)
		onePoleHighpass(buf, pr.p.bassCutoff, sr)
		if pr.opts.Intensity > 0.3 {
			speechEmphasis(buf, sr, 3000, 0.95, pr.p.emphasisGain, (pr.p.emphasisGain-1)*0.5)
		}
	}

	pr.crush(buf)
	compress(buf, pr.p.threshold, pr.p.ratio, pr.p.attack, pr.p.release)
	pr.applyPreset(buf)

	if i := pr.opts.Intensity; i < 1 {
		for n := range buf {
			buf[n] = i*buf[n] + (1-i)*clean[n]
		}
	}
	return buf
}

// crush quantizes to the effective bit depth, with converter noise
// scaled by intensity and TPDF dither on the finer grids.
func (pr *Processor) crush(buf []float64) {
	if pr.opts.BitDepth >= 16 && pr.opts.Intensity < 0.3 {
		return
	}
	quantize(buf, pr.p.effectiveBits)
	if pr.opts.QuantizationNoise && pr.opts.Intensity > 0 {
		amp := 0.5 / float64(int(1)<<pr.p.effectiveBits) * pr.opts.Intensity
		addUniformNoise(buf, amp, pr.rng)
	}
	if pr.opts.BitDepth >= 12 && pr.opts.Intensity < 0.8 {
		addTriangularDither(buf, 1/float64(int(1)<<(pr.p.effectiveBits+1)), pr.rng)
	}
	clamp(buf)
}

func (pr *Processor) applyPreset(buf []float64) {
	sr := float64(pr.opts.SampleRate)
	switch pr.opts.Preset {
	case PresetDrSbaitso:
		soundBlaster(buf, sr, pr.opts.BitDepth, pr.rng)
	case PresetDrSbaitsoEnhanced:
		soundBlaster(buf, sr, pr.opts.BitDepth, pr.rng)
		if pr.opts.BitDepth >= 12 {
			twoPoleLowpass(buf, 10000, sr)
		}
	case PresetSubtleVintage:
		pr.crush(buf)
		twoPoleLowpass(buf, 12000, sr)
	}
}

// spectralEnhance mixes in a low-level 1kHz component to lift perceived
// clarity ahead of the lossy stages.
func (pr *Processor) spectralEnhance(buf []float64) {
	if len(buf) <= 1 {
		return
	}
	sr := float64(pr.opts.SampleRate)
	for i := range buf {
		buf[i] += 0.05 * math.Sin(2*math.Pi*1000*float64(i)/sr)
	}
}

// harmonicEnrich adds gentle even-order harmonics for a warmer tone.
func harmonicEnrich(buf []float64) {
	for i, v := range buf {
		s := 1.0
		if v < 0 {
			s = -1.0
		} else if v == 0 {
			s = 0
		}
		buf[i] = v + 0.01*v*v*s
	}
	clamp(buf)
}

// noiseGate attenuates stretches whose windowed energy falls below a
// fixed floor.
func noiseGate(buf []float64) {
	if len(buf) <= 1 {
		return
	}
	window := min(512, len(buf)/4)
	if window < 2 {
		return
	}

	prefix := make([]float64, len(buf)+1)
	for i, v := range buf {
		prefix[i+1] = prefix[i] + v*v
	}

	const threshold = 0.01
	const gate = 0.5
	half := window / 2
	for i := range buf {
		lo := max(0, i-half)
		hi := min(len(buf), i+window-half)
		energy := (prefix[hi] - prefix[lo]) / float64(window)
		if energy < threshold {
			buf[i] *= gate
		}
	}
}

// temporalSmooth blends in a three-tap moving average to soften
// concatenation edges.
func temporalSmooth(buf []float64) {
	if len(buf) <= 1 {
		return
	}
	smoothed := make([]float64, len(buf))
	for i := range buf {
		sum := buf[i]
		if i > 0 {
			sum += buf[i-1]
		}
		if i < len(buf)-1 {
			sum += buf[i+1]
		}
		smoothed[i] = sum / 3
	}
	const blend = 0.3
	for i := range buf {
		buf[i] = (1-blend)*buf[i] + blend*smoothed[i]
	}
}
