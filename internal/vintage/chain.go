// Package vintage degrades clean synthesis output into the sound of a
// late-1980s PC speech program: limited bandwidth, coarse quantization,
// primitive compression, and sound-card artifacts. Chain is the fixed
// full-strength pipeline; Processor wraps the same stages with a
// configurable intensity and presets.
package vintage

import (
	"math/rand/v2"
	"slices"
)

// Chain is the fixed seven-stage character pipeline, applied at full
// strength. A Chain is not safe for concurrent use.
type Chain struct {
	sampleRate float64
	bitDepth   int
	rng        *rand.Rand
}

// NewChain returns a full-strength pipeline for the given output format.
func NewChain(sampleRate, bitDepth int) *Chain {
	return &Chain{
		sampleRate: float64(sampleRate),
		bitDepth:   bitDepth,
		rng:        rand.New(rand.NewPCG(0x5b1a7e50, uint64(sampleRate)<<8|uint64(bitDepth))),
	}
}

// Process runs audio through all seven stages and returns a new buffer.
// The input is not modified.
func (c *Chain) Process(audio []float64) []float64 {
	if len(audio) == 0 {
		return audio
	}
	buf := slices.Clone(audio)

	// Stage 1: analog input path.
	analogFrontend(buf, 0.002, 0.001)

	// Stage 2: anti-aliasing as built in 1986, a single soft pole.
	onePoleLowpass(buf, 10000, c.sampleRate)

	// Stage 3: bit crushing. A 16-bit grid is already transparent.
	if c.bitDepth < 16 {
		quantize(buf, c.bitDepth)
		addUniformNoise(buf, 0.5/float64(int(1)<<c.bitDepth), c.rng)
		clamp(buf)
	}

	// Stage 4: fold-down residue from the crude stage 2.
	aliasingArtifact(buf, c.sampleRate)

	// Stage 5: speaker-and-amp frequency response.
	twoPoleLowpass(buf, 8000, c.sampleRate)
	onePoleHighpass(buf, 200, c.sampleRate)
	speechEmphasis(buf, c.sampleRate, 3000, 0.9, 1.2, 0.2)

	// Stage 6: AGC-style compression.
	compress(buf, 0.8, 4.0, 0.1, 0.001)

	// Stage 7: output DAC and coupling.
	outputStage(buf, c.sampleRate)

	return buf
}
