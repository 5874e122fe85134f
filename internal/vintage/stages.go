package vintage

import (
	"math"
	"math/rand/v2"
)

// analogFrontend adds the gentle nonlinearity and DC offset of a
// consumer-grade analog input stage.
func analogFrontend(buf []float64, distortion, dcOffset float64) {
	for i, v := range buf {
		s := 1.0
		if v < 0 {
			s = -1.0
		} else if v == 0 {
			s = 0
		}
		buf[i] = v + distortion*s*v*v + dcOffset
	}
}

// quantize snaps samples to a signed grid of the given bit depth.
func quantize(buf []float64, bits int) {
	maxLevel := float64(int(1)<<(bits-1) - 1)
	for i, v := range buf {
		buf[i] = math.Round(v*maxLevel) / maxLevel
	}
}

// addUniformNoise injects converter noise uniformly distributed in
// [-amplitude, amplitude].
func addUniformNoise(buf []float64, amplitude float64, rng *rand.Rand) {
	for i := range buf {
		buf[i] += (rng.Float64()*2 - 1) * amplitude
	}
}

// addTriangularDither injects TPDF dither centered on zero, which
// decorrelates quantization error on the finer grids.
func addTriangularDither(buf []float64, amplitude float64, rng *rand.Rand) {
	for i := range buf {
		buf[i] += (rng.Float64() - rng.Float64()) * amplitude
	}
}

// addGaussianNoise injects a noise floor with the given standard
// deviation.
func addGaussianNoise(buf []float64, stddev float64, rng *rand.Rand) {
	for i := range buf {
		buf[i] += rng.NormFloat64() * stddev
	}
}

// aliasingArtifact mixes in a faint tone above the representable band,
// standing in for the fold-down products of an underdesigned
// anti-aliasing stage.
func aliasingArtifact(buf []float64, sampleRate float64) {
	if len(buf) <= 1 {
		return
	}
	aliasFreq := sampleRate * 0.7
	for i := range buf {
		t := float64(i) / sampleRate
		buf[i] += 0.001 * math.Sin(2*math.Pi*aliasFreq*t)
	}
}

// outputStage models the DAC and output coupling path: a touch of
// even-order harmonic content, a subsonic-blocking capacitor, headroom
// scaling, and hard clip protection.
func outputStage(buf []float64, sampleRate float64) {
	for i, v := range buf {
		buf[i] = v + 0.001*v*v
	}
	onePoleHighpass(buf, 20, sampleRate)
	for i := range buf {
		buf[i] *= 0.9
	}
	clamp(buf)
}

// soundBlaster reproduces the signature of the early consumer sound
// cards this voice shipped on: an unsigned 8-bit DAC round trip, the
// card's band limit, and its audible noise floor.
func soundBlaster(buf []float64, sampleRate float64, bitDepth int, rng *rand.Rand) {
	if bitDepth == 8 {
		for i, v := range buf {
			code := math.Floor((v + 1) * 127.5)
			code = math.Max(0, math.Min(255, code))
			buf[i] = code/127.5 - 1
		}
	}
	twoPoleLowpass(buf, 11000, sampleRate)

	// -48dB noise floor.
	addGaussianNoise(buf, math.Pow(10, -48.0/20), rng)
}
