package vintage

import (
	"math"
	"testing"
)

const testRate = 22050

func sine(n int, freq float64, amp float64) []float64 {
	buf := make([]float64, n)
	for i := range buf {
		buf[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/testRate)
	}
	return buf
}

func TestChainEmptyInput(t *testing.T) {
	c := NewChain(testRate, 8)
	if out := c.Process(nil); len(out) != 0 {
		t.Fatalf("expected empty output, got %d samples", len(out))
	}
}

func TestChainPreservesLengthAndBounds(t *testing.T) {
	c := NewChain(testRate, 8)
	in := sine(4410, 440, 0.9)
	out := c.Process(in)
	if len(out) != len(in) {
		t.Fatalf("length changed: %d -> %d", len(in), len(out))
	}
	for i, v := range out {
		if v < -1 || v > 1 {
			t.Fatalf("sample %d out of range: %g", i, v)
		}
	}
}

func TestChainDoesNotModifyInput(t *testing.T) {
	c := NewChain(testRate, 8)
	in := sine(1024, 440, 0.5)
	want := sine(1024, 440, 0.5)
	c.Process(in)
	for i := range in {
		if in[i] != want[i] {
			t.Fatalf("input modified at sample %d", i)
		}
	}
}

func TestProcessorZeroIntensityIsIdentity(t *testing.T) {
	p := NewProcessor(Options{
		SampleRate:        testRate,
		BitDepth:          16,
		Enabled:           true,
		Intensity:         0,
		Preset:            PresetDrSbaitso,
		QuantizationNoise: true,
		AnalogSimulation:  true,
		FrequencyShaping:  true,
	})
	in := sine(2048, 300, 0.7)
	out := p.Process(in)
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("expected clean pass-through, sample %d: %g vs %g", i, out[i], in[i])
		}
	}
}

func TestProcessorFullIntensityAltersSignal(t *testing.T) {
	p := NewProcessor(Options{
		SampleRate:        testRate,
		BitDepth:          8,
		Enabled:           true,
		Intensity:         1,
		Preset:            PresetDrSbaitso,
		QuantizationNoise: true,
		AnalogSimulation:  true,
		FrequencyShaping:  true,
	})
	in := sine(2048, 300, 0.7)
	out := p.Process(in)
	if len(out) != len(in) {
		t.Fatalf("length changed: %d -> %d", len(in), len(out))
	}
	same := true
	for i := range in {
		if out[i] != in[i] {
			same = false
		}
		if out[i] < -1 || out[i] > 1 {
			t.Fatalf("sample %d out of range: %g", i, out[i])
		}
	}
	if same {
		t.Fatal("full-intensity processing left the signal untouched")
	}
}

func TestProcessorDisabledIsIdentity(t *testing.T) {
	p := NewProcessor(Options{SampleRate: testRate, BitDepth: 8, Enabled: false, Intensity: 1})
	in := sine(512, 1000, 0.5)
	out := p.Process(in)
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("disabled processor altered sample %d", i)
		}
	}
}

func TestEffectiveBitsInterpolation(t *testing.T) {
	cases := []struct {
		bits      int
		intensity float64
		want      int
	}{
		{8, 1.0, 8},
		{8, 0.5, 8}, // 8-bit has no headroom to interpolate into
		{16, 1.0, 16},
		{16, 0.0, 16},
		{12, 0.5, 14},
		{12, 1.0, 12},
	}
	for _, c := range cases {
		p := NewProcessor(Options{SampleRate: testRate, BitDepth: c.bits, Intensity: c.intensity})
		if got := p.EffectiveBits(); got != c.want {
			t.Fatalf("bits=%d intensity=%g: got %d, want %d", c.bits, c.intensity, got, c.want)
		}
	}
}

func TestResolveIntensityScaling(t *testing.T) {
	full := resolve(Options{SampleRate: testRate, BitDepth: 8, Intensity: 1})
	if full.maxFrequency != 8000 {
		t.Fatalf("expected heavy band limit 8000, got %g", full.maxFrequency)
	}
	if full.threshold != 0.6 || full.ratio != 4 {
		t.Fatalf("unexpected compressor params: threshold=%g ratio=%g", full.threshold, full.ratio)
	}

	moderate := resolve(Options{SampleRate: testRate, BitDepth: 8, Intensity: 0.6})
	if moderate.maxFrequency != 11025 {
		t.Fatalf("expected moderate band limit 11025, got %g", moderate.maxFrequency)
	}

	light := resolve(Options{SampleRate: testRate, BitDepth: 8, Intensity: 0.2})
	if light.maxFrequency != math.Min(testRate/2, 16000) {
		t.Fatalf("expected light band limit, got %g", light.maxFrequency)
	}
}

func TestQuantizeSnapsToGrid(t *testing.T) {
	buf := []float64{0.5, -0.25, 0.123456}
	quantize(buf, 8)
	for i, v := range buf {
		steps := v * 127
		if math.Abs(steps-math.Round(steps)) > 1e-9 {
			t.Fatalf("sample %d = %g is off the 8-bit grid", i, v)
		}
	}
}

func TestCompressLeavesQuietSignalAlone(t *testing.T) {
	buf := sine(1024, 500, 0.5)
	want := sine(1024, 500, 0.5)
	compress(buf, 0.8, 4, 0.1, 0.001)
	for i := range buf {
		if buf[i] != want[i] {
			t.Fatalf("sub-threshold signal altered at sample %d", i)
		}
	}
}

func TestSpeechEmphasisShortBufferScales(t *testing.T) {
	buf := []float64{0.1, 0.2}
	speechEmphasis(buf, testRate, 3000, 0.9, 1.2, 0.2)
	if math.Abs(buf[0]-0.12) > 1e-12 || math.Abs(buf[1]-0.24) > 1e-12 {
		t.Fatalf("expected plain gain on short buffer, got %v", buf)
	}
}
