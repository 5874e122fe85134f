package synth

import (
	"math"
	"testing"
)

const testRate = 22050

func TestSynthesizeEmptyInput(t *testing.T) {
	e := New(testRate)
	if out := e.Synthesize(nil); len(out) != 0 {
		t.Fatalf("expected empty output, got %d samples", len(out))
	}
}

func TestSynthesizeLengthFollowsDurations(t *testing.T) {
	e := New(testRate)

	// SIL->AA and AA->SIL are silence transitions of 40ms each.
	out := e.Synthesize([]string{"AA"})
	want := 2 * int(0.04*testRate)
	if len(out) != want {
		t.Fatalf("expected %d samples, got %d", want, len(out))
	}
}

func TestSynthesizeWithPause(t *testing.T) {
	e := New(testRate)

	// SIL->AA (40ms), AA->AA (120ms, keyed to the start phoneme),
	// 200ms pause, AA->SIL (40ms).
	out := e.Synthesize([]string{"AA", "<PAUSE_SHORT>", "AA"})
	want := int(0.04*testRate) + int(0.12*testRate) + int(0.2*testRate) + int(0.04*testRate)
	if len(out) != want {
		t.Fatalf("expected %d samples, got %d", want, len(out))
	}
}

func TestOutputBoundedAndQuantized(t *testing.T) {
	e := New(testRate)
	out := e.Synthesize([]string{"HH", "EH", "L", "OW"})
	if len(out) == 0 {
		t.Fatal("expected non-empty output")
	}

	var peak float64
	for _, v := range out {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		t.Fatal("expected non-silent output")
	}
	if peak > 0.81 {
		t.Fatalf("peak %g exceeds normalization ceiling", peak)
	}

	for i, v := range out {
		steps := v * 128
		if math.Abs(steps-math.Round(steps)) > 1e-9 {
			t.Fatalf("sample %d = %g is off the 256-level grid", i, v)
		}
	}
}

func TestSynthesizeDeterministic(t *testing.T) {
	a := New(testRate).Synthesize([]string{"S", "AE", "T"})
	b := New(testRate).Synthesize([]string{"S", "AE", "T"})
	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("outputs diverge at sample %d: %g vs %g", i, a[i], b[i])
		}
	}
}

func TestUnknownPhonemeStillRenders(t *testing.T) {
	e := New(testRate)
	out := e.Synthesize([]string{"QQ"})
	want := 2 * int(0.04*testRate)
	if len(out) != want {
		t.Fatalf("expected %d samples, got %d", want, len(out))
	}
}

func TestResonatorSilentOnZeroFrequency(t *testing.T) {
	r := newResonator(testRate, FormantBandwidth)
	for i := 0; i < 16; i++ {
		if y := r.process(1.0, 0, 1.0); y != 0 {
			t.Fatalf("sample %d: expected silence at zero frequency, got %g", i, y)
		}
	}
}

func TestResonatorStateIsPerUnit(t *testing.T) {
	e := New(testRate)
	first := e.renderDiphone("AA", "AA")
	second := e.renderDiphone("AA", "AA")
	if len(first) != len(second) {
		t.Fatalf("length mismatch: %d vs %d", len(first), len(second))
	}
	// Identical voiced units must render identically when each starts
	// from a fresh filter.
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("units diverge at sample %d: %g vs %g", i, first[i], second[i])
		}
	}
}
