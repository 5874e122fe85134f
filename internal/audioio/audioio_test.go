package audioio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
)

func TestFloatToPCM16(t *testing.T) {
	pcm := FloatToPCM16([]float64{0, 1, -1, 0.5, 2.0, -2.0})
	want := []int16{0, 32767, -32767, 16384, 32767, -32767}
	if len(pcm) != len(want) {
		t.Fatalf("length mismatch: %d", len(pcm))
	}
	for i := range want {
		if pcm[i] != want[i] {
			t.Fatalf("sample %d: got %d, want %d", i, pcm[i], want[i])
		}
	}
}

func TestPCMRoundTrip(t *testing.T) {
	in := []float64{0, 0.25, -0.5, 0.99}
	out := PCM16ToFloat(FloatToPCM16(in))
	for i := range in {
		if diff := out[i] - in[i]; diff > 1e-4 || diff < -1e-4 {
			t.Fatalf("sample %d drifted: %g -> %g", i, in[i], out[i])
		}
	}
}

func TestInterleaveStereo(t *testing.T) {
	got := Interleave([]int16{1, 2, 3}, 2)
	want := []int16{1, 1, 2, 2, 3, 3}
	if len(got) != len(want) {
		t.Fatalf("length mismatch: %d", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestInterleaveMonoPassThrough(t *testing.T) {
	in := []int16{1, 2, 3}
	if got := Interleave(in, 1); len(got) != 3 {
		t.Fatalf("mono interleave changed length: %d", len(got))
	}
}

func TestPCM16Bytes(t *testing.T) {
	got := PCM16Bytes([]int16{0x0102, -1})
	want := []byte{0x02, 0x01, 0xFF, 0xFF}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d: got %#x, want %#x", i, got[i], want[i])
		}
	}
}

func TestWriteWAVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	samples := make([]float64, 2205)
	for i := range samples {
		samples[i] = 0.25
	}
	if err := WriteWAVFile(path, samples, 22050, 1); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(buf.Data) != len(samples) {
		t.Fatalf("expected %d frames, got %d", len(samples), len(buf.Data))
	}
	if int(dec.SampleRate) != 22050 {
		t.Fatalf("expected sample rate 22050, got %d", dec.SampleRate)
	}
	if dec.NumChans != 1 {
		t.Fatalf("expected mono, got %d channels", dec.NumChans)
	}
}

func TestWriteWAVFileStereo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stereo.wav")
	samples := []float64{0.1, -0.1, 0.2}
	if err := WriteWAVFile(path, samples, 22050, 2); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(buf.Data) != len(samples)*2 {
		t.Fatalf("expected %d interleaved values, got %d", len(samples)*2, len(buf.Data))
	}
	if buf.Data[0] != buf.Data[1] {
		t.Fatal("expected duplicated channels")
	}
}
