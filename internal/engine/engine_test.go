package engine

import (
	"context"
	"testing"

	"github.com/phonolabs/retrovox/internal/config"
)

func testEngine(t *testing.T, mutate func(*config.Config)) *Engine {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	if err := config.Validate(cfg); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return New(cfg, nil)
}

func TestSpeakEmptyText(t *testing.T) {
	e := testEngine(t, nil)
	u, err := e.Speak(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(u.Samples) != 0 {
		t.Fatalf("expected no samples, got %d", len(u.Samples))
	}
	if len(u.Phonemes) != 0 {
		t.Fatalf("expected no phonemes, got %v", u.Phonemes)
	}
}

func TestSpeakProducesPaddedAudio(t *testing.T) {
	e := testEngine(t, func(c *config.Config) {
		c.Padding.LeadMS = 50
		c.Padding.TailMS = 100
	})
	u, err := e.Speak(context.Background(), "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(u.Samples) == 0 {
		t.Fatal("expected samples")
	}

	sr := e.SampleRate()
	lead := 50 * sr / 1000
	for i := 0; i < lead; i++ {
		if u.Samples[i] != 0 {
			t.Fatalf("expected silent lead padding, sample %d = %g", i, u.Samples[i])
		}
	}
	tail := 100 * sr / 1000
	for i := len(u.Samples) - tail; i < len(u.Samples); i++ {
		if u.Samples[i] != 0 {
			t.Fatalf("expected silent tail padding, sample %d = %g", i, u.Samples[i])
		}
	}
	if u.Duration <= 0 {
		t.Fatal("expected positive duration")
	}
}

func TestSpeakBoundedOutput(t *testing.T) {
	e := testEngine(t, nil)
	u, err := e.Speak(context.Background(), "The quick brown fox, jumps!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range u.Samples {
		if v < -1 || v > 1 {
			t.Fatalf("sample %d out of range: %g", i, v)
		}
	}
}

func TestSpeakCancelledContext(t *testing.T) {
	e := testEngine(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Speak(ctx, "hello"); err == nil {
		t.Fatal("expected context error")
	}
}

func TestSpeakVintageDisabledStillRenders(t *testing.T) {
	e := testEngine(t, func(c *config.Config) {
		c.Vintage.Enabled = false
	})
	u, err := e.Speak(context.Background(), "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(u.Samples) == 0 {
		t.Fatal("expected samples with vintage disabled")
	}
}
