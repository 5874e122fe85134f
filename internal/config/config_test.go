package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Audio.SampleRate != 22050 {
		t.Fatalf("expected default sample rate 22050, got %d", cfg.Audio.SampleRate)
	}
	if cfg.Audio.BitDepth != 8 {
		t.Fatalf("expected default bit depth 8, got %d", cfg.Audio.BitDepth)
	}
	if cfg.Vintage.Intensity != 1.0 {
		t.Fatalf("expected default intensity 1.0, got %g", cfg.Vintage.Intensity)
	}
	if cfg.Vintage.Preset != "dr_sbaitso" {
		t.Fatalf("expected default preset dr_sbaitso, got %q", cfg.Vintage.Preset)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("RETROVOX_AUDIO_SAMPLE_RATE", "44100")
	t.Setenv("RETROVOX_AUDIO_BIT_DEPTH", "16")
	t.Setenv("RETROVOX_VINTAGE_INTENSITY", "0.25")
	t.Setenv("RETROVOX_VINTAGE_PRESET", "subtle_vintage")
	t.Setenv("RETROVOX_BUS_SERVERS", "nats://one:4222, nats://two:4222")
	t.Setenv("RETROVOX_SPEECH_MODE", "mock")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Audio.SampleRate != 44100 {
		t.Fatalf("expected sample rate override, got %d", cfg.Audio.SampleRate)
	}
	if cfg.Audio.BitDepth != 16 {
		t.Fatalf("expected bit depth override, got %d", cfg.Audio.BitDepth)
	}
	if cfg.Vintage.Intensity != 0.25 {
		t.Fatalf("expected intensity override, got %g", cfg.Vintage.Intensity)
	}
	if cfg.Vintage.Preset != "subtle_vintage" {
		t.Fatalf("expected preset override, got %q", cfg.Vintage.Preset)
	}
	if len(cfg.Bus.Servers) != 2 {
		t.Fatalf("expected 2 servers, got %v", cfg.Bus.Servers)
	}
	if cfg.Speech.Mode != "mock" {
		t.Fatalf("expected speech mode override, got %q", cfg.Speech.Mode)
	}
}

func TestValidateRejectsBadBitDepth(t *testing.T) {
	cfg := Default()
	cfg.Audio.BitDepth = 10
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for bit depth 10")
	}
}

func TestValidateRejectsOutOfRangeIntensity(t *testing.T) {
	cfg := Default()
	cfg.Vintage.Intensity = 1.5
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for intensity 1.5")
	}
	cfg.Vintage.Intensity = -0.1
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for intensity -0.1")
	}
}

func TestValidateRejectsBadSampleRate(t *testing.T) {
	cfg := Default()
	cfg.Audio.SampleRate = 4000
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for sample rate 4000")
	}
}
