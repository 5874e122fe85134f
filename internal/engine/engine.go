// Package engine is the synthesis façade: it wires text normalization,
// phoneme conversion, formant synthesis, the vintage character chain,
// and output padding into a single Speak call.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/phonolabs/retrovox/internal/config"
	"github.com/phonolabs/retrovox/internal/g2p"
	"github.com/phonolabs/retrovox/internal/synth"
	"github.com/phonolabs/retrovox/internal/textnorm"
	"github.com/phonolabs/retrovox/internal/vintage"
)

// Utterance is the result of synthesizing one piece of text.
type Utterance struct {
	Text       string
	Normalized string
	Phonemes   []string
	Samples    []float64
	SampleRate int
	Duration   time.Duration
}

// Engine renders text to samples using a configuration resolved once at
// construction. Safe for concurrent use; calls are serialized internally
// because the synthesis and character stages keep per-call filter state.
type Engine struct {
	mu   sync.Mutex
	cfg  config.Config
	syn  *synth.Engine
	proc *vintage.Processor
	log  *slog.Logger

	utterances metric.Int64Counter
	synthTime  metric.Float64Histogram
}

// New builds an engine from a validated configuration.
func New(cfg config.Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	meter := otel.Meter("github.com/phonolabs/retrovox/internal/engine")
	utterances, _ := meter.Int64Counter("retrovox.utterances",
		metric.WithDescription("Number of utterances synthesized"))
	synthTime, _ := meter.Float64Histogram("retrovox.synthesis.duration",
		metric.WithDescription("Wall-clock synthesis time per utterance"),
		metric.WithUnit("s"))
	return &Engine{
		cfg: cfg,
		syn: synth.New(cfg.Audio.SampleRate),
		proc: vintage.NewProcessor(vintage.Options{
			SampleRate:          cfg.Audio.SampleRate,
			BitDepth:            cfg.Audio.BitDepth,
			Enabled:             cfg.Vintage.Enabled,
			Intensity:           cfg.Vintage.Intensity,
			Preset:              cfg.Vintage.Preset,
			QuantizationNoise:   cfg.Advanced.QuantizationNoise,
			AnalogSimulation:    cfg.Advanced.AnalogSimulation,
			FrequencyShaping:    cfg.Advanced.FrequencyShaping,
			SpectralEnhancement: cfg.Advanced.SpectralEnhancement,
			HarmonicEnrichment:  cfg.Advanced.HarmonicEnrichment,
			NoiseReduction:      cfg.Advanced.NoiseReduction,
			TemporalSmoothing:   cfg.Advanced.TemporalSmoothing,
		}),
		log:        logger.With(slog.String("component", "engine")),
		utterances: utterances,
		synthTime:  synthTime,
	}
}

// SampleRate returns the engine's output rate in Hz.
func (e *Engine) SampleRate() int {
	return e.cfg.Audio.SampleRate
}

// Speak renders text into mono samples. Empty or all-punctuation text
// yields an Utterance with no samples; unknown words degrade to default
// formants rather than failing.
func (e *Engine) Speak(ctx context.Context, text string) (*Utterance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()

	normalized := textnorm.Normalize(text)
	phonemes := g2p.Convert(normalized)

	e.mu.Lock()
	samples := e.syn.Synthesize(phonemes)
	if len(samples) > 0 {
		samples = e.proc.Process(samples)
	}
	e.mu.Unlock()

	if len(samples) > 0 {
		samples = e.pad(samples)
	}

	u := &Utterance{
		Text:       text,
		Normalized: normalized,
		Phonemes:   phonemes,
		Samples:    samples,
		SampleRate: e.cfg.Audio.SampleRate,
		Duration:   time.Duration(float64(len(samples)) / float64(e.cfg.Audio.SampleRate) * float64(time.Second)),
	}

	if e.utterances != nil {
		e.utterances.Add(ctx, 1)
	}
	if e.synthTime != nil {
		e.synthTime.Record(ctx, time.Since(start).Seconds())
	}

	e.log.Debug("synthesized utterance",
		slog.Int("phonemes", len(phonemes)),
		slog.Int("samples", len(samples)),
		slog.Duration("audio", u.Duration),
		slog.Duration("took", time.Since(start)))

	return u, nil
}

// pad surrounds the utterance with lead and tail silence, then applies
// short linear fades at the buffer edges to keep playback click-free.
func (e *Engine) pad(samples []float64) []float64 {
	sr := e.cfg.Audio.SampleRate
	lead := e.cfg.Padding.LeadMS * sr / 1000
	tail := e.cfg.Padding.TailMS * sr / 1000

	padded := make([]float64, 0, lead+len(samples)+tail)
	padded = append(padded, make([]float64, lead)...)
	padded = append(padded, samples...)
	padded = append(padded, make([]float64, tail)...)

	fade := e.cfg.Padding.FadeMS * sr / 1000
	if fade > len(padded)/2 {
		fade = len(padded) / 2
	}
	for i := 0; i < fade; i++ {
		g := float64(i) / float64(fade)
		padded[i] *= g
		padded[len(padded)-1-i] *= g
	}
	return padded
}
