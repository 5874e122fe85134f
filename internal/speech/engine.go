package speech

import (
	"context"
	"log/slog"
	"sync"

	"github.com/phonolabs/retrovox/internal/audioio"
	"github.com/phonolabs/retrovox/internal/engine"
	"github.com/phonolabs/retrovox/internal/utterancelog"
)

// engineSynth renders requests with the in-process engine and streams
// the result in fixed-duration chunks.
type engineSynth struct {
	eng      *engine.Engine
	store    *utterancelog.Store
	channels int
	chunkMS  int
	preset   string
	log      *slog.Logger
	mu       sync.Mutex
}

// NewEngineSynth wraps the synthesis engine as a Synthesizer. store may
// be nil or disabled; utterances are then not recorded.
func NewEngineSynth(eng *engine.Engine, store *utterancelog.Store, channels, chunkMS int, preset string, log *slog.Logger) Synthesizer {
	return &engineSynth{
		eng:      eng,
		store:    store,
		channels: channels,
		chunkMS:  chunkMS,
		preset:   preset,
		log:      log.With(slog.String("component", "speech-engine")),
	}
}

func (e *engineSynth) Synthesize(ctx context.Context, req SynthRequest) (<-chan SynthChunk, <-chan error) {
	e.mu.Lock()
	chunks := make(chan SynthChunk)
	errs := make(chan error, 1)
	go func() {
		defer close(chunks)
		defer close(errs)
		defer e.mu.Unlock()

		u, err := e.eng.Speak(ctx, req.Text)
		if err != nil {
			errs <- err
			return
		}

		if err := e.store.Append(ctx, utterancelog.Utterance{
			SessionID:  req.SessionID,
			Text:       req.Text,
			Phonemes:   len(u.Phonemes),
			Samples:    len(u.Samples),
			DurationMS: u.Duration.Milliseconds(),
			Preset:     e.preset,
		}); err != nil {
			e.log.Warn("failed to record utterance", slog.String("error", err.Error()))
		}

		pcm := audioio.PCM16Bytes(audioio.Interleave(audioio.FloatToPCM16(u.Samples), e.channels))

		// Frame-aligned chunk size.
		frameBytes := e.channels * 2
		chunkBytes := e.chunkMS * u.SampleRate / 1000 * frameBytes
		if chunkBytes < frameBytes {
			chunkBytes = frameBytes
		}

		sequence := 0
		for offset := 0; ; offset += chunkBytes {
			end := offset + chunkBytes
			final := end >= len(pcm)
			if final {
				end = len(pcm)
			}
			chunk := SynthChunk{
				SessionID:  req.SessionID,
				Sequence:   sequence,
				SampleRate: u.SampleRate,
				Channels:   e.channels,
				PCM:        pcm[offset:end],
				Final:      final,
			}
			select {
			case chunks <- chunk:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
			sequence++
			if final {
				return
			}
		}
	}()
	return chunks, errs
}
