package audioio

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Player plays float samples on the default audio device. The underlying
// device context is created once; oto does not support closing it, so a
// process keeps a single Player for its lifetime.
type Player struct {
	ctx        *oto.Context
	sampleRate int
	channels   int
}

// NewPlayer opens the audio device for 16-bit little-endian output and
// blocks until the device is ready.
func NewPlayer(sampleRate, channels int) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}
	octx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	<-ready
	return &Player{ctx: octx, sampleRate: sampleRate, channels: channels}, nil
}

// Play converts samples to PCM and blocks until playback finishes or the
// context is cancelled.
func (p *Player) Play(ctx context.Context, samples []float64) error {
	pcm := PCM16Bytes(Interleave(FloatToPCM16(samples), p.channels))
	if len(pcm) == 0 {
		return nil
	}

	player := p.ctx.NewPlayer(bytes.NewReader(pcm))
	player.Play()
	defer player.Close()

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}
