// Package speech exposes the synthesizer over the bus: it listens for
// speak requests and streams PCM chunks back, with pluggable synthesis
// backends.
package speech

import "context"

// SynthRequest contains parameters to synthesize speech.
type SynthRequest struct {
	SessionID string
	Text      string
}

// SynthChunk contains one segment of PCM data.
type SynthChunk struct {
	SessionID  string
	Sequence   int
	SampleRate int
	Channels   int
	PCM        []byte
	Final      bool
}

// Synthesizer is the contract for producing audio. Implementations
// close both channels when the request is finished.
type Synthesizer interface {
	Synthesize(ctx context.Context, req SynthRequest) (<-chan SynthChunk, <-chan error)
}
