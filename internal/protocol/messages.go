// Package protocol defines the bus message types and subjects shared by
// the speech daemon and its clients.
package protocol

import "time"

// SpeakRequest asks the daemon to synthesize text for a session.
type SpeakRequest struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
	Target    string `json:"target,omitempty"`
}

// AudioChunk carries one PCM segment of a synthesized utterance.
// Sequence numbers start at 0 per request; Final marks the last chunk.
type AudioChunk struct {
	SessionID  string `json:"session_id"`
	Target     string `json:"target,omitempty"`
	Sequence   int    `json:"sequence"`
	SampleRate int    `json:"sample_rate"`
	Channels   int    `json:"channels"`
	PCM        []byte `json:"pcm"`
	Final      bool   `json:"final"`
}

// SpeakStatus announces completion of a request.
type SpeakStatus struct {
	SessionID string    `json:"session_id"`
	Target    string    `json:"target,omitempty"`
	Completed bool      `json:"completed"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	SubjectSpeakRequest = "speech.say"
	SubjectSpeakAudio   = "speech.audio"
	SubjectSpeakDone    = "speech.done"
)
