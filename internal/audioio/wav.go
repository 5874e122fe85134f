package audioio

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAVFile writes mono float samples to path as 16-bit PCM WAV,
// duplicating to two channels when channels is 2.
func WriteWAVFile(path string, samples []float64, sampleRate, channels int) error {
	pcm := Interleave(FloatToPCM16(samples), channels)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav file: %w", err)
	}
	defer file.Close()

	data := make([]int, len(pcm))
	for i, v := range pcm {
		data[i] = int(v)
	}
	buffer := &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		SourceBitDepth: 16,
	}

	enc := wav.NewEncoder(file, sampleRate, 16, channels, 1)
	if err := enc.Write(buffer); err != nil {
		return fmt.Errorf("write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize wav: %w", err)
	}
	return nil
}
