package tone

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const wavChunk = 4096

// WriteWAV renders d of src as a 16 bits mono WAV stream. Samples are
// clipped to [-1, 1], failed samples are silent.
func WriteWAV(w io.WriteSeeker, src *Source, d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("negative duration %s", d)
	}
	total := int(d.Seconds() * SampleRate)

	enc := wav.NewEncoder(w, SampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  SampleRate,
		},
		Data:           make([]int, wavChunk),
		SourceBitDepth: 16,
	}
	for total > 0 {
		n := wavChunk
		if total < n {
			n = total
		}
		buf.Data = buf.Data[:n]
		for i := range buf.Data {
			v, ok := src.Next()
			if !ok {
				v = 0
			}
			buf.Data[i] = int(clip(float64(v)) * math.MaxInt16)
		}
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("could not write samples: %w", err)
		}
		total -= n
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("could not finalize wav: %w", err)
	}
	return nil
}

func clip(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	case math.IsNaN(v):
		return 0
	}
	return v
}
